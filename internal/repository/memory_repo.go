package repository

import (
	"context"
	"strings"
	"sync"

	"trustledger-backend/internal/models"
)

// MemoryProfileRepo keeps profiles in process memory. Records are cloned on
// the way in and on the way out, so callers never hold a pointer into the map.
type MemoryProfileRepo struct {
	mu      sync.RWMutex
	byID    map[string]*models.UserProfile
	byEmail map[string]string
	order   []string
}

func NewMemoryProfileRepo() *MemoryProfileRepo {
	return &MemoryProfileRepo{
		byID:    make(map[string]*models.UserProfile),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryProfileRepo) FindByID(ctx context.Context, id string) (*models.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return p.Clone(), nil
}

func (r *MemoryProfileRepo) FindByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[EmailKey(email)]
	if !ok {
		return nil, nil
	}
	return r.byID[id].Clone(), nil
}

// SearchByName matches a case-insensitive substring of the name, in
// insertion order.
func (r *MemoryProfileRepo) SearchByName(ctx context.Context, query string) ([]models.UserProfile, error) {
	needle := strings.ToLower(query)

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.UserProfile, 0)
	for _, id := range r.order {
		p := r.byID[id]
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, *p.Clone())
		}
	}
	return out, nil
}

func (r *MemoryProfileRepo) Create(ctx context.Context, profile *models.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := EmailKey(profile.Email)
	if _, exists := r.byEmail[key]; exists {
		return ErrDuplicateEmail
	}
	stored := profile.Clone()
	stored.EmailKey = key
	r.byID[stored.ID] = stored
	r.byEmail[key] = stored.ID
	r.order = append(r.order, stored.ID)
	return nil
}

// Update replaces the stored record. The email key is immutable after
// creation, so the email index is left untouched.
func (r *MemoryProfileRepo) Update(ctx context.Context, profile *models.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[profile.ID]
	if !ok {
		return ErrNotFound
	}
	stored := profile.Clone()
	stored.Email = existing.Email
	stored.EmailKey = existing.EmailKey
	r.byID[stored.ID] = stored
	return nil
}

func (r *MemoryProfileRepo) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.byID)), nil
}

// Package reputation owns user profiles and their feedback ledgers. It is the
// only writer of sentiment and average rating, and it hands out deep copies on
// every read and write so callers can never reach stored state.
package reputation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"trustledger-backend/internal/apperror"
	"trustledger-backend/internal/models"
	"trustledger-backend/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Repository persists profiles. A miss is reported as (nil, nil).
type Repository interface {
	FindByID(ctx context.Context, id string) (*models.UserProfile, error)
	FindByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	SearchByName(ctx context.Context, query string) ([]models.UserProfile, error)
	Create(ctx context.Context, profile *models.UserProfile) error
	Update(ctx context.Context, profile *models.UserProfile) error
	Count(ctx context.Context) (int64, error)
}

// RegisterInput carries the fields accepted at registration. AvatarURL and
// Bio are optional.
type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	AvatarURL string
	Bio       string
}

// ProfileUpdate is a partial update: nil fields keep their current value.
type ProfileUpdate struct {
	Name      *string
	Bio       *string
	AvatarURL *string
}

// FeedbackInput is what a rater submits. Sentiment is deliberately absent.
type FeedbackInput struct {
	RaterName string
	Rating    int
	Comment   string
}

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

type Store struct {
	repo       Repository
	registerMu sync.Mutex
	profiles   *keyedMutex
	newID      func() string
	now        func() time.Time
	bcryptCost int

	dummyOnce sync.Once
	dummy     []byte
}

type Option func(*Store)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the UUIDv7 generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithBcryptCost lowers the hashing cost; tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *Store) { s.bcryptCost = cost }
}

func NewStore(repo Repository, opts ...Option) *Store {
	s := &Store{
		repo:       repo,
		profiles:   newKeyedMutex(),
		newID:      func() string { return uuid.Must(uuid.NewV7()).String() },
		now:        time.Now,
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultAvatarURL is the placeholder used when a profile is registered
// without an avatar.
func DefaultAvatarURL(id string) string {
	return "https://picsum.photos/100/100?random=" + id
}

func (s *Store) FindByID(ctx context.Context, id string) (*models.UserProfile, error) {
	return s.load(ctx, id)
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	p, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to load profile", err)
	}
	if p == nil {
		return nil, apperror.NewNotFoundError("no user with that email", nil)
	}
	return p.Clone(), nil
}

// SearchByName returns every profile whose name contains query, ignoring
// case. A blank query matches nothing.
func (s *Store) SearchByName(ctx context.Context, query string) ([]models.UserProfile, error) {
	if strings.TrimSpace(query) == "" {
		return []models.UserProfile{}, nil
	}
	found, err := s.repo.SearchByName(ctx, query)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to search profiles", err)
	}
	out := make([]models.UserProfile, 0, len(found))
	for i := range found {
		out = append(out, *found[i].Clone())
	}
	return out, nil
}

func (s *Store) Register(ctx context.Context, in RegisterInput) (*models.UserProfile, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" {
		return nil, apperror.NewValidationError("name is required", nil)
	}
	if email == "" {
		return nil, apperror.NewValidationError("email is required", nil)
	}
	if in.Password == "" {
		return nil, apperror.NewValidationError("password is required", nil)
	}
	if len(in.Password) > MaxPasswordBytes {
		return nil, apperror.NewValidationError(
			fmt.Sprintf("password cannot exceed %d bytes", MaxPasswordBytes), nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, apperror.NewValidationError(
			fmt.Sprintf("password cannot exceed %d bytes", MaxPasswordBytes), err)
	}
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash credential", err)
	}

	s.registerMu.Lock()
	defer s.registerMu.Unlock()

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to check email", err)
	}
	if existing != nil {
		return nil, apperror.NewConflictError("email already registered", nil)
	}

	now := s.now()
	id := s.newID()
	avatar := strings.TrimSpace(in.AvatarURL)
	if avatar == "" {
		avatar = DefaultAvatarURL(id)
	}
	profile := &models.UserProfile{
		ID:             id,
		Name:           name,
		Email:          email,
		EmailKey:       repository.EmailKey(email),
		CredentialHash: string(hash),
		AvatarURL:      avatar,
		Bio:            in.Bio,
		AverageRating:  0,
		Feedback:       []models.FeedbackEntry{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperror.NewConflictError("email already registered", nil)
		}
		return nil, apperror.NewDatabaseError("failed to create profile", err)
	}
	log.Printf("👤 Registered profile %s", id)
	return profile.Clone(), nil
}

func (s *Store) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*models.UserProfile, error) {
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, apperror.NewValidationError("name cannot be blank", nil)
	}

	unlock := s.profiles.Lock(id)
	defer unlock()

	profile, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		profile.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Bio != nil {
		profile.Bio = *upd.Bio
	}
	if upd.AvatarURL != nil {
		profile.AvatarURL = *upd.AvatarURL
	}
	profile.UpdatedAt = s.now()

	if err := s.save(ctx, profile); err != nil {
		return nil, err
	}
	return profile.Clone(), nil
}

// AddFeedback prepends a new entry to the ledger and recomputes the average
// while holding the profile's lock.
func (s *Store) AddFeedback(ctx context.Context, userID string, in FeedbackInput) (*models.UserProfile, error) {
	if in.Rating < MinRating || in.Rating > MaxRating {
		return nil, apperror.NewValidationError(
			fmt.Sprintf("rating must be between %d and %d", MinRating, MaxRating), nil)
	}
	raterName := strings.TrimSpace(in.RaterName)
	if raterName == "" {
		return nil, apperror.NewValidationError("rater name is required", nil)
	}

	unlock := s.profiles.Lock(userID)
	defer unlock()

	profile, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	entry := models.FeedbackEntry{
		ID:        s.newID(),
		RaterName: raterName,
		Rating:    in.Rating,
		Comment:   in.Comment,
		Sentiment: Classify(in.Rating),
		CreatedAt: now,
	}
	ledger := make([]models.FeedbackEntry, 0, len(profile.Feedback)+1)
	ledger = append(ledger, entry)
	ledger = append(ledger, profile.Feedback...)

	profile.Feedback = ledger
	profile.AverageRating = AverageRating(ledger)
	profile.UpdatedAt = now

	if err := s.save(ctx, profile); err != nil {
		return nil, err
	}
	return profile.Clone(), nil
}

// Authenticate checks an email/password pair. Unknown email and wrong
// password produce the same error and the same bcrypt work.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*models.UserProfile, error) {
	invalid := apperror.NewAuthError("invalid email or password", nil)

	p, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to load profile", err)
	}
	if p == nil {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash(), []byte(password))
		return nil, invalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.CredentialHash), []byte(password)); err != nil {
		return nil, invalid
	}
	return p.Clone(), nil
}

// dummyHash is compared against on an email miss so the miss path costs
// the same as a wrong password.
func (s *Store) dummyHash() []byte {
	s.dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("trustledger-unused-credential"), s.bcryptCost)
		if err != nil {
			log.Printf("⚠️  Warning: failed to build dummy credential hash: %v", err)
			return
		}
		s.dummy = h
	})
	return s.dummy
}

func (s *Store) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, apperror.NewDatabaseError("failed to count profiles", err)
	}
	return int(n), nil
}

func (s *Store) load(ctx context.Context, id string) (*models.UserProfile, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to load profile", err)
	}
	if p == nil {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("user %s not found", id), nil)
	}
	// Repositories may hand back their own memory; never mutate it in place.
	return p.Clone(), nil
}

func (s *Store) save(ctx context.Context, p *models.UserProfile) error {
	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NewNotFoundError(fmt.Sprintf("user %s not found", p.ID), nil)
		}
		return apperror.NewDatabaseError("failed to save profile", err)
	}
	return nil
}

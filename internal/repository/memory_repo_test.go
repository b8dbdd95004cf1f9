package repository

import (
	"context"
	"errors"
	"testing"

	"trustledger-backend/internal/models"
)

func newProfile(id, name, email string) *models.UserProfile {
	return &models.UserProfile{ID: id, Name: name, Email: email, Feedback: []models.FeedbackEntry{}}
}

func TestMemoryCreateAndFind(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryProfileRepo()

	if err := r.Create(ctx, newProfile("1", "Alice", "alice@example.com")); err != nil {
		t.Fatal(err)
	}

	p, err := r.FindByID(ctx, "1")
	if err != nil {
		t.Fatal(err)
	}
	if p == nil || p.Name != "Alice" {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if p.EmailKey != "alice@example.com" {
		t.Fatalf("expected email key to be set, got %q", p.EmailKey)
	}

	p, err = r.FindByEmail(ctx, "ALICE@Example.com")
	if err != nil {
		t.Fatal(err)
	}
	if p == nil || p.ID != "1" {
		t.Fatalf("case-insensitive email lookup failed: %+v", p)
	}
}

func TestMemoryMissReturnsNil(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryProfileRepo()

	p, err := r.FindByID(ctx, "nope")
	if err != nil || p != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", p, err)
	}
	p, err = r.FindByEmail(ctx, "nope@example.com")
	if err != nil || p != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", p, err)
	}
}

func TestMemoryDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryProfileRepo()

	if err := r.Create(ctx, newProfile("1", "Alice", "a@x.com")); err != nil {
		t.Fatal(err)
	}
	err := r.Create(ctx, newProfile("2", "Other", "A@X.COM"))
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	n, _ := r.Count(ctx)
	if n != 1 {
		t.Fatalf("expected 1 profile, got %d", n)
	}
}

func TestMemorySearchKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryProfileRepo()
	for _, p := range []*models.UserProfile{
		newProfile("3", "Zed Anderson", "z@x.com"),
		newProfile("1", "Annie", "annie@x.com"),
		newProfile("2", "Bob", "bob@x.com"),
	} {
		if err := r.Create(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	got, err := r.SearchByName(ctx, "AN")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "3" || got[1].ID != "1" {
		t.Fatalf("unexpected search result: %+v", got)
	}
}

func TestMemoryReadsAreIsolated(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryProfileRepo()
	in := newProfile("1", "Alice", "a@x.com")
	if err := r.Create(ctx, in); err != nil {
		t.Fatal(err)
	}
	in.Name = "changed after create"

	p, _ := r.FindByID(ctx, "1")
	p.Feedback = append(p.Feedback, models.FeedbackEntry{ID: "x"})
	p.Name = "changed after read"

	again, _ := r.FindByID(ctx, "1")
	if again.Name != "Alice" || len(again.Feedback) != 0 {
		t.Fatalf("stored record was aliased: %+v", again)
	}
}

func TestMemoryUpdate(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryProfileRepo()
	if err := r.Create(ctx, newProfile("1", "Alice", "a@x.com")); err != nil {
		t.Fatal(err)
	}

	p, _ := r.FindByID(ctx, "1")
	p.Bio = "hello"
	p.Email = "ignored@x.com"
	if err := r.Update(ctx, p); err != nil {
		t.Fatal(err)
	}

	got, _ := r.FindByID(ctx, "1")
	if got.Bio != "hello" {
		t.Fatalf("bio not updated: %q", got.Bio)
	}
	if got.Email != "a@x.com" {
		t.Fatalf("email must not change on update, got %q", got.Email)
	}

	if err := r.Update(ctx, newProfile("missing", "X", "x@x.com")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

package models

import (
	"testing"
	"time"
)

func TestCloneDoesNotAlias(t *testing.T) {
	orig := &UserProfile{
		ID:   "u1",
		Name: "Alice",
		Feedback: []FeedbackEntry{
			{ID: "f1", Rating: 5, Sentiment: SentimentPositive, CreatedAt: time.Now()},
		},
		AverageRating: 5,
	}

	c := orig.Clone()
	c.Name = "Mallory"
	c.Feedback[0].Rating = 1
	c.Feedback = append(c.Feedback, FeedbackEntry{ID: "f2"})

	if orig.Name != "Alice" {
		t.Fatalf("name leaked into original: %q", orig.Name)
	}
	if orig.Feedback[0].Rating != 5 {
		t.Fatalf("feedback entry leaked into original: %d", orig.Feedback[0].Rating)
	}
	if len(orig.Feedback) != 1 {
		t.Fatalf("expected original ledger length 1, got %d", len(orig.Feedback))
	}
}

func TestCloneNil(t *testing.T) {
	var p *UserProfile
	if p.Clone() != nil {
		t.Fatal("expected nil clone of nil profile")
	}
}

func TestCloneEmptyLedgerIsNonNil(t *testing.T) {
	c := (&UserProfile{ID: "u1"}).Clone()
	if c.Feedback == nil {
		t.Fatal("expected empty, non-nil ledger")
	}
}

package models

import (
	"time"
)

// UserProfile is the canonical record for one account and its feedback ledger.
// AverageRating is derived from Feedback and is only ever written by the
// reputation store.
type UserProfile struct {
	ID             string          `bson:"_id" json:"id"`
	Name           string          `bson:"name" json:"name"`
	Email          string          `bson:"email" json:"email"`
	EmailKey       string          `bson:"email_key" json:"-"`
	CredentialHash string          `bson:"credential_hash" json:"-"`
	AvatarURL      string          `bson:"avatar_url" json:"avatar_url"`
	Bio            string          `bson:"bio" json:"bio"`
	AverageRating  float64         `bson:"average_rating" json:"average_rating"`
	Feedback       []FeedbackEntry `bson:"feedback" json:"feedback"`
	CreatedAt      time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `bson:"updated_at" json:"updated_at"`
}

// Clone returns a deep copy that shares no memory with p.
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	c := *p
	c.Feedback = make([]FeedbackEntry, len(p.Feedback))
	copy(c.Feedback, p.Feedback)
	return &c
}

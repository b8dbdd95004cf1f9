package models

import (
	"time"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// FeedbackEntry is one rating left on a profile. Entries are immutable once
// appended to a ledger.
type FeedbackEntry struct {
	ID        string    `bson:"id" json:"id"`
	RaterName string    `bson:"rater_name" json:"rater_name"`
	Rating    int       `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment" json:"comment"`
	Sentiment Sentiment `bson:"sentiment" json:"sentiment"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

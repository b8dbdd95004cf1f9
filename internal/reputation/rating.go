package reputation

import (
	"trustledger-backend/internal/models"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Classify maps a rating onto its sentiment. It is the only place sentiment
// is ever produced.
func Classify(rating int) models.Sentiment {
	switch {
	case rating >= 4:
		return models.SentimentPositive
	case rating >= 3:
		return models.SentimentNeutral
	default:
		return models.SentimentNegative
	}
}

// AverageRating is the mean rating rounded half up to one decimal, or 0 for
// an empty ledger. The rounding is done on integer tenths so that exact
// halves such as 2.25 always round to 2.3.
func AverageRating(feedback []models.FeedbackEntry) float64 {
	n := len(feedback)
	if n == 0 {
		return 0
	}
	sum := 0
	for _, f := range feedback {
		sum += f.Rating
	}
	// round(10*sum/n) with ties going up: floor((20*sum + n) / 2n)
	tenths := (20*sum + n) / (2 * n)
	return float64(tenths) / 10
}

// Package seed loads a fixed set of demo profiles with feedback, so a fresh
// instance has something to browse.
package seed

import (
	"context"
	"fmt"
	"log"

	"trustledger-backend/internal/apperror"
	"trustledger-backend/internal/models"
	"trustledger-backend/internal/reputation"
)

// DemoPassword is shared by every demo account.
const DemoPassword = "password123"

type demoUser struct {
	name, email, bio string
	ratings          []int
}

var demoUsers = []demoUser{
	{"Alice Wonderland", "alice@example.com", "Experienced trader in vintage collectibles. Always fair and communicative.", []int{5, 4, 5, 4}},
	{"Bob The Builder", "bob@example.com", "Reliable contractor for all your building needs. Quality work guaranteed.", []int{3, 4, 3}},
	{"Charlie Brown", "charlie@example.com", "Friendly neighborhood guy. Sometimes lucky, sometimes not.", []int{2, 3, 1, 3, 2}},
	{"Diana Prince", "diana@example.com", "Seeking justice and fair deals. Values honesty and integrity.", []int{5, 5, 4}},
	{"Edward Scissorhands", "edward@example.com", "Creative and artistic. Handle with care.", []int{4, 3, 5, 2, 4, 3}},
}

func commentFor(rating int) string {
	switch reputation.Classify(rating) {
	case models.SentimentPositive:
		return "Excellent transaction, highly recommended!"
	case models.SentimentNeutral:
		return "Good experience overall."
	default:
		return "Could have been better, some issues."
	}
}

// Demo registers the demo profiles. Accounts that already exist are left
// alone, so it is safe to run on every start.
func Demo(ctx context.Context, store *reputation.Store) (int, error) {
	created := 0
	for i, u := range demoUsers {
		profile, err := store.Register(ctx, reputation.RegisterInput{
			Name:      u.name,
			Email:     u.email,
			Password:  DemoPassword,
			AvatarURL: fmt.Sprintf("https://picsum.photos/100/100?random=%d", i+1),
			Bio:       u.bio,
		})
		if apperror.IsConflict(err) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("seeding %s: %w", u.email, err)
		}
		for j, rating := range u.ratings {
			_, err := store.AddFeedback(ctx, profile.ID, reputation.FeedbackInput{
				RaterName: fmt.Sprintf("User %d", 100+i*10+j),
				Rating:    rating,
				Comment:   commentFor(rating),
			})
			if err != nil {
				return created, fmt.Errorf("seeding feedback for %s: %w", u.email, err)
			}
		}
		created++
	}
	log.Printf("🌱 Seeded %d demo profiles", created)
	return created, nil
}

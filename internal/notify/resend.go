package notify

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"

	"trustledger-backend/internal/models"

	"github.com/resend/resend-go/v2"
)

// ResendNotifier delivers notifications as e-mail through Resend.
type ResendNotifier struct {
	client *resend.Client
	from   string
}

func NewResendNotifier(apiKey, from string) *ResendNotifier {
	return &ResendNotifier{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (r *ResendNotifier) Publish(ctx context.Context, n Notification) error {
	params := &resend.SendEmailRequest{
		From:    r.from,
		To:      []string{n.To},
		Subject: n.Subject,
		Text:    n.Text,
		Html:    fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;"><pre style="white-space: pre-wrap; font-family: inherit;">%s</pre></div>`, html.EscapeString(n.Text)),
	}

	sent, err := r.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	log.Printf("📧 Email sent (ID: %s) to %s", sent.Id, n.To)
	return nil
}

// FeedbackReceived builds the message sent to a profile owner when someone
// rates them.
func FeedbackReceived(owner *models.UserProfile, entry models.FeedbackEntry) Notification {
	stars := strings.Repeat("★", entry.Rating) + strings.Repeat("☆", 5-entry.Rating)
	return Notification{
		To:      owner.Email,
		Subject: fmt.Sprintf("%s left you a %d-star rating", entry.RaterName, entry.Rating),
		Text: fmt.Sprintf("Hi %s,\n\n%s rated you %s (%s).\n\n\"%s\"\n\nYour average rating is now %.1f from %d reviews.",
			owner.Name, entry.RaterName, stars, entry.Sentiment, entry.Comment,
			owner.AverageRating, len(owner.Feedback)),
	}
}

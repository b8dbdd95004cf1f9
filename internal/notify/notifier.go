package notify

import "context"

// Notification is a message addressed to one profile owner.
type Notification struct {
	To      string
	Subject string
	Text    string
}

// Notifier delivers notifications. Implementations must be safe for
// concurrent use; handlers call Publish from background goroutines.
type Notifier interface {
	Publish(ctx context.Context, n Notification) error
}

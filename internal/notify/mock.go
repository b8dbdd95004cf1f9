package notify

import (
	"context"
	"log"
	"sync"
)

// MockNotifier logs notifications instead of sending them and remembers what
// it was asked to deliver.
type MockNotifier struct {
	mu   sync.Mutex
	sent []Notification
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Publish(ctx context.Context, n Notification) error {
	m.mu.Lock()
	m.sent = append(m.sent, n)
	m.mu.Unlock()
	log.Printf("📨 [MockNotifier] to=%s subject=%q", n.To, n.Subject)
	return nil
}

// Sent returns a copy of everything published so far.
func (m *MockNotifier) Sent() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Notification, len(m.sent))
	copy(out, m.sent)
	return out
}

package notify

import (
	"context"
	"log"
)

// Notifier delivers a message to the operator
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Noop discards every message. Used when no channel is configured.
type Noop struct{}

func (Noop) Send(ctx context.Context, text string) error {
	log.Printf("Notification (no channel configured): %s", text)
	return nil
}

// Multi fans a message out to several channels. Delivery failures on one
// channel do not stop the others; the first error is returned.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, text string) error {
	var firstErr error
	for _, n := range m {
		if err := n.Send(ctx, text); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

package gateway

import "context"

// EventPublisher pushes short text notifications to a fire-and-forget
// topic. No acknowledgement is consumed.
type EventPublisher interface {
	Publish(ctx context.Context, text string) error
}

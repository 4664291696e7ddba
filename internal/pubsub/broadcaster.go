package pubsub

import "context"

// Fan-out contract for newly detected opportunities (nats, noop, etc.)
type Broadcaster interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Health(ctx context.Context) error
}

// Noop is the default when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, interface{}) error { return nil }
func (Noop) Health(context.Context) error                       { return nil }

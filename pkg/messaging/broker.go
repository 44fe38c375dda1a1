package messaging

import "context"

// Broker publishes domain events to interested consumers. The API
// surface is intentionally small: the outbox processor is the only
// producer in this codebase.
type Broker interface {
	Publish(ctx context.Context, topic string, payload []byte) error
	Close() error
}

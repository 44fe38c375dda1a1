package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Paudel3101/meditrack/pkg/circuitbreaker"
	"github.com/Paudel3101/meditrack/pkg/messaging"
)

// Broker publishes events over redis pub/sub, guarded by a circuit
// breaker so a redis outage does not stall the outbox processor with
// slow failing calls.
type Broker struct {
	client  *redis.Client
	breaker *circuitbreaker.CircuitBreaker
}

var _ messaging.Broker = (*Broker)(nil)

type Config struct {
	Addr     string
	Password string
	DB       int
}

func NewBroker(cfg Config) (*Broker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Broker{
		client:  client,
		breaker: circuitbreaker.New(5, 30*time.Second),
	}, nil
}

func (b *Broker) Publish(ctx context.Context, topic string, payload []byte) error {
	return b.breaker.Execute(func() error {
		if err := b.client.Publish(ctx, topic, payload).Err(); err != nil {
			return fmt.Errorf("failed to publish to %s: %w", topic, err)
		}
		return nil
	})
}

func (b *Broker) Close() error {
	return b.client.Close()
}

package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/Paudel3101/meditrack/internal/model"
	"github.com/Paudel3101/meditrack/internal/repository"
	"github.com/Paudel3101/meditrack/pkg/logger"
	"github.com/Paudel3101/meditrack/pkg/messaging"
	"github.com/Paudel3101/meditrack/pkg/metrics"
)

// OutboxProcessor polls the outbox table and publishes pending events
// to the broker. Events that fail to publish are marked failed with
// the error recorded; delivery is at-least-once.
type OutboxProcessor struct {
	repo         repository.OutboxRepository
	broker       messaging.Broker
	logger       *logger.Logger
	pollInterval time.Duration
	batchSize    int
	topicPrefix  string
}

type Config struct {
	PollInterval time.Duration
	BatchSize    int
	TopicPrefix  string
}

func NewOutboxProcessor(repo repository.OutboxRepository, broker messaging.Broker, log *logger.Logger, cfg Config) *OutboxProcessor {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.TopicPrefix == "" {
		cfg.TopicPrefix = "meditrack.events"
	}
	return &OutboxProcessor{
		repo:         repo,
		broker:       broker,
		logger:       log,
		pollInterval: cfg.PollInterval,
		batchSize:    cfg.BatchSize,
		topicPrefix:  cfg.TopicPrefix,
	}
}

// Start blocks until ctx is cancelled, processing batches on each tick.
func (p *OutboxProcessor) Start(ctx context.Context) {
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	p.logger.Info("outbox processor started")
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("outbox processor stopped")
			return
		case <-ticker.C:
			if err := p.processBatch(ctx); err != nil {
				p.logger.Error(err, "outbox batch failed")
			}
		}
	}
}

func (p *OutboxProcessor) processBatch(ctx context.Context) error {
	events, err := p.repo.GetPendingEvents(ctx, p.batchSize)
	if err != nil {
		return fmt.Errorf("failed to fetch pending events: %w", err)
	}
	metrics.OutboxPendingEvents.Set(float64(len(events)))
	if len(events) == 0 {
		return nil
	}

	for _, event := range events {
		p.processEvent(ctx, event)
	}
	return nil
}

func (p *OutboxProcessor) processEvent(ctx context.Context, event *model.OutboxEvent) {
	topic := p.topicPrefix + "." + event.EventType

	if err := p.broker.Publish(ctx, topic, event.Payload); err != nil {
		metrics.OutboxEventsProcessed.WithLabelValues(event.EventType, "failed").Inc()
		p.logger.Error(err, "failed to publish event", "event_id", event.ID.String())
		if markErr := p.repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
			p.logger.Error(markErr, "failed to mark event failed", "event_id", event.ID.String())
		}
		return
	}

	if err := p.repo.MarkProcessed(ctx, event.ID); err != nil {
		p.logger.Error(err, "failed to mark event processed", "event_id", event.ID.String())
		return
	}
	metrics.OutboxEventsProcessed.WithLabelValues(event.EventType, "processed").Inc()
}

package handler

import (
	"context"
	"encoding/json"

	"github.com/Paudel3101/meditrack/internal/model"
	"github.com/Paudel3101/meditrack/internal/repository"
	"github.com/Paudel3101/meditrack/pkg/logger"
)

// RecordEvent writes a domain event to the outbox. Recording is
// best-effort: a failure is logged and never affects the request
// outcome.
func RecordEvent(ctx context.Context, repo repository.OutboxRepository, log *logger.Logger, eventType string, payload interface{}) {
	if repo == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Error(err, "failed to encode outbox payload", "event_type", eventType)
		return
	}

	event := &model.OutboxEvent{EventType: eventType, Payload: data}
	if err := repo.CreateEvent(ctx, event); err != nil {
		log.Error(err, "failed to record outbox event", "event_type", eventType)
	}
}

// internal/workers/event_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/askumaar/stocktrail-be/internal/core/ports"
	"github.com/askumaar/stocktrail-be/internal/pkg/config"
)

// EventProcessor handles scheduled event maintenance tasks
type EventProcessor struct {
	events ports.EventService
	config *config.Config
	logger *slog.Logger
}

// NewEventProcessor creates a new event processor
func NewEventProcessor(events ports.EventService, cfg *config.Config, logger *slog.Logger) *EventProcessor {
	return &EventProcessor{
		events: events,
		config: cfg,
		logger: logger.With(slog.String("processor", "event")),
	}
}

// ExpireStaleEvents cancels scheduled events whose date passed long ago
// without ever being completed or cancelled. Runs periodically from the
// worker's scheduler.
func (p *EventProcessor) ExpireStaleEvents(ctx context.Context, t *asynq.Task) error {
	age := p.config.Asynq.StaleEventAge

	cancelled, err := p.events.ExpireStale(ctx, age)
	if err != nil {
		return fmt.Errorf("failed to expire stale events: %w", err)
	}

	p.logger.InfoContext(ctx, "stale event sweep completed",
		slog.Int64("cancelled", cancelled),
		slog.Duration("age", age))

	return nil
}

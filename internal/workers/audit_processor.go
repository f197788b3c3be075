// internal/workers/audit_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/askumaar/stocktrail-be/internal/adapters/redis_adapter"
	"github.com/askumaar/stocktrail-be/internal/core/ports"
)

// AuditProcessor handles movement audit tasks. Movements are committed
// synchronously with the item update; this processor does the follow-up
// work that can tolerate a delay, invalidating cached views that the
// movement made stale.
type AuditProcessor struct {
	cache  ports.CacheRepository
	logger *slog.Logger
}

// NewAuditProcessor creates a new audit processor
func NewAuditProcessor(cache ports.CacheRepository, logger *slog.Logger) *AuditProcessor {
	return &AuditProcessor{
		cache:  cache,
		logger: logger.With(slog.String("processor", "audit")),
	}
}

// ProcessMovementAudit handles a movement:audit task
func (p *AuditProcessor) ProcessMovementAudit(ctx context.Context, t *asynq.Task) error {
	var payload MovementAuditPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal audit payload: %w", err)
	}

	p.logger.InfoContext(ctx, "movement audited",
		slog.String("movement_id", payload.MovementID.String()),
		slog.String("item_number", payload.ItemNumber),
		slog.String("action", payload.Action),
		slog.String("from", payload.From),
		slog.String("to", payload.To))

	// The movement changed item location and status, so cached item views
	// and the dashboard no longer reflect reality.
	keys := []string{
		redis_adapter.BuildKey(redis_adapter.PrefixItem, payload.ItemID.String()),
		redis_adapter.BuildKey(redis_adapter.PrefixDashboard, "main"),
	}
	for _, key := range keys {
		if err := p.cache.Delete(ctx, key); err != nil {
			p.logger.WarnContext(ctx, "failed to invalidate cache key",
				slog.String("key", key),
				slog.String("error", err.Error()))
		}
	}

	if err := p.cache.DeletePattern(ctx, redis_adapter.BuildKey(redis_adapter.PrefixMovement, "*")); err != nil {
		p.logger.WarnContext(ctx, "failed to invalidate movement cache",
			slog.String("error", err.Error()))
	}

	return nil
}

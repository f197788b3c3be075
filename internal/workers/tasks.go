// internal/workers/tasks.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/askumaar/stocktrail-be/internal/core/domain"
)

// Task type constants
const (
	TypeMovementAudit = "movement:audit"
	TypeExpireStale   = "events:expire_stale"
)

// MovementAuditPayload is the payload for movement audit tasks
type MovementAuditPayload struct {
	MovementID uuid.UUID `json:"movement_id"`
	ItemID     uuid.UUID `json:"item_id"`
	ItemNumber string    `json:"item_number"`
	ItemName   string    `json:"item_name"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
}

// TaskEnqueuer pushes background tasks onto the asynq queues. It implements
// services.MovementNotifier so movement recording can hand off audit work
// without blocking the request.
type TaskEnqueuer struct {
	client *asynq.Client
	logger *slog.Logger
}

// NewTaskEnqueuer creates a new task enqueuer
func NewTaskEnqueuer(client *asynq.Client, logger *slog.Logger) *TaskEnqueuer {
	return &TaskEnqueuer{
		client: client,
		logger: logger.With(slog.String("component", "task_enqueuer")),
	}
}

// MovementRecorded enqueues an audit task for a committed movement
func (e *TaskEnqueuer) MovementRecorded(ctx context.Context, m *domain.Movement) error {
	payload := MovementAuditPayload{
		MovementID: m.ID,
		ItemID:     m.ItemID,
		ItemNumber: m.ItemNumber,
		ItemName:   m.ItemName,
		From:       m.From,
		To:         m.To,
		Action:     string(m.Action),
		OccurredAt: m.Timestamp,
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal audit payload: %w", err)
	}

	task := asynq.NewTask(TypeMovementAudit, b)
	info, err := e.client.EnqueueContext(ctx, task,
		asynq.Queue("default"),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second))
	if err != nil {
		return fmt.Errorf("failed to enqueue audit task: %w", err)
	}

	e.logger.DebugContext(ctx, "movement audit task enqueued",
		slog.String("task_id", info.ID),
		slog.String("movement_id", m.ID.String()))

	return nil
}

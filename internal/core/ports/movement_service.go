// internal/core/ports/movement_service.go
package ports

import (
	"context"

	"github.com/askumaar/stocktrail-be/internal/core/domain"
	"github.com/google/uuid"
)

// MovementService defines the application service port for movement recording.
type MovementService interface {
	Record(ctx context.Context, req domain.MovementRequest) (*MovementResult, error)
	Recent(ctx context.Context) ([]domain.Movement, error)
	Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error
}

// MovementResult is returned on a successful movement recording
type MovementResult struct {
	Message string       `json:"message"`
	Item    *domain.Item `json:"item"`
}

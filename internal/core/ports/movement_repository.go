// internal/core/ports/movement_repository.go
package ports

import (
	"context"

	"github.com/askumaar/stocktrail-be/internal/core/domain"
	"github.com/google/uuid"
)

// MovementRepository defines the persistence port for the movement ledger.
type MovementRepository interface {
	// RecordMovement commits the item update, its history entry, and the
	// ledger row in a single transaction. The item row is updated with a
	// compare-and-set on priorStatus; if a concurrent writer got there first
	// the whole transaction fails with domain.ErrStateConflict.
	RecordMovement(ctx context.Context, item *domain.Item, priorStatus domain.ItemStatus, entry domain.StatusEntry, m *domain.Movement) error
	FindRecent(ctx context.Context, limit int) ([]domain.Movement, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Movement, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

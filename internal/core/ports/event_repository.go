// internal/core/ports/event_repository.go
package ports

import (
	"context"
	"time"

	"github.com/askumaar/stocktrail-be/internal/core/domain"
	"github.com/google/uuid"
)

// EventRepository defines the persistence port for QR events.
type EventRepository interface {
	Save(ctx context.Context, event *domain.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	// FindByIDs resolves weak references in bulk; missing ids are simply
	// absent from the result map.
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Event, error)
	FindAll(ctx context.Context) ([]domain.Event, error)
	FindScheduled(ctx context.Context, from time.Time) ([]domain.Event, error)
	FindUpcoming(ctx context.Context, from, until time.Time) ([]domain.Event, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EventStatus) (*domain.Event, error)
	// CancelStale marks scheduled events whose date passed more than cutoff
	// ago as cancelled, returning the number of rows touched.
	CancelStale(ctx context.Context, olderThan time.Time) (int64, error)
}

// internal/core/ports/event_service.go
package ports

import (
	"context"
	"time"

	"github.com/askumaar/stocktrail-be/internal/core/domain"
	"github.com/google/uuid"
)

// EventService defines the application service port for QR events.
type EventService interface {
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	// Scheduled returns scheduled events from today onward.
	Scheduled(ctx context.Context) ([]domain.Event, error)
	// Upcoming returns scheduled events within the next given number of days.
	Upcoming(ctx context.Context, days int) ([]domain.Event, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EventStatus) (*domain.Event, error)
	// ExpireStale cancels scheduled events whose date passed more than age ago.
	ExpireStale(ctx context.Context, age time.Duration) (int64, error)
}

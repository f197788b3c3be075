// internal/core/services/event.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/askumaar/stocktrail-be/internal/core/domain"
	"github.com/askumaar/stocktrail-be/internal/core/ports"
)

// EventService handles QR event recording and scheduling
type EventService struct {
	events ports.EventRepository
	logger *slog.Logger
}

// Statically assert that *EventService implements the EventService interface.
var _ ports.EventService = (*EventService)(nil)

// NewEventService creates a new event service
func NewEventService(events ports.EventRepository, logger *slog.Logger) *EventService {
	return &EventService{
		events: events,
		logger: logger.With(slog.String("service", "event")),
	}
}

// Create validates and stores a new event
func (s *EventService) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}

	event.PrepareForStorage()

	if err := s.events.Save(ctx, event); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "event created",
		slog.String("id", event.ID.String()),
		slog.String("product", event.Product),
		slog.String("status", string(event.Status)))

	return event, nil
}

// GetByID loads one event
func (s *EventService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

// List returns all events, newest first
func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	events, err := s.events.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// Scheduled returns scheduled events from the start of today onward
func (s *EventService) Scheduled(ctx context.Context) ([]domain.Event, error) {
	events, err := s.events.FindScheduled(ctx, startOfToday())
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled events: %w", err)
	}
	return events, nil
}

// Upcoming returns scheduled events within the next given number of days
func (s *EventService) Upcoming(ctx context.Context, days int) ([]domain.Event, error) {
	if days <= 0 {
		days = 7
	}
	from := startOfToday()
	events, err := s.events.FindUpcoming(ctx, from, from.AddDate(0, 0, days))
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming events: %w", err)
	}
	return events, nil
}

// UpdateStatus transitions an event's lifecycle state
func (s *EventService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EventStatus) (*domain.Event, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: status must be completed, scheduled or cancelled", domain.ErrValidation)
	}

	event, err := s.events.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "event status updated",
		slog.String("id", id.String()),
		slog.String("status", string(status)))

	return event, nil
}

// ExpireStale cancels scheduled events whose date passed more than age ago
func (s *EventService) ExpireStale(ctx context.Context, age time.Duration) (int64, error) {
	cancelled, err := s.events.CancelStale(ctx, time.Now().Add(-age))
	if err != nil {
		return 0, err
	}

	if cancelled > 0 {
		s.logger.InfoContext(ctx, "stale events cancelled",
			slog.Int64("count", cancelled))
	}

	return cancelled, nil
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

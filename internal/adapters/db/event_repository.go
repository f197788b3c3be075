// internal/adapters/db/event_repository.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/askumaar/stocktrail-be/internal/core/domain"
	"github.com/askumaar/stocktrail-be/internal/core/ports"
)

const eventColumns = `
	id, product, location, event_type, notes, time,
	scheduled_date, status, created_at, updated_at`

// eventRepository implements ports.EventRepository
type eventRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *Database, logger *slog.Logger) ports.EventRepository {
	return &eventRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "event")),
	}
}

// Save creates a new event row
func (r *eventRepository) Save(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (
			id, product, location, event_type, notes, time,
			scheduled_date, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		event.ID, event.Product, event.Location, event.EventType,
		nullIfEmpty(event.Notes), event.Time, event.ScheduledDate,
		event.Status, event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}

	r.logger.DebugContext(ctx, "event saved",
		slog.String("id", event.ID.String()),
		slog.String("product", event.Product))

	return nil
}

// FindByID retrieves an event, or nil when it does not exist
func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	row := r.db.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)

	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}
	return event, nil
}

// FindByIDs resolves event references in bulk. Ids that no longer exist are
// simply absent from the map; callers render those references as null.
func (r *eventRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Event, error) {
	result := make(map[uuid.UUID]*domain.Event, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := r.db.Query(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		result[event.ID] = event
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return result, nil
}

// FindAll returns every event, newest first
func (r *eventRepository) FindAll(ctx context.Context) ([]domain.Event, error) {
	return r.query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY time DESC`)
}

// FindScheduled returns scheduled events from the given date onward
func (r *eventRepository) FindScheduled(ctx context.Context, from time.Time) ([]domain.Event, error) {
	return r.query(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE status = $1 AND scheduled_date >= $2
		ORDER BY scheduled_date ASC`, domain.EventScheduled, from)
}

// FindUpcoming returns scheduled events inside a date window
func (r *eventRepository) FindUpcoming(ctx context.Context, from, until time.Time) ([]domain.Event, error) {
	return r.query(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE status = $1 AND scheduled_date >= $2 AND scheduled_date <= $3
		ORDER BY scheduled_date ASC`, domain.EventScheduled, from, until)
}

// UpdateStatus transitions an event and returns the updated row
func (r *eventRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EventStatus) (*domain.Event, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE events SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+eventColumns, id, status)

	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to update event status: %w", err)
	}

	r.logger.InfoContext(ctx, "event status updated",
		slog.String("id", id.String()),
		slog.String("status", string(status)))

	return event, nil
}

// CancelStale cancels scheduled events whose date passed before olderThan
func (r *eventRepository) CancelStale(ctx context.Context, olderThan time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE events SET status = $1, updated_at = now()
		WHERE status = $2 AND scheduled_date < $3`,
		domain.EventCancelled, domain.EventScheduled, olderThan)
	if err != nil {
		return 0, fmt.Errorf("failed to cancel stale events: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *eventRepository) query(ctx context.Context, sqlText string, args ...interface{}) ([]domain.Event, error) {
	rows, err := r.db.Query(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return events, nil
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	event := &domain.Event{}
	var notes sql.NullString

	err := row.Scan(
		&event.ID, &event.Product, &event.Location, &event.EventType,
		&notes, &event.Time, &event.ScheduledDate, &event.Status,
		&event.CreatedAt, &event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	event.Notes = notes.String
	return event, nil
}

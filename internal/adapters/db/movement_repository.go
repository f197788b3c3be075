// internal/adapters/db/movement_repository.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/askumaar/stocktrail-be/internal/core/domain"
	"github.com/askumaar/stocktrail-be/internal/core/ports"
)

// movementRepository implements ports.MovementRepository
type movementRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewMovementRepository creates a new movement repository
func NewMovementRepository(db *Database, logger *slog.Logger) ports.MovementRepository {
	return &movementRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "movement")),
	}
}

// RecordMovement commits the item update, its history entry, and the ledger
// row in one transaction. The item update carries a compare-and-set on the
// status the caller read; zero rows affected means a concurrent writer moved
// the item first and the whole transaction fails with ErrStateConflict.
func (r *movementRepository) RecordMovement(ctx context.Context, item *domain.Item, priorStatus domain.ItemStatus, entry domain.StatusEntry, m *domain.Movement) error {
	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE items SET
				location = $3, previous_location = $4, status = $5, updated_at = now()
			WHERE id = $1 AND status = $2`,
			item.ID, priorStatus, item.Location,
			nullIfEmpty(string(item.PreviousLocation)), item.Status,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrStateConflict
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO item_status_history (id, item_id, status, event_id, notes, occurred_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			entry.ID, item.ID, entry.Status, entry.EventID,
			nullIfEmpty(entry.Notes), entry.Timestamp,
		)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO movements (id, item_id, item_number, item_name, from_label, to_label, action, notes, occurred_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			m.ID, m.ItemID, m.ItemNumber, m.ItemName,
			m.From, m.To, m.Action, nullIfEmpty(m.Notes), m.Timestamp,
		)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrStateConflict) {
			return err
		}
		return fmt.Errorf("failed to record movement: %w", err)
	}

	r.logger.DebugContext(ctx, "movement recorded",
		slog.String("id", m.ID.String()),
		slog.String("item_id", m.ItemID.String()),
		slog.String("action", string(m.Action)))

	return nil
}

// FindRecent returns the newest ledger rows first
func (r *movementRepository) FindRecent(ctx context.Context, limit int) ([]domain.Movement, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, item_id, item_number, item_name, from_label, to_label, action, notes, occurred_at
		FROM movements
		ORDER BY occurred_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query movements: %w", err)
	}
	defer rows.Close()

	var movements []domain.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movement: %w", err)
		}
		movements = append(movements, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return movements, nil
}

// FindByID retrieves a single ledger row
func (r *movementRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Movement, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, item_id, item_number, item_name, from_label, to_label, action, notes, occurred_at
		FROM movements
		WHERE id = $1`, id)

	m, err := scanMovement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find movement: %w", err)
	}
	return m, nil
}

// Delete removes a ledger row without touching the referenced item
func (r *movementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMovementNotFound
	}

	r.logger.InfoContext(ctx, "movement deleted", slog.String("id", id.String()))
	return nil
}

func scanMovement(row pgx.Row) (*domain.Movement, error) {
	m := &domain.Movement{}
	var notes sql.NullString

	err := row.Scan(
		&m.ID, &m.ItemID, &m.ItemNumber, &m.ItemName,
		&m.From, &m.To, &m.Action, &notes, &m.Timestamp,
	)
	if err != nil {
		return nil, err
	}

	m.Notes = notes.String
	return m, nil
}

// internal/adapters/db/stock_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/askumaar/stocktrail-be/internal/core/domain"
	"github.com/askumaar/stocktrail-be/internal/core/ports"
)

// stockRepository implements ports.StockRepository
type stockRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewStockRepository creates a new stock repository
func NewStockRepository(db *Database, logger *slog.Logger) ports.StockRepository {
	return &stockRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "stock")),
	}
}

// Create inserts the ledger row and applies the quantity delta in one
// transaction. The UPDATE is conditional on the resulting quantity staying
// non-negative, so a concurrent change cannot drive it below zero; losing
// that race fails the transaction with ErrNegativeStock.
func (r *stockRepository) Create(ctx context.Context, change *domain.StockChange) error {
	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE items SET quantity = quantity + $2, updated_at = now()
			WHERE id = $1 AND quantity + $2 >= 0`,
			change.ItemID, change.ChangeAmount,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNegativeStock
		}

		return tx.QueryRow(ctx, `
			INSERT INTO stock_history (id, item_id, change_amount, reason, updated_by)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at`,
			change.ID, change.ItemID, change.ChangeAmount, change.Reason, change.UpdatedBy,
		).Scan(&change.CreatedAt)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNegativeStock) {
			return err
		}
		return fmt.Errorf("failed to create stock change: %w", err)
	}

	r.logger.DebugContext(ctx, "stock change created",
		slog.String("id", change.ID.String()),
		slog.String("item_id", change.ItemID.String()),
		slog.Int("change_amount", change.ChangeAmount))

	return nil
}

// FindAll returns the full ledger, newest first, with item names joined in
func (r *stockRepository) FindAll(ctx context.Context) ([]domain.StockChange, error) {
	return r.query(ctx, `
		SELECT sh.id, sh.item_id, COALESCE(i.name, ''), sh.change_amount, sh.reason, sh.updated_by, sh.created_at
		FROM stock_history sh
		LEFT JOIN items i ON i.id = sh.item_id
		ORDER BY sh.created_at DESC`)
}

// FindByItem returns the ledger rows for one item, newest first
func (r *stockRepository) FindByItem(ctx context.Context, itemID uuid.UUID) ([]domain.StockChange, error) {
	return r.query(ctx, `
		SELECT sh.id, sh.item_id, COALESCE(i.name, ''), sh.change_amount, sh.reason, sh.updated_by, sh.created_at
		FROM stock_history sh
		LEFT JOIN items i ON i.id = sh.item_id
		WHERE sh.item_id = $1
		ORDER BY sh.created_at DESC`, itemID)
}

func (r *stockRepository) query(ctx context.Context, sqlText string, args ...interface{}) ([]domain.StockChange, error) {
	rows, err := r.db.Query(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock history: %w", err)
	}
	defer rows.Close()

	var changes []domain.StockChange
	for rows.Next() {
		var change domain.StockChange
		err := rows.Scan(
			&change.ID, &change.ItemID, &change.ItemName,
			&change.ChangeAmount, &change.Reason, &change.UpdatedBy, &change.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock change: %w", err)
		}
		changes = append(changes, change)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return changes, nil
}

// internal/core/ports/stock_repository.go
package ports

import (
	"context"

	"github.com/askumaar/stocktrail-be/internal/core/domain"
	"github.com/google/uuid"
)

// StockRepository defines the persistence port for the stock-change ledger.
type StockRepository interface {
	// Create inserts the ledger row and applies the quantity delta to the
	// item in one transaction. The quantity update is conditional on the
	// result staying non-negative; a concurrent change that would drive it
	// below zero fails the whole transaction with domain.ErrNegativeStock.
	Create(ctx context.Context, change *domain.StockChange) error
	FindAll(ctx context.Context) ([]domain.StockChange, error)
	FindByItem(ctx context.Context, itemID uuid.UUID) ([]domain.StockChange, error)
}

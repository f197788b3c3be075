// internal/core/ports/stock_service.go
package ports

import (
	"context"

	"github.com/askumaar/stocktrail-be/internal/core/domain"
	"github.com/google/uuid"
)

// StockService defines the application service port for stock changes.
type StockService interface {
	Change(ctx context.Context, actor domain.Actor, itemID uuid.UUID, changeAmount int, reason string) (*domain.StockChange, error)
	History(ctx context.Context) ([]domain.StockChange, error)
	ItemHistory(ctx context.Context, itemID uuid.UUID) ([]domain.StockChange, error)
}

// internal/core/services/stock.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/askumaar/stocktrail-be/internal/core/domain"
	"github.com/askumaar/stocktrail-be/internal/core/ports"
)

// StockService handles quantity changes and the stock-change ledger
type StockService struct {
	items  ports.ItemRepository
	stock  ports.StockRepository
	logger *slog.Logger
}

// Statically assert that *StockService implements the StockService interface.
var _ ports.StockService = (*StockService)(nil)

// NewStockService creates a new stock service
func NewStockService(items ports.ItemRepository, stock ports.StockRepository, logger *slog.Logger) *StockService {
	return &StockService{
		items:  items,
		stock:  stock,
		logger: logger.With(slog.String("service", "stock")),
	}
}

// Change applies a signed quantity delta with a required reason. A change
// that would drive quantity below zero is rejected with nothing written;
// otherwise the ledger row and the new quantity commit together.
func (s *StockService) Change(ctx context.Context, actor domain.Actor, itemID uuid.UUID, changeAmount int, reason string) (*domain.StockChange, error) {
	change := &domain.StockChange{
		ID:           uuid.New(),
		ItemID:       itemID,
		ChangeAmount: changeAmount,
		Reason:       reason,
	}
	if actor.ID != uuid.Nil {
		actorID := actor.ID
		change.UpdatedBy = &actorID
	}
	if err := change.Validate(); err != nil {
		return nil, err
	}

	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load item: %w", err)
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}

	if item.Quantity+changeAmount < 0 {
		return nil, domain.ErrNegativeStock
	}

	if err := s.stock.Create(ctx, change); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "stock changed",
		slog.String("item_id", itemID.String()),
		slog.Int("change_amount", changeAmount),
		slog.String("reason", reason))

	return change, nil
}

// History returns all stock-change ledger rows
func (s *StockService) History(ctx context.Context) ([]domain.StockChange, error) {
	changes, err := s.stock.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock history: %w", err)
	}
	return changes, nil
}

// ItemHistory returns the stock-change rows for one item
func (s *StockService) ItemHistory(ctx context.Context, itemID uuid.UUID) ([]domain.StockChange, error) {
	changes, err := s.stock.FindByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list item stock history: %w", err)
	}
	return changes, nil
}

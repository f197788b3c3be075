// internal/core/ports/item_repository.go
package ports

import (
	"context"

	"github.com/askumaar/stocktrail-be/internal/core/domain"
	"github.com/google/uuid"
)

// ItemRepository defines the persistence port for inventory items.
// This interface is implemented by the database adapter.
//
// Find methods return (nil, nil) when no row matches; uniqueness violations
// surface as domain.ErrNameConflict / domain.ErrNumberConflict regardless of
// whether the pre-check or the unique index caught them.
type ItemRepository interface {
	Save(ctx context.Context, item *domain.Item) error
	// Update persists the item's fields and appends the given history entries
	// in one transaction. An empty entries slice is a plain field update.
	Update(ctx context.Context, item *domain.Item, entries []domain.StatusEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	FindByNumber(ctx context.Context, itemNumber string) (*domain.Item, error)
	// FindByNameOrNumber matches either field case-insensitively.
	FindByNameOrNumber(ctx context.Context, name, itemNumber string) (*domain.Item, error)
	ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
	ExistsByNumber(ctx context.Context, itemNumber string, excludeID uuid.UUID) (bool, error)
	FindAll(ctx context.Context, params ListParams) ([]*domain.Item, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	StatusHistory(ctx context.Context, itemID uuid.UUID) ([]domain.StatusEntry, error)
}

// ListParams holds parameters for listing items
type ListParams struct {
	Search    string
	Category  string
	Location  string
	Status    string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// ListResult holds one page of items
type ListResult struct {
	Items      []*domain.Item `json:"items"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalCount int64          `json:"total_count"`
	TotalPages int            `json:"total_pages"`
}

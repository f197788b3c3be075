// internal/core/ports/item_service.go
package ports

import (
	"context"

	"github.com/askumaar/stocktrail-be/internal/core/domain"
	"github.com/google/uuid"
)

// ItemService defines the application service port for the item lifecycle.
type ItemService interface {
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	// QuickAdd returns the existing item untouched when name or number already
	// matches; otherwise it creates one. The bool reports whether a create
	// happened.
	QuickAdd(ctx context.Context, params QuickAddParams) (*domain.Item, bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	GetByNumber(ctx context.Context, itemNumber string) (*domain.Item, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Update(ctx context.Context, id uuid.UUID, update ItemUpdate) (*domain.Item, error)
	Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ItemStatus, eventID *uuid.UUID, notes string) (*domain.Item, error)
	StatusHistory(ctx context.Context, itemID uuid.UUID) ([]domain.StatusEntry, error)
	IsNameUnique(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
}

// QuickAddParams holds the mandatory quick-add inputs
type QuickAddParams struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Quantity    *int   `json:"quantity"`
	ItemNumber  string `json:"item_number"`
	Description string `json:"description,omitempty"`
}

// ItemUpdate is a partial field set; nil means "leave unchanged".
// AppendHistory is the side-channel that lets a status-changing caller update
// fields and push one history entry in the same persisted operation.
type ItemUpdate struct {
	Name          *string             `json:"name,omitempty"`
	ItemNumber    *string             `json:"item_number,omitempty"`
	Category      *string             `json:"category,omitempty"`
	Description   *string             `json:"description,omitempty"`
	Quantity      *int                `json:"quantity,omitempty"`
	Location      *string             `json:"location,omitempty"`
	ImageURL      *string             `json:"image_url,omitempty"`
	AppendHistory *domain.StatusEntry `json:"append_history,omitempty"`
}

// internal/core/domain/stock.go
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StockChange is one ledger row per quantity mutation on an item. The row and
// the item's quantity update are committed in the same transaction.
type StockChange struct {
	ID           uuid.UUID  `json:"id"`
	ItemID       uuid.UUID  `json:"item_id"`
	ItemName     string     `json:"item_name,omitempty"` // joined on read
	ChangeAmount int        `json:"change_amount"`
	Reason       string     `json:"reason"`
	UpdatedBy    *uuid.UUID `json:"updated_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Validate checks the required stock-change fields
func (c *StockChange) Validate() error {
	if c.ItemID == uuid.Nil {
		return fmt.Errorf("%w: item_id is required", ErrValidation)
	}
	if strings.TrimSpace(c.Reason) == "" {
		return fmt.Errorf("%w: reason is required", ErrValidation)
	}
	return nil
}

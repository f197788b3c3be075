// internal/core/domain/movement.go
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MovementAction is the kind of transfer being recorded
type MovementAction string

const (
	ActionSend    MovementAction = "send"
	ActionReceive MovementAction = "receive"
)

// IsValid reports whether the action is send or receive
func (a MovementAction) IsValid() bool {
	return a == ActionSend || a == ActionReceive
}

// Movement is one append-only ledger row per transfer action. ItemNumber and
// ItemName are snapshots taken at write time; they are allowed to drift from
// the live item after later edits.
type Movement struct {
	ID         uuid.UUID      `json:"id"`
	ItemID     uuid.UUID      `json:"item_id"`
	ItemNumber string         `json:"item_number"`
	ItemName   string         `json:"item_name"`
	From       string         `json:"from"`
	To         string         `json:"to"`
	Action     MovementAction `json:"action"`
	Notes      string         `json:"notes,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}

// MovementRequest carries the inputs for recording one transfer
type MovementRequest struct {
	ItemID   uuid.UUID      `json:"item_id"`
	Action   MovementAction `json:"action"`
	Location string         `json:"location"` // destination; free text by design
	From     string         `json:"from"`
	To       string         `json:"to"`
	Notes    string         `json:"notes,omitempty"`
}

// Validate checks that all required movement fields are present
func (r *MovementRequest) Validate() error {
	if r.ItemID == uuid.Nil {
		return fmt.Errorf("%w: item_id is required", ErrValidation)
	}
	if r.Action == "" {
		return fmt.Errorf("%w: action is required", ErrValidation)
	}
	if !r.Action.IsValid() {
		return fmt.Errorf("%w: action must be send or receive", ErrValidation)
	}
	if strings.TrimSpace(r.Location) == "" {
		return fmt.Errorf("%w: location is required", ErrValidation)
	}
	if strings.TrimSpace(r.From) == "" {
		return fmt.Errorf("%w: from is required", ErrValidation)
	}
	if strings.TrimSpace(r.To) == "" {
		return fmt.Errorf("%w: to is required", ErrValidation)
	}
	return nil
}

// HistoryNotes renders the status-trail note for this transfer
func (r *MovementRequest) HistoryNotes() string {
	return strings.TrimSpace(fmt.Sprintf("From: %s, To: %s. %s", r.From, r.To, r.Notes))
}

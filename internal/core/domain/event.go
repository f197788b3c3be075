// internal/core/domain/event.go
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EventStatus represents QR event lifecycle states
type EventStatus string

const (
	EventCompleted EventStatus = "completed"
	EventScheduled EventStatus = "scheduled"
	EventCancelled EventStatus = "cancelled"
)

// IsValid reports whether the event status is one of the known values
func (s EventStatus) IsValid() bool {
	switch s {
	case EventCompleted, EventScheduled, EventCancelled:
		return true
	}
	return false
}

// Event is a QR-scan event record. Items reference events weakly: an item's
// currentEvent or history entry may point at an event that has since been
// deleted, and readers resolve such references to null.
type Event struct {
	ID            uuid.UUID   `json:"id"`
	Product       string      `json:"product"`
	Location      string      `json:"location"`
	EventType     string      `json:"event_type"`
	Notes         string      `json:"notes,omitempty"`
	Time          time.Time   `json:"time"`
	ScheduledDate *time.Time  `json:"scheduled_date,omitempty"`
	Status        EventStatus `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Validate performs domain validation on the event
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Product) == "" {
		return fmt.Errorf("%w: product is required", ErrValidation)
	}
	if strings.TrimSpace(e.Location) == "" {
		return fmt.Errorf("%w: location is required", ErrValidation)
	}
	if strings.TrimSpace(e.EventType) == "" {
		return fmt.Errorf("%w: event_type is required", ErrValidation)
	}
	if e.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrValidation)
	}
	if e.Status != "" && !e.Status.IsValid() {
		return fmt.Errorf("%w: status must be completed, scheduled or cancelled", ErrValidation)
	}
	return nil
}

// PrepareForStorage fills system-assigned event fields
func (e *Event) PrepareForStorage() {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Status == "" {
		e.Status = EventCompleted
	}
	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
}

// internal/core/domain/item.go
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Location represents the closed set of places an item can physically be
type Location string

// Location constants
const (
	LocationBangalore Location = "bangalore"
	LocationErode     Location = "erode"
	LocationInTransit Location = "in_transit"
	LocationGarage    Location = "garage"
)

// ValidLocations returns the canonical location values in display order
func ValidLocations() []Location {
	return []Location{LocationBangalore, LocationErode, LocationInTransit, LocationGarage}
}

// ParseLocation canonicalizes a location string. Matching is case-insensitive;
// the stored form is always lowercase.
func ParseLocation(s string) (Location, error) {
	loc := Location(strings.ToLower(strings.TrimSpace(s)))
	switch loc {
	case LocationBangalore, LocationErode, LocationInTransit, LocationGarage:
		return loc, nil
	}
	return "", fmt.Errorf("%w: must be one of: bangalore, erode, in_transit, garage", ErrInvalidLocation)
}

// ItemStatus represents the five-value lifecycle label of an item
type ItemStatus string

// Status constants
const (
	StatusAvailable ItemStatus = "Available"
	StatusSent      ItemStatus = "Sent"
	StatusInUse     ItemStatus = "In Use"
	StatusReceived  ItemStatus = "Received"
	StatusDamaged   ItemStatus = "Damaged"
)

// IsValid reports whether the status is one of the five canonical values
func (s ItemStatus) IsValid() bool {
	switch s {
	case StatusAvailable, StatusSent, StatusInUse, StatusReceived, StatusDamaged:
		return true
	}
	return false
}

// DefaultImageURL is assigned to items created without an image
const DefaultImageURL = "/images/default-item.jpg"

// StatusEntry is one row of an item's append-only status trail
type StatusEntry struct {
	ID        uuid.UUID  `json:"id"`
	Status    ItemStatus `json:"status"`
	EventID   *uuid.UUID `json:"event_id,omitempty"`
	Event     *Event     `json:"event,omitempty"` // resolved on read, never stored
	Timestamp time.Time  `json:"timestamp"`
	Notes     string     `json:"notes,omitempty"`
}

// Item is the canonical record for a tracked physical inventory unit
type Item struct {
	ID               uuid.UUID     `json:"id"`
	Name             string        `json:"name"`
	ItemNumber       string        `json:"item_number"`
	Category         string        `json:"category"`
	Description      string        `json:"description,omitempty"`
	Quantity         int           `json:"quantity"`
	Location         Location      `json:"location"`
	PreviousLocation Location      `json:"previous_location,omitempty"`
	ImageURL         string        `json:"image_url,omitempty"`
	Status           ItemStatus    `json:"status"`
	CurrentEventID   *uuid.UUID    `json:"current_event_id,omitempty"`
	CurrentEvent     *Event        `json:"current_event,omitempty"` // resolved on read
	StatusHistory    []StatusEntry `json:"status_history"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// Validate performs domain validation on the item
func (i *Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(i.ItemNumber) == "" {
		return fmt.Errorf("%w: item_number is required", ErrValidation)
	}
	if strings.TrimSpace(i.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}
	if i.Quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
	}
	if i.Location != "" {
		if _, err := ParseLocation(string(i.Location)); err != nil {
			return err
		}
	}
	if i.Status != "" && !i.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

// PrepareForStorage fills system-assigned fields before the first write
func (i *Item) PrepareForStorage() {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.Location == "" {
		i.Location = LocationGarage
	}
	if i.Status == "" {
		i.Status = StatusAvailable
	}
	if i.ImageURL == "" {
		i.ImageURL = DefaultImageURL
	}

	now := time.Now()
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}
	i.UpdatedAt = now
}

// ChangeLocation moves the item to a new location, remembering where it was.
// PreviousLocation is only touched when the location actually changes.
func (i *Item) ChangeLocation(to Location) {
	if i.Location == to {
		return
	}
	i.PreviousLocation = i.Location
	i.Location = to
}

// NewStatusEntry builds a history entry for a status change. An empty notes
// string gets the default message mentioning the new status.
func NewStatusEntry(status ItemStatus, eventID *uuid.UUID, notes string) StatusEntry {
	if notes == "" {
		notes = fmt.Sprintf("Status changed to %s", status)
	}
	return StatusEntry{
		ID:        uuid.New(),
		Status:    status,
		EventID:   eventID,
		Timestamp: time.Now(),
		Notes:     notes,
	}
}

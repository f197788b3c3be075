// internal/core/domain/errors.go
package domain

import "errors"

// Sentinel errors for the core operations. Services wrap these with
// fmt.Errorf("%w: ...") so handlers can classify failures with errors.Is
// without parsing messages.
var (
	// ErrValidation covers malformed or missing input. Always pre-write.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidLocation is returned for a location outside the closed set.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrInvalidStatus is returned for a status outside the five-value enum.
	ErrInvalidStatus = errors.New("invalid status")

	// Uniqueness conflicts, distinguished by which field collided. Raised by
	// the pre-write checks and again by the unique-index translation in the
	// repository, which is the authoritative enforcement.
	ErrNameConflict   = errors.New("an item with this name already exists")
	ErrNumberConflict = errors.New("an item with this item number already exists")

	ErrItemNotFound     = errors.New("item not found")
	ErrMovementNotFound = errors.New("movement record not found")
	ErrEventNotFound    = errors.New("event not found")

	// Movement ordering guards. Well-formed input, but the item's current
	// state forbids the transition.
	ErrAlreadySent = errors.New("item is already sent and not yet received; cannot send again")
	ErrNotSent     = errors.New("item must be sent before it can be received")

	// ErrNegativeStock rejects a stock change that would drive quantity below zero.
	ErrNegativeStock = errors.New("stock quantity cannot be negative")

	// ErrForbidden is returned when the acting user lacks the admin capability.
	ErrForbidden = errors.New("admin privileges required")

	// ErrStateConflict is returned when a guarded write loses a concurrent
	// race; the caller saw stale state and should re-read before retrying.
	ErrStateConflict = errors.New("item state changed concurrently")
)

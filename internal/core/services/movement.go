// internal/core/services/movement.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/askumaar/stocktrail-be/internal/core/domain"
	"github.com/askumaar/stocktrail-be/internal/core/ports"
)

// RecentMovementLimit caps the recent-movements query
const RecentMovementLimit = 20

// MovementNotifier is invoked after a movement commits, for bookkeeping that
// must never affect the recording itself (audit trail, notifications).
type MovementNotifier interface {
	MovementRecorded(ctx context.Context, m *domain.Movement) error
}

// MovementService handles transfer recording and the movement ledger
type MovementService struct {
	items     ports.ItemRepository
	movements ports.MovementRepository
	notifier  MovementNotifier
	logger    *slog.Logger
}

// Statically assert that *MovementService implements the MovementService interface.
var _ ports.MovementService = (*MovementService)(nil)

// NewMovementService creates a new movement service. notifier may be nil.
func NewMovementService(items ports.ItemRepository, movements ports.MovementRepository, notifier MovementNotifier, logger *slog.Logger) *MovementService {
	return &MovementService{
		items:     items,
		movements: movements,
		notifier:  notifier,
		logger:    logger.With(slog.String("service", "movement")),
	}
}

// Record applies one send/receive transfer. The ordering guard enforces
// send-then-receive: an item already Sent cannot be sent again, and only a
// Sent item can be received. Guard failures short-circuit before any write.
func (s *MovementService) Record(ctx context.Context, req domain.MovementRequest) (*ports.MovementResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item, err := s.items.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load item: %w", err)
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}

	switch req.Action {
	case domain.ActionSend:
		if item.Status == domain.StatusSent {
			return nil, domain.ErrAlreadySent
		}
	case domain.ActionReceive:
		if item.Status != domain.StatusSent {
			return nil, domain.ErrNotSent
		}
	}

	priorStatus := item.Status

	// Destination is free text on this path; it is not checked against the
	// canonical location set.
	item.PreviousLocation = item.Location
	item.Location = domain.Location(req.Location)
	if req.Action == domain.ActionSend {
		item.Status = domain.StatusSent
	} else {
		item.Status = domain.StatusAvailable
	}

	entry := domain.NewStatusEntry(item.Status, nil, req.HistoryNotes())
	item.StatusHistory = append(item.StatusHistory, entry)

	movement := &domain.Movement{
		ID:         uuid.New(),
		ItemID:     item.ID,
		ItemNumber: item.ItemNumber,
		ItemName:   item.Name,
		From:       req.From,
		To:         req.To,
		Action:     req.Action,
		Notes:      req.Notes,
		Timestamp:  time.Now(),
	}

	// Item update, history entry and ledger row commit together; the
	// compare-and-set on priorStatus makes a concurrent double-send lose
	// cleanly instead of racing.
	if err := s.movements.RecordMovement(ctx, item, priorStatus, entry, movement); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.MovementRecorded(ctx, movement); err != nil {
			s.logger.WarnContext(ctx, "movement notification failed",
				slog.String("movement_id", movement.ID.String()),
				slog.String("error", err.Error()))
		}
	}

	s.logger.InfoContext(ctx, "movement recorded",
		slog.String("item_id", item.ID.String()),
		slog.String("action", string(req.Action)),
		slog.String("from", req.From),
		slog.String("to", req.To))

	message := "Movement recorded"
	if req.Action == domain.ActionReceive {
		message = "Item received successfully!"
	}

	return &ports.MovementResult{Message: message, Item: item}, nil
}

// Recent returns the most recent ledger entries, newest first
func (s *MovementService) Recent(ctx context.Context) ([]domain.Movement, error) {
	movements, err := s.movements.FindRecent(ctx, RecentMovementLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent movements: %w", err)
	}
	return movements, nil
}

// Delete hard-deletes a ledger row. Ledger-only: the referenced item's
// current state is untouched.
func (s *MovementService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if !actor.IsAdmin {
		return domain.ErrForbidden
	}

	movement, err := s.movements.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load movement: %w", err)
	}
	if movement == nil {
		return domain.ErrMovementNotFound
	}

	if err := s.movements.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete movement: %w", err)
	}

	s.logger.InfoContext(ctx, "movement deleted",
		slog.String("id", id.String()),
		slog.String("actor", actor.ID.String()))
	return nil
}

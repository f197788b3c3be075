// internal/core/services/item.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/askumaar/stocktrail-be/internal/core/domain"
	"github.com/askumaar/stocktrail-be/internal/core/ports"
)

// ItemService handles the inventory item lifecycle
type ItemService struct {
	repo   ports.ItemRepository
	events ports.EventRepository
	logger *slog.Logger
}

// Statically assert that *ItemService implements the ItemService interface.
var _ ports.ItemService = (*ItemService)(nil)

// NewItemService creates a new item service
func NewItemService(repo ports.ItemRepository, events ports.EventRepository, logger *slog.Logger) *ItemService {
	return &ItemService{
		repo:   repo,
		events: events,
		logger: logger.With(slog.String("service", "item")),
	}
}

// Create registers a new item. The name/number existence checks here are
// best-effort; the unique indexes in the repository are the authoritative
// enforcement, and both paths surface the same conflict errors.
func (s *ItemService) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if item.Location != "" {
		loc, err := domain.ParseLocation(string(item.Location))
		if err != nil {
			return nil, err
		}
		item.Location = loc
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByName(ctx, item.Name, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check item name: %w", err)
	}
	if exists {
		return nil, domain.ErrNameConflict
	}

	exists, err = s.repo.ExistsByNumber(ctx, item.ItemNumber, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check item number: %w", err)
	}
	if exists {
		return nil, domain.ErrNumberConflict
	}

	item.Status = domain.StatusAvailable
	item.StatusHistory = nil
	item.PrepareForStorage()

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item created",
		slog.String("id", item.ID.String()),
		slog.String("item_number", item.ItemNumber),
		slog.String("name", item.Name))

	return item, nil
}

// QuickAdd looks up an item by name or number and creates it only when
// neither matches. An existing item is returned unchanged even if the other
// supplied fields differ.
func (s *ItemService) QuickAdd(ctx context.Context, params ports.QuickAddParams) (*domain.Item, bool, error) {
	if strings.TrimSpace(params.Name) == "" ||
		strings.TrimSpace(params.Category) == "" ||
		params.Quantity == nil ||
		strings.TrimSpace(params.ItemNumber) == "" {
		return nil, false, fmt.Errorf("%w: name, category, quantity, and item number are required", domain.ErrValidation)
	}

	item, err := s.repo.FindByNameOrNumber(ctx, params.Name, params.ItemNumber)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up item: %w", err)
	}
	if item != nil {
		return item, false, nil
	}

	item = &domain.Item{
		Name:        params.Name,
		ItemNumber:  params.ItemNumber,
		Category:    params.Category,
		Quantity:    *params.Quantity,
		Description: params.Description,
	}
	if err := item.Validate(); err != nil {
		return nil, false, err
	}
	item.PrepareForStorage()

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, false, err
	}

	s.logger.InfoContext(ctx, "item quick-added",
		slog.String("id", item.ID.String()),
		slog.String("item_number", item.ItemNumber))

	return item, true, nil
}

// GetByID retrieves a single item
func (s *ItemService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	return item, nil
}

// GetByNumber retrieves an item by its human-facing number (QR lookup path)
func (s *ItemService) GetByNumber(ctx context.Context, itemNumber string) (*domain.Item, error) {
	item, err := s.repo.FindByNumber(ctx, itemNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get item by number: %w", err)
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	return item, nil
}

// List retrieves items with filtering and pagination
func (s *ItemService) List(ctx context.Context, params ports.ListParams) (*ports.ListResult, error) {
	items, totalCount, err := s.repo.FindAll(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	var totalPages int
	if params.PageSize > 0 {
		totalPages = int(totalCount) / params.PageSize
		if int(totalCount)%params.PageSize > 0 {
			totalPages++
		}
	}

	return &ports.ListResult{
		Items:      items,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}, nil
}

// Update applies a partial field update. Changing the location records the
// prior one in PreviousLocation; the AppendHistory side-channel pushes one
// status entry atomically with the field updates.
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, update ports.ItemUpdate) (*domain.Item, error) {
	var newLocation *domain.Location
	if update.Location != nil {
		loc, err := domain.ParseLocation(*update.Location)
		if err != nil {
			return nil, err
		}
		newLocation = &loc
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load item: %w", err)
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}

	if update.ItemNumber != nil && *update.ItemNumber != item.ItemNumber {
		exists, err := s.repo.ExistsByNumber(ctx, *update.ItemNumber, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check item number: %w", err)
		}
		if exists {
			return nil, domain.ErrNumberConflict
		}
		item.ItemNumber = *update.ItemNumber
	}

	if update.Name != nil {
		item.Name = *update.Name
	}
	if update.Category != nil {
		item.Category = *update.Category
	}
	if update.Description != nil {
		item.Description = *update.Description
	}
	if update.Quantity != nil {
		item.Quantity = *update.Quantity
	}
	if update.ImageURL != nil {
		item.ImageURL = *update.ImageURL
	}
	if newLocation != nil {
		item.ChangeLocation(*newLocation)
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	var entries []domain.StatusEntry
	if update.AppendHistory != nil {
		entry := *update.AppendHistory
		if !entry.Status.IsValid() {
			return nil, domain.ErrInvalidStatus
		}
		if entry.ID == uuid.Nil {
			entry = domain.NewStatusEntry(entry.Status, entry.EventID, entry.Notes)
		}
		item.StatusHistory = append(item.StatusHistory, entry)
		entries = append(entries, entry)
	}

	if err := s.repo.Update(ctx, item, entries); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item updated", slog.String("id", id.String()))
	return item, nil
}

// Delete hard-deletes an item. Movement and stock ledger rows referencing it
// are left behind on purpose.
func (s *ItemService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if !actor.IsAdmin {
		return domain.ErrForbidden
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load item: %w", err)
	}
	if item == nil {
		return domain.ErrItemNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	s.logger.InfoContext(ctx, "item deleted",
		slog.String("id", id.String()),
		slog.String("actor", actor.ID.String()))
	return nil
}

// UpdateStatus assigns any of the five statuses directly. This path carries
// no ordering rules; the send/receive guard lives in movement recording only.
func (s *ItemService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ItemStatus, eventID *uuid.UUID, notes string) (*domain.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load item: %w", err)
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}

	if !status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	item.Status = status
	item.CurrentEventID = eventID

	// A received item is back at home base.
	if status == domain.StatusReceived {
		item.Location = domain.LocationGarage
		item.PreviousLocation = domain.LocationGarage
	}

	entry := domain.NewStatusEntry(status, eventID, notes)
	item.StatusHistory = append(item.StatusHistory, entry)

	if err := s.repo.Update(ctx, item, []domain.StatusEntry{entry}); err != nil {
		return nil, err
	}

	if err := s.resolveEvents(ctx, item); err != nil {
		s.logger.WarnContext(ctx, "failed to resolve event references",
			slog.String("id", id.String()),
			slog.String("error", err.Error()))
	}

	s.logger.InfoContext(ctx, "item status updated",
		slog.String("id", id.String()),
		slog.String("status", string(status)))

	return item, nil
}

// StatusHistory returns the item's status trail with event references resolved
func (s *ItemService) StatusHistory(ctx context.Context, itemID uuid.UUID) ([]domain.StatusEntry, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load item: %w", err)
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}

	entries, err := s.repo.StatusHistory(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load status history: %w", err)
	}

	if err := s.attachEvents(ctx, nil, entries); err != nil {
		s.logger.WarnContext(ctx, "failed to resolve event references",
			slog.String("item_id", itemID.String()),
			slog.String("error", err.Error()))
	}

	return entries, nil
}

// IsNameUnique reports whether no other item holds the name, case-insensitively
func (s *ItemService) IsNameUnique(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	if strings.TrimSpace(name) == "" {
		return false, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	exists, err := s.repo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return false, fmt.Errorf("failed to check item name: %w", err)
	}
	return !exists, nil
}

// resolveEvents attaches referenced event data to the item and its history.
// Dangling references resolve to nil; the item stays fully usable.
func (s *ItemService) resolveEvents(ctx context.Context, item *domain.Item) error {
	return s.attachEvents(ctx, item, item.StatusHistory)
}

func (s *ItemService) attachEvents(ctx context.Context, item *domain.Item, entries []domain.StatusEntry) error {
	ids := make([]uuid.UUID, 0, len(entries)+1)
	if item != nil && item.CurrentEventID != nil {
		ids = append(ids, *item.CurrentEventID)
	}
	for i := range entries {
		if entries[i].EventID != nil {
			ids = append(ids, *entries[i].EventID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	events, err := s.events.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}

	if item != nil && item.CurrentEventID != nil {
		item.CurrentEvent = events[*item.CurrentEventID]
	}
	for i := range entries {
		if entries[i].EventID != nil {
			entries[i].Event = events[*entries[i].EventID]
		}
	}
	return nil
}

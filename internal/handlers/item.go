// internal/handlers/item.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/askumaar/stocktrail-be/internal/core/domain"
	"github.com/askumaar/stocktrail-be/internal/core/ports"
	"github.com/askumaar/stocktrail-be/internal/handlers/middleware"
)

// ItemHandler handles item-related HTTP requests
type ItemHandler struct {
	service ports.ItemService
	logger  *slog.Logger
}

// NewItemHandler creates a new item handler
func NewItemHandler(service ports.ItemService, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "item")),
	}
}

// Create handles POST /api/v1/items
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.service.Create(ctx, req.ToDomain())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create item",
			slog.String("name", req.Name),
			slog.String("error", err.Error()))
		respondDomainError(w, h.logger, err, "Failed to create item")
		return
	}

	h.logger.InfoContext(ctx, "item created",
		slog.String("id", item.ID.String()),
		slog.String("item_number", item.ItemNumber))

	respondJSON(w, h.logger, http.StatusCreated, item)
}

// QuickAdd handles POST /api/v1/items/quick-add
func (h *ItemHandler) QuickAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var params ports.QuickAddParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, created, err := h.service.QuickAdd(ctx, params)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to quick-add item")
		return
	}

	status := http.StatusOK
	message := "Item already exists"
	if created {
		status = http.StatusCreated
		message = "Item created"
	}

	respondJSON(w, h.logger, status, map[string]interface{}{
		"message": message,
		"created": created,
		"item":    item,
	})
}

// Get handles GET /api/v1/items/{id}
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid item ID format")
		return
	}

	item, err := h.service.GetByID(ctx, id)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to retrieve item")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, item)
}

// GetByNumber handles GET /api/v1/items/number/{itemNumber}
func (h *ItemHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	item, err := h.service.GetByNumber(ctx, r.PathValue("itemNumber"))
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to retrieve item")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, item)
}

// List handles GET /api/v1/items
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.service.List(ctx, h.parseListParams(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list items",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to list items")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// Update handles PUT /api/v1/items/{id}
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid item ID format")
		return
	}

	var update ports.ItemUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	// History entries are appended by the status endpoint, never directly
	update.AppendHistory = nil

	item, err := h.service.Update(ctx, id, update)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to update item",
			slog.String("id", id.String()),
			slog.String("error", err.Error()))
		respondDomainError(w, h.logger, err, "Failed to update item")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, item)
}

// Delete handles DELETE /api/v1/items/{id}
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid item ID format")
		return
	}

	actor := middleware.ActorFromContext(ctx)
	if err := h.service.Delete(ctx, actor, id); err != nil {
		respondDomainError(w, h.logger, err, "Failed to delete item")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]string{
		"message": "Item deleted successfully",
		"id":      id.String(),
	})
}

// UpdateStatus handles PUT /api/v1/items/{id}/status
func (h *ItemHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid item ID format")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.service.UpdateStatus(ctx, id, domain.ItemStatus(req.Status), req.EventID, req.Notes)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to update item status")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, item)
}

// StatusHistory handles GET /api/v1/items/{id}/status-history
func (h *ItemHandler) StatusHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid item ID format")
		return
	}

	history, err := h.service.StatusHistory(ctx, id)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to retrieve status history")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"item_id": id,
		"history": history,
	})
}

// CheckName handles GET /api/v1/items/check-name
func (h *ItemHandler) CheckName(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name := r.URL.Query().Get("name")
	if name == "" {
		respondError(w, h.logger, http.StatusBadRequest, "name query parameter is required")
		return
	}

	excludeID := uuid.Nil
	if exclude := r.URL.Query().Get("exclude_id"); exclude != "" {
		id, err := uuid.Parse(exclude)
		if err != nil {
			respondError(w, h.logger, http.StatusBadRequest, "Invalid exclude_id format")
			return
		}
		excludeID = id
	}

	unique, err := h.service.IsNameUnique(ctx, name, excludeID)
	if err != nil {
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to check name")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]bool{"unique": unique})
}

// parseListParams parses query parameters for listing items
func (h *ItemHandler) parseListParams(r *http.Request) ports.ListParams {
	params := ports.ListParams{
		Page:      1,
		PageSize:  50,
		SortBy:    "created_at",
		SortOrder: "desc",
	}

	if page := r.URL.Query().Get("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil && p > 0 {
			params.Page = p
		}
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil && l > 0 {
			if l > 100 {
				params.PageSize = 100
			} else {
				params.PageSize = l
			}
		}
	}

	params.Search = r.URL.Query().Get("search")
	params.Category = r.URL.Query().Get("category")
	params.Location = r.URL.Query().Get("location")
	params.Status = r.URL.Query().Get("status")

	if sortBy := r.URL.Query().Get("sort"); sortBy != "" {
		params.SortBy = sortBy
	}
	if order := r.URL.Query().Get("order"); order == "asc" || order == "desc" {
		params.SortOrder = order
	}

	return params
}

// Request DTOs

// CreateItemRequest represents the request body for creating an item
type CreateItemRequest struct {
	Name        string `json:"name"`
	ItemNumber  string `json:"item_number"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Quantity    int    `json:"quantity"`
	Location    string `json:"location,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// ToDomain converts the request to a domain model
func (r *CreateItemRequest) ToDomain() *domain.Item {
	return &domain.Item{
		Name:        r.Name,
		ItemNumber:  r.ItemNumber,
		Category:    r.Category,
		Description: r.Description,
		Quantity:    r.Quantity,
		Location:    domain.Location(r.Location),
		ImageURL:    r.ImageURL,
	}
}

// UpdateStatusRequest represents the request body for a status change
type UpdateStatusRequest struct {
	Status  string     `json:"status"`
	EventID *uuid.UUID `json:"event_id,omitempty"`
	Notes   string     `json:"notes,omitempty"`
}

// internal/handlers/stock.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/askumaar/stocktrail-be/internal/core/ports"
	"github.com/askumaar/stocktrail-be/internal/handlers/middleware"
)

// StockHandler handles stock-change HTTP requests
type StockHandler struct {
	service ports.StockService
	logger  *slog.Logger
}

// NewStockHandler creates a new stock handler
func NewStockHandler(service ports.StockService, logger *slog.Logger) *StockHandler {
	return &StockHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "stock")),
	}
}

// StockChangeRequest represents the request body for a quantity change
type StockChangeRequest struct {
	ItemID       uuid.UUID `json:"item_id"`
	ChangeAmount int       `json:"change_amount"`
	Reason       string    `json:"reason"`
}

// Change handles POST /api/v1/stock-history
func (h *StockHandler) Change(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req StockChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	actor := middleware.ActorFromContext(ctx)
	change, err := h.service.Change(ctx, actor, req.ItemID, req.ChangeAmount, req.Reason)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to apply stock change")
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, change)
}

// History handles GET /api/v1/stock-history
func (h *StockHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	changes, err := h.service.History(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list stock history",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to list stock history")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"changes": changes,
		"count":   len(changes),
	})
}

// ItemHistory handles GET /api/v1/stock-history/{itemId}
func (h *StockHandler) ItemHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("itemId"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid item ID format")
		return
	}

	changes, err := h.service.ItemHistory(ctx, id)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to list item stock history")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"item_id": id,
		"changes": changes,
	})
}

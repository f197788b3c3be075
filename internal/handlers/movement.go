// internal/handlers/movement.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/askumaar/stocktrail-be/internal/core/domain"
	"github.com/askumaar/stocktrail-be/internal/core/ports"
	"github.com/askumaar/stocktrail-be/internal/handlers/middleware"
)

// MovementHandler handles movement-ledger HTTP requests
type MovementHandler struct {
	service ports.MovementService
	logger  *slog.Logger
}

// NewMovementHandler creates a new movement handler
func NewMovementHandler(service ports.MovementService, logger *slog.Logger) *MovementHandler {
	return &MovementHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "movement")),
	}
}

// Record handles POST /api/v1/movements
func (h *MovementHandler) Record(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.MovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Record(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "movement rejected",
			slog.String("item_id", req.ItemID.String()),
			slog.String("action", string(req.Action)),
			slog.String("error", err.Error()))
		respondDomainError(w, h.logger, err, "Failed to record movement")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// Recent handles GET /api/v1/movements/recent
func (h *MovementHandler) Recent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	movements, err := h.service.Recent(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list movements",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to list movements")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"movements": movements,
		"count":     len(movements),
	})
}

// Delete handles DELETE /api/v1/movements/{id}
func (h *MovementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid movement ID format")
		return
	}

	actor := middleware.ActorFromContext(ctx)
	if err := h.service.Delete(ctx, actor, id); err != nil {
		respondDomainError(w, h.logger, err, "Failed to delete movement")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]string{
		"message": "Movement deleted successfully",
		"id":      id.String(),
	})
}

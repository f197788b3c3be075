// internal/handlers/event.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/askumaar/stocktrail-be/internal/core/domain"
	"github.com/askumaar/stocktrail-be/internal/core/ports"
)

// EventHandler handles QR event HTTP requests
type EventHandler struct {
	service ports.EventService
	logger  *slog.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(service ports.EventService, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "event")),
	}
}

// CreateEventRequest represents the request body for creating an event
type CreateEventRequest struct {
	Product       string     `json:"product"`
	Location      string     `json:"location"`
	EventType     string     `json:"event_type"`
	Notes         string     `json:"notes,omitempty"`
	Time          *time.Time `json:"time,omitempty"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	Status        string     `json:"status,omitempty"`
}

// Create handles POST /api/v1/events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	event := &domain.Event{
		Product:       req.Product,
		Location:      req.Location,
		EventType:     req.EventType,
		Notes:         req.Notes,
		ScheduledDate: req.ScheduledDate,
		Status:        domain.EventStatus(req.Status),
	}
	if req.Time != nil {
		event.Time = *req.Time
	} else {
		event.Time = time.Now()
	}

	created, err := h.service.Create(ctx, event)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to create event")
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, created)
}

// CreateScheduled handles POST /api/v1/events/scheduled. Unlike Create it
// always produces a scheduled event and insists on a future-facing date.
func (h *EventHandler) CreateScheduled(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.ScheduledDate == nil {
		respondError(w, h.logger, http.StatusBadRequest, "scheduled_date is required")
		return
	}

	event := &domain.Event{
		Product:       req.Product,
		Location:      req.Location,
		EventType:     req.EventType,
		Notes:         req.Notes,
		ScheduledDate: req.ScheduledDate,
		Status:        domain.EventScheduled,
	}
	if req.Time != nil {
		event.Time = *req.Time
	} else {
		event.Time = time.Now()
	}

	created, err := h.service.Create(ctx, event)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to create scheduled event")
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, created)
}

// Get handles GET /api/v1/events/{id}
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid event ID format")
		return
	}

	event, err := h.service.GetByID(ctx, id)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to retrieve event")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, event)
}

// List handles GET /api/v1/events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	events, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list events",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to list events")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
	})
}

// Scheduled handles GET /api/v1/events/scheduled
func (h *EventHandler) Scheduled(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	events, err := h.service.Scheduled(ctx)
	if err != nil {
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to list scheduled events")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
	})
}

// Upcoming handles GET /api/v1/events/upcoming
func (h *EventHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	days := 7
	if d := r.URL.Query().Get("days"); d != "" {
		if parsed, err := strconv.Atoi(d); err == nil && parsed > 0 {
			days = parsed
		}
	}

	events, err := h.service.Upcoming(ctx, days)
	if err != nil {
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to list upcoming events")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"events": events,
		"days":   days,
		"count":  len(events),
	})
}

// UpdateStatus handles PATCH /api/v1/events/{id}/status
func (h *EventHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid event ID format")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	event, err := h.service.UpdateStatus(ctx, id, domain.EventStatus(req.Status))
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to update event status")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, event)
}

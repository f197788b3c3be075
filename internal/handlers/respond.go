// internal/handlers/respond.go
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/askumaar/stocktrail-be/internal/core/domain"
)

// respondJSON writes data as a JSON response
func respondJSON(w http.ResponseWriter, logger *slog.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

// respondError writes an error message as a JSON response
func respondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	respondJSON(w, logger, status, map[string]string{"error": message})
}

// respondDomainError classifies a service error onto an HTTP status using
// the domain sentinels, falling back to a generic 500.
func respondDomainError(w http.ResponseWriter, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidLocation),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrAlreadySent),
		errors.Is(err, domain.ErrNotSent),
		errors.Is(err, domain.ErrNegativeStock):
		respondError(w, logger, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNameConflict),
		errors.Is(err, domain.ErrNumberConflict),
		errors.Is(err, domain.ErrStateConflict):
		respondError(w, logger, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrMovementNotFound),
		errors.Is(err, domain.ErrEventNotFound):
		respondError(w, logger, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		respondError(w, logger, http.StatusForbidden, err.Error())
	default:
		respondError(w, logger, http.StatusInternalServerError, fallback)
	}
}

// internal/handlers/dashboard.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/askumaar/stocktrail-be/internal/adapters/db"
	"github.com/askumaar/stocktrail-be/internal/adapters/redis_adapter"
	"github.com/askumaar/stocktrail-be/internal/core/ports"
)

// DashboardHandler serves aggregated inventory overviews
type DashboardHandler struct {
	db     *db.Database
	cache  ports.CacheRepository
	logger *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(db *db.Database, cache ports.CacheRepository, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		db:     db,
		cache:  cache,
		logger: logger.With(slog.String("handler", "dashboard")),
	}
}

// GetDashboard handles GET /api/v1/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cacheKey := redis_adapter.BuildKey(redis_adapter.PrefixDashboard, "main")
	var dashboard DashboardData

	err := h.cache.GetOrSet(ctx, cacheKey, &dashboard, func() (interface{}, error) {
		return h.loadDashboardData(ctx)
	}, 5*time.Minute)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load dashboard",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, dashboard)
}

func (h *DashboardHandler) loadDashboardData(ctx context.Context) (*DashboardData, error) {
	dashboard := &DashboardData{
		Timestamp: time.Now(),
	}

	summaryQuery := `
		SELECT
			COUNT(*) AS total_items,
			COALESCE(SUM(quantity), 0) AS total_quantity,
			COUNT(*) FILTER (WHERE status = 'Sent') AS items_in_transit,
			COUNT(*) FILTER (WHERE status = 'Damaged') AS items_damaged
		FROM items`

	err := h.db.QueryRow(ctx, summaryQuery).Scan(
		&dashboard.Summary.TotalItems,
		&dashboard.Summary.TotalQuantity,
		&dashboard.Summary.ItemsInTransit,
		&dashboard.Summary.ItemsDamaged,
	)
	if err != nil {
		return nil, err
	}

	locationQuery := `
		SELECT location, COUNT(*) AS count, COALESCE(SUM(quantity), 0) AS quantity
		FROM items
		GROUP BY location
		ORDER BY count DESC`

	rows, err := h.db.Query(ctx, locationQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var loc LocationBreakdown
		if err := rows.Scan(&loc.Location, &loc.Count, &loc.Quantity); err != nil {
			return nil, err
		}
		dashboard.LocationBreakdown = append(dashboard.LocationBreakdown, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	statusQuery := `
		SELECT status, COUNT(*) AS count
		FROM items
		GROUP BY status
		ORDER BY count DESC`

	statusRows, err := h.db.Query(ctx, statusQuery)
	if err != nil {
		return nil, err
	}
	defer statusRows.Close()

	for statusRows.Next() {
		var st StatusBreakdown
		if err := statusRows.Scan(&st.Status, &st.Count); err != nil {
			return nil, err
		}
		dashboard.StatusBreakdown = append(dashboard.StatusBreakdown, st)
	}
	if err := statusRows.Err(); err != nil {
		return nil, err
	}

	activityQuery := `
		SELECT item_name, action, from_label, to_label, occurred_at
		FROM movements
		ORDER BY occurred_at DESC
		LIMIT 10`

	actRows, err := h.db.Query(ctx, activityQuery)
	if err != nil {
		return nil, err
	}
	defer actRows.Close()

	for actRows.Next() {
		var activity RecentActivity
		if err := actRows.Scan(&activity.ItemName, &activity.Action, &activity.From, &activity.To, &activity.Timestamp); err != nil {
			return nil, err
		}
		dashboard.RecentActivity = append(dashboard.RecentActivity, activity)
	}
	if err := actRows.Err(); err != nil {
		return nil, err
	}

	return dashboard, nil
}

// Type definitions

type DashboardData struct {
	Summary           DashboardSummary    `json:"summary"`
	LocationBreakdown []LocationBreakdown `json:"location_breakdown"`
	StatusBreakdown   []StatusBreakdown   `json:"status_breakdown"`
	RecentActivity    []RecentActivity    `json:"recent_activity"`
	Timestamp         time.Time           `json:"timestamp"`
}

type DashboardSummary struct {
	TotalItems     int64 `json:"total_items"`
	TotalQuantity  int64 `json:"total_quantity"`
	ItemsInTransit int64 `json:"items_in_transit"`
	ItemsDamaged   int64 `json:"items_damaged"`
}

type LocationBreakdown struct {
	Location string `json:"location"`
	Count    int64  `json:"count"`
	Quantity int64  `json:"quantity"`
}

type StatusBreakdown struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type RecentActivity struct {
	ItemName  string    `json:"item_name"`
	Action    string    `json:"action"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Timestamp time.Time `json:"timestamp"`
}

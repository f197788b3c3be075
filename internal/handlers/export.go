// internal/handlers/export.go
package handlers

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/tealeg/xlsx/v3"

	"github.com/askumaar/stocktrail-be/internal/core/ports"
)

// ExportHandler produces spreadsheet exports of the inventory and its ledger
type ExportHandler struct {
	db     ports.Database
	logger *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(db ports.Database, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		db:     db,
		logger: logger.With(slog.String("handler", "export")),
	}
}

// ExportExcel handles GET /api/v1/export/excel
func (h *ExportHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	file := xlsx.NewFile()

	itemCount, err := h.writeItemsSheet(ctx, file)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to export items",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to generate export")
		return
	}

	movementCount, err := h.writeMovementsSheet(ctx, file)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to export movements",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to generate export")
		return
	}

	h.sendWorkbook(ctx, w, file, "inventory_export", itemCount+movementCount)
}

// ExportItems handles GET /api/v1/export/items.xlsx
func (h *ExportHandler) ExportItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	file := xlsx.NewFile()
	count, err := h.writeItemsSheet(ctx, file)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to export items",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to generate export")
		return
	}

	h.sendWorkbook(ctx, w, file, "items_export", count)
}

// ExportMovements handles GET /api/v1/export/movements.xlsx
func (h *ExportHandler) ExportMovements(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	file := xlsx.NewFile()
	count, err := h.writeMovementsSheet(ctx, file)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to export movements",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to generate export")
		return
	}

	h.sendWorkbook(ctx, w, file, "movements_export", count)
}

func (h *ExportHandler) sendWorkbook(ctx context.Context, w http.ResponseWriter, file *xlsx.File, prefix string, rowCount int) {
	var buffer bytes.Buffer
	if err := file.Write(&buffer); err != nil {
		h.logger.ErrorContext(ctx, "failed to write workbook",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to generate export")
		return
	}

	filename := fmt.Sprintf("%s_%s.xlsx", prefix, time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(buffer.Len()))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	if _, err := w.Write(buffer.Bytes()); err != nil {
		h.logger.ErrorContext(ctx, "failed to write export response",
			slog.String("error", err.Error()))
		return
	}

	h.logger.InfoContext(ctx, "excel export completed",
		slog.Int("rows", rowCount),
		slog.String("filename", filename))
}

func (h *ExportHandler) writeItemsSheet(ctx context.Context, file *xlsx.File) (int, error) {
	sheet, err := file.AddSheet("Items")
	if err != nil {
		return 0, fmt.Errorf("failed to add worksheet: %w", err)
	}

	addHeaderRow(sheet,
		"Name", "Item Number", "Category", "Description", "Quantity",
		"Location", "Previous Location", "Status", "Created At", "Updated At")

	rows, err := h.db.Query(ctx, `
		SELECT name, item_number, category, COALESCE(description, ''), quantity,
			location, COALESCE(previous_location, ''), status, created_at, updated_at
		FROM items
		ORDER BY created_at DESC`)
	if err != nil {
		return 0, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var name, number, category, description, location, prevLocation, status string
		var quantity int
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&name, &number, &category, &description, &quantity,
			&location, &prevLocation, &status, &createdAt, &updatedAt); err != nil {
			return 0, fmt.Errorf("failed to scan item: %w", err)
		}

		addDataRow(sheet,
			name, number, category, description, strconv.Itoa(quantity),
			location, prevLocation, status,
			createdAt.Format("2006-01-02 15:04:05"),
			updatedAt.Format("2006-01-02 15:04:05"))
		count++
	}

	return count, rows.Err()
}

func (h *ExportHandler) writeMovementsSheet(ctx context.Context, file *xlsx.File) (int, error) {
	sheet, err := file.AddSheet("Movements")
	if err != nil {
		return 0, fmt.Errorf("failed to add worksheet: %w", err)
	}

	addHeaderRow(sheet,
		"Item Name", "Item Number", "Action", "From", "To", "Notes", "Timestamp")

	rows, err := h.db.Query(ctx, `
		SELECT item_name, item_number, action, from_label, to_label, COALESCE(notes, ''), occurred_at
		FROM movements
		ORDER BY occurred_at DESC`)
	if err != nil {
		return 0, fmt.Errorf("failed to query movements: %w", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var itemName, itemNumber, action, from, to, notes string
		var occurredAt time.Time
		if err := rows.Scan(&itemName, &itemNumber, &action, &from, &to, &notes, &occurredAt); err != nil {
			return 0, fmt.Errorf("failed to scan movement: %w", err)
		}

		addDataRow(sheet,
			itemName, itemNumber, action, from, to, notes,
			occurredAt.Format("2006-01-02 15:04:05"))
		count++
	}

	return count, rows.Err()
}

func addHeaderRow(sheet *xlsx.Sheet, headers ...string) {
	row := sheet.AddRow()
	for _, header := range headers {
		cell := row.AddCell()
		cell.Value = header
		cell.GetStyle().Font.Bold = true
	}
	for i := range headers {
		sheet.SetColWidth(i, i, 18)
	}
}

func addDataRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, value := range values {
		row.AddCell().Value = value
	}
}

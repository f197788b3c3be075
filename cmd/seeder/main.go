// cmd/seeder/main.go
//
// Loads inventory items from a spreadsheet into the database. Expected
// columns: Name, Item Number, Category, Description, Quantity, Location,
// Status. The first row is treated as a header.
//
// With -mint-token the seeder prints an admin JWT for the configured
// secret and exits, which is handy for exercising the delete endpoints
// locally.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tealeg/xlsx/v3"

	"github.com/askumaar/stocktrail-be/internal/core/domain"
	"github.com/askumaar/stocktrail-be/internal/handlers/middleware"
	"github.com/askumaar/stocktrail-be/internal/pkg/config"
	"github.com/askumaar/stocktrail-be/internal/pkg/logger"
)

func main() {
	var (
		itemsFile = flag.String("items", "./items.xlsx", "Spreadsheet with inventory items")
		logLevel  = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		dryRun    = flag.Bool("dry-run", false, "Preview changes without modifying database")
		mintToken = flag.Bool("mint-token", false, "Print an admin JWT and exit")
	)
	flag.Parse()

	slogger := logger.SetupLogger(*logLevel, "text")

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *mintToken {
		admin := domain.Actor{
			ID:      uuid.New(),
			Name:    "seeder-admin",
			IsAdmin: true,
		}
		token, err := middleware.NewToken(cfg.Security.JWTSecret, admin, time.Now().Add(cfg.Security.JWTExpiration))
		if err != nil {
			slogger.Error("failed to mint token", slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Println(token)
		return
	}

	items, err := loadItems(*itemsFile, slogger)
	if err != nil {
		slogger.Error("failed to load items", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(items) == 0 {
		slogger.Warn("no items found in spreadsheet", slog.String("file", *itemsFile))
		return
	}

	slogger.Info("items loaded from spreadsheet",
		slog.Int("count", len(items)),
		slog.String("file", *itemsFile))

	if *dryRun {
		for _, item := range items {
			fmt.Printf("%-40s %-12s %-12s qty=%d %s\n",
				item.Name, item.ItemNumber, item.Location, item.Quantity, item.Status)
		}
		fmt.Println("[DRY RUN] No changes were made to the database")
		return
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.GetDatabaseURL())
	if err != nil {
		slogger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	inserted, err := saveItems(ctx, pool, items)
	if err != nil {
		slogger.Error("failed to save items", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slogger.Info("seed operation completed",
		slog.Int("loaded", len(items)),
		slog.Int("inserted", inserted),
		slog.Int("skipped", len(items)-inserted))
}

func loadItems(path string, slogger *slog.Logger) ([]*domain.Item, error) {
	file, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	if len(file.Sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in %s", path)
	}
	sheet := file.Sheets[0]

	var items []*domain.Item
	rowIdx := 0
	err = sheet.ForEachRow(func(r *xlsx.Row) error {
		if rowIdx == 0 {
			rowIdx++
			return nil
		}
		rowIdx++

		get := func(i int) string {
			c := r.GetCell(i)
			if c == nil {
				return ""
			}
			if s, err := c.FormattedValue(); err == nil {
				return strings.TrimSpace(s)
			}
			return strings.TrimSpace(c.String())
		}

		name := get(0)
		if name == "" {
			return nil
		}

		quantity, _ := strconv.Atoi(get(4))

		item := &domain.Item{
			Name:        name,
			ItemNumber:  get(1),
			Category:    get(2),
			Description: get(3),
			Quantity:    quantity,
		}

		if loc := get(5); loc != "" {
			parsed, err := domain.ParseLocation(loc)
			if err != nil {
				slogger.Warn("skipping row with unknown location",
					slog.Int("row", rowIdx),
					slog.String("location", loc))
				return nil
			}
			item.Location = parsed
		}

		if status := domain.ItemStatus(get(6)); status != "" {
			if !status.IsValid() {
				slogger.Warn("skipping row with unknown status",
					slog.Int("row", rowIdx),
					slog.String("status", string(status)))
				return nil
			}
			item.Status = status
		}

		if err := item.Validate(); err != nil {
			slogger.Warn("skipping invalid row",
				slog.Int("row", rowIdx),
				slog.String("error", err.Error()))
			return nil
		}

		item.PrepareForStorage()
		item.StatusHistory = append(item.StatusHistory,
			domain.NewStatusEntry(item.Status, nil, "Item added to inventory"))
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return items, nil
}

func saveItems(ctx context.Context, pool *pgxpool.Pool, items []*domain.Item) (int, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(`
			INSERT INTO items (
				id, name, item_number, category, description, quantity,
				location, previous_location, image_url, status, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (LOWER(name)) DO NOTHING`,
			item.ID, item.Name, item.ItemNumber, item.Category, item.Description,
			item.Quantity, item.Location, nullIfEmpty(string(item.PreviousLocation)),
			item.ImageURL, item.Status, item.CreatedAt, item.UpdatedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	inserted := 0
	for range items {
		tag, err := br.Exec()
		if err != nil {
			br.Close()
			return 0, fmt.Errorf("failed to insert item: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}
	if err := br.Close(); err != nil {
		return 0, fmt.Errorf("failed to close batch results: %w", err)
	}

	// Each freshly inserted item gets an opening history row. Items skipped
	// by the conflict clause keep their existing trail.
	historyBatch := &pgx.Batch{}
	for _, item := range items {
		for _, entry := range item.StatusHistory {
			historyBatch.Queue(`
				INSERT INTO item_status_history (id, item_id, status, event_id, notes, occurred_at)
				SELECT $1, $2, $3, $4, $5, $6
				WHERE EXISTS (SELECT 1 FROM items WHERE id = $2)`,
				entry.ID, item.ID, entry.Status, entry.EventID, nullIfEmpty(entry.Notes), entry.Timestamp,
			)
		}
	}
	if historyBatch.Len() > 0 {
		hbr := tx.SendBatch(ctx, historyBatch)
		if err := hbr.Close(); err != nil {
			return 0, fmt.Errorf("failed to insert history: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return inserted, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// internal/adapters/db/item_repository.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/askumaar/stocktrail-be/internal/core/domain"
	"github.com/askumaar/stocktrail-be/internal/core/ports"
)

const itemColumns = `
	id, name, item_number, category, description, quantity,
	location, previous_location, image_url, status, current_event_id,
	created_at, updated_at`

// itemRepository implements ports.ItemRepository
type itemRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *Database, logger *slog.Logger) ports.ItemRepository {
	return &itemRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "item")),
	}
}

// translateConstraint maps unique-index violations onto the same conflict
// errors the pre-write checks raise, distinguished by which index fired.
func translateConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "items_name_lower_key":
			return domain.ErrNameConflict
		case "items_item_number_lower_key":
			return domain.ErrNumberConflict
		}
	}
	return err
}

// Save creates a new item row
func (r *itemRepository) Save(ctx context.Context, item *domain.Item) error {
	query := `
		INSERT INTO items (
			id, name, item_number, category, description, quantity,
			location, previous_location, image_url, status, current_event_id,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.Exec(ctx, query,
		item.ID, item.Name, item.ItemNumber, item.Category, nullIfEmpty(item.Description),
		item.Quantity, item.Location, nullIfEmpty(string(item.PreviousLocation)),
		nullIfEmpty(item.ImageURL), item.Status, item.CurrentEventID,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if translated := translateConstraint(err); translated != err {
			return translated
		}
		return fmt.Errorf("failed to save item: %w", err)
	}

	r.logger.DebugContext(ctx, "item saved",
		slog.String("id", item.ID.String()),
		slog.String("item_number", item.ItemNumber))

	return nil
}

// Update persists the item fields and appends history entries in one transaction
func (r *itemRepository) Update(ctx context.Context, item *domain.Item, entries []domain.StatusEntry) error {
	item.UpdatedAt = time.Now()

	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE items SET
				name = $2, item_number = $3, category = $4, description = $5,
				quantity = $6, location = $7, previous_location = $8,
				image_url = $9, status = $10, current_event_id = $11, updated_at = $12
			WHERE id = $1`

		tag, err := tx.Exec(ctx, query,
			item.ID, item.Name, item.ItemNumber, item.Category, nullIfEmpty(item.Description),
			item.Quantity, item.Location, nullIfEmpty(string(item.PreviousLocation)),
			nullIfEmpty(item.ImageURL), item.Status, item.CurrentEventID, item.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrItemNotFound
		}

		for i := range entries {
			_, err := tx.Exec(ctx, `
				INSERT INTO item_status_history (id, item_id, status, event_id, notes, occurred_at)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				entries[i].ID, item.ID, entries[i].Status, entries[i].EventID,
				nullIfEmpty(entries[i].Notes), entries[i].Timestamp,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if translated := translateConstraint(err); translated != err {
			return translated
		}
		if errors.Is(err, domain.ErrItemNotFound) {
			return err
		}
		return fmt.Errorf("failed to update item: %w", err)
	}

	r.logger.DebugContext(ctx, "item updated",
		slog.String("id", item.ID.String()),
		slog.Int("history_appended", len(entries)))

	return nil
}

// FindByID retrieves an item with its status history
func (r *itemRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	row := r.db.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
	return r.loadItem(ctx, row)
}

// FindByNumber retrieves an item by its item number (exact match)
func (r *itemRepository) FindByNumber(ctx context.Context, itemNumber string) (*domain.Item, error) {
	row := r.db.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE item_number = $1`, itemNumber)
	return r.loadItem(ctx, row)
}

// FindByNameOrNumber matches either field case-insensitively
func (r *itemRepository) FindByNameOrNumber(ctx context.Context, name, itemNumber string) (*domain.Item, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+itemColumns+` FROM items
		WHERE LOWER(name) = LOWER($1) OR LOWER(item_number) = LOWER($2)
		LIMIT 1`, name, itemNumber)
	return r.loadItem(ctx, row)
}

func (r *itemRepository) loadItem(ctx context.Context, row pgx.Row) (*domain.Item, error) {
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find item: %w", err)
	}

	history, err := r.StatusHistory(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	item.StatusHistory = history

	return item, nil
}

// ExistsByName checks case-insensitive name uniqueness, optionally excluding one id
func (r *itemRepository) ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	return r.exists(ctx, "name", name, excludeID)
}

// ExistsByNumber checks case-insensitive number uniqueness, optionally excluding one id
func (r *itemRepository) ExistsByNumber(ctx context.Context, itemNumber string, excludeID uuid.UUID) (bool, error) {
	return r.exists(ctx, "item_number", itemNumber, excludeID)
}

func (r *itemRepository) exists(ctx context.Context, column, value string, excludeID uuid.UUID) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM items WHERE LOWER(%s) = LOWER($1)`, column)
	args := []interface{}{value}
	if excludeID != uuid.Nil {
		query += ` AND id <> $2`
		args = append(args, excludeID)
	}
	query += `)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return exists, nil
}

// FindAll retrieves items with filtering and pagination
func (r *itemRepository) FindAll(ctx context.Context, params ports.ListParams) ([]*domain.Item, int64, error) {
	applyFilters := func(qb squirrel.SelectBuilder) squirrel.SelectBuilder {
		if params.Search != "" {
			qb = qb.Where("to_tsvector('english', name || ' ' || coalesce(description, '') || ' ' || item_number) @@ plainto_tsquery('english', ?)", params.Search)
		}
		if params.Category != "" {
			qb = qb.Where(squirrel.Eq{"category": params.Category})
		}
		if params.Location != "" {
			qb = qb.Where(squirrel.Eq{"location": params.Location})
		}
		if params.Status != "" {
			qb = qb.Where(squirrel.Eq{"status": params.Status})
		}
		return qb
	}

	countSQL, countArgs, err := applyFilters(
		squirrel.Select("COUNT(*)").From("items").PlaceholderFormat(squirrel.Dollar),
	).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var totalCount int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count items: %w", err)
	}

	qb := applyFilters(squirrel.Select(
		"id", "name", "item_number", "category", "description", "quantity",
		"location", "previous_location", "image_url", "status", "current_event_id",
		"created_at", "updated_at",
	).From("items").
		PlaceholderFormat(squirrel.Dollar))

	orderBy := "created_at DESC"
	if params.SortBy != "" {
		direction := "ASC"
		if params.SortOrder == "desc" {
			direction = "DESC"
		}
		switch params.SortBy {
		case "name":
			orderBy = fmt.Sprintf("name %s", direction)
		case "quantity":
			orderBy = fmt.Sprintf("quantity %s", direction)
		case "updated":
			orderBy = fmt.Sprintf("updated_at %s", direction)
		default:
			orderBy = fmt.Sprintf("created_at %s", direction)
		}
	}
	qb = qb.OrderBy(orderBy)

	if params.PageSize > 0 {
		qb = qb.Limit(uint64(params.PageSize))
		if params.Page > 1 {
			qb = qb.Offset(uint64((params.Page - 1) * params.PageSize))
		}
	}

	querySQL, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []*domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, totalCount, nil
}

// Delete performs a hard delete. The item's status history cascades; ledger
// rows in movements and stock_history stay behind.
func (r *itemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}

	r.logger.InfoContext(ctx, "item deleted", slog.String("id", id.String()))
	return nil
}

// StatusHistory returns the item's history entries in insertion order
func (r *itemRepository) StatusHistory(ctx context.Context, itemID uuid.UUID) ([]domain.StatusEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, status, event_id, notes, occurred_at
		FROM item_status_history
		WHERE item_id = $1
		ORDER BY occurred_at ASC`, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to query status history: %w", err)
	}
	defer rows.Close()

	var entries []domain.StatusEntry
	for rows.Next() {
		var entry domain.StatusEntry
		var notes sql.NullString
		if err := rows.Scan(&entry.ID, &entry.Status, &entry.EventID, &notes, &entry.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan status entry: %w", err)
		}
		entry.Notes = notes.String
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return entries, nil
}

// scanItem scans a single item row
func scanItem(row pgx.Row) (*domain.Item, error) {
	item := &domain.Item{}
	var description, previousLocation, imageURL sql.NullString

	err := row.Scan(
		&item.ID, &item.Name, &item.ItemNumber, &item.Category, &description,
		&item.Quantity, &item.Location, &previousLocation, &imageURL,
		&item.Status, &item.CurrentEventID, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Description = description.String
	item.PreviousLocation = domain.Location(previousLocation.String)
	item.ImageURL = imageURL.String

	return item, nil
}

// nullIfEmpty maps "" to SQL NULL for optional text columns
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

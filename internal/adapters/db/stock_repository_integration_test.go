// internal/adapters/db/stock_repository_integration_test.go
package db_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askumaar/stocktrail-be/internal/adapters/db"
	"github.com/askumaar/stocktrail-be/internal/core/domain"
	"github.com/askumaar/stocktrail-be/test/helpers"
)

func TestStockRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := helpers.SetupTestDB(t)
	items := db.NewItemRepository(testDB.Database, helpers.TestLogger())
	repo := db.NewStockRepository(testDB.Database, helpers.TestLogger())
	ctx := context.Background()

	t.Run("create_applies_delta_and_writes_ledger", func(t *testing.T) {
		helpers.TruncateAllTables(t, testDB.PgxPool)
		item := helpers.CreateTestItem(func(i *domain.Item) { i.Quantity = 2 })
		require.NoError(t, items.Save(ctx, item))

		actorID := uuid.New()
		change := &domain.StockChange{
			ID:           uuid.New(),
			ItemID:       item.ID,
			ChangeAmount: 3,
			Reason:       "restock from supplier",
			UpdatedBy:    &actorID,
		}
		require.NoError(t, repo.Create(ctx, change))
		assert.False(t, change.CreatedAt.IsZero())

		found, err := items.FindByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, found.Quantity)

		rows, err := repo.FindByItem(ctx, item.ID)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, item.Name, rows[0].ItemName)
		require.NotNil(t, rows[0].UpdatedBy)
		assert.Equal(t, actorID, *rows[0].UpdatedBy)
	})

	t.Run("negative_result_rolls_back", func(t *testing.T) {
		helpers.TruncateAllTables(t, testDB.PgxPool)
		item := helpers.CreateTestItem(func(i *domain.Item) { i.Quantity = 2 })
		require.NoError(t, items.Save(ctx, item))

		change := &domain.StockChange{
			ID:           uuid.New(),
			ItemID:       item.ID,
			ChangeAmount: -3,
			Reason:       "damaged in transit",
		}
		err := repo.Create(ctx, change)
		assert.ErrorIs(t, err, domain.ErrNegativeStock)

		found, err := items.FindByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, found.Quantity)

		rows, err := repo.FindByItem(ctx, item.ID)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("ledger_survives_item_delete", func(t *testing.T) {
		helpers.TruncateAllTables(t, testDB.PgxPool)
		item := helpers.CreateTestItem()
		require.NoError(t, items.Save(ctx, item))

		change := &domain.StockChange{
			ID:           uuid.New(),
			ItemID:       item.ID,
			ChangeAmount: 1,
			Reason:       "restock",
		}
		require.NoError(t, repo.Create(ctx, change))
		require.NoError(t, items.Delete(ctx, item.ID))

		rows, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		// Joined name resolves to empty once the item row is gone.
		assert.Empty(t, rows[0].ItemName)
	})
}

// internal/adapters/db/item_repository_integration_test.go
package db_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askumaar/stocktrail-be/internal/adapters/db"
	"github.com/askumaar/stocktrail-be/internal/core/domain"
	"github.com/askumaar/stocktrail-be/internal/core/ports"
	"github.com/askumaar/stocktrail-be/test/helpers"
)

func TestItemRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := helpers.SetupTestDB(t)
	repo := db.NewItemRepository(testDB.Database, helpers.TestLogger())
	ctx := context.Background()

	t.Run("save_and_find_by_id", func(t *testing.T) {
		helpers.TruncateAllTables(t, testDB.PgxPool)
		item := helpers.CreateTestItem()

		require.NoError(t, repo.Save(ctx, item))

		found, err := repo.FindByID(ctx, item.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, item.Name, found.Name)
		assert.Equal(t, item.ItemNumber, found.ItemNumber)
		assert.Equal(t, domain.LocationGarage, found.Location)
	})

	t.Run("find_missing_returns_nil", func(t *testing.T) {
		found, err := repo.FindByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("duplicate_name_hits_unique_index", func(t *testing.T) {
		helpers.TruncateAllTables(t, testDB.PgxPool)
		first := helpers.CreateTestItem()
		require.NoError(t, repo.Save(ctx, first))

		dup := helpers.CreateTestItem(func(i *domain.Item) {
			i.ID = uuid.New()
			i.Name = "CANON EOS R5 BODY" // same name, different case
			i.ItemNumber = "CAM-0002"
		})
		err := repo.Save(ctx, dup)
		assert.ErrorIs(t, err, domain.ErrNameConflict)
	})

	t.Run("duplicate_number_hits_unique_index", func(t *testing.T) {
		helpers.TruncateAllTables(t, testDB.PgxPool)
		first := helpers.CreateTestItem()
		require.NoError(t, repo.Save(ctx, first))

		dup := helpers.CreateTestItem(func(i *domain.Item) {
			i.ID = uuid.New()
			i.Name = "Different Name"
			i.ItemNumber = "cam-0001"
		})
		err := repo.Save(ctx, dup)
		assert.ErrorIs(t, err, domain.ErrNumberConflict)
	})

	t.Run("exists_checks_are_case_insensitive", func(t *testing.T) {
		helpers.TruncateAllTables(t, testDB.PgxPool)
		item := helpers.CreateTestItem()
		require.NoError(t, repo.Save(ctx, item))

		exists, err := repo.ExistsByName(ctx, "canon eos r5 body", uuid.Nil)
		require.NoError(t, err)
		assert.True(t, exists)

		// The row itself is excluded when its id is passed.
		exists, err = repo.ExistsByName(ctx, item.Name, item.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		exists, err = repo.ExistsByNumber(ctx, "CAM-0001", uuid.Nil)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("find_by_name_or_number", func(t *testing.T) {
		helpers.TruncateAllTables(t, testDB.PgxPool)
		item := helpers.CreateTestItem()
		require.NoError(t, repo.Save(ctx, item))

		found, err := repo.FindByNameOrNumber(ctx, "no such name", "CAM-0001")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, item.ID, found.ID)

		found, err = repo.FindByNameOrNumber(ctx, "no such name", "NOPE-0000")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("update_appends_history", func(t *testing.T) {
		helpers.TruncateAllTables(t, testDB.PgxPool)
		item := helpers.CreateTestItem()
		require.NoError(t, repo.Save(ctx, item))

		item.Quantity = 5
		item.Status = domain.StatusInUse
		entry := domain.NewStatusEntry(domain.StatusInUse, nil, "handed to crew")
		require.NoError(t, repo.Update(ctx, item, []domain.StatusEntry{entry}))

		found, err := repo.FindByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, found.Quantity)
		assert.Equal(t, domain.StatusInUse, found.Status)
		require.Len(t, found.StatusHistory, 1)
		assert.Equal(t, "handed to crew", found.StatusHistory[0].Notes)
	})

	t.Run("update_missing_item", func(t *testing.T) {
		ghost := helpers.CreateTestItem(func(i *domain.Item) {
			i.ID = uuid.New()
			i.Name = "Ghost"
			i.ItemNumber = "GHO-0001"
		})
		err := repo.Update(ctx, ghost, nil)
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})

	t.Run("find_all_with_filters_and_paging", func(t *testing.T) {
		helpers.TruncateAllTables(t, testDB.PgxPool)
		helpers.SeedTestItems(t, testDB.PgxPool, helpers.CreateTestItems(7))

		items, total, err := repo.FindAll(ctx, ports.ListParams{Page: 1, PageSize: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(7), total)
		assert.Len(t, items, 3)

		items, total, err = repo.FindAll(ctx, ports.ListParams{
			Location: string(domain.LocationGarage),
			Page:     1,
			PageSize: 50,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		for _, item := range items {
			assert.Equal(t, domain.LocationGarage, item.Location)
		}
	})

	t.Run("delete_cascades_history_only", func(t *testing.T) {
		helpers.TruncateAllTables(t, testDB.PgxPool)
		item := helpers.CreateTestItem()
		require.NoError(t, repo.Save(ctx, item))
		entry := domain.NewStatusEntry(domain.StatusAvailable, nil, "Item added to inventory")
		require.NoError(t, repo.Update(ctx, item, []domain.StatusEntry{entry}))

		require.NoError(t, repo.Delete(ctx, item.ID))

		found, err := repo.FindByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Nil(t, found)

		var historyCount int
		err = testDB.PgxPool.QueryRow(ctx,
			`SELECT COUNT(*) FROM item_status_history WHERE item_id = $1`, item.ID).Scan(&historyCount)
		require.NoError(t, err)
		assert.Zero(t, historyCount)

		assert.ErrorIs(t, repo.Delete(ctx, item.ID), domain.ErrItemNotFound)
	})
}

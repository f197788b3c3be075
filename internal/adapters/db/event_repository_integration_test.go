// internal/adapters/db/event_repository_integration_test.go
package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askumaar/stocktrail-be/internal/adapters/db"
	"github.com/askumaar/stocktrail-be/internal/core/domain"
	"github.com/askumaar/stocktrail-be/test/helpers"
)

func scheduledEvent(daysOut int) *domain.Event {
	date := time.Now().AddDate(0, 0, daysOut)
	return helpers.CreateTestEvent(func(e *domain.Event) {
		e.Status = domain.EventScheduled
		e.ScheduledDate = &date
	})
}

func TestEventRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := helpers.SetupTestDB(t)
	repo := db.NewEventRepository(testDB.Database, helpers.TestLogger())
	ctx := context.Background()

	t.Run("save_and_find", func(t *testing.T) {
		helpers.TruncateAllTables(t, testDB.PgxPool)
		event := helpers.CreateTestEvent()

		require.NoError(t, repo.Save(ctx, event))

		found, err := repo.FindByID(ctx, event.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, event.Product, found.Product)
		assert.Equal(t, domain.EventCompleted, found.Status)

		missing, err := repo.FindByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("find_by_ids_skips_dangling_references", func(t *testing.T) {
		helpers.TruncateAllTables(t, testDB.PgxPool)
		event := helpers.CreateTestEvent()
		require.NoError(t, repo.Save(ctx, event))

		dangling := uuid.New()
		result, err := repo.FindByIDs(ctx, []uuid.UUID{event.ID, dangling})
		require.NoError(t, err)
		assert.Len(t, result, 1)
		assert.Contains(t, result, event.ID)
		assert.NotContains(t, result, dangling)

		empty, err := repo.FindByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("scheduled_windows", func(t *testing.T) {
		helpers.TruncateAllTables(t, testDB.PgxPool)

		soon := scheduledEvent(2)
		far := scheduledEvent(20)
		past := scheduledEvent(-5)
		done := helpers.CreateTestEvent() // completed, never listed as scheduled
		for _, e := range []*domain.Event{soon, far, past, done} {
			require.NoError(t, repo.Save(ctx, e))
		}

		now := time.Now()
		startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

		scheduled, err := repo.FindScheduled(ctx, startOfToday)
		require.NoError(t, err)
		require.Len(t, scheduled, 2)
		assert.Equal(t, soon.ID, scheduled[0].ID)
		assert.Equal(t, far.ID, scheduled[1].ID)

		upcoming, err := repo.FindUpcoming(ctx, startOfToday, startOfToday.AddDate(0, 0, 7))
		require.NoError(t, err)
		require.Len(t, upcoming, 1)
		assert.Equal(t, soon.ID, upcoming[0].ID)
	})

	t.Run("update_status", func(t *testing.T) {
		helpers.TruncateAllTables(t, testDB.PgxPool)
		event := scheduledEvent(3)
		require.NoError(t, repo.Save(ctx, event))

		updated, err := repo.UpdateStatus(ctx, event.ID, domain.EventCancelled)
		require.NoError(t, err)
		assert.Equal(t, domain.EventCancelled, updated.Status)

		_, err = repo.UpdateStatus(ctx, uuid.New(), domain.EventCompleted)
		assert.ErrorIs(t, err, domain.ErrEventNotFound)
	})

	t.Run("cancel_stale", func(t *testing.T) {
		helpers.TruncateAllTables(t, testDB.PgxPool)

		stale := scheduledEvent(-45)
		recent := scheduledEvent(-2)
		future := scheduledEvent(10)
		for _, e := range []*domain.Event{stale, recent, future} {
			require.NoError(t, repo.Save(ctx, e))
		}

		cancelled, err := repo.CancelStale(ctx, time.Now().AddDate(0, 0, -30))
		require.NoError(t, err)
		assert.Equal(t, int64(1), cancelled)

		found, err := repo.FindByID(ctx, stale.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.EventCancelled, found.Status)

		untouched, err := repo.FindByID(ctx, recent.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.EventScheduled, untouched.Status)
	})
}

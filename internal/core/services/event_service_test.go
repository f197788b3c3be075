// internal/core/services/event_service_test.go
package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/askumaar/stocktrail-be/internal/core/domain"
	"github.com/askumaar/stocktrail-be/internal/core/services"
	"github.com/askumaar/stocktrail-be/test/helpers"
	"github.com/askumaar/stocktrail-be/test/mocks"
)

func newEventService(t *testing.T) (*services.EventService, *mocks.MockEventRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	events := mocks.NewMockEventRepository(ctrl)
	return services.NewEventService(events, helpers.TestLogger()), events
}

func TestEventService_Create(t *testing.T) {
	t.Run("defaults_to_completed", func(t *testing.T) {
		svc, events := newEventService(t)
		event := &domain.Event{
			Product:   "Canon EOS R5 Body",
			Location:  "Bangalore trade fair",
			EventType: "exhibition",
			Time:      time.Now(),
		}

		events.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		created, err := svc.Create(context.Background(), event)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, domain.EventCompleted, created.Status)
	})

	t.Run("scheduled_event_kept", func(t *testing.T) {
		svc, events := newEventService(t)
		date := time.Now().AddDate(0, 0, 3)
		event := &domain.Event{
			Product:       "Canon EOS R5 Body",
			Location:      "Erode expo",
			EventType:     "demo",
			Time:          time.Now(),
			Status:        domain.EventScheduled,
			ScheduledDate: &date,
		}

		events.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		created, err := svc.Create(context.Background(), event)
		require.NoError(t, err)
		assert.Equal(t, domain.EventScheduled, created.Status)
	})

	t.Run("validation_failure", func(t *testing.T) {
		svc, _ := newEventService(t)

		_, err := svc.Create(context.Background(), &domain.Event{Location: "somewhere"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestEventService_GetByID(t *testing.T) {
	svc, events := newEventService(t)
	event := helpers.CreateTestEvent()

	events.EXPECT().FindByID(gomock.Any(), event.ID).Return(event, nil)
	got, err := svc.GetByID(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, event, got)

	missing := uuid.New()
	events.EXPECT().FindByID(gomock.Any(), missing).Return(nil, nil)
	_, err = svc.GetByID(context.Background(), missing)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestEventService_Scheduled(t *testing.T) {
	svc, events := newEventService(t)

	events.EXPECT().
		FindScheduled(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, from time.Time) ([]domain.Event, error) {
			// Query window starts at local midnight today.
			assert.Equal(t, 0, from.Hour())
			assert.Equal(t, 0, from.Minute())
			assert.WithinDuration(t, time.Now(), from, 24*time.Hour)
			return []domain.Event{*helpers.CreateTestEvent()}, nil
		})

	got, err := svc.Scheduled(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestEventService_Upcoming(t *testing.T) {
	t.Run("explicit_window", func(t *testing.T) {
		svc, events := newEventService(t)

		events.EXPECT().
			FindUpcoming(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, from, to time.Time) ([]domain.Event, error) {
				assert.Equal(t, from.AddDate(0, 0, 14), to)
				return nil, nil
			})

		_, err := svc.Upcoming(context.Background(), 14)
		assert.NoError(t, err)
	})

	t.Run("non_positive_days_defaults_to_seven", func(t *testing.T) {
		svc, events := newEventService(t)

		events.EXPECT().
			FindUpcoming(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, from, to time.Time) ([]domain.Event, error) {
				assert.Equal(t, from.AddDate(0, 0, 7), to)
				return nil, nil
			})

		_, err := svc.Upcoming(context.Background(), 0)
		assert.NoError(t, err)
	})
}

func TestEventService_UpdateStatus(t *testing.T) {
	t.Run("valid_transition", func(t *testing.T) {
		svc, events := newEventService(t)
		event := helpers.CreateTestEvent(func(e *domain.Event) {
			e.Status = domain.EventScheduled
		})

		events.EXPECT().
			UpdateStatus(gomock.Any(), event.ID, domain.EventCancelled).
			Return(event, nil)

		_, err := svc.UpdateStatus(context.Background(), event.ID, domain.EventCancelled)
		assert.NoError(t, err)
	})

	t.Run("unknown_status_rejected", func(t *testing.T) {
		svc, _ := newEventService(t)

		_, err := svc.UpdateStatus(context.Background(), uuid.New(), "done")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestEventService_ExpireStale(t *testing.T) {
	svc, events := newEventService(t)
	age := 30 * 24 * time.Hour

	events.EXPECT().
		CancelStale(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cutoff time.Time) (int64, error) {
			assert.WithinDuration(t, time.Now().Add(-age), cutoff, time.Minute)
			return 4, nil
		})

	cancelled, err := svc.ExpireStale(context.Background(), age)
	require.NoError(t, err)
	assert.Equal(t, int64(4), cancelled)
}

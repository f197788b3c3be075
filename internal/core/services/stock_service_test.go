// internal/core/services/stock_service_test.go
package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/askumaar/stocktrail-be/internal/core/domain"
	"github.com/askumaar/stocktrail-be/internal/core/services"
	"github.com/askumaar/stocktrail-be/test/helpers"
	"github.com/askumaar/stocktrail-be/test/mocks"
)

func newStockService(t *testing.T) (*services.StockService, *mocks.MockItemRepository, *mocks.MockStockRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	items := mocks.NewMockItemRepository(ctrl)
	stock := mocks.NewMockStockRepository(ctrl)
	return services.NewStockService(items, stock, helpers.TestLogger()), items, stock
}

func TestStockService_Change(t *testing.T) {
	actor := domain.Actor{ID: uuid.New(), Name: "staff"}

	t.Run("positive_change", func(t *testing.T) {
		svc, items, stock := newStockService(t)
		item := helpers.CreateTestItem(func(i *domain.Item) { i.Quantity = 2 })

		items.EXPECT().FindByID(gomock.Any(), item.ID).Return(item, nil)
		stock.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, change *domain.StockChange) error {
				assert.Equal(t, 3, change.ChangeAmount)
				require.NotNil(t, change.UpdatedBy)
				assert.Equal(t, actor.ID, *change.UpdatedBy)
				return nil
			})

		change, err := svc.Change(context.Background(), actor, item.ID, 3, "restock from supplier")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, change.ID)
	})

	t.Run("negative_change_within_stock", func(t *testing.T) {
		svc, items, stock := newStockService(t)
		item := helpers.CreateTestItem(func(i *domain.Item) { i.Quantity = 5 })

		items.EXPECT().FindByID(gomock.Any(), item.ID).Return(item, nil)
		stock.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		_, err := svc.Change(context.Background(), actor, item.ID, -5, "written off")
		assert.NoError(t, err)
	})

	t.Run("change_below_zero_rejected", func(t *testing.T) {
		svc, items, _ := newStockService(t)
		item := helpers.CreateTestItem(func(i *domain.Item) { i.Quantity = 2 })

		items.EXPECT().FindByID(gomock.Any(), item.ID).Return(item, nil)

		_, err := svc.Change(context.Background(), actor, item.ID, -3, "damaged in transit")
		assert.ErrorIs(t, err, domain.ErrNegativeStock)
	})

	t.Run("anonymous_actor_leaves_updated_by_nil", func(t *testing.T) {
		svc, items, stock := newStockService(t)
		item := helpers.CreateTestItem()

		items.EXPECT().FindByID(gomock.Any(), item.ID).Return(item, nil)
		stock.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, change *domain.StockChange) error {
				assert.Nil(t, change.UpdatedBy)
				return nil
			})

		_, err := svc.Change(context.Background(), domain.Actor{}, item.ID, 1, "restock")
		assert.NoError(t, err)
	})

	t.Run("missing_reason_rejected", func(t *testing.T) {
		svc, _, _ := newStockService(t)

		_, err := svc.Change(context.Background(), actor, uuid.New(), 1, "  ")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("missing_item", func(t *testing.T) {
		svc, items, _ := newStockService(t)
		id := uuid.New()

		items.EXPECT().FindByID(gomock.Any(), id).Return(nil, nil)

		_, err := svc.Change(context.Background(), actor, id, 1, "restock")
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})
}

func TestStockService_History(t *testing.T) {
	svc, _, stock := newStockService(t)
	changes := []domain.StockChange{
		{ID: uuid.New(), ChangeAmount: 2, Reason: "restock"},
		{ID: uuid.New(), ChangeAmount: -1, Reason: "damaged"},
	}

	stock.EXPECT().FindAll(gomock.Any()).Return(changes, nil)

	got, err := svc.History(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestStockService_ItemHistory(t *testing.T) {
	svc, _, stock := newStockService(t)
	itemID := uuid.New()

	stock.EXPECT().
		FindByItem(gomock.Any(), itemID).
		Return([]domain.StockChange{{ID: uuid.New(), ItemID: itemID, ChangeAmount: 1, Reason: "restock"}}, nil)

	got, err := svc.ItemHistory(context.Background(), itemID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, itemID, got[0].ItemID)
}

// internal/handlers/movement_handler_test.go
package handlers_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/askumaar/stocktrail-be/internal/core/domain"
	"github.com/askumaar/stocktrail-be/internal/core/ports"
	"github.com/askumaar/stocktrail-be/internal/handlers"
	"github.com/askumaar/stocktrail-be/test/helpers"
	"github.com/askumaar/stocktrail-be/test/mocks"
)

func newMovementHandler(t *testing.T) (*handlers.MovementHandler, *mocks.MockMovementService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	service := mocks.NewMockMovementService(ctrl)
	return handlers.NewMovementHandler(service, helpers.TestLogger()), service
}

func movementBody(itemID uuid.UUID, action string) string {
	return fmt.Sprintf(
		`{"item_id":%q,"action":%q,"location":"Bangalore office","from":"garage","to":"Bangalore office"}`,
		itemID, action)
}

func TestMovementHandler_Record(t *testing.T) {
	t.Run("send_recorded", func(t *testing.T) {
		handler, service := newMovementHandler(t)
		item := helpers.CreateTestItem(func(i *domain.Item) {
			i.Status = domain.StatusSent
		})

		service.EXPECT().
			Record(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req domain.MovementRequest) (*ports.MovementResult, error) {
				assert.Equal(t, domain.ActionSend, req.Action)
				return &ports.MovementResult{Message: "Movement recorded", Item: item}, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/movements",
			bytes.NewBufferString(movementBody(item.ID, "send")))
		rec := httptest.NewRecorder()
		handler.Record(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var got ports.MovementResult
		decodeBody(t, rec, &got)
		assert.Equal(t, "Movement recorded", got.Message)
	})

	t.Run("double_send_returns_400", func(t *testing.T) {
		handler, service := newMovementHandler(t)

		service.EXPECT().
			Record(gomock.Any(), gomock.Any()).
			Return(nil, domain.ErrAlreadySent)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/movements",
			bytes.NewBufferString(movementBody(uuid.New(), "send")))
		rec := httptest.NewRecorder()
		handler.Record(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("receive_without_send_returns_400", func(t *testing.T) {
		handler, service := newMovementHandler(t)

		service.EXPECT().
			Record(gomock.Any(), gomock.Any()).
			Return(nil, domain.ErrNotSent)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/movements",
			bytes.NewBufferString(movementBody(uuid.New(), "receive")))
		rec := httptest.NewRecorder()
		handler.Record(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("concurrent_conflict_returns_409", func(t *testing.T) {
		handler, service := newMovementHandler(t)

		service.EXPECT().
			Record(gomock.Any(), gomock.Any()).
			Return(nil, domain.ErrStateConflict)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/movements",
			bytes.NewBufferString(movementBody(uuid.New(), "send")))
		rec := httptest.NewRecorder()
		handler.Record(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("malformed_body", func(t *testing.T) {
		handler, _ := newMovementHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/movements", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		handler.Record(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMovementHandler_Recent(t *testing.T) {
	handler, service := newMovementHandler(t)
	movements := []domain.Movement{
		{ID: uuid.New(), ItemNumber: "CAM-0001", Action: domain.ActionSend},
	}

	service.EXPECT().Recent(gomock.Any()).Return(movements, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/movements/recent", nil)
	rec := httptest.NewRecorder()
	handler.Recent(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Movements []domain.Movement `json:"movements"`
		Count     int               `json:"count"`
	}
	decodeBody(t, rec, &got)
	assert.Equal(t, 1, got.Count)
}

func TestMovementHandler_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		handler, service := newMovementHandler(t)
		id := uuid.New()

		service.EXPECT().Delete(gomock.Any(), gomock.Any(), id).Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/movements/"+id.String(), nil)
		req.SetPathValue("id", id.String())
		rec := httptest.NewRecorder()
		handler.Delete(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing_movement_returns_404", func(t *testing.T) {
		handler, service := newMovementHandler(t)
		id := uuid.New()

		service.EXPECT().Delete(gomock.Any(), gomock.Any(), id).Return(domain.ErrMovementNotFound)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/movements/"+id.String(), nil)
		req.SetPathValue("id", id.String())
		rec := httptest.NewRecorder()
		handler.Delete(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

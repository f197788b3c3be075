// internal/handlers/item_handler_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/askumaar/stocktrail-be/internal/core/domain"
	"github.com/askumaar/stocktrail-be/internal/core/ports"
	"github.com/askumaar/stocktrail-be/internal/handlers"
	"github.com/askumaar/stocktrail-be/test/helpers"
	"github.com/askumaar/stocktrail-be/test/mocks"
)

func newItemHandler(t *testing.T) (*handlers.ItemHandler, *mocks.MockItemService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	service := mocks.NewMockItemService(ctrl)
	return handlers.NewItemHandler(service, helpers.TestLogger()), service
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(dest))
}

func TestItemHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		handler, service := newItemHandler(t)
		item := helpers.CreateTestItem()

		service.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(item, nil)

		body := `{"name":"Canon EOS R5 Body","item_number":"CAM-0001","category":"cameras","quantity":1}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/items", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		handler.Create(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var got domain.Item
		decodeBody(t, rec, &got)
		assert.Equal(t, item.ItemNumber, got.ItemNumber)
	})

	t.Run("malformed_body", func(t *testing.T) {
		handler, _ := newItemHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/items", bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()
		handler.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("name_conflict_maps_to_409", func(t *testing.T) {
		handler, service := newItemHandler(t)

		service.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(nil, domain.ErrNameConflict)

		body := `{"name":"Canon EOS R5 Body","item_number":"CAM-0001","category":"cameras"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/items", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		handler.Create(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("invalid_location_maps_to_400", func(t *testing.T) {
		handler, service := newItemHandler(t)

		service.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(nil, domain.ErrInvalidLocation)

		body := `{"name":"Tripod","item_number":"ACC-0002","category":"accessories","location":"chennai"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/items", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		handler.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestItemHandler_QuickAdd(t *testing.T) {
	t.Run("existing_item_returns_200", func(t *testing.T) {
		handler, service := newItemHandler(t)
		item := helpers.CreateTestItem()

		service.EXPECT().
			QuickAdd(gomock.Any(), gomock.Any()).
			Return(item, false, nil)

		body := `{"name":"Canon EOS R5 Body","category":"cameras","quantity":1,"item_number":"CAM-0001"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/items/quick-add", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		handler.QuickAdd(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var got map[string]any
		decodeBody(t, rec, &got)
		assert.Equal(t, false, got["created"])
		assert.Equal(t, "Item already exists", got["message"])
	})

	t.Run("new_item_returns_201", func(t *testing.T) {
		handler, service := newItemHandler(t)
		item := helpers.CreateTestItem()

		service.EXPECT().
			QuickAdd(gomock.Any(), gomock.Any()).
			Return(item, true, nil)

		body := `{"name":"Light Stand","category":"accessories","quantity":2,"item_number":"ACC-0009"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/items/quick-add", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		handler.QuickAdd(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("missing_fields_return_400", func(t *testing.T) {
		handler, service := newItemHandler(t)

		service.EXPECT().
			QuickAdd(gomock.Any(), gomock.Any()).
			Return(nil, false, fmt.Errorf("%w: name, category, quantity, and item number are required", domain.ErrValidation))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/items/quick-add", bytes.NewBufferString(`{}`))
		rec := httptest.NewRecorder()
		handler.QuickAdd(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestItemHandler_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		handler, service := newItemHandler(t)
		item := helpers.CreateTestItem()

		service.EXPECT().GetByID(gomock.Any(), item.ID).Return(item, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/items/"+item.ID.String(), nil)
		req.SetPathValue("id", item.ID.String())
		rec := httptest.NewRecorder()
		handler.Get(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bad_uuid", func(t *testing.T) {
		handler, _ := newItemHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/items/not-a-uuid", nil)
		req.SetPathValue("id", "not-a-uuid")
		rec := httptest.NewRecorder()
		handler.Get(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing_item_returns_404", func(t *testing.T) {
		handler, service := newItemHandler(t)
		id := uuid.New()

		service.EXPECT().GetByID(gomock.Any(), id).Return(nil, domain.ErrItemNotFound)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/items/"+id.String(), nil)
		req.SetPathValue("id", id.String())
		rec := httptest.NewRecorder()
		handler.Get(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestItemHandler_GetByNumber(t *testing.T) {
	handler, service := newItemHandler(t)
	item := helpers.CreateTestItem()

	service.EXPECT().GetByNumber(gomock.Any(), "CAM-0001").Return(item, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/items/number/CAM-0001", nil)
	req.SetPathValue("itemNumber", "CAM-0001")
	rec := httptest.NewRecorder()
	handler.GetByNumber(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestItemHandler_List(t *testing.T) {
	handler, service := newItemHandler(t)
	items := helpers.CreateTestItems(2)

	service.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, params ports.ListParams) (*ports.ListResult, error) {
			assert.Equal(t, 2, params.Page)
			assert.Equal(t, 100, params.PageSize) // clamped from 500
			assert.Equal(t, "cameras", params.Category)
			assert.Equal(t, "garage", params.Location)
			return &ports.ListResult{Items: items, Page: 2, PageSize: 100, TotalCount: 2, TotalPages: 1}, nil
		})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/items?page=2&limit=500&category=cameras&location=garage", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got ports.ListResult
	decodeBody(t, rec, &got)
	assert.Len(t, got.Items, 2)
}

func TestItemHandler_Update(t *testing.T) {
	t.Run("append_history_is_stripped", func(t *testing.T) {
		handler, service := newItemHandler(t)
		item := helpers.CreateTestItem()

		service.EXPECT().
			Update(gomock.Any(), item.ID, gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, update ports.ItemUpdate) (*domain.Item, error) {
				assert.Nil(t, update.AppendHistory)
				return item, nil
			})

		body := `{"name":"Renamed","append_history":{"status":"Damaged"}}`
		req := httptest.NewRequest(http.MethodPut, "/api/v1/items/"+item.ID.String(), bytes.NewBufferString(body))
		req.SetPathValue("id", item.ID.String())
		rec := httptest.NewRecorder()
		handler.Update(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("number_conflict_returns_409", func(t *testing.T) {
		handler, service := newItemHandler(t)
		id := uuid.New()

		service.EXPECT().
			Update(gomock.Any(), id, gomock.Any()).
			Return(nil, domain.ErrNumberConflict)

		req := httptest.NewRequest(http.MethodPut, "/api/v1/items/"+id.String(), bytes.NewBufferString(`{"item_number":"CAM-0002"}`))
		req.SetPathValue("id", id.String())
		rec := httptest.NewRecorder()
		handler.Update(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestItemHandler_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		handler, service := newItemHandler(t)
		id := uuid.New()

		service.EXPECT().Delete(gomock.Any(), gomock.Any(), id).Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/items/"+id.String(), nil)
		req.SetPathValue("id", id.String())
		rec := httptest.NewRecorder()
		handler.Delete(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("forbidden_for_non_admin", func(t *testing.T) {
		handler, service := newItemHandler(t)
		id := uuid.New()

		service.EXPECT().Delete(gomock.Any(), gomock.Any(), id).Return(domain.ErrForbidden)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/items/"+id.String(), nil)
		req.SetPathValue("id", id.String())
		rec := httptest.NewRecorder()
		handler.Delete(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestItemHandler_UpdateStatus(t *testing.T) {
	t.Run("status_changed", func(t *testing.T) {
		handler, service := newItemHandler(t)
		item := helpers.CreateTestItem(func(i *domain.Item) {
			i.Status = domain.StatusDamaged
		})

		service.EXPECT().
			UpdateStatus(gomock.Any(), item.ID, domain.StatusDamaged, gomock.Nil(), "dropped during setup").
			Return(item, nil)

		body := `{"status":"Damaged","notes":"dropped during setup"}`
		req := httptest.NewRequest(http.MethodPut, "/api/v1/items/"+item.ID.String()+"/status", bytes.NewBufferString(body))
		req.SetPathValue("id", item.ID.String())
		rec := httptest.NewRecorder()
		handler.UpdateStatus(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid_status_returns_400", func(t *testing.T) {
		handler, service := newItemHandler(t)
		id := uuid.New()

		service.EXPECT().
			UpdateStatus(gomock.Any(), id, domain.ItemStatus("Lost"), gomock.Nil(), "").
			Return(nil, domain.ErrInvalidStatus)

		req := httptest.NewRequest(http.MethodPut, "/api/v1/items/"+id.String()+"/status", bytes.NewBufferString(`{"status":"Lost"}`))
		req.SetPathValue("id", id.String())
		rec := httptest.NewRecorder()
		handler.UpdateStatus(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestItemHandler_StatusHistory(t *testing.T) {
	handler, service := newItemHandler(t)
	id := uuid.New()
	entries := []domain.StatusEntry{
		domain.NewStatusEntry(domain.StatusAvailable, nil, "Item added to inventory"),
	}

	service.EXPECT().StatusHistory(gomock.Any(), id).Return(entries, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/items/"+id.String()+"/status-history", nil)
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()
	handler.StatusHistory(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		ItemID  uuid.UUID            `json:"item_id"`
		History []domain.StatusEntry `json:"history"`
	}
	decodeBody(t, rec, &got)
	assert.Equal(t, id, got.ItemID)
	assert.Len(t, got.History, 1)
}

func TestItemHandler_CheckName(t *testing.T) {
	t.Run("unique", func(t *testing.T) {
		handler, service := newItemHandler(t)

		service.EXPECT().
			IsNameUnique(gomock.Any(), "Brand New Thing", uuid.Nil).
			Return(true, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/items/check-name?name=Brand+New+Thing", nil)
		rec := httptest.NewRecorder()
		handler.CheckName(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var got map[string]bool
		decodeBody(t, rec, &got)
		assert.True(t, got["unique"])
	})

	t.Run("exclude_id_passed_through", func(t *testing.T) {
		handler, service := newItemHandler(t)
		exclude := uuid.New()

		service.EXPECT().
			IsNameUnique(gomock.Any(), "Canon EOS R5 Body", exclude).
			Return(false, nil)

		url := "/api/v1/items/check-name?name=Canon+EOS+R5+Body&exclude_id=" + exclude.String()
		req := httptest.NewRequest(http.MethodGet, url, nil)
		rec := httptest.NewRecorder()
		handler.CheckName(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing_name_returns_400", func(t *testing.T) {
		handler, _ := newItemHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/items/check-name", nil)
		rec := httptest.NewRecorder()
		handler.CheckName(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

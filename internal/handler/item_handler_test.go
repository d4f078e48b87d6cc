package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"campusmarket/internal/models"
	"campusmarket/internal/repository"
	"campusmarket/internal/service"
)

func newTestItemHandlers() (*Handlers, *MockItemService) {
	h, _, _, _ := newTestHandlers()
	itemService := new(MockItemService)
	h.ItemService = itemService
	return h, itemService
}

func TestCreateItemHandler(t *testing.T) {
	t.Run("lists the item for the authenticated user", func(t *testing.T) {
		h, itemService := newTestItemHandlers()

		itemService.On("Create", mock.Anything, "alice-id", mock.MatchedBy(func(input service.CreateItemInput) bool {
			return input.Name == "Calculator" && input.Price == 500 && input.Condition == "GOOD"
		})).Return(&models.Item{
			ItemID:             "item-1",
			UserID:             "alice-id",
			Name:               "Calculator",
			Category:           "Electronics",
			Price:              500,
			Condition:          "GOOD",
			AvailabilityStatus: models.ItemAvailable,
		}, nil)

		req := authedRequest(http.MethodPost, "/api/items", "alice-id", map[string]interface{}{
			"name":      "Calculator",
			"category":  "Electronics",
			"price":     500,
			"condition": "GOOD",
		})
		rr := httptest.NewRecorder()
		h.CreateItem(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		body := decodeBody(t, rr)
		assert.Equal(t, "Item listed successfully", body["message"])
		item := body["item"].(map[string]interface{})
		assert.Equal(t, "alice-id", item["userId"])
	})

	t.Run("missing auth context is a 401", func(t *testing.T) {
		h, itemService := newTestItemHandlers()

		req := authedRequest(http.MethodPost, "/api/items", "", map[string]interface{}{
			"name":      "Calculator",
			"category":  "Electronics",
			"price":     500,
			"condition": "GOOD",
		})
		rr := httptest.NewRecorder()
		h.CreateItem(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		itemService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("negative price fails validation", func(t *testing.T) {
		h, itemService := newTestItemHandlers()

		req := authedRequest(http.MethodPost, "/api/items", "alice-id", map[string]interface{}{
			"name":      "Calculator",
			"category":  "Electronics",
			"price":     -1,
			"condition": "GOOD",
		})
		rr := httptest.NewRecorder()
		h.CreateItem(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		itemService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown condition fails validation", func(t *testing.T) {
		h, itemService := newTestItemHandlers()

		req := authedRequest(http.MethodPost, "/api/items", "alice-id", map[string]interface{}{
			"name":      "Calculator",
			"category":  "Electronics",
			"price":     500,
			"condition": "WORN",
		})
		rr := httptest.NewRecorder()
		h.CreateItem(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		itemService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetItemsHandler(t *testing.T) {
	t.Run("passes filters and wraps the envelope", func(t *testing.T) {
		h, itemService := newTestItemHandlers()

		items := make([]models.Item, 12)
		for i := range items {
			items[i] = models.Item{ItemID: "item", Category: "Electronics", AvailabilityStatus: models.ItemAvailable}
		}

		itemService.On("List", mock.Anything, repository.ItemFilter{
			Category:           "Electronics",
			AvailabilityStatus: models.ItemAvailable,
		}, 1, 12).Return(items, 15, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/items?category=Electronics&status=AVAILABLE&limit=12", nil)
		rr := httptest.NewRecorder()
		h.GetItems(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp ItemsResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Len(t, resp.Items, 12)
		assert.Equal(t, 15, resp.Pagination.Total)
		assert.Equal(t, 2, resp.Pagination.TotalPages)
	})

	t.Run("no filters lists everything", func(t *testing.T) {
		h, itemService := newTestItemHandlers()

		itemService.On("List", mock.Anything, repository.ItemFilter{}, 1, 20).
			Return([]models.Item{}, 0, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
		rr := httptest.NewRecorder()
		h.GetItems(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		itemService.AssertExpectations(t)
	})
}

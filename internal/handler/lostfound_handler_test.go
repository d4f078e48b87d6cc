package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"campusmarket/internal/models"
	"campusmarket/internal/repository"
	"campusmarket/internal/service"
)

// serveWithVars routes the request through gorilla/mux so path variables resolve.
func serveWithVars(h http.HandlerFunc, method, pattern string, req *http.Request) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc(pattern, h).Methods(method)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func authedRequest(method, path string, userID string, body interface{}) *http.Request {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req = req.WithContext(context.WithValue(req.Context(), "userID", userID))
	}
	return req
}

func TestGetLostFoundPostsHandler(t *testing.T) {
	t.Run("pagination envelope with totalPages", func(t *testing.T) {
		h, _, _, lostFoundService := newTestHandlers()

		posts := make([]models.LostFoundPost, 12)
		for i := range posts {
			posts[i] = models.LostFoundPost{PostID: "post", Type: models.PostTypeLost, Status: models.PostStatusActive}
		}

		lostFoundService.On("List", mock.Anything, repository.LostFoundFilter{
			Type:   models.PostTypeLost,
			Status: models.PostStatusActive,
		}, 1, 12).Return(posts, 15, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/lost-found?page=1&limit=12&type=LOST", nil)
		rr := httptest.NewRecorder()
		h.GetLostFoundPosts(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp LostFoundListResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Len(t, resp.Posts, 12)
		assert.Equal(t, 15, resp.Pagination.Total)
		assert.Equal(t, 2, resp.Pagination.TotalPages)
	})

	t.Run("status defaults to ACTIVE", func(t *testing.T) {
		h, _, _, lostFoundService := newTestHandlers()

		lostFoundService.On("List", mock.Anything, repository.LostFoundFilter{
			Status: models.PostStatusActive,
		}, 1, 20).Return([]models.LostFoundPost{}, 0, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/lost-found", nil)
		rr := httptest.NewRecorder()
		h.GetLostFoundPosts(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		lostFoundService.AssertExpectations(t)
	})
}

func TestGetLostFoundPostHandler_NotFound(t *testing.T) {
	h, _, _, lostFoundService := newTestHandlers()

	lostFoundService.On("GetByID", mock.Anything, "ghost").Return(nil, service.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/lost-found/ghost", nil)
	rr := serveWithVars(h.GetLostFoundPost, http.MethodGet, "/api/lost-found/{id}", req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateLostFoundPostHandler(t *testing.T) {
	t.Run("missing auth context is a 401", func(t *testing.T) {
		h, _, _, _ := newTestHandlers()

		req := authedRequest(http.MethodPut, "/api/lost-found/post-1", "", map[string]string{"status": "RESOLVED"})
		rr := serveWithVars(h.UpdateLostFoundPost, http.MethodPut, "/api/lost-found/{id}", req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("wrong owner is a 403", func(t *testing.T) {
		h, _, _, lostFoundService := newTestHandlers()

		lostFoundService.On("Update", mock.Anything, "stranger", "post-1", mock.Anything).
			Return(nil, service.ErrForbidden)

		req := authedRequest(http.MethodPut, "/api/lost-found/post-1", "stranger", map[string]string{"status": "RESOLVED"})
		rr := serveWithVars(h.UpdateLostFoundPost, http.MethodPut, "/api/lost-found/{id}", req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("unknown post is a 404 even for a stranger", func(t *testing.T) {
		h, _, _, lostFoundService := newTestHandlers()

		lostFoundService.On("Update", mock.Anything, "stranger", "ghost", mock.Anything).
			Return(nil, service.ErrNotFound)

		req := authedRequest(http.MethodPut, "/api/lost-found/ghost", "stranger", map[string]string{"status": "RESOLVED"})
		rr := serveWithVars(h.UpdateLostFoundPost, http.MethodPut, "/api/lost-found/{id}", req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("owner resolves the post", func(t *testing.T) {
		h, _, _, lostFoundService := newTestHandlers()

		lostFoundService.On("Update", mock.Anything, "owner-1", "post-1", mock.MatchedBy(func(input service.UpdateLostFoundInput) bool {
			return input.Status != nil && *input.Status == models.PostStatusResolved
		})).Return(&models.LostFoundPost{
			PostID: "post-1",
			UserID: "owner-1",
			Status: models.PostStatusResolved,
		}, nil)

		req := authedRequest(http.MethodPut, "/api/lost-found/post-1", "owner-1", map[string]string{"status": "RESOLVED"})
		rr := serveWithVars(h.UpdateLostFoundPost, http.MethodPut, "/api/lost-found/{id}", req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("invalid status fails validation", func(t *testing.T) {
		h, _, _, lostFoundService := newTestHandlers()

		req := authedRequest(http.MethodPut, "/api/lost-found/post-1", "owner-1", map[string]string{"status": "GONE"})
		rr := serveWithVars(h.UpdateLostFoundPost, http.MethodPut, "/api/lost-found/{id}", req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		lostFoundService.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteLostFoundPostHandler(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		h, _, _, lostFoundService := newTestHandlers()

		lostFoundService.On("Delete", mock.Anything, "owner-1", "post-1").Return(nil)

		req := authedRequest(http.MethodDelete, "/api/lost-found/post-1", "owner-1", nil)
		rr := serveWithVars(h.DeleteLostFoundPost, http.MethodDelete, "/api/lost-found/{id}", req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("wrong owner is a 403", func(t *testing.T) {
		h, _, _, lostFoundService := newTestHandlers()

		lostFoundService.On("Delete", mock.Anything, "stranger", "post-1").Return(service.ErrForbidden)

		req := authedRequest(http.MethodDelete, "/api/lost-found/post-1", "stranger", nil)
		rr := serveWithVars(h.DeleteLostFoundPost, http.MethodDelete, "/api/lost-found/{id}", req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestCreateLostFoundHandler(t *testing.T) {
	t.Run("creates a post", func(t *testing.T) {
		h, _, _, lostFoundService := newTestHandlers()

		lostFoundService.On("Create", mock.Anything, "owner-1", mock.MatchedBy(func(input service.CreateLostFoundInput) bool {
			return input.Type == models.PostTypeLost && input.Title == "Blue backpack"
		})).Return(&models.LostFoundPost{
			PostID: "post-1",
			UserID: "owner-1",
			Type:   models.PostTypeLost,
			Title:  "Blue backpack",
			Status: models.PostStatusActive,
		}, nil)

		req := authedRequest(http.MethodPost, "/api/lost-found", "owner-1", map[string]string{
			"type":     "LOST",
			"title":    "Blue backpack",
			"category": "Bags",
		})
		rr := httptest.NewRecorder()
		h.CreateLostFound(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		body := decodeBody(t, rr)
		assert.Equal(t, "Lost item reported successfully", body["message"])
	})

	t.Run("bad type fails validation", func(t *testing.T) {
		h, _, _, lostFoundService := newTestHandlers()

		req := authedRequest(http.MethodPost, "/api/lost-found", "owner-1", map[string]string{
			"type":     "MISPLACED",
			"title":    "Blue backpack",
			"category": "Bags",
		})
		rr := httptest.NewRecorder()
		h.CreateLostFound(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		lostFoundService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"campusmarket/internal/models"
	"campusmarket/internal/repository"
	"campusmarket/internal/service"
)

type CreateLostFoundRequest struct {
	Type        string   `json:"type" validate:"required,oneof=LOST FOUND"`
	Title       string   `json:"title" validate:"required,min=2,max=255"`
	Category    string   `json:"category" validate:"required"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Photo       *string  `json:"photo"`
	Photos      []string `json:"photos" validate:"omitempty,max=5"`
	Location    *string  `json:"location" validate:"omitempty,max=500"`
	Date        *string  `json:"date"`
	ContactInfo *string  `json:"contactInfo" validate:"omitempty,max=500"`
}

type UpdateLostFoundRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=2,max=255"`
	Category    *string  `json:"category"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Photo       *string  `json:"photo"`
	Photos      []string `json:"photos" validate:"omitempty,max=5"`
	Location    *string  `json:"location" validate:"omitempty,max=500"`
	Date        *string  `json:"date"`
	ContactInfo *string  `json:"contactInfo" validate:"omitempty,max=500"`
	Status      *string  `json:"status" validate:"omitempty,oneof=ACTIVE RESOLVED"`
}

type LostFoundListResponse struct {
	Posts      []models.LostFoundPost `json:"posts"`
	Pagination PaginationResponse     `json:"pagination"`
}

// parseDate accepts RFC 3339 or bare dates from the client.
func parseDate(value *string) (*time.Time, bool) {
	if value == nil || *value == "" {
		return nil, true
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, *value); err == nil {
			return &t, true
		}
	}
	return nil, false
}

func (h *Handlers) CreateLostFound(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		WriteError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateLostFoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	date, ok := parseDate(req.Date)
	if !ok {
		WriteError(w, "Invalid date format", http.StatusBadRequest)
		return
	}

	post, err := h.LostFoundService.Create(r.Context(), userID, service.CreateLostFoundInput{
		Type:        req.Type,
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Photo:       req.Photo,
		Photos:      req.Photos,
		Location:    req.Location,
		Date:        date,
		ContactInfo: req.ContactInfo,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	message := "Found item reported successfully"
	if post.Type == models.PostTypeLost {
		message = "Lost item reported successfully"
	}

	WriteSuccess(w, map[string]interface{}{
		"message": message,
		"post":    post,
	}, http.StatusCreated)
}

func (h *Handlers) GetLostFoundPosts(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	// Status defaults to ACTIVE; resolved posts must be asked for explicitly.
	status := r.URL.Query().Get("status")
	if status == "" {
		status = models.PostStatusActive
	}

	filter := repository.LostFoundFilter{
		Type:     r.URL.Query().Get("type"),
		Category: r.URL.Query().Get("category"),
		Status:   status,
		UserID:   r.URL.Query().Get("userId"),
	}

	posts, total, err := h.LostFoundService.List(r.Context(), filter, page, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, LostFoundListResponse{
		Posts:      posts,
		Pagination: newPagination(page, limit, total),
	}, http.StatusOK)
}

func (h *Handlers) GetLostFoundPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	post, err := h.LostFoundService.GetByID(r.Context(), postID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{"post": post}, http.StatusOK)
}

func (h *Handlers) UpdateLostFoundPost(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		WriteError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]

	var req UpdateLostFoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	date, ok := parseDate(req.Date)
	if !ok {
		WriteError(w, "Invalid date format", http.StatusBadRequest)
		return
	}

	post, err := h.LostFoundService.Update(r.Context(), userID, postID, service.UpdateLostFoundInput{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Photo:       req.Photo,
		Photos:      req.Photos,
		Location:    req.Location,
		Date:        date,
		ContactInfo: req.ContactInfo,
		Status:      req.Status,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"message": "Post updated successfully",
		"post":    post,
	}, http.StatusOK)
}

func (h *Handlers) DeleteLostFoundPost(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		WriteError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]

	if err := h.LostFoundService.Delete(r.Context(), userID, postID); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Post deleted successfully"}, http.StatusOK)
}

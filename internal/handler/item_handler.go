package handlers

import (
	"encoding/json"
	"net/http"

	"campusmarket/internal/models"
	"campusmarket/internal/repository"
	"campusmarket/internal/service"
)

type CreateItemRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=255"`
	Category    string  `json:"category" validate:"required"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Price       float64 `json:"price" validate:"gte=0"`
	Condition   string  `json:"condition" validate:"required,oneof=NEW LIKE_NEW GOOD FAIR POOR"`
	Photo       *string `json:"photo"`
}

type ItemsResponse struct {
	Items      []models.Item      `json:"items"`
	Pagination PaginationResponse `json:"pagination"`
}

func (h *Handlers) CreateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		WriteError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.ItemService.Create(r.Context(), userID, service.CreateItemInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		Condition:   req.Condition,
		Photo:       req.Photo,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"message": "Item listed successfully",
		"item":    item,
	}, http.StatusCreated)
}

func (h *Handlers) GetItems(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	filter := repository.ItemFilter{
		Category:           r.URL.Query().Get("category"),
		AvailabilityStatus: r.URL.Query().Get("status"),
		UserID:             r.URL.Query().Get("userId"),
	}

	items, total, err := h.ItemService.List(r.Context(), filter, page, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, ItemsResponse{
		Items:      items,
		Pagination: newPagination(page, limit, total),
	}, http.StatusOK)
}

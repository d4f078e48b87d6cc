package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"campusmarket/internal/config"
	"campusmarket/internal/service"
)

type Handlers struct {
	AuthService      service.AuthService
	GoogleService    service.GoogleAuthService
	ItemService      service.ItemService
	LostFoundService service.LostFoundService
	UserService      service.UserService
	Cfg              *config.Config
	Validate         *validator.Validate
}

func NewHandlers(services *service.Service, cfg *config.Config) *Handlers {
	return &Handlers{
		AuthService:      services.Auth,
		GoogleService:    services.Google,
		ItemService:      services.Item,
		LostFoundService: services.LostFound,
		UserService:      services.User,
		Cfg:              cfg,
		Validate:         validator.New(),
	}
}

type PaginationResponse struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func newPagination(page, limit, total int) PaginationResponse {
	return PaginationResponse{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}
}

// parsePagination reads page/limit query parameters with sane bounds.
func parsePagination(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	return page, limit
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}

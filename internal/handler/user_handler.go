package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"campusmarket/internal/models"
)

// ProfileUser is the public profile payload. It exposes more than AuthUser
// (deal stats) but still no email or auth details.
type ProfileUser struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Photo              *string  `json:"photo"`
	College            string   `json:"college"`
	VerificationStatus string   `json:"verificationStatus"`
	TrustScore         float64  `json:"trustScore"`
	Badges             []string `json:"badges"`
	AvgRating          float64  `json:"avgRating"`
	CompletedDeals     int      `json:"completedDeals"`
	CancellationRate   float64  `json:"cancellationRate"`
	IsOnline           bool     `json:"isOnline"`
	LastSeen           string   `json:"lastSeen"`
	CreatedAt          string   `json:"createdAt"`
}

type ProfileResponse struct {
	User    ProfileUser     `json:"user"`
	Ratings []models.Rating `json:"ratings"`
	Items   []models.Item   `json:"items"`
}

func (h *Handlers) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	profile, err := h.UserService.GetProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	user := profile.User
	WriteSuccess(w, ProfileResponse{
		User: ProfileUser{
			ID:                 user.UserID,
			Name:               user.Name,
			Photo:              user.Photo,
			College:            user.College,
			VerificationStatus: user.VerificationStatus,
			TrustScore:         user.TrustScore,
			Badges:             user.Badges,
			AvgRating:          user.AvgRating,
			CompletedDeals:     user.CompletedDeals,
			CancellationRate:   user.CancellationRate,
			IsOnline:           user.IsOnline,
			LastSeen:           user.LastSeen.Format(time.RFC3339),
			CreatedAt:          user.CreatedAt.Format(time.RFC3339),
		},
		Ratings: profile.Ratings,
		Items:   profile.Items,
	}, http.StatusOK)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"campusmarket/internal/models"
	"campusmarket/internal/service"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	College  string `json:"college" validate:"required,min=2,max=200"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type VerifyIDRequest struct {
	UserID     string `json:"userId" validate:"required,uuid4"`
	IDPhotoURL string `json:"idPhotoUrl" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthUser is the user payload returned by the auth endpoints.
type AuthUser struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	College            string   `json:"college"`
	Photo              *string  `json:"photo"`
	VerificationStatus string   `json:"verificationStatus"`
	TrustScore         float64  `json:"trustScore"`
	Badges             []string `json:"badges"`
	AvgRating          float64  `json:"avgRating"`
}

func newAuthUser(user *models.User) AuthUser {
	return AuthUser{
		ID:                 user.UserID,
		Name:               user.Name,
		Email:              user.Email,
		College:            user.College,
		Photo:              user.Photo,
		VerificationStatus: user.VerificationStatus,
		TrustScore:         user.TrustScore,
		Badges:             user.Badges,
		AvgRating:          user.AvgRating,
	}
}

type AuthResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    AuthUser `json:"user"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, otp, err := h.AuthService.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		College:  req.College,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := map[string]interface{}{
		"message": "Registration successful. Check your email for the verification code.",
		"user":    newAuthUser(user),
	}
	// Outside production the service hands the OTP back for test convenience.
	if otp != "" {
		response["otp"] = otp
	}

	WriteSuccess(w, response, http.StatusOK)
}

func (h *Handlers) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req VerifyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.AuthService.VerifyEmail(r.Context(), req.Email, req.OTP); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Email verified successfully"}, http.StatusOK)
}

func (h *Handlers) VerifyID(w http.ResponseWriter, r *http.Request) {
	var req VerifyIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.AuthService.VerifyID(r.Context(), req.UserID, req.IDPhotoURL); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "ID submitted for verification"}, http.StatusOK)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    newAuthUser(user),
	}, http.StatusOK)
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"campusmarket/internal/service"
)

type GoogleAuthRequest struct {
	Credential string `json:"credential" validate:"required"`
}

type GoogleAuthResponse struct {
	Message   string   `json:"message"`
	Token     string   `json:"token"`
	User      AuthUser `json:"user"`
	IsNewUser bool     `json:"isNewUser"`
}

func (h *Handlers) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	var req GoogleAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, token, isNewUser, err := h.GoogleService.ExchangeCredential(r.Context(), req.Credential)
	if err != nil {
		// The Google path rejects non-student domains with 403, not 400:
		// the address is well-formed, the account is just not eligible.
		if errors.Is(err, service.ErrInvalidEmailDomain) {
			WriteError(w, err.Error(), http.StatusForbidden)
			return
		}
		writeServiceError(w, err)
		return
	}

	message := "Login successful with Google"
	if isNewUser {
		message = "Account created successfully with Google"
	}

	WriteSuccess(w, GoogleAuthResponse{
		Message:   message,
		Token:     token,
		User:      newAuthUser(user),
		IsNewUser: isNewUser,
	}, http.StatusOK)
}

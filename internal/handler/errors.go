package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"campusmarket/internal/service"
)

// ErrorResponse is the uniform failure body.
type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeServiceError maps domain errors to HTTP statuses. Anything unexpected
// is logged and surfaced as a bare 500 with no internal detail.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		WriteError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrInvalidEmailDomain):
		WriteError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidOTP):
		WriteError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, service.ErrInvalidToken):
		WriteError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, service.ErrInvalidCredential):
		WriteError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, service.ErrUnverifiedEmail):
		WriteError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, "Not found", http.StatusNotFound)
	case errors.Is(err, service.ErrForbidden):
		WriteError(w, err.Error(), http.StatusForbidden)
	default:
		log.Printf("Internal error: %v", err)
		WriteError(w, "Internal server error", http.StatusInternalServerError)
	}
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"campusmarket/internal/config"
	"campusmarket/internal/models"
	"campusmarket/internal/repository"
)

type GoogleAuthService interface {
	ExchangeCredential(ctx context.Context, credential string) (*models.User, string, bool, error)
}

// googleTokenPayload is the relevant subset of Google's tokeninfo response.
// email_verified arrives as the string "true"/"false".
type googleTokenPayload struct {
	Sub           string `json:"sub"`
	Aud           string `json:"aud"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

type googleAuthService struct {
	userRepo repository.UserRepository
	auth     AuthService
	cfg      *config.Config
	client   *http.Client
}

func NewGoogleAuthService(userRepo repository.UserRepository, auth AuthService, cfg *config.Config) GoogleAuthService {
	return &googleAuthService{
		userRepo: userRepo,
		auth:     auth,
		cfg:      cfg,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// verifyCredential presents the ID token to Google's tokeninfo endpoint and
// returns the verified payload. Any non-200 response or audience mismatch is
// a verification failure.
func (s *googleAuthService) verifyCredential(ctx context.Context, credential string) (*googleTokenPayload, error) {
	endpoint := fmt.Sprintf("%s?id_token=%s", s.cfg.GoogleTokenURL, url.QueryEscape(credential))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build tokeninfo request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, ErrInvalidCredential
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Google token verification failed with status: %d", resp.StatusCode)
		return nil, ErrInvalidCredential
	}

	var payload googleTokenPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, ErrInvalidCredential
	}

	if s.cfg.GoogleClientID != "" && payload.Aud != s.cfg.GoogleClientID {
		log.Printf("Google token audience mismatch: got %s", payload.Aud)
		return nil, ErrInvalidCredential
	}

	return &payload, nil
}

// ExchangeCredential converts a Google ID token into a local session.
// Each gate aborts before any store mutation: provider verification, provider
// email-verified flag, then the student-domain predicate. Account resolution
// merges by Google subject id or email, never duplicating a user.
func (s *googleAuthService) ExchangeCredential(ctx context.Context, credential string) (*models.User, string, bool, error) {
	payload, err := s.verifyCredential(ctx, credential)
	if err != nil {
		return nil, "", false, err
	}

	if payload.EmailVerified != "true" {
		return nil, "", false, ErrUnverifiedEmail
	}

	if !IsStudentEmail(payload.Email) {
		return nil, "", false, ErrInvalidEmailDomain
	}

	email := strings.ToLower(payload.Email)

	user, isNewUser, err := s.resolveUser(ctx, payload, email)
	if err != nil {
		return nil, "", false, err
	}

	token, err := s.auth.IssueSession(ctx, user.UserID)
	if err != nil {
		return nil, "", false, err
	}

	return user, token, isNewUser, nil
}

func (s *googleAuthService) resolveUser(ctx context.Context, payload *googleTokenPayload, email string) (*models.User, bool, error) {
	user, err := s.userRepo.GetUserByGoogleIDOrEmail(ctx, payload.Sub, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to look up user: %w", err)
	}

	if user == nil {
		newUser := &models.User{
			Name:          payload.Name,
			Email:         email,
			GoogleID:      &payload.Sub,
			EmailVerified: true,
		}
		if payload.Picture != "" {
			newUser.Photo = &payload.Picture
		}

		err = s.userRepo.CreateUser(ctx, newUser)
		if err == nil {
			return newUser, true, nil
		}
		if !errors.Is(err, repository.ErrEmailTaken) {
			return nil, false, fmt.Errorf("failed to create user: %w", err)
		}

		// A concurrent exchange for the same email won the insert race.
		// Fall through to the existing-user branch with a fresh read.
		user, err = s.userRepo.GetUserByGoogleIDOrEmail(ctx, payload.Sub, email)
		if err != nil {
			return nil, false, fmt.Errorf("failed to re-fetch user after conflict: %w", err)
		}
	}

	if user.GoogleID == nil || *user.GoogleID == "" {
		var photo *string
		if payload.Picture != "" {
			photo = &payload.Picture
		}
		if err := s.userRepo.LinkGoogleAccount(ctx, user.UserID, payload.Sub, photo); err != nil {
			return nil, false, fmt.Errorf("failed to link google account: %w", err)
		}
		user, err = s.userRepo.GetUserByID(ctx, user.UserID)
		if err != nil {
			return nil, false, fmt.Errorf("failed to reload user: %w", err)
		}
	}

	return user, false, nil
}

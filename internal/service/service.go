package service

import (
	"errors"

	"campusmarket/internal/config"
	"campusmarket/internal/mail"
	"campusmarket/internal/repository"
	"campusmarket/internal/storage"
)

// Domain errors surfaced to handlers. They carry no detail about whether a
// record exists beyond what the endpoint contract allows.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidEmailDomain = errors.New("only student emails (.edu) or organization emails (.org) are allowed")
	ErrInvalidOTP         = errors.New("invalid or expired verification code")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidCredential  = errors.New("invalid Google credential")
	ErrUnverifiedEmail    = errors.New("Google email is not verified")
	ErrNotFound           = errors.New("record not found")
	ErrForbidden          = errors.New("you do not own this record")
)

type Service struct {
	Auth      AuthService
	Google    GoogleAuthService
	Item      ItemService
	LostFound LostFoundService
	User      UserService
}

func NewService(repo *repository.Repository, cfg *config.Config, store storage.Storage, mailer mail.Mailer) *Service {
	auth := NewAuthService(repo.User, repo.Session, repo.OTP, mailer, cfg)

	return &Service{
		Auth:      auth,
		Google:    NewGoogleAuthService(repo.User, auth, cfg),
		Item:      NewItemService(repo.Item, store),
		LostFound: NewLostFoundService(repo.LostFound, store),
		User:      NewUserService(repo.User, repo.Rating, repo.Item),
	}
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"campusmarket/internal/models"
)

// Storage-level sentinel errors. Handlers map these to HTTP statuses.
var (
	ErrNotFound   = errors.New("record not found")
	ErrEmailTaken = errors.New("email already registered")
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, userID string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByGoogleIDOrEmail(ctx context.Context, googleID, email string) (*models.User, error)
	LinkGoogleAccount(ctx context.Context, userID, googleID string, photo *string) error
	MarkEmailVerified(ctx context.Context, email string) error
	SetIDPhoto(ctx context.Context, userID, idPhotoURL string) error
	UpdatePresence(ctx context.Context, userID string, online bool) error
}

type SessionRepository interface {
	CreateSession(ctx context.Context, session *models.Session) error
	GetSessionByToken(ctx context.Context, token string) (*models.Session, error)
}

type OTPRepository interface {
	UpsertCode(ctx context.Context, email, code string, expiresAt time.Time) error
	GetCode(ctx context.Context, email string) (*models.EmailVerification, error)
	DeleteCode(ctx context.Context, email string) error
}

type ItemFilter struct {
	Category           string
	AvailabilityStatus string
	UserID             string
}

type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	List(ctx context.Context, filter ItemFilter, limit, offset int) ([]models.Item, int, error)
	GetAvailableByUserID(ctx context.Context, userID string) ([]models.Item, error)
}

type LostFoundFilter struct {
	Type     string
	Category string
	Status   string
	UserID   string
}

type LostFoundRepository interface {
	Create(ctx context.Context, post *models.LostFoundPost) error
	GetByID(ctx context.Context, postID string) (*models.LostFoundPost, error)
	List(ctx context.Context, filter LostFoundFilter, limit, offset int) ([]models.LostFoundPost, int, error)
	Update(ctx context.Context, post *models.LostFoundPost) error
	Delete(ctx context.Context, postID string) error
}

type RatingRepository interface {
	GetByToUserID(ctx context.Context, userID string) ([]models.Rating, error)
}

type Repository struct {
	User      UserRepository
	Session   SessionRepository
	OTP       OTPRepository
	Item      ItemRepository
	LostFound LostFoundRepository
	Rating    RatingRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:      NewUserRepository(db),
		Session:   NewSessionRepository(db),
		OTP:       NewOTPRepository(db),
		Item:      NewItemRepository(db),
		LostFound: NewLostFoundRepository(db),
		Rating:    NewRatingRepository(db),
	}
}

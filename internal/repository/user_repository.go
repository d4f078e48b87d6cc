package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"campusmarket/internal/models"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateUser inserts a new user. The users.email unique constraint is the
// arbiter for concurrent registrations: a duplicate insert surfaces as
// ErrEmailTaken no matter which request wins the race.
func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	if user.UserID == "" {
		user.UserID = uuid.New().String()
	}
	if user.VerificationStatus == "" {
		user.VerificationStatus = models.VerificationUnverified
	}
	if user.Badges == nil {
		user.Badges = []string{}
	}

	now := time.Now()
	user.LastSeen = now
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (user_id, name, email, password_hash, google_id, photo, college,
			email_verified, verification_status, badges, last_seen, created_at, updated_at)
		VALUES (:user_id, :name, :email, :password_hash, :google_id, :photo, :college,
			:email_verified, :verification_status, :badges, :last_seen, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value") {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// DeleteUser removes a user row; dependent rows go with it via the cascading
// foreign keys.
func (r *userRepository) DeleteUser(ctx context.Context, userID string) error {
	query := `DELETE FROM users WHERE user_id = $1`

	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE user_id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByGoogleIDOrEmail(ctx context.Context, googleID, email string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE google_id = $1 OR email = $2 LIMIT 1`

	err := r.db.GetContext(ctx, &user, query, googleID, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by google id or email: %w", err)
	}

	return &user, nil
}

// LinkGoogleAccount attaches a Google subject id to an existing account.
// The photo is only filled in when the account has none yet.
func (r *userRepository) LinkGoogleAccount(ctx context.Context, userID, googleID string, photo *string) error {
	query := `
		UPDATE users
		SET google_id = $1,
			photo = COALESCE(photo, $2),
			email_verified = TRUE,
			updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $3
	`

	result, err := r.db.ExecContext(ctx, query, googleID, photo, userID)
	if err != nil {
		return fmt.Errorf("failed to link google account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *userRepository) MarkEmailVerified(ctx context.Context, email string) error {
	query := `
		UPDATE users
		SET email_verified = TRUE, updated_at = CURRENT_TIMESTAMP
		WHERE email = $1
	`

	result, err := r.db.ExecContext(ctx, query, email)
	if err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *userRepository) SetIDPhoto(ctx context.Context, userID, idPhotoURL string) error {
	query := `
		UPDATE users
		SET id_photo = $1, verification_status = $2, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $3
	`

	result, err := r.db.ExecContext(ctx, query, idPhotoURL, models.VerificationPending, userID)
	if err != nil {
		return fmt.Errorf("failed to save id photo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *userRepository) UpdatePresence(ctx context.Context, userID string, online bool) error {
	query := `
		UPDATE users
		SET is_online = $1, last_seen = CURRENT_TIMESTAMP
		WHERE user_id = $2
	`

	_, err := r.db.ExecContext(ctx, query, online, userID)
	if err != nil {
		return fmt.Errorf("failed to update presence: %w", err)
	}

	return nil
}

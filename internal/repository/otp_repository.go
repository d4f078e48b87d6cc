package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"campusmarket/internal/models"
)

type otpRepository struct {
	db *sqlx.DB
}

func NewOTPRepository(db *sqlx.DB) OTPRepository {
	return &otpRepository{db: db}
}

// UpsertCode stores the code for an email, replacing any earlier one.
// Only the most recently issued code is ever valid.
func (r *otpRepository) UpsertCode(ctx context.Context, email, code string, expiresAt time.Time) error {
	query := `
		INSERT INTO email_verifications (email, code, expires_at, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		ON CONFLICT (email) DO UPDATE
		SET code = EXCLUDED.code,
			expires_at = EXCLUDED.expires_at,
			created_at = CURRENT_TIMESTAMP
	`

	_, err := r.db.ExecContext(ctx, query, email, code, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}

	return nil
}

func (r *otpRepository) GetCode(ctx context.Context, email string) (*models.EmailVerification, error) {
	var verification models.EmailVerification

	query := `SELECT * FROM email_verifications WHERE email = $1`

	err := r.db.GetContext(ctx, &verification, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get verification code: %w", err)
	}

	return &verification, nil
}

func (r *otpRepository) DeleteCode(ctx context.Context, email string) error {
	query := `DELETE FROM email_verifications WHERE email = $1`

	_, err := r.db.ExecContext(ctx, query, email)
	if err != nil {
		return fmt.Errorf("failed to delete verification code: %w", err)
	}

	return nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"campusmarket/internal/models"
)

type sessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) CreateSession(ctx context.Context, session *models.Session) error {
	if session.SessionID == "" {
		session.SessionID = uuid.New().String()
	}
	session.CreatedAt = time.Now()

	query := `
		INSERT INTO sessions (session_id, user_id, token, expires_at, created_at)
		VALUES (:session_id, :user_id, :token, :expires_at, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, session)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// GetSessionByToken returns the session only while it is unexpired.
func (r *sessionRepository) GetSessionByToken(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session

	query := `
		SELECT * FROM sessions
		WHERE token = $1
		AND expires_at > CURRENT_TIMESTAMP
	`

	err := r.db.GetContext(ctx, &session, query, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session by token: %w", err)
	}

	return &session, nil
}

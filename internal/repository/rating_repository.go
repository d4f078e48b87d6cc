package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"campusmarket/internal/models"
)

type ratingRepository struct {
	db *sqlx.DB
}

func NewRatingRepository(db *sqlx.DB) RatingRepository {
	return &ratingRepository{db: db}
}

type ratingRow struct {
	models.Rating
	RaterID           string  `db:"rater_id"`
	RaterName         string  `db:"rater_name"`
	RaterPhoto        *string `db:"rater_photo"`
	RaterCollege      string  `db:"rater_college"`
	RaterVerification string  `db:"rater_verification"`
}

// GetByToUserID returns the ratings a user has received, newest first,
// each with the rater's public profile attached.
func (r *ratingRepository) GetByToUserID(ctx context.Context, userID string) ([]models.Rating, error) {
	query := `
		SELECT rt.*,
			u.user_id AS rater_id,
			u.name AS rater_name,
			u.photo AS rater_photo,
			u.college AS rater_college,
			u.verification_status AS rater_verification
		FROM ratings rt
		JOIN users u ON u.user_id = rt.from_user_id
		WHERE rt.to_user_id = $1
		ORDER BY rt.created_at DESC
	`

	rows := []ratingRow{}
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}

	ratings := make([]models.Rating, 0, len(rows))
	for i := range rows {
		rating := rows[i].Rating
		rating.FromUser = &models.PublicUser{
			UserID:             rows[i].RaterID,
			Name:               rows[i].RaterName,
			Photo:              rows[i].RaterPhoto,
			College:            rows[i].RaterCollege,
			VerificationStatus: rows[i].RaterVerification,
		}
		ratings = append(ratings, rating)
	}

	return ratings, nil
}

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

type lostFoundRepository struct {
	db *sqlx.DB
}

func NewLostFoundRepository(db *sqlx.DB) LostFoundRepository {
	return &lostFoundRepository{db: db}
}

// lostFoundRow carries a post together with the poster columns joined from users.
type lostFoundRow struct {
	models.LostFoundPost
	PosterID           string  `db:"poster_id"`
	PosterName         string  `db:"poster_name"`
	PosterPhoto        *string `db:"poster_photo"`
	PosterCollege      string  `db:"poster_college"`
	PosterVerification string  `db:"poster_verification"`
}

func (row *lostFoundRow) toPost() models.LostFoundPost {
	post := row.LostFoundPost
	post.User = &models.PublicUser{
		UserID:             row.PosterID,
		Name:               row.PosterName,
		Photo:              row.PosterPhoto,
		College:            row.PosterCollege,
		VerificationStatus: row.PosterVerification,
	}
	return post
}

const lostFoundSelect = `
	SELECT p.*,
		u.user_id AS poster_id,
		u.name AS poster_name,
		u.photo AS poster_photo,
		u.college AS poster_college,
		u.verification_status AS poster_verification
	FROM lost_found_posts p
	JOIN users u ON u.user_id = p.user_id
`

func (r *lostFoundRepository) Create(ctx context.Context, post *models.LostFoundPost) error {
	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}
	if post.Status == "" {
		post.Status = models.PostStatusActive
	}
	if post.Photos == nil {
		post.Photos = []string{}
	}
	post.CreatedAt = time.Now()

	query := `
		INSERT INTO lost_found_posts (post_id, user_id, type, title, category, description,
			photo, photos, location, date, contact_info, status, created_at)
		VALUES (:post_id, :user_id, :type, :title, :category, :description,
			:photo, :photos, :location, :date, :contact_info, :status, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *lostFoundRepository) GetByID(ctx context.Context, postID string) (*models.LostFoundPost, error) {
	var row lostFoundRow

	query := lostFoundSelect + ` WHERE p.post_id = $1`

	err := r.db.GetContext(ctx, &row, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	post := row.toPost()
	return &post, nil
}

// List returns a page of posts, newest first, plus the total match count.
func (r *lostFoundRepository) List(ctx context.Context, filter LostFoundFilter, limit, offset int) ([]models.LostFoundPost, int, error) {
	conditions := []string{}
	args := []interface{}{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conditions = append(conditions, fmt.Sprintf("p.type = $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("p.category = $%d", len(args)))
	}
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		conditions = append(conditions, fmt.Sprintf("p.user_id = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM lost_found_posts p %s", where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	args = append(args, limit, offset)
	listQuery := fmt.Sprintf(`%s %s
		ORDER BY p.created_at DESC
		LIMIT $%d OFFSET $%d
	`, lostFoundSelect, where, len(args)-1, len(args))

	rows := []lostFoundRow{}
	if err := r.db.SelectContext(ctx, &rows, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}

	posts := make([]models.LostFoundPost, 0, len(rows))
	for i := range rows {
		posts = append(posts, rows[i].toPost())
	}

	return posts, total, nil
}

func (r *lostFoundRepository) Update(ctx context.Context, post *models.LostFoundPost) error {
	query := `
		UPDATE lost_found_posts SET
			title = :title,
			category = :category,
			description = :description,
			photo = :photo,
			photos = :photos,
			location = :location,
			date = :date,
			contact_info = :contact_info,
			status = :status
		WHERE post_id = :post_id
	`

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
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

func (r *lostFoundRepository) Delete(ctx context.Context, postID string) error {
	query := `DELETE FROM lost_found_posts WHERE post_id = $1`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
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

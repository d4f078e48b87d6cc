package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"campusmarket/internal/models"
)

type itemRepository struct {
	db *sqlx.DB
}

func NewItemRepository(db *sqlx.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *models.Item) error {
	if item.ItemID == "" {
		item.ItemID = uuid.New().String()
	}
	if item.AvailabilityStatus == "" {
		item.AvailabilityStatus = models.ItemAvailable
	}
	item.CreatedAt = time.Now()

	query := `
		INSERT INTO items (item_id, user_id, name, category, description, price, condition,
			photo, availability_status, created_at)
		VALUES (:item_id, :user_id, :name, :category, :description, :price, :condition,
			:photo, :availability_status, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	return nil
}

// List returns a page of items plus the total match count for the filter.
func (r *itemRepository) List(ctx context.Context, filter ItemFilter, limit, offset int) ([]models.Item, int, error) {
	conditions := []string{}
	args := []interface{}{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.AvailabilityStatus != "" {
		args = append(args, filter.AvailabilityStatus)
		conditions = append(conditions, fmt.Sprintf("availability_status = $%d", len(args)))
	}
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM items %s", where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count items: %w", err)
	}

	args = append(args, limit, offset)
	listQuery := fmt.Sprintf(`
		SELECT * FROM items %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	items := []models.Item{}
	if err := r.db.SelectContext(ctx, &items, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list items: %w", err)
	}

	return items, total, nil
}

func (r *itemRepository) GetAvailableByUserID(ctx context.Context, userID string) ([]models.Item, error) {
	query := `
		SELECT * FROM items
		WHERE user_id = $1 AND availability_status = $2
		ORDER BY created_at DESC
	`

	items := []models.Item{}
	err := r.db.SelectContext(ctx, &items, query, userID, models.ItemAvailable)
	if err != nil {
		return nil, fmt.Errorf("failed to list user items: %w", err)
	}

	return items, nil
}

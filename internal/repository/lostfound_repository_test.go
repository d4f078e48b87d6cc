package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusmarket/internal/models"
)

func lostFoundColumns() []string {
	return []string{"post_id", "user_id", "type", "title", "category", "photos", "status", "created_at",
		"poster_id", "poster_name", "poster_college", "poster_verification"}
}

func addPostRow(rows *sqlmock.Rows, postID, userID, postType string) *sqlmock.Rows {
	return rows.AddRow(postID, userID, postType, "Blue backpack", "Bags", "{}", models.PostStatusActive,
		time.Now(), userID, "Alice", "Uni", models.VerificationVerified)
}

func TestLostFoundRepository_List(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewLostFoundRepository(sqlxDB)

	ctx := context.Background()

	t.Run("filters and pagination flow into the queries", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM lost_found_posts p WHERE p.status = \$1 AND p.type = \$2`).
			WithArgs(models.PostStatusActive, models.PostTypeLost).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(15))

		rows := sqlmock.NewRows(lostFoundColumns())
		for i := 0; i < 12; i++ {
			addPostRow(rows, "post", "user-1", models.PostTypeLost)
		}

		mock.ExpectQuery(`FROM lost_found_posts p`).
			WithArgs(models.PostStatusActive, models.PostTypeLost, 12, 0).
			WillReturnRows(rows)

		filter := LostFoundFilter{Status: models.PostStatusActive, Type: models.PostTypeLost}
		posts, total, err := repo.List(ctx, filter, 12, 0)

		require.NoError(t, err)
		assert.Len(t, posts, 12)
		assert.Equal(t, 15, total)
		require.NotNil(t, posts[0].User)
		assert.Equal(t, "Alice", posts[0].User.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("page past the end returns an empty list", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM lost_found_posts p WHERE p.status = \$1`).
			WithArgs(models.PostStatusActive).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		mock.ExpectQuery(`FROM lost_found_posts p`).
			WithArgs(models.PostStatusActive, 12, 24).
			WillReturnRows(sqlmock.NewRows(lostFoundColumns()))

		filter := LostFoundFilter{Status: models.PostStatusActive}
		posts, total, err := repo.List(ctx, filter, 12, 24)

		require.NoError(t, err)
		assert.Empty(t, posts)
		assert.Equal(t, 3, total)
	})
}

func TestLostFoundRepository_GetByID(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewLostFoundRepository(sqlxDB)

	ctx := context.Background()

	t.Run("found with poster attached", func(t *testing.T) {
		rows := addPostRow(sqlmock.NewRows(lostFoundColumns()), "post-1", "user-1", models.PostTypeLost)

		mock.ExpectQuery(`FROM lost_found_posts p`).
			WithArgs("post-1").
			WillReturnRows(rows)

		post, err := repo.GetByID(ctx, "post-1")

		require.NoError(t, err)
		assert.Equal(t, "post-1", post.PostID)
		require.NotNil(t, post.User)
		assert.Equal(t, "user-1", post.User.UserID)
	})

	t.Run("missing maps to ErrNotFound", func(t *testing.T) {
		mock.ExpectQuery(`FROM lost_found_posts p`).
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows(lostFoundColumns()))

		_, err := repo.GetByID(ctx, "ghost")

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestLostFoundRepository_Delete(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewLostFoundRepository(sqlxDB)

	ctx := context.Background()

	t.Run("deletes the row", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM lost_found_posts").
			WithArgs("post-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(ctx, "post-1")
		assert.NoError(t, err)
	})

	t.Run("missing maps to ErrNotFound", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM lost_found_posts").
			WithArgs("ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, "ghost")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

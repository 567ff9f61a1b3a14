package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func newFavoriteMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func favoriteRows(favoriteID, userID uuid.UUID, videoID string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"favorite_id", "user_id", "video_id", "title", "thumbnail", "url", "created_at",
	}).AddRow(favoriteID, userID, videoID, "A title", "https://img.example.com/t.jpg", "https://videos.example.com/v", time.Now())
}

func TestFavoriteReadRepository_ListByUserID(t *testing.T) {
	sqlxDB, mock := newFavoriteMockDB(t)
	repo := NewFavoriteReadRepository(sqlxDB)

	userID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM favorites WHERE user_id = \$1 ORDER BY created_at DESC`).
		WithArgs(userID).
		WillReturnRows(favoriteRows(uuid.New(), userID, "abc123"))

	favs, err := repo.ListByUserID(context.Background(), userID)
	assert.NoError(t, err)
	assert.Len(t, favs, 1)
	assert.Equal(t, "abc123", favs[0].VideoID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteReadRepository_ListByUserIDEmpty(t *testing.T) {
	sqlxDB, mock := newFavoriteMockDB(t)
	repo := NewFavoriteReadRepository(sqlxDB)

	userID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM favorites WHERE user_id = \$1 ORDER BY created_at DESC`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{
			"favorite_id", "user_id", "video_id", "title", "thumbnail", "url", "created_at",
		}))

	favs, err := repo.ListByUserID(context.Background(), userID)
	assert.NoError(t, err)
	assert.Empty(t, favs)
	assert.NotNil(t, favs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteReadRepository_GetByUserAndVideo(t *testing.T) {
	sqlxDB, mock := newFavoriteMockDB(t)
	repo := NewFavoriteReadRepository(sqlxDB)

	userID := uuid.New()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM favorites WHERE user_id = \$1 AND video_id = \$2`).
			WithArgs(userID, "abc123").
			WillReturnRows(favoriteRows(uuid.New(), userID, "abc123"))

		fav, err := repo.GetByUserAndVideo(context.Background(), userID, "abc123")
		assert.NoError(t, err)
		assert.NotNil(t, fav)
		assert.Equal(t, "abc123", fav.VideoID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM favorites WHERE user_id = \$1 AND video_id = \$2`).
			WithArgs(userID, "missing").
			WillReturnRows(sqlmock.NewRows([]string{
				"favorite_id", "user_id", "video_id", "title", "thumbnail", "url", "created_at",
			}))

		fav, err := repo.GetByUserAndVideo(context.Background(), userID, "missing")
		assert.NoError(t, err)
		assert.Nil(t, fav)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteWriteRepository_Save(t *testing.T) {
	sqlxDB, mock := newFavoriteMockDB(t)
	repo := NewFavoriteWriteRepository(sqlxDB)

	userID := uuid.New()

	mock.ExpectQuery(`INSERT INTO favorites .+ RETURNING`).
		WithArgs(sqlmock.AnyArg(), userID, "abc123", "A title", "https://img.example.com/t.jpg", "https://videos.example.com/v").
		WillReturnRows(favoriteRows(uuid.New(), userID, "abc123"))

	fav, err := repo.Save(context.Background(), userID, "abc123", "A title", "https://img.example.com/t.jpg", "https://videos.example.com/v")
	assert.NoError(t, err)
	assert.NotNil(t, fav)
	assert.Equal(t, userID, fav.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteWriteRepository_SaveDuplicate(t *testing.T) {
	sqlxDB, mock := newFavoriteMockDB(t)
	repo := NewFavoriteWriteRepository(sqlxDB)

	userID := uuid.New()

	mock.ExpectQuery(`INSERT INTO favorites .+ RETURNING`).
		WithArgs(sqlmock.AnyArg(), userID, "abc123", "", "", "").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	fav, err := repo.Save(context.Background(), userID, "abc123", "", "", "")
	assert.ErrorIs(t, err, ErrUniqueViolation)
	assert.Nil(t, fav)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteWriteRepository_Delete(t *testing.T) {
	sqlxDB, mock := newFavoriteMockDB(t)
	repo := NewFavoriteWriteRepository(sqlxDB)

	favoriteID := uuid.New()
	userID := uuid.New()

	t.Run("deleted", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM favorites WHERE favorite_id = \$1 AND user_id = \$2`).
			WithArgs(favoriteID, userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		deleted, err := repo.Delete(context.Background(), favoriteID, userID)
		assert.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("no matching row", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM favorites WHERE favorite_id = \$1 AND user_id = \$2`).
			WithArgs(favoriteID, userID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		deleted, err := repo.Delete(context.Background(), favoriteID, userID)
		assert.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("exec error", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM favorites WHERE favorite_id = \$1 AND user_id = \$2`).
			WithArgs(favoriteID, userID).
			WillReturnError(errors.New("connection reset"))

		deleted, err := repo.Delete(context.Background(), favoriteID, userID)
		assert.Error(t, err)
		assert.False(t, deleted)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

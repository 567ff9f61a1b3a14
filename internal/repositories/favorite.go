package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/quintinodev/video-favorites-api/internal/logger"
	"github.com/quintinodev/video-favorites-api/internal/models"
)

type FavoriteReadRepository struct {
	db *sqlx.DB
}

func NewFavoriteReadRepository(db *sqlx.DB) *FavoriteReadRepository {
	return &FavoriteReadRepository{db: db}
}

// ListByUserID returns the user's favorites, newest first.
func (r *FavoriteReadRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.FavoriteDB, error) {
	query := `
		SELECT favorite_id, user_id, video_id, title, thumbnail, url, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	favs := []models.FavoriteDB{}
	err := r.db.SelectContext(ctx, &favs, query, userID)

	logger.Log.Infow("favorites query",
		"query", strings.Join(strings.Fields(query), " "),
		"user_id", userID,
		"count", len(favs),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return favs, nil
}

// GetByUserAndVideo returns the favorite joining user and video, or nil
// when the video is not bookmarked.
func (r *FavoriteReadRepository) GetByUserAndVideo(ctx context.Context, userID uuid.UUID, videoID string) (*models.FavoriteDB, error) {
	query := `
		SELECT favorite_id, user_id, video_id, title, thumbnail, url, created_at
		FROM favorites
		WHERE user_id = $1 AND video_id = $2
		LIMIT 1
	`

	var fav models.FavoriteDB
	err := r.db.GetContext(ctx, &fav, query, userID, videoID)

	logger.Log.Infow("favorite query",
		"query", strings.Join(strings.Fields(query), " "),
		"user_id", userID,
		"video_id", videoID,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &fav, nil
}

type FavoriteWriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteWriteRepository(db *sqlx.DB) *FavoriteWriteRepository {
	return &FavoriteWriteRepository{db: db}
}

// Save inserts a favorite and returns the stored row. Bookmarking the same
// video twice trips the (user_id, video_id) constraint and surfaces as
// ErrUniqueViolation.
func (r *FavoriteWriteRepository) Save(ctx context.Context, userID uuid.UUID, videoID, title, thumbnail, url string) (*models.FavoriteDB, error) {
	query := `
		INSERT INTO favorites (favorite_id, user_id, video_id, title, thumbnail, url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING favorite_id, user_id, video_id, title, thumbnail, url, created_at
	`
	args := []any{uuid.New(), userID, videoID, title, thumbnail, url}

	var fav models.FavoriteDB
	err := r.db.GetContext(ctx, &fav, query, args...)

	logger.Log.Infow("favorite insert",
		"query", strings.Join(strings.Fields(query), " "),
		"user_id", userID,
		"video_id", videoID,
		"error", err,
	)

	if isUniqueViolation(err) {
		return nil, ErrUniqueViolation
	}
	if err != nil {
		return nil, err
	}

	return &fav, nil
}

// Delete removes a favorite owned by userID and reports whether a row was
// actually deleted. Scoping on user_id keeps one user from deleting
// another's bookmarks.
func (r *FavoriteWriteRepository) Delete(ctx context.Context, favoriteID, userID uuid.UUID) (bool, error) {
	query := `
		DELETE FROM favorites
		WHERE favorite_id = $1 AND user_id = $2
	`

	res, err := r.db.ExecContext(ctx, query, favoriteID, userID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("favorite delete",
		"query", strings.Join(strings.Fields(query), " "),
		"favorite_id", favoriteID,
		"user_id", userID,
		"rows_affected", rowsAffected,
		"error", err,
	)

	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/quintinodev/video-favorites-api/internal/logger"
	"github.com/quintinodev/video-favorites-api/internal/models"
)

// FavoriteCacheRepository caches a user's favorites list in Redis
type FavoriteCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached lists
}

// NewFavoriteCacheRepository creates a new repository instance with a TTL
func NewFavoriteCacheRepository(client *redis.Client, expiration time.Duration) *FavoriteCacheRepository {
	return &FavoriteCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func favoritesKey(userID uuid.UUID) string {
	return fmt.Sprintf("favorites:%s", userID)
}

// GetList fetches a cached favorites list for the user
func (r *FavoriteCacheRepository) GetList(ctx context.Context, userID uuid.UUID) ([]models.FavoriteDB, error) {
	key := favoritesKey(userID)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow("favorites cache get",
			"key", key,
			"error", err,
		)
		if err == redis.Nil {
			return nil, fmt.Errorf("favorites not found in cache for user %s", userID)
		}
		return nil, err
	}

	var favs []models.FavoriteDB
	if err := json.Unmarshal([]byte(val), &favs); err != nil {
		logger.Log.Infow("favorites cache decode",
			"key", key,
			"error", err,
		)
		return nil, err
	}

	logger.Log.Infow("favorites cache hit",
		"key", key,
		"count", len(favs),
	)

	return favs, nil
}

// SetList caches a favorites list for the user with expiration
func (r *FavoriteCacheRepository) SetList(ctx context.Context, userID uuid.UUID, favs []models.FavoriteDB) error {
	key := favoritesKey(userID)

	data, err := json.Marshal(favs)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow("favorites cache set",
		"key", key,
		"count", len(favs),
		"error", err,
	)

	return err
}

// Invalidate drops the cached list after an add or remove
func (r *FavoriteCacheRepository) Invalidate(ctx context.Context, userID uuid.UUID) error {
	key := favoritesKey(userID)

	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow("favorites cache invalidate",
		"key", key,
		"error", err,
	)

	return err
}

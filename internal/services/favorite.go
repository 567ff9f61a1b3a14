package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/quintinodev/video-favorites-api/internal/logger"
	"github.com/quintinodev/video-favorites-api/internal/models"
	"github.com/quintinodev/video-favorites-api/internal/repositories"
)

// Error variables
var (
	ErrFavoriteExists   = errors.New("video already in favorites")
	ErrFavoriteNotFound = errors.New("favorite not found")
)

// FavoriteReader defines read-only operations for favorites.
type FavoriteReader interface {
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.FavoriteDB, error)
	GetByUserAndVideo(ctx context.Context, userID uuid.UUID, videoID string) (*models.FavoriteDB, error)
}

// FavoriteWriter defines write operations for favorites.
type FavoriteWriter interface {
	Save(ctx context.Context, userID uuid.UUID, videoID, title, thumbnail, url string) (*models.FavoriteDB, error)
	Delete(ctx context.Context, favoriteID, userID uuid.UUID) (bool, error)
}

// FavoriteCache caches per-user favorites lists.
type FavoriteCache interface {
	GetList(ctx context.Context, userID uuid.UUID) ([]models.FavoriteDB, error)
	SetList(ctx context.Context, userID uuid.UUID, favs []models.FavoriteDB) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// FavoriteService handles the favorites bookmarking operations.
type FavoriteService struct {
	reader FavoriteReader
	writer FavoriteWriter
	cache  FavoriteCache
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(reader FavoriteReader, writer FavoriteWriter, cache FavoriteCache) *FavoriteService {
	return &FavoriteService{
		reader: reader,
		writer: writer,
		cache:  cache,
	}
}

// List returns the user's favorites, newest first. Reads go through the
// cache; a miss falls back to the store and refills the cache best effort.
func (svc *FavoriteService) List(ctx context.Context, userID uuid.UUID) ([]models.FavoriteDB, error) {
	if svc.cache != nil {
		if favs, err := svc.cache.GetList(ctx, userID); err == nil {
			return favs, nil
		}
	}

	favs, err := svc.reader.ListByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list favorites", "userID", userID, "error", err)
		return nil, err
	}

	if svc.cache != nil {
		if err := svc.cache.SetList(ctx, userID, favs); err != nil {
			logger.Log.Errorw("failed to cache favorites", "userID", userID, "error", err)
		}
	}

	return favs, nil
}

// Add bookmarks a video for the user. Bookmarking the same video twice
// returns ErrFavoriteExists whether caught by the pre-check or by the
// store's uniqueness constraint.
func (svc *FavoriteService) Add(ctx context.Context, userID uuid.UUID, videoID, title, thumbnail, url string) (*models.FavoriteDB, error) {
	existing, err := svc.reader.GetByUserAndVideo(ctx, userID, videoID)
	if err != nil {
		logger.Log.Errorw("failed to check favorite exists", "userID", userID, "videoID", videoID, "error", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrFavoriteExists
	}

	fav, err := svc.writer.Save(ctx, userID, videoID, title, thumbnail, url)
	if err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) {
			return nil, ErrFavoriteExists
		}
		logger.Log.Errorw("failed to save favorite", "userID", userID, "videoID", videoID, "error", err)
		return nil, err
	}

	svc.invalidateCache(ctx, userID)

	return fav, nil
}

// Remove deletes a favorite owned by the user.
func (svc *FavoriteService) Remove(ctx context.Context, userID, favoriteID uuid.UUID) error {
	deleted, err := svc.writer.Delete(ctx, favoriteID, userID)
	if err != nil {
		logger.Log.Errorw("failed to delete favorite", "userID", userID, "favoriteID", favoriteID, "error", err)
		return err
	}
	if !deleted {
		return ErrFavoriteNotFound
	}

	svc.invalidateCache(ctx, userID)

	return nil
}

func (svc *FavoriteService) invalidateCache(ctx context.Context, userID uuid.UUID) {
	if svc.cache == nil {
		return
	}
	if err := svc.cache.Invalidate(ctx, userID); err != nil {
		logger.Log.Errorw("failed to invalidate favorites cache", "userID", userID, "error", err)
	}
}

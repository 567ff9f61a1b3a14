package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/quintinodev/video-favorites-api/internal/models"
	"github.com/quintinodev/video-favorites-api/internal/repositories"
	"github.com/quintinodev/video-favorites-api/internal/services"
)

func TestFavoriteService_List_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockFavoriteReader(ctrl)
	mockWriter := services.NewMockFavoriteWriter(ctrl)
	mockCache := services.NewMockFavoriteCache(ctrl)

	svc := services.NewFavoriteService(mockReader, mockWriter, mockCache)

	userID := uuid.New()
	cached := []models.FavoriteDB{{FavoriteID: uuid.New(), VideoID: "abc"}}

	mockCache.EXPECT().GetList(gomock.Any(), userID).Return(cached, nil)
	// The store is never consulted on a cache hit.

	favs, err := svc.List(context.Background(), userID)
	assert.NoError(t, err)
	assert.Equal(t, cached, favs)
}

func TestFavoriteService_List_CacheMissFallsBackToStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockFavoriteReader(ctrl)
	mockWriter := services.NewMockFavoriteWriter(ctrl)
	mockCache := services.NewMockFavoriteCache(ctrl)

	svc := services.NewFavoriteService(mockReader, mockWriter, mockCache)

	userID := uuid.New()
	stored := []models.FavoriteDB{{FavoriteID: uuid.New(), VideoID: "abc"}}

	mockCache.EXPECT().GetList(gomock.Any(), userID).Return(nil, errors.New("cache miss"))
	mockReader.EXPECT().ListByUserID(gomock.Any(), userID).Return(stored, nil)
	mockCache.EXPECT().SetList(gomock.Any(), userID, stored).Return(nil)

	favs, err := svc.List(context.Background(), userID)
	assert.NoError(t, err)
	assert.Equal(t, stored, favs)
}

func TestFavoriteService_List_CacheRefillFailureIsIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockFavoriteReader(ctrl)
	mockWriter := services.NewMockFavoriteWriter(ctrl)
	mockCache := services.NewMockFavoriteCache(ctrl)

	svc := services.NewFavoriteService(mockReader, mockWriter, mockCache)

	userID := uuid.New()
	stored := []models.FavoriteDB{}

	mockCache.EXPECT().GetList(gomock.Any(), userID).Return(nil, errors.New("cache miss"))
	mockReader.EXPECT().ListByUserID(gomock.Any(), userID).Return(stored, nil)
	mockCache.EXPECT().SetList(gomock.Any(), userID, stored).Return(errors.New("redis down"))

	favs, err := svc.List(context.Background(), userID)
	assert.NoError(t, err)
	assert.Equal(t, stored, favs)
}

func TestFavoriteService_Add(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	saved := &models.FavoriteDB{FavoriteID: uuid.New(), UserID: userID, VideoID: "abc"}

	tests := []struct {
		name      string
		existing  *models.FavoriteDB
		readerErr error
		savedFav  *models.FavoriteDB
		writerErr error
		wantErr   error
	}{
		{
			name:     "successful add",
			savedFav: saved,
		},
		{
			name:     "already bookmarked",
			existing: saved,
			wantErr:  services.ErrFavoriteExists,
		},
		{
			name:      "concurrent insert loses race",
			writerErr: repositories.ErrUniqueViolation,
			wantErr:   services.ErrFavoriteExists,
		},
		{
			name:      "reader error",
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
		{
			name:      "writer error",
			writerErr: errors.New("save error"),
			wantErr:   errors.New("save error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader := services.NewMockFavoriteReader(ctrl)
			mockWriter := services.NewMockFavoriteWriter(ctrl)
			mockCache := services.NewMockFavoriteCache(ctrl)

			svc := services.NewFavoriteService(mockReader, mockWriter, mockCache)

			mockReader.EXPECT().
				GetByUserAndVideo(gomock.Any(), userID, "abc").
				Return(tt.existing, tt.readerErr)

			if tt.existing == nil && tt.readerErr == nil {
				mockWriter.EXPECT().
					Save(gomock.Any(), userID, "abc", "Title", "thumb.jpg", "http://v").
					Return(tt.savedFav, tt.writerErr)
			}
			if tt.savedFav != nil && tt.writerErr == nil && tt.existing == nil && tt.readerErr == nil {
				mockCache.EXPECT().Invalidate(gomock.Any(), userID).Return(nil)
			}

			fav, err := svc.Add(context.Background(), userID, "abc", "Title", "thumb.jpg", "http://v")
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, fav)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.savedFav, fav)
			}
		})
	}
}

func TestFavoriteService_Remove(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	favoriteID := uuid.New()

	tests := []struct {
		name      string
		deleted   bool
		writerErr error
		wantErr   error
	}{
		{
			name:    "successful remove",
			deleted: true,
		},
		{
			name:    "favorite not found",
			deleted: false,
			wantErr: services.ErrFavoriteNotFound,
		},
		{
			name:      "writer error",
			writerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader := services.NewMockFavoriteReader(ctrl)
			mockWriter := services.NewMockFavoriteWriter(ctrl)
			mockCache := services.NewMockFavoriteCache(ctrl)

			svc := services.NewFavoriteService(mockReader, mockWriter, mockCache)

			mockWriter.EXPECT().
				Delete(gomock.Any(), favoriteID, userID).
				Return(tt.deleted, tt.writerErr)

			if tt.deleted && tt.writerErr == nil {
				mockCache.EXPECT().Invalidate(gomock.Any(), userID).Return(nil)
			}

			err := svc.Remove(context.Background(), userID, favoriteID)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

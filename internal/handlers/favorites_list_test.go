package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/quintinodev/video-favorites-api/internal/middlewares"
	"github.com/quintinodev/video-favorites-api/internal/models"
)

func TestFavoritesListHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	favs := []models.FavoriteDB{
		{
			FavoriteID: uuid.New(),
			UserID:     userID,
			VideoID:    "dQw4w9WgXcQ",
			Title:      "Some video",
			Thumbnail:  "https://img.example.com/t.jpg",
			URL:        "https://videos.example.com/dQw4w9WgXcQ",
			CreatedAt:  time.Now().UTC().Truncate(time.Second),
		},
	}

	tests := []struct {
		name         string
		withUser     bool
		mockSetup    func(m *MockFavoriteLister)
		expectedCode int
	}{
		{
			name:     "success",
			withUser: true,
			mockSetup: func(m *MockFavoriteLister) {
				m.EXPECT().
					List(gomock.Any(), userID).
					Return(favs, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:     "empty list",
			withUser: true,
			mockSetup: func(m *MockFavoriteLister) {
				m.EXPECT().
					List(gomock.Any(), userID).
					Return([]models.FavoriteDB{}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "missing user in context",
			withUser:     false,
			mockSetup:    func(m *MockFavoriteLister) {},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:     "internal error",
			withUser: true,
			mockSetup: func(m *MockFavoriteLister) {
				m.EXPECT().
					List(gomock.Any(), userID).
					Return(nil, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockFavoriteLister(ctrl)
			tt.mockSetup(mockSvc)

			handler := NewFavoritesListHandler(mockSvc)

			req := httptest.NewRequest(http.MethodGet, "/api/favorites/list", nil)
			if tt.withUser {
				req = req.WithContext(middlewares.SetUserIDToContext(req.Context(), userID))
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedCode == http.StatusOK {
				var got []models.FavoriteDB
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
				if tt.name == "success" {
					assert.Len(t, got, 1)
					assert.Equal(t, favs[0].VideoID, got[0].VideoID)
				} else {
					assert.Empty(t, got)
				}
			}
		})
	}
}

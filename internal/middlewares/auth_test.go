package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/quintinodev/video-favorites-api/internal/jwt"
)

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	tests := []struct {
		name         string
		mockSetup    func(m *MockTokener)
		expectedCode int
		expectedMsg  string
		expectNext   bool
	}{
		{
			name: "valid token",
			mockSetup: func(m *MockTokener) {
				m.EXPECT().
					GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("tok", nil)
				m.EXPECT().
					GetUserID(gomock.Any(), "tok").
					Return(userID, nil)
			},
			expectedCode: http.StatusOK,
			expectNext:   true,
		},
		{
			name: "missing token",
			mockSetup: func(m *MockTokener) {
				m.EXPECT().
					GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("", jwt.ErrNoToken)
			},
			expectedCode: http.StatusUnauthorized,
			expectedMsg:  "No hay token, permiso no válido",
		},
		{
			name: "expired token",
			mockSetup: func(m *MockTokener) {
				m.EXPECT().
					GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("tok", nil)
				m.EXPECT().
					GetUserID(gomock.Any(), "tok").
					Return(uuid.Nil, jwt.ErrTokenExpired)
			},
			expectedCode: http.StatusUnauthorized,
			expectedMsg:  "Token no válido",
		},
		{
			name: "garbage token",
			mockSetup: func(m *MockTokener) {
				m.EXPECT().
					GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("tok", nil)
				m.EXPECT().
					GetUserID(gomock.Any(), "tok").
					Return(uuid.Nil, errors.New("token contains an invalid number of segments"))
			},
			expectedCode: http.StatusUnauthorized,
			expectedMsg:  "Token no válido",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTokener := NewMockTokener(ctrl)
			tt.mockSetup(mockTokener)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotID, ok := GetUserIDFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, userID, gotID)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/favorites/list", nil)
			rr := httptest.NewRecorder()

			AuthMiddleware(mockTokener)(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, tt.expectNext, nextCalled)

			if tt.expectedMsg != "" {
				var resp authErrorResponse
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedMsg, resp.Msg)
			}
		})
	}
}

func TestUserIDContextRoundtrip(t *testing.T) {
	userID := uuid.New()

	ctx := SetUserIDToContext(context.Background(), userID)

	gotID, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, userID, gotID)

	_, ok = GetUserIDFromContext(context.Background())
	assert.False(t, ok)
}

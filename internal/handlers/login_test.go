package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/quintinodev/video-favorites-api/internal/models"
	"github.com/quintinodev/video-favorites-api/internal/services"
)

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	user := &models.UserDB{UserID: userID, Username: "alice", Email: "a@x.com"}

	tests := []struct {
		name         string
		mockSetup    func(m *MockLoginer)
		rawBody      string
		expectedCode int
		expectedMsg  string
		expectToken  string
	}{
		{
			name: "success",
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), "a@x.com", "pw1").
					Return("token123", user, nil)
			},
			expectedCode: http.StatusOK,
			expectToken:  "token123",
		},
		{
			name: "user not found",
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", nil, services.ErrUserNotFound)
			},
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "Usuario no encontrado",
		},
		{
			name: "wrong password",
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", nil, services.ErrInvalidCredentials)
			},
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "Contraseña incorrecta",
		},
		{
			name: "internal error",
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", nil, errors.New("boom"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedMsg:  "Error en el servidor",
		},
		{
			name:         "invalid JSON body",
			mockSetup:    func(m *MockLoginer) {},
			rawBody:      "{not json",
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "Solicitud no válida",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockLoginer(ctrl)
			tt.mockSetup(mockSvc)

			var buf bytes.Buffer
			if tt.rawBody != "" {
				buf.WriteString(tt.rawBody)
			} else {
				json.NewEncoder(&buf).Encode(LoginRequest{EmailOrUser: "a@x.com", Password: "pw1"})
			}

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", &buf)
			rr := httptest.NewRecorder()

			NewLoginHandler(mockSvc).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectToken != "" {
				var resp LoginResponse
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectToken, resp.Token)
				assert.Equal(t, userID.String(), resp.User.ID)
				assert.Equal(t, "alice", resp.User.Username)
				assert.Equal(t, "a@x.com", resp.User.Email)
				return
			}

			var resp MsgResponse
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedMsg, resp.Msg)
		})
	}
}

package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/quintinodev/video-favorites-api/internal/services"
)

func TestResetPasswordHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		mockSetup    func(m *MockResetPassworder)
		expectedCode int
		expectedMsg  string
	}{
		{
			name: "success",
			mockSetup: func(m *MockResetPassworder) {
				m.EXPECT().
					ResetPassword(gomock.Any(), "tok123", "NewPass1").
					Return(nil)
			},
			expectedCode: http.StatusOK,
			expectedMsg:  "Contraseña restablecida con éxito. Ya puedes iniciar sesión.",
		},
		{
			name: "token invalid or expired",
			mockSetup: func(m *MockResetPassworder) {
				m.EXPECT().
					ResetPassword(gomock.Any(), "tok123", "NewPass1").
					Return(services.ErrResetTokenInvalid)
			},
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "El enlace es inválido o ha expirado. Por favor, solicita un nuevo restablecimiento.",
		},
		{
			name: "internal error",
			mockSetup: func(m *MockResetPassworder) {
				m.EXPECT().
					ResetPassword(gomock.Any(), "tok123", "NewPass1").
					Return(errors.New("boom"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedMsg:  "Error en el servidor al restablecer la contraseña.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockResetPassworder(ctrl)
			tt.mockSetup(mockSvc)

			r := chi.NewRouter()
			r.Post("/api/auth/reset-password/{token}", NewResetPasswordHandler(mockSvc))

			var buf bytes.Buffer
			json.NewEncoder(&buf).Encode(ResetPasswordRequest{NewPassword: "NewPass1"})

			req := httptest.NewRequest(http.MethodPost, "/api/auth/reset-password/tok123", &buf)
			rr := httptest.NewRecorder()

			r.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var resp MsgResponse
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedMsg, resp.Msg)
		})
	}
}

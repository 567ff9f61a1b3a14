package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quintinodev/video-favorites-api/internal/logger"
	"github.com/quintinodev/video-favorites-api/internal/services"
)

// ResetPassworder defines the interface that the reset-password service must implement.
type ResetPassworder interface {
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// ResetPasswordRequest represents the JSON body for completing a password reset
// swagger:model ResetPasswordRequest
type ResetPasswordRequest struct {
	// New password
	// required: true
	// default: newSecret123
	NewPassword string `json:"newPassword"`
}

// NewResetPasswordHandler returns an HTTP handler that completes the
// password-reset flow using the token from the URL path.
// @Summary Complete a password reset
// @Description Consumes a single-use reset token and replaces the password
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "Reset token from the emailed link"
// @Param resetPasswordRequest body handlers.ResetPasswordRequest true "Reset password request"
// @Success 200 {object} handlers.MsgResponse "Password replaced"
// @Failure 400 {object} handlers.MsgResponse "Token invalid or expired"
// @Failure 500 {object} handlers.MsgResponse "Internal server error"
// @Router /auth/reset-password/{token} [post]
func NewResetPasswordHandler(svc ResetPassworder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")

		var req ResetPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(MsgResponse{
				Msg: "Solicitud no válida",
			})
			return
		}

		if err := svc.ResetPassword(r.Context(), token, req.NewPassword); err != nil {
			switch {
			case errors.Is(err, services.ErrResetTokenInvalid):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(MsgResponse{
					Msg: "El enlace es inválido o ha expirado. Por favor, solicita un nuevo restablecimiento.",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(MsgResponse{
					Msg: "Error en el servidor al restablecer la contraseña.",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(MsgResponse{
			Msg: "Contraseña restablecida con éxito. Ya puedes iniciar sesión.",
		})
	}
}

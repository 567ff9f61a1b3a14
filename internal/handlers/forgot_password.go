package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quintinodev/video-favorites-api/internal/logger"
	"github.com/quintinodev/video-favorites-api/internal/services"
)

// ForgotPassworder defines the interface that the forgot-password service must implement.
type ForgotPassworder interface {
	ForgotPassword(ctx context.Context, email string) error
}

// ForgotPasswordRequest represents the JSON body for starting a password reset
// swagger:model ForgotPasswordRequest
type ForgotPasswordRequest struct {
	// Email
	// required: true
	// default: ana@example.com
	Email string `json:"email"`
}

// genericResetMsg never reveals whether the email is registered.
const genericResetMsg = "Si el correo existe, se ha enviado un enlace de restablecimiento."

// NewForgotPasswordHandler returns an HTTP handler that starts the
// password-reset flow.
// @Summary Request a password reset
// @Description Sends a reset link when the email is registered. The response is identical either way.
// @Tags auth
// @Accept json
// @Produce json
// @Param forgotPasswordRequest body handlers.ForgotPasswordRequest true "Forgot password request"
// @Success 200 {object} handlers.MsgResponse "Generic acknowledgement"
// @Failure 500 {object} handlers.MsgResponse "Email delivery failed"
// @Router /auth/forgot-password [post]
func NewForgotPasswordHandler(svc ForgotPassworder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ForgotPasswordRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(MsgResponse{
				Msg: "Solicitud no válida",
			})
			return
		}

		if err := svc.ForgotPassword(r.Context(), req.Email); err != nil {
			switch {
			case errors.Is(err, services.ErrEmailDelivery):
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(MsgResponse{
					Msg: "Error al enviar el correo. Inténtalo de nuevo más tarde.",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(MsgResponse{
					Msg: "Error en el servidor",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(MsgResponse{
			Msg: genericResetMsg,
		})
	}
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quintinodev/video-favorites-api/internal/logger"
	"github.com/quintinodev/video-favorites-api/internal/services"
)

// Registerer defines the interface that the registration service must implement.
type Registerer interface {
	Register(ctx context.Context, firstName, lastName, username, email, password, captchaToken string) error
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// First name
	// required: true
	// default: Ana
	FirstName string `json:"firstName"`

	// Last name
	// required: true
	// default: García
	LastName string `json:"lastName"`

	// Username
	// required: true
	// default: ana_garcia
	Username string `json:"username"`

	// Email
	// required: true
	// default: ana@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`

	// reCAPTCHA response token
	// required: true
	Recaptcha string `json:"recaptcha"`
}

// MsgResponse represents a `{msg}` JSON body shared by the auth endpoints
// swagger:model MsgResponse
type MsgResponse struct {
	// Human-readable message
	Msg string `json:"msg"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account after reCAPTCHA verification. Email and username are unique. Password is hashed before storing.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 200 {object} handlers.MsgResponse "User successfully registered"
// @Failure 400 {object} handlers.MsgResponse "Missing/failed captcha or email already registered"
// @Failure 500 {object} handlers.MsgResponse "Internal server error"
// @Router /auth/register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(MsgResponse{
				Msg: "Solicitud no válida",
			})
			return
		}

		err := svc.Register(r.Context(), req.FirstName, req.LastName, req.Username, req.Email, req.Password, req.Recaptcha)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrCaptchaRequired):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(MsgResponse{
					Msg: "Falta la verificación reCAPTCHA.",
				})
			case errors.Is(err, services.ErrCaptchaFailed):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(MsgResponse{
					Msg: "Verificación reCAPTCHA fallida. Por favor, inténtalo de nuevo.",
				})
			case errors.Is(err, services.ErrEmailTaken):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(MsgResponse{
					Msg: "El correo ya está registrado",
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
			Msg: "Usuario registrado correctamente",
		})
	}
}

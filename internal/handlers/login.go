package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quintinodev/video-favorites-api/internal/logger"
	"github.com/quintinodev/video-favorites-api/internal/models"
	"github.com/quintinodev/video-favorites-api/internal/services"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, identifier, password string) (string, *models.UserDB, error)
}

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Email or username
	// required: true
	// default: ana@example.com
	EmailOrUser string `json:"emailOrUser"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// LoginUser is the minimal public profile returned after login
// swagger:model LoginUser
type LoginUser struct {
	// User identifier
	ID string `json:"id"`

	// Username
	Username string `json:"username"`

	// Email
	Email string `json:"email"`
}

// LoginResponse represents a successful login response
// swagger:model LoginResponse
type LoginResponse struct {
	// Session token
	// default: JWT_TOKEN
	Token string `json:"token"`

	// Public profile
	User LoginUser `json:"user"`
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate by email or username and return a session token with the public profile
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login Request"
// @Success 200 {object} handlers.LoginResponse "Session token returned"
// @Failure 400 {object} handlers.MsgResponse "Unknown user or wrong password"
// @Failure 500 {object} handlers.MsgResponse "Internal server error"
// @Router /auth/login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(MsgResponse{
				Msg: "Solicitud no válida",
			})
			return
		}

		token, user, err := svc.Login(r.Context(), req.EmailOrUser, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(MsgResponse{
					Msg: "Usuario no encontrado",
				})
			case errors.Is(err, services.ErrInvalidCredentials):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(MsgResponse{
					Msg: "Contraseña incorrecta",
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
		json.NewEncoder(w).Encode(LoginResponse{
			Token: token,
			User: LoginUser{
				ID:       user.UserID.String(),
				Username: user.Username,
				Email:    user.Email,
			},
		})
	}
}

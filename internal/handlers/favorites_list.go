package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/quintinodev/video-favorites-api/internal/logger"
	"github.com/quintinodev/video-favorites-api/internal/middlewares"
	"github.com/quintinodev/video-favorites-api/internal/models"
)

// FavoriteLister defines the interface that the favorites listing service must implement.
type FavoriteLister interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.FavoriteDB, error)
}

// NewFavoritesListHandler returns an HTTP handler listing the
// authenticated user's favorites.
// @Summary List favorites
// @Description Returns the authenticated user's bookmarked videos, newest first
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.FavoriteDB "Favorites"
// @Failure 401 {object} handlers.MsgResponse "Missing or invalid token"
// @Failure 500 {object} handlers.MsgResponse "Internal server error"
// @Router /favorites/list [get]
func NewFavoritesListHandler(svc FavoriteLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middlewares.GetUserIDFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(MsgResponse{Msg: "No hay token, permiso no válido"})
			return
		}

		favs, err := svc.List(r.Context(), userID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(MsgResponse{Msg: "Error en servidor"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(favs)
	}
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/quintinodev/video-favorites-api/internal/logger"
	"github.com/quintinodev/video-favorites-api/internal/middlewares"
	"github.com/quintinodev/video-favorites-api/internal/services"
)

// FavoriteRemover defines the interface that the favorites removal service must implement.
type FavoriteRemover interface {
	Remove(ctx context.Context, userID, favoriteID uuid.UUID) error
}

// NewFavoritesRemoveHandler returns an HTTP handler deleting one of the
// authenticated user's favorites.
// @Summary Remove a favorite
// @Description Deletes a bookmark owned by the authenticated user
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param id path string true "Favorite identifier"
// @Success 200 {object} handlers.MsgResponse "Favorite deleted"
// @Failure 401 {object} handlers.MsgResponse "Missing or invalid token"
// @Failure 404 {object} handlers.MsgResponse "Favorite not found"
// @Failure 500 {object} handlers.MsgResponse "Internal server error"
// @Router /favorites/remove/{id} [delete]
func NewFavoritesRemoveHandler(svc FavoriteRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middlewares.GetUserIDFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(MsgResponse{Msg: "No hay token, permiso no válido"})
			return
		}

		favoriteID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(MsgResponse{Msg: "Favorito no encontrado"})
			return
		}

		if err := svc.Remove(r.Context(), userID, favoriteID); err != nil {
			switch {
			case errors.Is(err, services.ErrFavoriteNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(MsgResponse{Msg: "Favorito no encontrado"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(MsgResponse{Msg: "Error en servidor"})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(MsgResponse{Msg: "Favorito eliminado"})
	}
}

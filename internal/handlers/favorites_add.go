package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/quintinodev/video-favorites-api/internal/logger"
	"github.com/quintinodev/video-favorites-api/internal/middlewares"
	"github.com/quintinodev/video-favorites-api/internal/models"
	"github.com/quintinodev/video-favorites-api/internal/services"
)

// FavoriteAdder defines the interface that the favorites adding service must implement.
type FavoriteAdder interface {
	Add(ctx context.Context, userID uuid.UUID, videoID, title, thumbnail, url string) (*models.FavoriteDB, error)
}

// AddFavoriteRequest represents the JSON body for bookmarking a video
// swagger:model AddFavoriteRequest
type AddFavoriteRequest struct {
	// External video identifier
	// required: true
	VideoID string `json:"videoId"`

	// Video title
	// required: true
	Title string `json:"title"`

	// Thumbnail URL
	// required: true
	Thumbnail string `json:"thumbnail"`

	// Video URL
	// required: true
	URL string `json:"url"`
}

// AddFavoriteResponse represents a successful bookmark response
// swagger:model AddFavoriteResponse
type AddFavoriteResponse struct {
	// Success message
	Msg string `json:"msg"`

	// Stored favorite
	Fav models.FavoriteDB `json:"fav"`
}

// NewFavoritesAddHandler returns an HTTP handler bookmarking a video for
// the authenticated user.
// @Summary Add a favorite
// @Description Bookmarks a video for the authenticated user. A video can be bookmarked once.
// @Tags favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param addFavoriteRequest body handlers.AddFavoriteRequest true "Video to bookmark"
// @Success 200 {object} handlers.AddFavoriteResponse "Favorite stored"
// @Failure 400 {object} handlers.MsgResponse "Video already bookmarked"
// @Failure 401 {object} handlers.MsgResponse "Missing or invalid token"
// @Failure 500 {object} handlers.MsgResponse "Internal server error"
// @Router /favorites/add [post]
func NewFavoritesAddHandler(svc FavoriteAdder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middlewares.GetUserIDFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(MsgResponse{Msg: "No hay token, permiso no válido"})
			return
		}

		var req AddFavoriteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(MsgResponse{Msg: "Solicitud no válida"})
			return
		}

		fav, err := svc.Add(r.Context(), userID, req.VideoID, req.Title, req.Thumbnail, req.URL)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrFavoriteExists):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(MsgResponse{Msg: "Este video ya está en favoritos"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(MsgResponse{Msg: "Error en servidor"})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(AddFavoriteResponse{
			Msg: "Favorito agregado",
			Fav: *fav,
		})
	}
}

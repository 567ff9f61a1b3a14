package models

import (
	"time"

	"github.com/google/uuid"
)

// FavoriteDB represents a bookmarked video in the database.
// (user_id, video_id) is unique: a user can bookmark a video once.
type FavoriteDB struct {
	FavoriteID uuid.UUID `json:"id" db:"favorite_id"`        // Primary key
	UserID     uuid.UUID `json:"-" db:"user_id"`             // Owner
	VideoID    string    `json:"videoId" db:"video_id"`      // External video identifier
	Title      string    `json:"title" db:"title"`           // Video title
	Thumbnail  string    `json:"thumbnail" db:"thumbnail"`   // Thumbnail URL
	URL        string    `json:"url" db:"url"`               // Video URL
	CreatedAt  time.Time `json:"created_at" db:"created_at"` // Creation timestamp
}

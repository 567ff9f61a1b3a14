package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the database
type UserDB struct {
	UserID            uuid.UUID  `json:"id" db:"user_id"`                            // Primary key
	FirstName         string     `json:"first_name" db:"first_name"`                 // Given name
	LastName          string     `json:"last_name" db:"last_name"`                   // Family name
	Username          string     `json:"username" db:"username"`                     // Unique username
	Email             string     `json:"email" db:"email"`                           // Unique email
	PasswordHash      string     `json:"-" db:"password_hash"`                       // bcrypt hash, never serialized
	ResetTokenHash    *string    `json:"-" db:"reset_token_hash"`                    // sha256 hex of the pending reset token, nil when none
	ResetTokenExpires *time.Time `json:"-" db:"reset_token_expires_at"`              // Expiry paired with the hash, nil when none
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`                 // Creation timestamp
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`                 // Last update timestamp
}

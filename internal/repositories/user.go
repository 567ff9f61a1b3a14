package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/quintinodev/video-favorites-api/internal/logger"
	"github.com/quintinodev/video-favorites-api/internal/models"
)

const userColumns = `
	user_id, first_name, last_name, username, email, password_hash,
	reset_token_hash, reset_token_expires_at, created_at, updated_at
`

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByEmail returns the user with the given email, or nil when none exists.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
		LIMIT 1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, email)

	logger.Log.Infow("user query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{email},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByEmailOrUsername returns the user whose email or username matches
// identifier, or nil when none exists. A single query covers both fields.
func (r *UserReadRepository) GetByEmailOrUsername(ctx context.Context, identifier string) (*models.UserDB, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1 OR username = $1
		LIMIT 1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, identifier)

	logger.Log.Infow("user query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{identifier},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByResetTokenHash returns the user holding the given reset-token hash,
// but only while the paired expiry is still in the future. Expiry is
// evaluated here, at lookup time; expired rows are simply never matched.
func (r *UserReadRepository) GetByResetTokenHash(ctx context.Context, tokenHash string) (*models.UserDB, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE reset_token_hash = $1 AND reset_token_expires_at > NOW()
		LIMIT 1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, tokenHash)

	logger.Log.Infow("user query",
		"query", strings.Join(strings.Fields(query), " "),
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Save inserts a new user. A duplicate email or username surfaces as
// ErrUniqueViolation.
func (r *UserWriteRepository) Save(ctx context.Context, firstName, lastName, username, email, passwordHash string) error {
	query := `
		INSERT INTO users (user_id, first_name, last_name, username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	args := []any{uuid.New(), firstName, lastName, username, email, passwordHash}

	_, err := r.db.ExecContext(ctx, query, args...)

	logger.Log.Infow("user insert",
		"query", strings.Join(strings.Fields(query), " "),
		"username", username,
		"email", email,
		"error", err,
	)

	if isUniqueViolation(err) {
		return ErrUniqueViolation
	}
	return err
}

// UpdatePassword overwrites the stored password hash and clears both
// reset-token columns in the same statement, so a consumed reset token
// can never be reused.
func (r *UserWriteRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $2,
		    reset_token_hash = NULL,
		    reset_token_expires_at = NULL,
		    updated_at = NOW()
		WHERE user_id = $1
	`

	_, err := r.db.ExecContext(ctx, query, userID, passwordHash)

	logger.Log.Infow("user password update",
		"query", strings.Join(strings.Fields(query), " "),
		"user_id", userID,
		"error", err,
	)

	return err
}

// SetResetToken stores the hashed reset token and its expiry. A later call
// overwrites an earlier one; last write wins for concurrent requests.
func (r *UserWriteRepository) SetResetToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET reset_token_hash = $2,
		    reset_token_expires_at = $3,
		    updated_at = NOW()
		WHERE user_id = $1
	`

	_, err := r.db.ExecContext(ctx, query, userID, tokenHash, expiresAt)

	logger.Log.Infow("reset token set",
		"query", strings.Join(strings.Fields(query), " "),
		"user_id", userID,
		"expires_at", expiresAt,
		"error", err,
	)

	return err
}

// ClearResetToken drops any pending reset token, leaving no dangling
// usable token behind after a failed delivery.
func (r *UserWriteRepository) ClearResetToken(ctx context.Context, userID uuid.UUID) error {
	query := `
		UPDATE users
		SET reset_token_hash = NULL,
		    reset_token_expires_at = NULL,
		    updated_at = NOW()
		WHERE user_id = $1
	`

	_, err := r.db.ExecContext(ctx, query, userID)

	logger.Log.Infow("reset token clear",
		"query", strings.Join(strings.Fields(query), " "),
		"user_id", userID,
		"error", err,
	)

	return err
}

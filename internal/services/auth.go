package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/quintinodev/video-favorites-api/internal/logger"
	"github.com/quintinodev/video-favorites-api/internal/models"
	"github.com/quintinodev/video-favorites-api/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

// Error variables
var (
	ErrCaptchaRequired    = errors.New("recaptcha verification missing")
	ErrCaptchaFailed      = errors.New("recaptcha verification failed")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid password")
	ErrEmailDelivery      = errors.New("reset email delivery failed")
	ErrResetTokenInvalid  = errors.New("reset token invalid or expired")
)

// resetTokenTTL bounds how long a reset link stays usable.
const resetTokenTTL = time.Hour

// resetTokenBytes is the entropy of the plain reset token.
const resetTokenBytes = 20

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByEmailOrUsername(ctx context.Context, identifier string) (*models.UserDB, error)
	GetByResetTokenHash(ctx context.Context, tokenHash string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, firstName, lastName, username, email, passwordHash string) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	SetResetToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, userID uuid.UUID) error
}

// JWTGenerator defines an interface for generating session tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID) (string, error)
}

// CaptchaVerifier checks reCAPTCHA response tokens.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}

// ResetMailer delivers password-reset links.
type ResetMailer interface {
	SendResetEmail(ctx context.Context, email, resetURL string) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// AuthService handles registration, login and the password-reset lifecycle.
type AuthService struct {
	reader      UserReader
	writer      UserWriter
	jwt         JWTGenerator
	captcha     CaptchaVerifier
	mailer      ResetMailer
	kafkaWriter KafkaWriter
	frontendURL string
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(
	reader UserReader,
	writer UserWriter,
	jwt JWTGenerator,
	captcha CaptchaVerifier,
	mailer ResetMailer,
	kafkaWriter KafkaWriter,
	frontendURL string,
) *AuthService {
	return &AuthService{
		reader:      reader,
		writer:      writer,
		jwt:         jwt,
		captcha:     captcha,
		mailer:      mailer,
		kafkaWriter: kafkaWriter,
		frontendURL: frontendURL,
	}
}

// publishEvent publishes an auth event to Kafka. Publishing is best
// effort: a failure is logged and never fails the request.
func (svc *AuthService) publishEvent(ctx context.Context, event models.AuthEvent) {
	if svc.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "event_id", event.EventID)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal auth event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
	}

	if err := svc.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish auth event to Kafka", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("Auth event published to Kafka", "event_id", event.EventID, "action", event.Action)
	}
}

// Register creates a new user after the captcha checks out. The password
// is bcrypt-hashed before it is stored.
func (svc *AuthService) Register(ctx context.Context, firstName, lastName, username, email, password, captchaToken string) error {
	if captchaToken == "" {
		logger.Log.Errorw("captcha token missing", "email", email)
		return ErrCaptchaRequired
	}

	ok, err := svc.captcha.Verify(ctx, captchaToken)
	if err != nil {
		logger.Log.Errorw("failed to verify captcha", "err", err)
		return ErrCaptchaFailed
	}
	if !ok {
		logger.Log.Errorw("captcha verification failed", "email", email)
		return ErrCaptchaFailed
	}

	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return err
	}
	if user != nil {
		logger.Log.Errorw("email already registered", "email", email)
		return ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	if err := svc.writer.Save(ctx, firstName, lastName, username, email, string(hashedPassword)); err != nil {
		// A concurrent registration can slip past the pre-check; the
		// store's uniqueness constraint is the authority.
		if errors.Is(err, repositories.ErrUniqueViolation) {
			logger.Log.Errorw("email already registered", "email", email)
			return ErrEmailTaken
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return err
	}

	svc.publishEvent(ctx, models.AuthEvent{
		EventID:   uuid.NewString(),
		Email:     email,
		Action:    models.ActionUserRegistered,
		Timestamp: time.Now().Unix(),
	})

	return nil
}

// Login authenticates a user by email or username and returns a session
// token plus the matched user.
func (svc *AuthService) Login(ctx context.Context, identifier, password string) (string, *models.UserDB, error) {
	user, err := svc.reader.GetByEmailOrUsername(ctx, identifier)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", nil, err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "identifier", identifier)
		return "", nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "identifier", identifier)
		return "", nil, ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", nil, err
	}

	return token, user, nil
}

// ForgotPassword starts the reset flow. It succeeds silently for unknown
// emails so the response never reveals whether an address is registered.
// Only the token's hash is stored; the plain token travels in the email.
func (svc *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return err
	}
	if user == nil {
		logger.Log.Infow("forgot password for unknown email")
		return nil
	}

	plainToken, tokenHash, err := newResetToken()
	if err != nil {
		logger.Log.Errorw("failed to generate reset token", "err", err)
		return err
	}

	expiresAt := time.Now().Add(resetTokenTTL)
	if err := svc.writer.SetResetToken(ctx, user.UserID, tokenHash, expiresAt); err != nil {
		logger.Log.Errorw("failed to store reset token", "err", err)
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", svc.frontendURL, plainToken)
	if err := svc.mailer.SendResetEmail(ctx, user.Email, resetURL); err != nil {
		logger.Log.Errorw("failed to send reset email", "err", err)
		// The user never received the link; leaving the token behind
		// would keep a usable credential nobody holds.
		if clearErr := svc.writer.ClearResetToken(ctx, user.UserID); clearErr != nil {
			logger.Log.Errorw("failed to clear reset token after send failure", "err", clearErr)
		}
		return ErrEmailDelivery
	}

	return nil
}

// ResetPassword consumes a reset token and replaces the user's password.
// Expired and unknown tokens are indistinguishable to the caller.
func (svc *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := svc.reader.GetByResetTokenHash(ctx, hashResetToken(token))
	if err != nil {
		logger.Log.Errorw("failed to look up reset token", "err", err)
		return err
	}
	if user == nil {
		logger.Log.Errorw("reset token invalid or expired")
		return ErrResetTokenInvalid
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	// UpdatePassword clears the reset columns in the same statement, so
	// the token is spent the moment the password changes.
	if err := svc.writer.UpdatePassword(ctx, user.UserID, string(hashedPassword)); err != nil {
		logger.Log.Errorw("failed to update password", "err", err)
		return err
	}

	svc.publishEvent(ctx, models.AuthEvent{
		EventID:   uuid.NewString(),
		UserID:    user.UserID.String(),
		Email:     user.Email,
		Action:    models.ActionPasswordReset,
		Timestamp: time.Now().Unix(),
	})

	return nil
}

// newResetToken returns a fresh random token and its storable hash.
func newResetToken() (plain string, hash string, err error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	plain = hex.EncodeToString(buf)
	return plain, hashResetToken(plain), nil
}

// hashResetToken computes the one-way hash stored in place of the token.
func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

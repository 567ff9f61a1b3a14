package facades

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/quintinodev/video-favorites-api/internal/logger"
)

// resetEmailSubject is the subject line for password-reset mail.
const resetEmailSubject = "Restablecimiento de Contraseña"

// SendGridFacade delivers transactional email through SendGrid.
type SendGridFacade struct {
	apiKey   string
	from     string
	fromName string
}

// NewSendGridFacade creates a facade with the API key and verified sender.
func NewSendGridFacade(apiKey, from, fromName string) *SendGridFacade {
	return &SendGridFacade{
		apiKey:   apiKey,
		from:     from,
		fromName: fromName,
	}
}

// SendResetEmail sends the password-reset link to the recipient. The link
// embeds the plain token; only its hash is ever stored.
func (f *SendGridFacade) SendResetEmail(ctx context.Context, email, resetURL string) error {
	from := mail.NewEmail(f.fromName, f.from)
	to := mail.NewEmail("", email)

	plainText := fmt.Sprintf(
		"Has solicitado un restablecimiento de contraseña.\n"+
			"Visita el siguiente enlace para restablecer tu contraseña:\n%s\n"+
			"Este enlace expirará en 1 hora.", resetURL)
	htmlContent := fmt.Sprintf(`
		<h1>Has solicitado un restablecimiento de contraseña</h1>
		<p>Por favor, haz clic en el siguiente enlace para restablecer tu contraseña:</p>
		<p><a href="%s" target="_blank">%s</a></p>
		<p>Este enlace expirará en 1 hora.</p>`, resetURL, resetURL)

	message := mail.NewSingleEmail(from, resetEmailSubject, to, plainText, htmlContent)

	client := sendgrid.NewSendClient(f.apiKey)
	sendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	response, err := client.SendWithContext(sendCtx, message)
	if err != nil {
		logger.Log.Errorw("failed to send reset email", "error", err)
		return err
	}

	if response.StatusCode != 202 {
		err := fmt.Errorf("failed to send reset email, status code: %d", response.StatusCode)
		logger.Log.Errorw("failed to send reset email", "error", err)
		return err
	}

	logger.Log.Infow("reset email sent", "status", response.StatusCode)
	return nil
}

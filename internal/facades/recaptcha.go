package facades

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/quintinodev/video-favorites-api/internal/logger"
)

// siteVerifyURL is Google's reCAPTCHA verification endpoint.
const siteVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// RecaptchaFacade verifies reCAPTCHA response tokens against Google.
type RecaptchaFacade struct {
	secretKey string
	client    *http.Client
	verifyURL string
}

// NewRecaptchaFacade creates a facade using the given secret key.
func NewRecaptchaFacade(secretKey string) *RecaptchaFacade {
	return &RecaptchaFacade{
		secretKey: secretKey,
		client:    &http.Client{Timeout: 10 * time.Second},
		verifyURL: siteVerifyURL,
	}
}

// NewRecaptchaFacadeWithURL creates a facade pointed at a custom verify
// endpoint. Used by tests.
func NewRecaptchaFacadeWithURL(secretKey, verifyURL string) *RecaptchaFacade {
	f := NewRecaptchaFacade(secretKey)
	f.verifyURL = verifyURL
	return f
}

type siteVerifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify checks the client token against Google and reports whether the
// verification succeeded. A missing secret key fails closed.
func (f *RecaptchaFacade) Verify(ctx context.Context, token string) (bool, error) {
	if f.secretKey == "" {
		logger.Log.Errorw("recaptcha secret key is not configured")
		return false, nil
	}

	form := url.Values{}
	form.Set("secret", f.secretKey)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Log.Errorw("recaptcha verification request failed", "error", err)
		return false, err
	}
	defer resp.Body.Close()

	var body siteVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		logger.Log.Errorw("recaptcha verification decode failed", "error", err)
		return false, err
	}

	logger.Log.Infow("recaptcha verification",
		"success", body.Success,
		"error_codes", body.ErrorCodes,
	)

	return body.Success, nil
}

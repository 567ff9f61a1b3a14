package facades

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecaptchaFacade_Verify(t *testing.T) {
	tests := []struct {
		name       string
		response   string
		statusCode int
		expectOK   bool
		expectErr  bool
	}{
		{
			name:       "verification succeeds",
			response:   `{"success": true}`,
			statusCode: http.StatusOK,
			expectOK:   true,
		},
		{
			name:       "verification fails",
			response:   `{"success": false, "error-codes": ["invalid-input-response"]}`,
			statusCode: http.StatusOK,
			expectOK:   false,
		},
		{
			name:       "malformed response body",
			response:   `{not json`,
			statusCode: http.StatusOK,
			expectOK:   false,
			expectErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.NoError(t, r.ParseForm())
				assert.Equal(t, "secret123", r.PostFormValue("secret"))
				assert.Equal(t, "client-token", r.PostFormValue("response"))

				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.response))
			}))
			defer srv.Close()

			facade := NewRecaptchaFacadeWithURL("secret123", srv.URL)

			ok, err := facade.Verify(context.Background(), "client-token")
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectOK, ok)
		})
	}
}

func TestRecaptchaFacade_VerifyMissingSecretFailsClosed(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	facade := NewRecaptchaFacadeWithURL("", srv.URL)

	ok, err := facade.Verify(context.Background(), "client-token")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, called)
}

func TestRecaptchaFacade_VerifyUnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	facade := NewRecaptchaFacadeWithURL("secret123", srv.URL)

	ok, err := facade.Verify(context.Background(), "client-token")
	assert.Error(t, err)
	assert.False(t, ok)
}

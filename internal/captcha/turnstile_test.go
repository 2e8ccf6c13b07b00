package captcha

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTurnstileServer(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		assert.Equal(t, "secret", r.PostForm.Get("secret"))
		w.Header().Set("Content-Type", "application/json")
		if r.PostForm.Get("response") == "good-token" {
			w.Write([]byte(`{"success":true}`))
			return
		}
		w.Write([]byte(`{"success":false,"error-codes":["invalid-input-response"]}`))
	}))
}

func newCaptchaApp(verifier CaptchaVerifier) *fiber.App {
	app := fiber.New()
	app.Post("/join", New(verifier), func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func TestTurnstileVerifier(t *testing.T) {
	server := newTurnstileServer(t)
	defer server.Close()

	verifier := NewTurnstileVerifier("secret")
	verifier.verifyURL = server.URL
	app := newCaptchaApp(verifier)

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"valid token", "good-token", fiber.StatusNoContent},
		{"invalid token", "bad-token", fiber.StatusInternalServerError},
		{"missing token", "", fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodPost, "/join", nil)
			if tt.token != "" {
				req.Header.Set(turnstileResponseField, tt.token)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestNullVerifier(t *testing.T) {
	app := newCaptchaApp(NewNullVerifier())
	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/join", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

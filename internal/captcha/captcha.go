package captcha

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrInvalidCaptcha = errors.New("invalid captcha")
	ErrMissingCaptcha = errors.New("missing captcha response")
)

type CaptchaVerifier interface {
	Verify(ctx *fiber.Ctx) error
}

type NullVerifier struct{}

func (v *NullVerifier) Verify(ctx *fiber.Ctx) error {
	return nil
}

func NewNullVerifier() *NullVerifier {
	return &NullVerifier{}
}

// New returns a middleware rejecting requests that fail verification.
func New(verifier CaptchaVerifier) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := verifier.Verify(ctx); err != nil {
			return err
		}
		return ctx.Next()
	}
}

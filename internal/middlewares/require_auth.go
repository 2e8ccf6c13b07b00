package middlewares

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/kwaitlist/internal/auth"
	"github.com/khanghh/kwaitlist/internal/waitlist"
)

type TokenParser interface {
	ParseToken(tokenStr string) (*auth.Claims, error)
}

func bearerToken(ctx *fiber.Ctx) string {
	header := ctx.Get(fiber.HeaderAuthorization)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// RequireAuth rejects requests without a valid bearer token and exposes the
// token claims through auth.GetClaims.
func RequireAuth(tokens TokenParser) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		token := bearerToken(ctx)
		if token == "" {
			return fiber.ErrUnauthorized
		}
		claims, err := tokens.ParseToken(token)
		if err != nil {
			return err
		}
		auth.SetClaims(ctx, claims)
		return ctx.Next()
	}
}

// RequireRoles must run after RequireAuth.
func RequireRoles(roles ...string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		claims := auth.GetClaims(ctx)
		if claims == nil {
			return fiber.ErrUnauthorized
		}
		if !slices.Contains(roles, claims.Role) {
			return waitlist.ErrUnauthorizedAdmin
		}
		return ctx.Next()
	}
}

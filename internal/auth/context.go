package auth

import "github.com/gofiber/fiber/v2"

const claimsLocalsKey = "auth.claims"

func SetClaims(ctx *fiber.Ctx, claims *Claims) {
	ctx.Locals(claimsLocalsKey, claims)
}

// GetClaims returns the claims of the authenticated caller, or nil.
func GetClaims(ctx *fiber.Ctx) *Claims {
	claims, _ := ctx.Locals(claimsLocalsKey).(*Claims)
	return claims
}

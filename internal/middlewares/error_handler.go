package middlewares

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/kwaitlist/internal/handlers/api"
)

func ErrorHandler(ctx *fiber.Ctx, err error) error {
	status, resp, ok := api.ErrorResponse(err)
	if !ok {
		slog.Error("unhandled error", "path", ctx.Path(), "code", status, "error", err)
	}
	return ctx.Status(status).JSON(resp)
}

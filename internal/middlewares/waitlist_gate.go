package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/kwaitlist/internal/audit"
	"github.com/khanghh/kwaitlist/internal/oauth"
	"github.com/khanghh/kwaitlist/internal/waitlist"
	"github.com/khanghh/kwaitlist/params"
)

// AttemptExtractor fills in attempt fields the request carries outside the
// body, query and invite code header.
type AttemptExtractor func(ctx *fiber.Ctx, attempt *waitlist.Attempt)

type attemptBody struct {
	Email      string `json:"email" form:"email"`
	InviteCode string `json:"inviteCode" form:"inviteCode"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func readAttempt(ctx *fiber.Ctx, path string) waitlist.Attempt {
	var body attemptBody
	if len(ctx.Body()) > 0 {
		_ = ctx.BodyParser(&body)
	}
	return waitlist.Attempt{
		Path:       path,
		Email:      firstNonEmpty(body.Email, ctx.Query("email")),
		InviteCode: firstNonEmpty(body.InviteCode, ctx.Query("inviteCode"), ctx.Get(params.InviteCodeHeader)),
	}
}

// WaitlistGate checks registration attempts under basePath before the route
// handler runs. Paths are matched relative to basePath.
func WaitlistGate(gate *waitlist.Gate, basePath string, extractors ...AttemptExtractor) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		path := strings.TrimPrefix(ctx.Path(), basePath)
		if !gate.Intercepts(path) {
			return ctx.Next()
		}

		attempt := readAttempt(ctx, path)
		for _, extract := range extractors {
			extract(ctx, &attempt)
		}

		err := gate.CheckAttempt(ctx.UserContext(), attempt)
		if err == nil {
			return ctx.Next()
		}

		var wlErr *waitlist.Error
		if errors.As(err, &wlErr) {
			auditErr := audit.RecordRegistrationDenied(ctx.UserContext(), audit.RegistrationDeniedRecord{
				Email:     attempt.Email,
				Path:      path,
				Code:      string(wlErr.Code),
				IP:        ctx.IP(),
				UserAgent: string(ctx.Request().Header.UserAgent()),
			})
			if auditErr != nil {
				slog.Error("Failed to record audit event", "error", auditErr)
			}
		}
		return err
	}
}

type StatePeeker interface {
	Peek(ctx context.Context, key string) (*oauth.State, error)
}

// OAuthStateInviteCode recovers the invite code stored in the OAuth state when
// a provider redirects back to a callback.
func OAuthStateInviteCode(states StatePeeker) AttemptExtractor {
	return func(ctx *fiber.Ctx, attempt *waitlist.Attempt) {
		if attempt.InviteCode != "" {
			return
		}
		key := ctx.Query("state")
		if key == "" {
			return
		}
		state, err := states.Peek(ctx.UserContext(), key)
		if err != nil {
			return
		}
		attempt.InviteCode = state.InviteCode
	}
}

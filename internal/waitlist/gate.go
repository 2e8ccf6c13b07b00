package waitlist

import (
	"context"
	"log/slog"
	"strings"

	"github.com/khanghh/kwaitlist/model"
)

// Gate enforces admission at two independent points: before a registration
// flow runs (CheckAttempt) and right before a user record is persisted
// (BeforeCreateUser). Both consult the same Policy. AfterCreateUser completes
// the entry once the record exists.
type Gate struct {
	paths   []string
	policy  *Policy
	service *Service
}

// Intercepts reports whether path belongs to a guarded registration flow.
func (g *Gate) Intercepts(path string) bool {
	for _, prefix := range g.paths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (g *Gate) CheckAttempt(ctx context.Context, attempt Attempt) error {
	if !g.Intercepts(attempt.Path) {
		return nil
	}
	err := g.policy.CheckAttempt(ctx, attempt)
	if err != nil {
		slog.Info("Registration attempt denied", "path", attempt.Path, "email", attempt.Email, "error", err)
	}
	return err
}

func (g *Gate) BeforeCreateUser(ctx context.Context, user *model.User) error {
	err := g.policy.CheckCandidate(ctx, Candidate{
		Email:     user.Email,
		Anonymous: user.IsAnonymous,
	})
	if err != nil {
		slog.Info("User creation denied", "email", user.Email, "error", err)
	}
	return err
}

func (g *Gate) AfterCreateUser(ctx context.Context, user *model.User) error {
	if user.Email == "" {
		return nil
	}
	return g.service.MarkRegistered(ctx, user.Email)
}

func NewGate(opts Options, policy *Policy, service *Service) *Gate {
	return &Gate{
		paths:   opts.sanitize().InterceptPaths,
		policy:  policy,
		service: service,
	}
}

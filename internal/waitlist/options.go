package waitlist

import (
	"context"
	"strings"
	"time"

	"github.com/khanghh/kwaitlist/params"
)

// DefaultInterceptPaths lists the registration flows guarded by the
// pre-processing gate. Entries are matched as path prefixes.
var DefaultInterceptPaths = []string{
	"/sign-up/email",
	"/callback/",
	"/oauth2/callback/",
	"/magic-link/verify",
	"/email-otp/verify-email",
	"/sign-in/email-otp",
	"/phone-number/verify",
	"/sign-in/anonymous",
	"/one-tap/callback",
	"/siwe/verify",
}

type autoApproveKind int

const (
	autoApproveDisabled autoApproveKind = iota
	autoApproveAlways
	autoApprovePredicate
)

// ApprovePredicate decides whether a joining email is approved right away.
// An error leaves the entry pending.
type ApprovePredicate func(ctx context.Context, email string) (bool, error)

// AutoApprove selects how new entries are approved on join. The zero value
// disables auto approval.
type AutoApprove struct {
	kind      autoApproveKind
	predicate ApprovePredicate
}

func AutoApproveDisabled() AutoApprove {
	return AutoApprove{kind: autoApproveDisabled}
}

func AutoApproveAlways() AutoApprove {
	return AutoApprove{kind: autoApproveAlways}
}

func AutoApproveIf(predicate ApprovePredicate) AutoApprove {
	if predicate == nil {
		return AutoApproveDisabled()
	}
	return AutoApprove{kind: autoApprovePredicate, predicate: predicate}
}

// AutoApproveDomains approves emails ending with any of the given suffixes,
// e.g. "@example.com".
func AutoApproveDomains(suffixes ...string) AutoApprove {
	if len(suffixes) == 0 {
		return AutoApproveDisabled()
	}
	normalized := make([]string, 0, len(suffixes))
	for _, suffix := range suffixes {
		normalized = append(normalized, strings.ToLower(strings.TrimSpace(suffix)))
	}
	return AutoApproveIf(func(ctx context.Context, email string) (bool, error) {
		for _, suffix := range normalized {
			if suffix != "" && strings.HasSuffix(email, suffix) {
				return true, nil
			}
		}
		return false, nil
	})
}

type Options struct {
	Enabled              bool
	RequireInviteCode    bool
	InviteCodeExpiration time.Duration
	MaxWaitlistSize      int // zero means unlimited
	SkipAnonymous        bool
	AutoApprove          AutoApprove
	InterceptPaths       []string
	AdminRoles           []string
	Now                  func() time.Time
}

func DefaultOptions() Options {
	return Options{
		Enabled:              true,
		InviteCodeExpiration: params.DefaultInviteCodeExpiration,
		InterceptPaths:       DefaultInterceptPaths,
		AdminRoles:           []string{params.DefaultAdminRole},
		Now:                  time.Now,
	}
}

func (o Options) sanitize() Options {
	if o.InviteCodeExpiration <= 0 {
		o.InviteCodeExpiration = params.DefaultInviteCodeExpiration
	}
	if o.InterceptPaths == nil {
		o.InterceptPaths = DefaultInterceptPaths
	}
	if len(o.AdminRoles) == 0 {
		o.AdminRoles = []string{params.DefaultAdminRole}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

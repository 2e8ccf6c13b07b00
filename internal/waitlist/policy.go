package waitlist

import (
	"context"
	"errors"
	"log/slog"

	"github.com/khanghh/kwaitlist/model"
)

// AccountLookup tells whether a user account already exists for an email.
type AccountLookup interface {
	UserExists(ctx context.Context, email string) (bool, error)
}

// Attempt is the identifying data available when a registration flow starts.
// Email and InviteCode may be empty.
type Attempt struct {
	Path       string
	Email      string
	InviteCode string
}

// Candidate describes a user record about to be persisted.
type Candidate struct {
	Email     string
	Anonymous bool
}

// Policy holds the admission decisions. It never mutates waitlist state and
// reads fresh state on every call.
type Policy struct {
	opts     Options
	entries  EntryRepository
	accounts AccountLookup
}

// DecideOnJoin reports whether a joining email is approved immediately.
func (p *Policy) DecideOnJoin(ctx context.Context, email string) bool {
	switch p.opts.AutoApprove.kind {
	case autoApproveAlways:
		return true
	case autoApprovePredicate:
		approved, err := p.opts.AutoApprove.predicate(ctx, email)
		if err != nil {
			slog.Warn("Auto approve predicate failed, entry stays pending", "email", email, "error", err)
			return false
		}
		return approved
	default:
		return false
	}
}

// ValidInvite returns the approved entry owning code if the code has not
// expired yet.
func (p *Policy) ValidInvite(ctx context.Context, code string) (*model.WaitlistEntry, error) {
	if code == "" {
		return nil, ErrInvalidInviteCode
	}
	entry, err := p.entries.FindByInviteCode(ctx, code)
	if errors.Is(err, ErrEntryNotFound) {
		return nil, ErrInvalidInviteCode
	}
	if err != nil {
		return nil, err
	}
	if entry.InviteExpiresAt != nil && p.opts.Now().After(*entry.InviteExpiresAt) {
		return nil, ErrInvalidInviteCode
	}
	return entry, nil
}

func (p *Policy) requireApproved(ctx context.Context, email string) error {
	entry, err := p.entries.FindByEmail(ctx, email)
	if errors.Is(err, ErrEntryNotFound) {
		return ErrNotApproved
	}
	if err != nil {
		return err
	}
	if entry.Status != model.EntryStatusApproved {
		return ErrNotApproved
	}
	return nil
}

// CheckAttempt admits (nil) or denies a registration attempt before any
// account is created.
func (p *Policy) CheckAttempt(ctx context.Context, attempt Attempt) error {
	if !p.opts.Enabled {
		return nil
	}

	email := normalizeEmail(attempt.Email)
	if email != "" && p.accounts != nil {
		exists, err := p.accounts.UserExists(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
	}

	if p.opts.RequireInviteCode {
		if attempt.InviteCode == "" {
			return ErrInviteCodeRequired
		}
		_, err := p.ValidInvite(ctx, attempt.InviteCode)
		return err
	}

	if email != "" {
		return p.requireApproved(ctx, email)
	}
	return nil
}

// CheckCandidate admits (nil) or denies the persistence of a new user record.
// Invite codes are not considered here.
func (p *Policy) CheckCandidate(ctx context.Context, candidate Candidate) error {
	if !p.opts.Enabled {
		return nil
	}
	if p.opts.SkipAnonymous && candidate.Anonymous {
		return nil
	}
	email := normalizeEmail(candidate.Email)
	if email == "" {
		return nil
	}
	return p.requireApproved(ctx, email)
}

func NewPolicy(opts Options, entries EntryRepository, accounts AccountLookup) *Policy {
	return &Policy{
		opts:     opts.sanitize(),
		entries:  entries,
		accounts: accounts,
	}
}

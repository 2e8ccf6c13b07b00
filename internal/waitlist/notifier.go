package waitlist

import (
	"context"
	"errors"
	"time"

	"github.com/khanghh/kwaitlist/model"
)

type Invite struct {
	Email      string
	InviteCode string
	ExpiresAt  time.Time
}

// Notifier observes waitlist transitions. Each method runs once after the
// corresponding mutation has been persisted.
type Notifier interface {
	OnJoinWaitlist(ctx context.Context, entry *model.WaitlistEntry) error
	OnApproved(ctx context.Context, entry *model.WaitlistEntry) error
	OnRejected(ctx context.Context, entry *model.WaitlistEntry, reason string) error
	SendInviteEmail(ctx context.Context, invite Invite) error
}

type NopNotifier struct{}

func (NopNotifier) OnJoinWaitlist(ctx context.Context, entry *model.WaitlistEntry) error {
	return nil
}

func (NopNotifier) OnApproved(ctx context.Context, entry *model.WaitlistEntry) error {
	return nil
}

func (NopNotifier) OnRejected(ctx context.Context, entry *model.WaitlistEntry, reason string) error {
	return nil
}

func (NopNotifier) SendInviteEmail(ctx context.Context, invite Invite) error {
	return nil
}

// Notifiers fans every event out to all members and joins their errors.
type Notifiers []Notifier

func (n Notifiers) OnJoinWaitlist(ctx context.Context, entry *model.WaitlistEntry) error {
	var errs []error
	for _, notifier := range n {
		errs = append(errs, notifier.OnJoinWaitlist(ctx, entry))
	}
	return errors.Join(errs...)
}

func (n Notifiers) OnApproved(ctx context.Context, entry *model.WaitlistEntry) error {
	var errs []error
	for _, notifier := range n {
		errs = append(errs, notifier.OnApproved(ctx, entry))
	}
	return errors.Join(errs...)
}

func (n Notifiers) OnRejected(ctx context.Context, entry *model.WaitlistEntry, reason string) error {
	var errs []error
	for _, notifier := range n {
		errs = append(errs, notifier.OnRejected(ctx, entry, reason))
	}
	return errors.Join(errs...)
}

func (n Notifiers) SendInviteEmail(ctx context.Context, invite Invite) error {
	var errs []error
	for _, notifier := range n {
		errs = append(errs, notifier.SendInviteEmail(ctx, invite))
	}
	return errors.Join(errs...)
}

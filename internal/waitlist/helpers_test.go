package waitlist

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/khanghh/kwaitlist/internal/store"
	"github.com/khanghh/kwaitlist/internal/store/storetest"
	"github.com/khanghh/kwaitlist/model"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingNotifier struct {
	events  []string
	invites []Invite
	failOn  string
}

func (n *recordingNotifier) record(event string) error {
	n.events = append(n.events, event)
	if event == n.failOn {
		return context.DeadlineExceeded
	}
	return nil
}

func (n *recordingNotifier) OnJoinWaitlist(ctx context.Context, entry *model.WaitlistEntry) error {
	return n.record("join:" + entry.Email)
}

func (n *recordingNotifier) OnApproved(ctx context.Context, entry *model.WaitlistEntry) error {
	return n.record("approved:" + entry.Email)
}

func (n *recordingNotifier) OnRejected(ctx context.Context, entry *model.WaitlistEntry, reason string) error {
	return n.record("rejected:" + entry.Email + ":" + reason)
}

func (n *recordingNotifier) SendInviteEmail(ctx context.Context, invite Invite) error {
	n.invites = append(n.invites, invite)
	return n.record("invite:" + invite.Email)
}

type fakeAccounts map[string]bool

func (a fakeAccounts) UserExists(ctx context.Context, email string) (bool, error) {
	return a[email], nil
}

type testEnv struct {
	opts     Options
	clock    *fakeClock
	entries  EntryRepository
	policy   *Policy
	service  *Service
	admin    *AdminService
	gate     *Gate
	notifier *recordingNotifier
	accounts fakeAccounts
}

func newTestEnv(t *testing.T, configure func(opts *Options)) *testEnv {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	opts := DefaultOptions()
	opts.Now = clock.Now
	if configure != nil {
		configure(&opts)
	}
	env := &testEnv{
		opts:     opts,
		clock:    clock,
		entries:  NewEntryRepository(store.NewGormRecords[model.WaitlistEntry](storetest.NewQuery(t).WaitlistEntry.DO)),
		notifier: &recordingNotifier{},
		accounts: fakeAccounts{},
	}
	env.policy = NewPolicy(opts, env.entries, env.accounts)
	env.service = NewService(opts, env.entries, env.policy, env.notifier)
	env.admin = NewAdminService(opts, env.service)
	env.gate = NewGate(opts, env.policy, env.service)
	return env
}

func (env *testEnv) join(t *testing.T, email string) *model.WaitlistEntry {
	t.Helper()
	entry, err := env.service.Join(context.Background(), JoinRequest{Email: email})
	if err != nil {
		t.Fatalf("join %s: %v", email, err)
	}
	return entry
}

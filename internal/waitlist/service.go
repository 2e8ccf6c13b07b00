package waitlist

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/khanghh/kwaitlist/internal/common"
	"github.com/khanghh/kwaitlist/internal/store"
	"github.com/khanghh/kwaitlist/model"
	"github.com/khanghh/kwaitlist/params"
	"gorm.io/datatypes"
)

type JoinRequest struct {
	Email      string
	ReferredBy string
	Metadata   json.RawMessage
}

type InviteVerification struct {
	Valid bool    `json:"valid"`
	Email *string `json:"email"`
}

type BulkResult struct {
	Count   int                    `json:"count"`
	Entries []*model.WaitlistEntry `json:"entries"`
}

type Service struct {
	opts     Options
	entries  EntryRepository
	policy   *Policy
	notifier Notifier
}

func generateInviteCode() (string, error) {
	return common.GenerateSecret(params.InviteCodeLength)
}

func (s *Service) notify(event string, email string, fn func() error) {
	if err := fn(); err != nil {
		slog.Warn("Waitlist notification failed", "event", event, "email", email, "error", err)
	}
}

func (s *Service) sendInvite(ctx context.Context, entry *model.WaitlistEntry) {
	if entry.InviteCode == nil || entry.InviteExpiresAt == nil {
		return
	}
	invite := Invite{
		Email:      entry.Email,
		InviteCode: *entry.InviteCode,
		ExpiresAt:  *entry.InviteExpiresAt,
	}
	s.notify("send_invite", entry.Email, func() error {
		return s.notifier.SendInviteEmail(ctx, invite)
	})
}

// Join adds email to the waitlist at the next position. The position is
// derived from the current entry count and is not serialized across
// concurrent joins.
func (s *Service) Join(ctx context.Context, req JoinRequest) (*model.WaitlistEntry, error) {
	email := normalizeEmail(req.Email)
	_, err := s.entries.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailAlreadyInWaitlist
	}
	if !errors.Is(err, ErrEntryNotFound) {
		return nil, err
	}

	total, err := s.entries.Count(ctx, "")
	if err != nil {
		return nil, err
	}
	if s.opts.MaxWaitlistSize > 0 && total >= int64(s.opts.MaxWaitlistSize) {
		return nil, ErrWaitlistFull
	}

	entry := model.WaitlistEntry{
		Email:      email,
		Status:     model.EntryStatusPending,
		Position:   int(total) + 1,
		ReferredBy: req.ReferredBy,
	}
	if len(req.Metadata) > 0 {
		entry.Metadata = datatypes.JSON(req.Metadata)
	}
	if s.policy.DecideOnJoin(ctx, email) {
		code, err := generateInviteCode()
		if err != nil {
			return nil, err
		}
		now := s.opts.Now()
		expiresAt := now.Add(s.opts.InviteCodeExpiration)
		entry.Status = model.EntryStatusApproved
		entry.InviteCode = &code
		entry.InviteExpiresAt = &expiresAt
		entry.ApprovedAt = &now
	}

	if err := s.entries.Insert(ctx, &entry); err != nil {
		return nil, err
	}
	slog.Info("Joined waitlist", "email", entry.Email, "position", entry.Position, "status", entry.Status)

	s.sendInvite(ctx, &entry)
	s.notify("join", entry.Email, func() error {
		return s.notifier.OnJoinWaitlist(ctx, &entry)
	})
	return &entry, nil
}

func (s *Service) Status(ctx context.Context, email string) (*model.WaitlistEntry, error) {
	return s.entries.FindByEmail(ctx, email)
}

// VerifyInvite reports whether code belongs to an approved entry whose invite
// has not expired. Only store failures are returned as errors.
func (s *Service) VerifyInvite(ctx context.Context, code string) (*InviteVerification, error) {
	entry, err := s.policy.ValidInvite(ctx, code)
	if errors.Is(err, ErrInvalidInviteCode) {
		return &InviteVerification{Valid: false}, nil
	}
	if err != nil {
		return nil, err
	}
	return &InviteVerification{Valid: true, Email: &entry.Email}, nil
}

func (s *Service) approveEntry(ctx context.Context, entry *model.WaitlistEntry) (*model.WaitlistEntry, error) {
	code, err := generateInviteCode()
	if err != nil {
		return nil, err
	}
	now := s.opts.Now()
	expiresAt := now.Add(s.opts.InviteCodeExpiration)
	patch := store.Patch{
		ColEntryStatus:          model.EntryStatusApproved,
		ColEntryInviteCode:      &code,
		ColEntryInviteExpiresAt: &expiresAt,
	}
	if entry.ApprovedAt == nil {
		patch[ColEntryApprovedAt] = &now
	}
	approved, err := s.entries.Update(ctx, entry.ID, patch)
	if err != nil {
		return nil, err
	}
	slog.Info("Approved waitlist entry", "email", approved.Email, "expiresAt", expiresAt)

	s.sendInvite(ctx, approved)
	s.notify("approve", approved.Email, func() error {
		return s.notifier.OnApproved(ctx, approved)
	})
	return approved, nil
}

// Approve moves the entry to approved and issues a fresh invite code.
func (s *Service) Approve(ctx context.Context, email string) (*model.WaitlistEntry, error) {
	entry, err := s.entries.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if entry.Status == model.EntryStatusRegistered {
		return nil, ErrAlreadyRegistered
	}
	return s.approveEntry(ctx, entry)
}

// Reject moves the entry to rejected. Rejecting a rejected entry returns it
// unchanged.
func (s *Service) Reject(ctx context.Context, email string, reason string) (*model.WaitlistEntry, error) {
	entry, err := s.entries.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	switch entry.Status {
	case model.EntryStatusRegistered:
		return nil, ErrAlreadyRegistered
	case model.EntryStatusRejected:
		return entry, nil
	}

	now := s.opts.Now()
	rejected, err := s.entries.Update(ctx, entry.ID, store.Patch{
		ColEntryStatus:     model.EntryStatusRejected,
		ColEntryRejectedAt: &now,
	})
	if err != nil {
		return nil, err
	}
	slog.Info("Rejected waitlist entry", "email", rejected.Email, "reason", reason)

	s.notify("reject", rejected.Email, func() error {
		return s.notifier.OnRejected(ctx, rejected, reason)
	})
	return rejected, nil
}

// BulkApproveByEmails approves every listed email whose entry is pending.
// Other emails are skipped and failures do not stop the remaining emails.
func (s *Service) BulkApproveByEmails(ctx context.Context, emails []string) *BulkResult {
	result := &BulkResult{Entries: []*model.WaitlistEntry{}}
	for _, email := range emails {
		entry, err := s.entries.FindByEmail(ctx, email)
		if err != nil {
			if !errors.Is(err, ErrEntryNotFound) {
				slog.Warn("Bulk approve lookup failed", "email", email, "error", err)
			}
			continue
		}
		if entry.Status != model.EntryStatusPending {
			continue
		}
		approved, err := s.approveEntry(ctx, entry)
		if err != nil {
			slog.Warn("Bulk approve failed", "email", entry.Email, "error", err)
			continue
		}
		result.Entries = append(result.Entries, approved)
	}
	result.Count = len(result.Entries)
	return result
}

// BulkApproveByCount approves the count oldest pending entries by position.
func (s *Service) BulkApproveByCount(ctx context.Context, count int) (*BulkResult, error) {
	result := &BulkResult{Entries: []*model.WaitlistEntry{}}
	if count <= 0 {
		return result, nil
	}
	pending, err := s.entries.FindMany(ctx, model.EntryStatusPending, store.FindOptions{
		Sort:  []store.SortField{{Column: ColEntryPosition}},
		Limit: count,
	})
	if err != nil {
		return nil, err
	}
	for _, entry := range pending {
		approved, err := s.approveEntry(ctx, entry)
		if err != nil {
			slog.Warn("Bulk approve failed", "email", entry.Email, "error", err)
			continue
		}
		result.Entries = append(result.Entries, approved)
	}
	result.Count = len(result.Entries)
	return result, nil
}

// MarkRegistered records that a user account now exists for email. It is a
// no-op when the email never joined the waitlist.
func (s *Service) MarkRegistered(ctx context.Context, email string) error {
	entry, err := s.entries.FindByEmail(ctx, email)
	if errors.Is(err, ErrEntryNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if entry.Status == model.EntryStatusRegistered {
		return nil
	}
	now := s.opts.Now()
	_, err = s.entries.Update(ctx, entry.ID, store.Patch{
		ColEntryStatus:       model.EntryStatusRegistered,
		ColEntryRegisteredAt: &now,
	})
	if err == nil {
		slog.Info("Waitlist entry registered", "email", entry.Email)
	}
	return err
}

func NewService(opts Options, entries EntryRepository, policy *Policy, notifier Notifier) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Service{
		opts:     opts.sanitize(),
		entries:  entries,
		policy:   policy,
		notifier: notifier,
	}
}

package waitlist

import (
	"context"
	"errors"

	"github.com/khanghh/kwaitlist/internal/store"
	"github.com/khanghh/kwaitlist/model"
)

const (
	ColEntryID              = "id"
	ColEntryEmail           = "email"
	ColEntryStatus          = "status"
	ColEntryInviteCode      = "invite_code"
	ColEntryInviteExpiresAt = "invite_expires_at"
	ColEntryPosition        = "position"
	ColEntryApprovedAt      = "approved_at"
	ColEntryRejectedAt      = "rejected_at"
	ColEntryRegisteredAt    = "registered_at"
	ColEntryCreatedAt       = "created_at"
)

type EntryRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.WaitlistEntry, error)
	FindByInviteCode(ctx context.Context, code string) (*model.WaitlistEntry, error)
	Insert(ctx context.Context, entry *model.WaitlistEntry) error
	Update(ctx context.Context, id uint, patch store.Patch) (*model.WaitlistEntry, error)
	Count(ctx context.Context, status model.EntryStatus) (int64, error)
	FindMany(ctx context.Context, status model.EntryStatus, opts store.FindOptions) ([]*model.WaitlistEntry, error)
	ListPaginated(ctx context.Context, status model.EntryStatus, sort store.SortField, page int, limit int) ([]*model.WaitlistEntry, int64, error)
}

type entryRepository struct {
	records store.Records[model.WaitlistEntry]
}

func statusFilter(status model.EntryStatus) store.Filter {
	if status == "" {
		return nil
	}
	return store.Filter{ColEntryStatus: status}
}

func (r *entryRepository) findOne(ctx context.Context, filter store.Filter) (*model.WaitlistEntry, error) {
	entry, err := r.records.FindOne(ctx, filter)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrEntryNotFound
	}
	return entry, err
}

func (r *entryRepository) FindByEmail(ctx context.Context, email string) (*model.WaitlistEntry, error) {
	return r.findOne(ctx, store.Filter{ColEntryEmail: normalizeEmail(email)})
}

// FindByInviteCode only matches entries that are currently approved.
func (r *entryRepository) FindByInviteCode(ctx context.Context, code string) (*model.WaitlistEntry, error) {
	return r.findOne(ctx, store.Filter{
		ColEntryInviteCode: code,
		ColEntryStatus:     model.EntryStatusApproved,
	})
}

func (r *entryRepository) Insert(ctx context.Context, entry *model.WaitlistEntry) error {
	entry.Email = normalizeEmail(entry.Email)
	err := r.records.Create(ctx, entry)
	var dupErr *store.DuplicateKeyError
	if errors.As(err, &dupErr) && dupErr.Mentions(ColEntryEmail) && !dupErr.Mentions(ColEntryInviteCode) {
		return ErrEmailAlreadyInWaitlist
	}
	return err
}

func (r *entryRepository) Update(ctx context.Context, id uint, patch store.Patch) (*model.WaitlistEntry, error) {
	entry, err := r.records.Update(ctx, store.Filter{ColEntryID: id}, patch)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrEntryNotFound
	}
	return entry, err
}

func (r *entryRepository) Count(ctx context.Context, status model.EntryStatus) (int64, error) {
	return r.records.Count(ctx, statusFilter(status))
}

func (r *entryRepository) FindMany(ctx context.Context, status model.EntryStatus, opts store.FindOptions) ([]*model.WaitlistEntry, error) {
	return r.records.FindMany(ctx, statusFilter(status), opts)
}

func (r *entryRepository) ListPaginated(ctx context.Context, status model.EntryStatus, sort store.SortField, page int, limit int) ([]*model.WaitlistEntry, int64, error) {
	total, err := r.records.Count(ctx, statusFilter(status))
	if err != nil {
		return nil, 0, err
	}
	entries, err := r.records.FindMany(ctx, statusFilter(status), store.FindOptions{
		Sort:   []store.SortField{sort},
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func NewEntryRepository(records store.Records[model.WaitlistEntry]) EntryRepository {
	return &entryRepository{records}
}

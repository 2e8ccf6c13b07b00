package audit

import (
	"context"

	"github.com/khanghh/kwaitlist/internal/store"
	"github.com/khanghh/kwaitlist/model"
)

type AuditEventRepository interface {
	RecordEvent(ctx context.Context, event *model.AuditEvent) error
	ListByEmail(ctx context.Context, email string, limit int) ([]*model.AuditEvent, error)
}

type auditEventRepository struct {
	records store.Records[model.AuditEvent]
}

func (r *auditEventRepository) RecordEvent(ctx context.Context, event *model.AuditEvent) error {
	return r.records.Create(ctx, event)
}

func (r *auditEventRepository) ListByEmail(ctx context.Context, email string, limit int) ([]*model.AuditEvent, error) {
	return r.records.FindMany(ctx, store.Filter{"email": email}, store.FindOptions{
		Sort:  []store.SortField{{Column: "id", Desc: true}},
		Limit: limit,
	})
}

func NewAuditEventRepository(records store.Records[model.AuditEvent]) AuditEventRepository {
	return &auditEventRepository{records}
}

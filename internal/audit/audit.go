package audit

import (
	"context"
	"sync"

	"github.com/khanghh/kwaitlist/model"
)

var auditRepo AuditEventRepository
var initOnce sync.Once

func Initialize(repo AuditEventRepository) {
	initOnce.Do(func() {
		auditRepo = repo
	})
}

const (
	EventTypeWaitlistApproved     = "waitlist_approved"
	EventTypeWaitlistRejected     = "waitlist_rejected"
	EventTypeWaitlistBulkApproved = "waitlist_bulk_approved"
	EventTypeRegistrationDenied   = "registration_denied"
)

type AdminActionRecord struct {
	ActorID   uint
	ActorRole string
	EventType string
	Email     string
	Count     int
	Reason    string
	IP        string
	UserAgent string
}

type RegistrationDeniedRecord struct {
	Email     string
	Path      string
	Code      string
	IP        string
	UserAgent string
}

func recordEvent(ctx context.Context, event *model.AuditEvent) error {
	if auditRepo == nil {
		return nil
	}
	return auditRepo.RecordEvent(ctx, event)
}

func RecordAdminAction(ctx context.Context, record AdminActionRecord) error {
	return recordEvent(ctx, &model.AuditEvent{
		ActorID:   record.ActorID,
		ActorRole: record.ActorRole,
		EventType: record.EventType,
		Email:     record.Email,
		Count:     record.Count,
		Reason:    record.Reason,
		IP:        record.IP,
		UserAgent: record.UserAgent,
	})
}

func RecordRegistrationDenied(ctx context.Context, record RegistrationDeniedRecord) error {
	reason := record.Code
	if record.Path != "" {
		reason = record.Code + " " + record.Path
	}
	return recordEvent(ctx, &model.AuditEvent{
		EventType: EventTypeRegistrationDenied,
		Email:     record.Email,
		Reason:    reason,
		IP:        record.IP,
		UserAgent: record.UserAgent,
	})
}

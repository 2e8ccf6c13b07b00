package waitlist

import (
	"context"
	"slices"

	"github.com/khanghh/kwaitlist/model"
)

// Actor is the authenticated caller of an administrative operation.
type Actor struct {
	UserID uint
	Email  string
	Role   string
}

type BulkApproveRequest struct {
	Emails []string
	Count  int
}

// AdminService guards the administrative surface with the configured admin
// roles. The role check happens before any repository access.
type AdminService struct {
	svc   *Service
	roles []string
}

func (a *AdminService) authorize(actor Actor) error {
	if actor.Role == "" || !slices.Contains(a.roles, actor.Role) {
		return ErrUnauthorizedAdmin
	}
	return nil
}

func (a *AdminService) Approve(ctx context.Context, actor Actor, email string) (*model.WaitlistEntry, error) {
	if err := a.authorize(actor); err != nil {
		return nil, err
	}
	return a.svc.Approve(ctx, email)
}

func (a *AdminService) Reject(ctx context.Context, actor Actor, email string, reason string) (*model.WaitlistEntry, error) {
	if err := a.authorize(actor); err != nil {
		return nil, err
	}
	return a.svc.Reject(ctx, email, reason)
}

// BulkApprove approves by email list when Emails is set, otherwise the Count
// oldest pending entries.
func (a *AdminService) BulkApprove(ctx context.Context, actor Actor, req BulkApproveRequest) (*BulkResult, error) {
	if err := a.authorize(actor); err != nil {
		return nil, err
	}
	if len(req.Emails) > 0 {
		return a.svc.BulkApproveByEmails(ctx, req.Emails), nil
	}
	return a.svc.BulkApproveByCount(ctx, req.Count)
}

func (a *AdminService) List(ctx context.Context, actor Actor, query ListQuery) (*ListResult, error) {
	if err := a.authorize(actor); err != nil {
		return nil, err
	}
	return a.svc.List(ctx, query)
}

func (a *AdminService) Stats(ctx context.Context, actor Actor) (*Stats, error) {
	if err := a.authorize(actor); err != nil {
		return nil, err
	}
	return a.svc.Stats(ctx)
}

func NewAdminService(opts Options, svc *Service) *AdminService {
	return &AdminService{
		svc:   svc,
		roles: opts.sanitize().AdminRoles,
	}
}

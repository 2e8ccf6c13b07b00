package api

import (
	"context"
	"time"

	"github.com/khanghh/kwaitlist/internal/oauth"
	"github.com/khanghh/kwaitlist/internal/users"
	"github.com/khanghh/kwaitlist/internal/waitlist"
	"github.com/khanghh/kwaitlist/model"
)

type WaitlistService interface {
	Join(ctx context.Context, req waitlist.JoinRequest) (*model.WaitlistEntry, error)
	Status(ctx context.Context, email string) (*model.WaitlistEntry, error)
	VerifyInvite(ctx context.Context, code string) (*waitlist.InviteVerification, error)
}

type WaitlistAdminService interface {
	Approve(ctx context.Context, actor waitlist.Actor, email string) (*model.WaitlistEntry, error)
	Reject(ctx context.Context, actor waitlist.Actor, email string, reason string) (*model.WaitlistEntry, error)
	BulkApprove(ctx context.Context, actor waitlist.Actor, req waitlist.BulkApproveRequest) (*waitlist.BulkResult, error)
	List(ctx context.Context, actor waitlist.Actor, query waitlist.ListQuery) (*waitlist.ListResult, error)
	Stats(ctx context.Context, actor waitlist.Actor) (*waitlist.Stats, error)
}

type UserService interface {
	Authenticate(ctx context.Context, email string, password string) (*model.User, error)
	CreateUser(ctx context.Context, opts users.CreateUserOptions) (*model.User, error)
	CreateAnonymousUser(ctx context.Context) (*model.User, error)
	GetOrCreateUser(ctx context.Context, opts users.CreateUserOptions) (*model.User, error)
}

type TokenService interface {
	IssueToken(user *model.User) (string, time.Time, error)
}

type OAuthStateManager interface {
	Create(ctx context.Context, provider string, inviteCode string) (string, error)
	Consume(ctx context.Context, key string, provider string) (*oauth.State, error)
}

package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/memory/v2"
	"github.com/khanghh/kwaitlist/internal/auth"
	"github.com/khanghh/kwaitlist/internal/handlers/api"
	"github.com/khanghh/kwaitlist/internal/middlewares"
	"github.com/khanghh/kwaitlist/internal/oauth"
	"github.com/khanghh/kwaitlist/internal/store"
	"github.com/khanghh/kwaitlist/internal/store/storetest"
	"github.com/khanghh/kwaitlist/internal/users"
	"github.com/khanghh/kwaitlist/internal/waitlist"
	"github.com/khanghh/kwaitlist/model"
	"github.com/khanghh/kwaitlist/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type fakeProvider struct {
	email string
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) GetAuthCodeURL(state string) string {
	return "https://provider.test/auth?state=" + url.QueryEscape(state)
}

func (p *fakeProvider) ExchangeToken(ctx context.Context, code string) (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: "access-" + code}, nil
}

func (p *fakeProvider) GetUserInfo(ctx context.Context, token *oauth2.Token) (*oauth.OAuthUserInfo, error) {
	return &oauth.OAuthUserInfo{ID: "1", Email: p.email, Name: "Federated"}, nil
}

type testServer struct {
	app         *fiber.App
	users       *users.UserService
	waitlist    *waitlist.Service
	tokens      *auth.TokenService
	provider    *fakeProvider
	adminToken  string
	memberToken string
}

func newTestServer(t *testing.T, configure func(opts *waitlist.Options)) *testServer {
	t.Helper()
	opts := waitlist.DefaultOptions()
	if configure != nil {
		configure(&opts)
	}

	q := storetest.NewQuery(t)
	userService := users.NewUserService(users.NewUserRepository(store.NewGormRecords[model.User](q.User.DO)))
	entries := waitlist.NewEntryRepository(store.NewGormRecords[model.WaitlistEntry](q.WaitlistEntry.DO))
	policy := waitlist.NewPolicy(opts, entries, userService)
	waitlistService := waitlist.NewService(opts, entries, policy, nil)
	gate := waitlist.NewGate(opts, policy, waitlistService)
	userService.AddCreateHook(gate)
	adminService := waitlist.NewAdminService(opts, waitlistService)

	tokens, err := auth.NewTokenService("test-master-key", time.Hour)
	require.NoError(t, err)
	states := oauth.NewStateManager(store.New[oauth.State](memory.New(), params.OAuthStateKeyPrefix))
	provider := &fakeProvider{email: "federated@example.com"}

	var (
		waitlistHandler = api.NewWaitlistHandler(waitlistService)
		adminHandler    = api.NewAdminHandler(adminService)
		authHandler     = api.NewAuthHandler(userService, tokens, states, []oauth.OAuthProvider{provider})
	)

	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	wl := app.Group("/api/waitlist")
	wl.Post("/join", waitlistHandler.PostJoin)
	wl.Get("/status", waitlistHandler.GetStatus)
	wl.Get("/verify-invite", waitlistHandler.GetVerifyInvite)
	admin := wl.Group("/admin", middlewares.RequireAuth(tokens), middlewares.RequireRoles(opts.AdminRoles...))
	admin.Post("/approve", adminHandler.PostApprove)
	admin.Post("/reject", adminHandler.PostReject)
	admin.Post("/bulk-approve", adminHandler.PostBulkApprove)
	admin.Get("/list", adminHandler.GetList)
	admin.Get("/stats", adminHandler.GetStats)

	authGroup := app.Group("/api/auth", middlewares.WaitlistGate(gate, "/api/auth", middlewares.OAuthStateInviteCode(states)))
	authGroup.Post("/sign-up/email", authHandler.PostSignUpEmail)
	authGroup.Post("/sign-in/email", authHandler.PostSignInEmail)
	authGroup.Post("/sign-in/anonymous", authHandler.PostSignInAnonymous)
	authGroup.Get("/sign-in/social/:provider", authHandler.GetSignInSocial)
	authGroup.Get("/callback/:provider", authHandler.GetCallback)

	adminUser, err := userService.CreateUser(context.Background(), users.CreateUserOptions{
		Email: "root@example.com", Password: "rootpassword", Role: users.RoleAdmin, SkipHooks: true,
	})
	require.NoError(t, err)
	adminToken, _, err := tokens.IssueToken(adminUser)
	require.NoError(t, err)
	memberUser, err := userService.CreateUser(context.Background(), users.CreateUserOptions{
		Email: "member@example.com", Password: "memberpassword", SkipHooks: true,
	})
	require.NoError(t, err)
	memberToken, _, err := tokens.IssueToken(memberUser)
	require.NoError(t, err)

	return &testServer{
		app:         app,
		users:       userService,
		waitlist:    waitlistService,
		tokens:      tokens,
		provider:    provider,
		adminToken:  adminToken,
		memberToken: memberToken,
	}
}

type response struct {
	status int
	header map[string]string
	body   struct {
		Data  json.RawMessage   `json:"data"`
		Error *api.APIErrorInfo `json:"error"`
	}
}

func (r *response) decode(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.body.Data, v))
}

func (r *response) reason() string {
	if r.body.Error == nil || len(r.body.Error.Errors) == 0 {
		return ""
	}
	return r.body.Error.Errors[0].Reason
}

func (s *testServer) do(t *testing.T, method string, target string, body any, token string) *response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(data))
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := &response{status: resp.StatusCode, header: map[string]string{
		fiber.HeaderLocation: resp.Header.Get(fiber.HeaderLocation),
	}}
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &out.body))
	}
	return out
}

func TestJoinAndStatus(t *testing.T) {
	s := newTestServer(t, nil)

	resp := s.do(t, fiber.MethodPost, "/api/waitlist/join", fiber.Map{"email": "Alice@Example.com", "metadata": fiber.Map{"source": "ads"}}, "")
	require.Equal(t, fiber.StatusCreated, resp.status)
	var joined api.EntryStatusResponse
	resp.decode(t, &joined)
	assert.Equal(t, "alice@example.com", joined.Email)
	assert.Equal(t, model.EntryStatusPending, joined.Status)
	assert.Equal(t, 1, joined.Position)
	assert.NotZero(t, joined.ID)
	assert.Contains(t, string(resp.body.Data), fmt.Sprintf(`"id":"%d"`, joined.ID))
	assert.NotContains(t, string(resp.body.Data), "inviteCode")

	resp = s.do(t, fiber.MethodPost, "/api/waitlist/join", fiber.Map{"email": "alice@example.com"}, "")
	assert.Equal(t, fiber.StatusConflict, resp.status)
	assert.Equal(t, string(waitlist.CodeEmailAlreadyInWaitlist), resp.reason())

	resp = s.do(t, fiber.MethodPost, "/api/waitlist/join", fiber.Map{"email": "not-an-email"}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.status)
	assert.Equal(t, "INVALID_EMAIL", resp.reason())

	resp = s.do(t, fiber.MethodGet, "/api/waitlist/status?email=alice@example.com", nil, "")
	require.Equal(t, fiber.StatusOK, resp.status)
	var status api.EntryStatusResponse
	resp.decode(t, &status)
	assert.Equal(t, model.EntryStatusPending, status.Status)
	assert.Equal(t, joined.ID, status.ID)

	resp = s.do(t, fiber.MethodGet, "/api/waitlist/status?email=nobody@example.com", nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.status)
	assert.Equal(t, string(waitlist.CodeEntryNotFound), resp.reason())
}

func TestJoinRejectsDisplayNameAddress(t *testing.T) {
	s := newTestServer(t, nil)

	resp := s.do(t, fiber.MethodPost, "/api/waitlist/join", fiber.Map{"email": "a@x.com"}, "")
	require.Equal(t, fiber.StatusCreated, resp.status)

	for _, email := range []string{"Alice <a@x.com>", "<a@x.com>", `"a" <a@x.com>`} {
		resp = s.do(t, fiber.MethodPost, "/api/waitlist/join", fiber.Map{"email": email}, "")
		assert.Equal(t, fiber.StatusBadRequest, resp.status, email)
		assert.Equal(t, "INVALID_EMAIL", resp.reason(), email)
	}

	resp = s.do(t, fiber.MethodGet, "/api/waitlist/admin/stats", nil, s.adminToken)
	require.Equal(t, fiber.StatusOK, resp.status)
	var stats waitlist.Stats
	resp.decode(t, &stats)
	assert.EqualValues(t, 1, stats.Total)
}

func TestJoinWaitlistFull(t *testing.T) {
	s := newTestServer(t, func(opts *waitlist.Options) { opts.MaxWaitlistSize = 1 })

	resp := s.do(t, fiber.MethodPost, "/api/waitlist/join", fiber.Map{"email": "a@example.com"}, "")
	require.Equal(t, fiber.StatusCreated, resp.status)
	resp = s.do(t, fiber.MethodPost, "/api/waitlist/join", fiber.Map{"email": "b@example.com"}, "")
	assert.Equal(t, fiber.StatusForbidden, resp.status)
	assert.Equal(t, string(waitlist.CodeWaitlistFull), resp.reason())
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	s := newTestServer(t, nil)

	resp := s.do(t, fiber.MethodGet, "/api/waitlist/admin/stats", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.status)

	resp = s.do(t, fiber.MethodGet, "/api/waitlist/admin/stats", nil, s.memberToken)
	assert.Equal(t, fiber.StatusForbidden, resp.status)
	assert.Equal(t, string(waitlist.CodeUnauthorizedAdmin), resp.reason())

	resp = s.do(t, fiber.MethodGet, "/api/waitlist/admin/stats", nil, s.adminToken)
	assert.Equal(t, fiber.StatusOK, resp.status)
}

func TestApproveThenSignUp(t *testing.T) {
	s := newTestServer(t, nil)
	s.do(t, fiber.MethodPost, "/api/waitlist/join", fiber.Map{"email": "bob@example.com"}, "")

	signUp := fiber.Map{"email": "bob@example.com", "password": "password123", "name": "Bob"}
	resp := s.do(t, fiber.MethodPost, "/api/auth/sign-up/email", signUp, "")
	assert.Equal(t, fiber.StatusForbidden, resp.status)
	assert.Equal(t, string(waitlist.CodeNotApproved), resp.reason())

	resp = s.do(t, fiber.MethodPost, "/api/waitlist/admin/approve", fiber.Map{"email": "bob@example.com"}, s.adminToken)
	require.Equal(t, fiber.StatusOK, resp.status)
	var approved model.WaitlistEntry
	resp.decode(t, &approved)
	assert.Equal(t, model.EntryStatusApproved, approved.Status)
	require.NotNil(t, approved.InviteCode)

	resp = s.do(t, fiber.MethodGet, "/api/waitlist/verify-invite?code="+url.QueryEscape(*approved.InviteCode), nil, "")
	require.Equal(t, fiber.StatusOK, resp.status)
	var verification waitlist.InviteVerification
	resp.decode(t, &verification)
	assert.True(t, verification.Valid)
	require.NotNil(t, verification.Email)
	assert.Equal(t, "bob@example.com", *verification.Email)

	resp = s.do(t, fiber.MethodPost, "/api/auth/sign-up/email", signUp, "")
	require.Equal(t, fiber.StatusCreated, resp.status)
	var signedIn api.SignInResponse
	resp.decode(t, &signedIn)
	assert.Equal(t, "bob@example.com", signedIn.User.Email)
	claims, err := s.tokens.ParseToken(signedIn.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, signedIn.User.UserID, claims.UserID)

	entry, err := s.waitlist.Status(context.Background(), "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.EntryStatusRegistered, entry.Status)

	resp = s.do(t, fiber.MethodPost, "/api/auth/sign-in/email", fiber.Map{"email": "bob@example.com", "password": "password123"}, "")
	assert.Equal(t, fiber.StatusOK, resp.status)

	resp = s.do(t, fiber.MethodPost, "/api/waitlist/admin/reject", fiber.Map{"email": "bob@example.com"}, s.adminToken)
	assert.Equal(t, fiber.StatusConflict, resp.status)
	assert.Equal(t, string(waitlist.CodeAlreadyRegistered), resp.reason())
}

func TestVerifyInviteUnknownCode(t *testing.T) {
	s := newTestServer(t, nil)
	resp := s.do(t, fiber.MethodGet, "/api/waitlist/verify-invite?code=nope", nil, "")
	require.Equal(t, fiber.StatusOK, resp.status)
	var verification waitlist.InviteVerification
	resp.decode(t, &verification)
	assert.False(t, verification.Valid)
	assert.Nil(t, verification.Email)
}

func TestAdminRejectListAndStats(t *testing.T) {
	s := newTestServer(t, nil)
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		resp := s.do(t, fiber.MethodPost, "/api/waitlist/join", fiber.Map{"email": email}, "")
		require.Equal(t, fiber.StatusCreated, resp.status)
	}

	resp := s.do(t, fiber.MethodPost, "/api/waitlist/admin/reject", fiber.Map{"email": "a@example.com", "reason": "spam"}, s.adminToken)
	require.Equal(t, fiber.StatusOK, resp.status)

	resp = s.do(t, fiber.MethodPost, "/api/waitlist/admin/bulk-approve", fiber.Map{"count": 5}, s.adminToken)
	require.Equal(t, fiber.StatusOK, resp.status)
	var bulk waitlist.BulkResult
	resp.decode(t, &bulk)
	assert.Equal(t, 2, bulk.Count)

	resp = s.do(t, fiber.MethodPost, "/api/waitlist/admin/bulk-approve", fiber.Map{}, s.adminToken)
	assert.Equal(t, fiber.StatusBadRequest, resp.status)

	resp = s.do(t, fiber.MethodGet, "/api/waitlist/admin/list?status=approved&sortBy=position&sortDirection=asc&limit=1", nil, s.adminToken)
	require.Equal(t, fiber.StatusOK, resp.status)
	var list waitlist.ListResult
	resp.decode(t, &list)
	assert.EqualValues(t, 2, list.Total)
	assert.Equal(t, 2, list.TotalPages)
	require.Len(t, list.Entries, 1)
	assert.Equal(t, "b@example.com", list.Entries[0].Email)

	resp = s.do(t, fiber.MethodGet, "/api/waitlist/admin/list?status=bogus", nil, s.adminToken)
	assert.Equal(t, fiber.StatusBadRequest, resp.status)

	resp = s.do(t, fiber.MethodGet, "/api/waitlist/admin/stats", nil, s.adminToken)
	require.Equal(t, fiber.StatusOK, resp.status)
	var stats waitlist.Stats
	resp.decode(t, &stats)
	assert.Equal(t, waitlist.Stats{Total: 3, Pending: 0, Approved: 2, Rejected: 1}, stats)
}

func TestAnonymousSignIn(t *testing.T) {
	s := newTestServer(t, nil)
	resp := s.do(t, fiber.MethodPost, "/api/auth/sign-in/anonymous", nil, "")
	assert.Equal(t, fiber.StatusForbidden, resp.status)

	skipping := newTestServer(t, func(opts *waitlist.Options) { opts.SkipAnonymous = true })
	resp = skipping.do(t, fiber.MethodPost, "/api/auth/sign-in/anonymous", nil, "")
	require.Equal(t, fiber.StatusCreated, resp.status)
	var signedIn api.SignInResponse
	resp.decode(t, &signedIn)
	assert.True(t, signedIn.User.IsAnonymous)
}

func TestSocialSignInCarriesInviteCode(t *testing.T) {
	s := newTestServer(t, func(opts *waitlist.Options) { opts.RequireInviteCode = true })
	ctx := context.Background()
	_, err := s.waitlist.Join(ctx, waitlist.JoinRequest{Email: "federated@example.com"})
	require.NoError(t, err)
	entry, err := s.waitlist.Approve(ctx, "federated@example.com")
	require.NoError(t, err)

	resp := s.do(t, fiber.MethodGet, "/api/auth/sign-in/social/fake?inviteCode="+url.QueryEscape(*entry.InviteCode), nil, "")
	require.Equal(t, fiber.StatusFound, resp.status)
	location, err := url.Parse(resp.header[fiber.HeaderLocation])
	require.NoError(t, err)
	state := location.Query().Get("state")
	require.NotEmpty(t, state)

	resp = s.do(t, fiber.MethodGet, "/api/auth/callback/fake?code=abc&state="+url.QueryEscape(state), nil, "")
	require.Equal(t, fiber.StatusOK, resp.status)
	var signedIn api.SignInResponse
	resp.decode(t, &signedIn)
	assert.Equal(t, "federated@example.com", signedIn.User.Email)

	resp = s.do(t, fiber.MethodGet, "/api/auth/callback/fake?code=abc&state="+url.QueryEscape(state), nil, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.status)
}

func TestSocialCallbackSafetyNet(t *testing.T) {
	s := newTestServer(t, nil)
	_, err := s.waitlist.Join(context.Background(), waitlist.JoinRequest{Email: "federated@example.com"})
	require.NoError(t, err)

	resp := s.do(t, fiber.MethodGet, "/api/auth/sign-in/social/fake", nil, "")
	require.Equal(t, fiber.StatusFound, resp.status)
	location, err := url.Parse(resp.header[fiber.HeaderLocation])
	require.NoError(t, err)

	resp = s.do(t, fiber.MethodGet, "/api/auth/callback/fake?code=abc&state="+url.QueryEscape(location.Query().Get("state")), nil, "")
	assert.Equal(t, fiber.StatusForbidden, resp.status)
	assert.Equal(t, string(waitlist.CodeNotApproved), resp.reason())

	exists, err := s.users.UserExists(context.Background(), "federated@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

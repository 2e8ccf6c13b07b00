package middlewares

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/memory/v2"
	"github.com/khanghh/kwaitlist/internal/auth"
	"github.com/khanghh/kwaitlist/internal/handlers/api"
	"github.com/khanghh/kwaitlist/internal/oauth"
	"github.com/khanghh/kwaitlist/internal/store"
	"github.com/khanghh/kwaitlist/internal/store/storetest"
	"github.com/khanghh/kwaitlist/internal/waitlist"
	"github.com/khanghh/kwaitlist/model"
	"github.com/khanghh/kwaitlist/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noAccounts struct{}

func (noAccounts) UserExists(ctx context.Context, email string) (bool, error) {
	return false, nil
}

type gateEnv struct {
	app     *fiber.App
	service *waitlist.Service
	states  *oauth.StateManager
}

func newGateEnv(t *testing.T, configure func(opts *waitlist.Options)) *gateEnv {
	t.Helper()
	opts := waitlist.DefaultOptions()
	if configure != nil {
		configure(&opts)
	}
	entries := waitlist.NewEntryRepository(store.NewGormRecords[model.WaitlistEntry](storetest.NewQuery(t).WaitlistEntry.DO))
	policy := waitlist.NewPolicy(opts, entries, noAccounts{})
	service := waitlist.NewService(opts, entries, policy, nil)
	gate := waitlist.NewGate(opts, policy, service)
	states := oauth.NewStateManager(store.New[oauth.State](memory.New(), params.OAuthStateKeyPrefix))

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	group := app.Group("/api/auth", WaitlistGate(gate, "/api/auth", OAuthStateInviteCode(states)))
	ok := func(ctx *fiber.Ctx) error { return ctx.SendStatus(fiber.StatusNoContent) }
	group.Post("/sign-up/email", ok)
	group.Post("/sign-in/email", ok)
	group.Get("/callback/:provider", ok)
	return &gateEnv{app: app, service: service, states: states}
}

func (e *gateEnv) do(t *testing.T, method string, target string, body string, headers map[string]string) (int, api.APIResponse) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out api.APIResponse
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &out))
	}
	return resp.StatusCode, out
}

func errorReason(resp api.APIResponse) string {
	if resp.Error == nil || len(resp.Error.Errors) == 0 {
		return ""
	}
	return resp.Error.Errors[0].Reason
}

func TestWaitlistGateDeniesUnapprovedSignUp(t *testing.T) {
	env := newGateEnv(t, nil)
	ctx := context.Background()
	_, err := env.service.Join(ctx, waitlist.JoinRequest{Email: "alice@example.com"})
	require.NoError(t, err)

	status, resp := env.do(t, fiber.MethodPost, "/api/auth/sign-up/email", `{"email":"alice@example.com"}`, nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, string(waitlist.CodeNotApproved), errorReason(resp))

	status, _ = env.do(t, fiber.MethodPost, "/api/auth/sign-in/email", `{"email":"alice@example.com"}`, nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	_, err = env.service.Approve(ctx, "alice@example.com")
	require.NoError(t, err)
	status, _ = env.do(t, fiber.MethodPost, "/api/auth/sign-up/email", `{"email":"alice@example.com"}`, nil)
	assert.Equal(t, fiber.StatusNoContent, status)
}

func TestWaitlistGateInviteCodeSources(t *testing.T) {
	env := newGateEnv(t, func(opts *waitlist.Options) { opts.RequireInviteCode = true })
	ctx := context.Background()
	_, err := env.service.Join(ctx, waitlist.JoinRequest{Email: "bob@example.com"})
	require.NoError(t, err)
	entry, err := env.service.Approve(ctx, "bob@example.com")
	require.NoError(t, err)
	code := *entry.InviteCode

	status, resp := env.do(t, fiber.MethodPost, "/api/auth/sign-up/email", `{"email":"bob@example.com"}`, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, string(waitlist.CodeInviteCodeRequired), errorReason(resp))

	status, resp = env.do(t, fiber.MethodPost, "/api/auth/sign-up/email", `{"email":"bob@example.com","inviteCode":"bogus"}`, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, string(waitlist.CodeInvalidInviteCode), errorReason(resp))

	status, _ = env.do(t, fiber.MethodPost, "/api/auth/sign-up/email", `{"email":"bob@example.com","inviteCode":"`+code+`"}`, nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _ = env.do(t, fiber.MethodPost, "/api/auth/sign-up/email", `{"email":"bob@example.com"}`,
		map[string]string{params.InviteCodeHeader: code})
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _ = env.do(t, fiber.MethodGet, "/api/auth/callback/google?inviteCode="+code, "", nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	state, err := env.states.Create(ctx, "google", code)
	require.NoError(t, err)
	status, _ = env.do(t, fiber.MethodGet, "/api/auth/callback/google?state="+state, "", nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _ = env.do(t, fiber.MethodGet, "/api/auth/callback/google", "", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestWaitlistGateDisabled(t *testing.T) {
	env := newGateEnv(t, func(opts *waitlist.Options) { opts.Enabled = false })
	status, _ := env.do(t, fiber.MethodPost, "/api/auth/sign-up/email", `{"email":"nobody@example.com"}`, nil)
	assert.Equal(t, fiber.StatusNoContent, status)
}

func newAuthApp(t *testing.T) (*fiber.App, *auth.TokenService) {
	t.Helper()
	tokens, err := auth.NewTokenService("test-key", time.Hour)
	require.NoError(t, err)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/admin", RequireAuth(tokens), RequireRoles("admin"), func(ctx *fiber.Ctx) error {
		return ctx.SendString(auth.GetClaims(ctx).Email)
	})
	return app, tokens
}

func TestRequireAuthAndRoles(t *testing.T) {
	app, tokens := newAuthApp(t)
	adminToken, _, err := tokens.IssueToken(&model.User{ID: 1, Email: "root@example.com", Role: "admin"})
	require.NoError(t, err)
	userToken, _, err := tokens.IssueToken(&model.User{ID: 2, Email: "user@example.com", Role: "user"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing token", "", fiber.StatusUnauthorized},
		{"malformed token", "Bearer nope", fiber.StatusUnauthorized},
		{"non admin", "Bearer " + userToken, fiber.StatusForbidden},
		{"admin", "Bearer " + adminToken, fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestRateLimit(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Post("/join", RateLimit(2, time.Minute, memory.New()), func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusNoContent)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/join", nil), -1)
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{fiber.StatusNoContent, fiber.StatusNoContent, fiber.StatusTooManyRequests}, codes)
}

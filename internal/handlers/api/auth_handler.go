package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/kwaitlist/internal/oauth"
	"github.com/khanghh/kwaitlist/internal/users"
	"github.com/khanghh/kwaitlist/model"
	"github.com/khanghh/kwaitlist/params"
)

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthHandler struct {
	userService    UserService
	tokenService   TokenService
	stateManager   OAuthStateManager
	oauthProviders map[string]oauth.OAuthProvider
}

func makeOAuthProvidersMap(oauthProviders []oauth.OAuthProvider) map[string]oauth.OAuthProvider {
	oauthProvidersMap := make(map[string]oauth.OAuthProvider)
	for _, provider := range oauthProviders {
		oauthProvidersMap[provider.Name()] = provider
	}
	return oauthProvidersMap
}

func NewAuthHandler(userService UserService, tokenService TokenService, stateManager OAuthStateManager, oauthProviders []oauth.OAuthProvider) *AuthHandler {
	return &AuthHandler{
		userService:    userService,
		tokenService:   tokenService,
		stateManager:   stateManager,
		oauthProviders: makeOAuthProvidersMap(oauthProviders),
	}
}

func (h *AuthHandler) signedIn(ctx *fiber.Ctx, status int, user *model.User) error {
	token, expiresAt, err := h.tokenService.IssueToken(user)
	if err != nil {
		return err
	}
	return ctx.Status(status).JSON(NewDataResponse(SignInResponse{
		User:        newUserInfoResponse(user),
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}))
}

func (h *AuthHandler) PostSignUpEmail(ctx *fiber.Ctx) error {
	var req signUpRequest
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest("INVALID_BODY", "Invalid request body.")
	}
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	if err := validatePassword(req.Password); err != nil {
		return err
	}

	user, err := h.userService.CreateUser(ctx.UserContext(), users.CreateUserOptions{
		Name:     strings.TrimSpace(req.Name),
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return h.signedIn(ctx, fiber.StatusCreated, user)
}

func (h *AuthHandler) PostSignInEmail(ctx *fiber.Ctx) error {
	var req signInRequest
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest("INVALID_BODY", "Invalid request body.")
	}
	user, err := h.userService.Authenticate(ctx.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return h.signedIn(ctx, fiber.StatusOK, user)
}

func (h *AuthHandler) PostSignInAnonymous(ctx *fiber.Ctx) error {
	user, err := h.userService.CreateAnonymousUser(ctx.UserContext())
	if err != nil {
		return err
	}
	return h.signedIn(ctx, fiber.StatusCreated, user)
}

func (h *AuthHandler) GetSignInSocial(ctx *fiber.Ctx) error {
	provider, ok := h.oauthProviders[ctx.Params("provider")]
	if !ok {
		return fiber.ErrNotFound
	}

	inviteCode := ctx.Query("inviteCode")
	if inviteCode == "" {
		inviteCode = ctx.Get(params.InviteCodeHeader)
	}
	state, err := h.stateManager.Create(ctx.UserContext(), provider.Name(), inviteCode)
	if err != nil {
		return err
	}
	return ctx.Redirect(provider.GetAuthCodeURL(state), fiber.StatusFound)
}

func (h *AuthHandler) GetCallback(ctx *fiber.Ctx) error {
	provider, ok := h.oauthProviders[ctx.Params("provider")]
	if !ok {
		return fiber.ErrNotFound
	}

	if _, err := h.stateManager.Consume(ctx.UserContext(), ctx.Query("state"), provider.Name()); err != nil {
		return err
	}

	code := ctx.Query("code")
	if code == "" {
		return badRequest("MISSING_CODE", "Authorization code is required.")
	}

	oauthToken, err := provider.ExchangeToken(ctx.UserContext(), code)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "Failed to exchange authorization code.")
	}

	userInfo, err := provider.GetUserInfo(ctx.UserContext(), oauthToken)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "Failed to fetch user info.")
	}
	if userInfo.Email == "" {
		return badRequest("MISSING_EMAIL", "The provider did not return an email address.")
	}

	user, err := h.userService.GetOrCreateUser(ctx.UserContext(), users.CreateUserOptions{
		Name:  userInfo.Name,
		Email: userInfo.Email,
	})
	if err != nil {
		return err
	}
	return h.signedIn(ctx, fiber.StatusOK, user)
}

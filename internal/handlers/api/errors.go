package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/kwaitlist/internal/auth"
	"github.com/khanghh/kwaitlist/internal/captcha"
	"github.com/khanghh/kwaitlist/internal/oauth"
	"github.com/khanghh/kwaitlist/internal/users"
	"github.com/khanghh/kwaitlist/internal/waitlist"
)

const (
	domainWaitlist = "waitlist"
	domainAuth     = "auth"
	domainRequest  = "request"
)

var waitlistStatus = map[waitlist.ErrorCode]int{
	waitlist.CodeEmailAlreadyInWaitlist: fiber.StatusConflict,
	waitlist.CodeAlreadyRegistered:      fiber.StatusConflict,
	waitlist.CodeEntryNotFound:          fiber.StatusNotFound,
	waitlist.CodeNotApproved:            fiber.StatusForbidden,
	waitlist.CodeWaitlistFull:           fiber.StatusForbidden,
	waitlist.CodeUnauthorizedAdmin:      fiber.StatusForbidden,
	waitlist.CodeInvalidInviteCode:      fiber.StatusBadRequest,
	waitlist.CodeInviteCodeRequired:     fiber.StatusBadRequest,
}

var authErrors = []struct {
	err    error
	status int
	reason string
}{
	{users.ErrEmailRegisterd, fiber.StatusConflict, "EMAIL_REGISTERED"},
	{users.ErrInvalidEmail, fiber.StatusBadRequest, "INVALID_EMAIL"},
	{users.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{users.ErrUserDisabled, fiber.StatusForbidden, "USER_DISABLED"},
	{auth.ErrTokenInvalid, fiber.StatusUnauthorized, "TOKEN_INVALID"},
	{auth.ErrTokenExpired, fiber.StatusUnauthorized, "TOKEN_EXPIRED"},
	{oauth.ErrInvalidState, fiber.StatusBadRequest, "INVALID_OAUTH_STATE"},
	{captcha.ErrInvalidCaptcha, fiber.StatusBadRequest, "INVALID_CAPTCHA"},
	{captcha.ErrMissingCaptcha, fiber.StatusBadRequest, "MISSING_CAPTCHA"},
}

// ErrorResponse maps err to a status code and response body. ok is false for
// errors that are not known to the API and should be treated as internal.
func ErrorResponse(err error) (status int, resp APIResponse, ok bool) {
	var wlErr *waitlist.Error
	if errors.As(err, &wlErr) {
		code, known := waitlistStatus[wlErr.Code]
		if !known {
			code = fiber.StatusBadRequest
		}
		return code, NewErrorResponse(code, wlErr.Message, APIErrorDetail{
			Domain:  domainWaitlist,
			Reason:  string(wlErr.Code),
			Message: wlErr.Message,
		}), true
	}

	for _, e := range authErrors {
		if errors.Is(err, e.err) {
			return e.status, NewErrorResponse(e.status, e.err.Error(), APIErrorDetail{
				Domain:  domainAuth,
				Reason:  e.reason,
				Message: e.err.Error(),
			}), true
		}
	}

	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return fiber.StatusBadRequest, NewErrorResponse(fiber.StatusBadRequest, reqErr.message, APIErrorDetail{
			Domain:  domainRequest,
			Reason:  reqErr.reason,
			Message: reqErr.message,
		}), true
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, NewErrorResponse(fiberErr.Code, fiberErr.Message), true
	}

	return fiber.StatusInternalServerError, NewErrorResponse(fiber.StatusInternalServerError, "Internal server error"), false
}

func badRequest(reason string, message string) error {
	return &requestError{reason: reason, message: message}
}

// requestError reports malformed input detected by a handler.
type requestError struct {
	reason  string
	message string
}

func (e *requestError) Error() string {
	return e.message
}

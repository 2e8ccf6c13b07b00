package waitlist

type ErrorCode string

const (
	CodeEmailAlreadyInWaitlist ErrorCode = "EMAIL_ALREADY_IN_WAITLIST"
	CodeEntryNotFound          ErrorCode = "WAITLIST_ENTRY_NOT_FOUND"
	CodeNotApproved            ErrorCode = "NOT_APPROVED"
	CodeInvalidInviteCode      ErrorCode = "INVALID_INVITE_CODE"
	CodeInviteCodeRequired     ErrorCode = "INVITE_CODE_REQUIRED"
	CodeAlreadyRegistered      ErrorCode = "ALREADY_REGISTERED"
	CodeWaitlistFull           ErrorCode = "WAITLIST_FULL"
	CodeUnauthorizedAdmin      ErrorCode = "UNAUTHORIZED_ADMIN_ACTION"
)

// Error is a denial the waitlist reports to callers. The boundary layer maps
// Code to a transport status.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrEmailAlreadyInWaitlist = &Error{CodeEmailAlreadyInWaitlist, "email is already in the waitlist"}
	ErrEntryNotFound          = &Error{CodeEntryNotFound, "waitlist entry not found"}
	ErrNotApproved            = &Error{CodeNotApproved, "email is not approved for registration"}
	ErrInvalidInviteCode      = &Error{CodeInvalidInviteCode, "invalid or expired invite code"}
	ErrInviteCodeRequired     = &Error{CodeInviteCodeRequired, "an invite code is required to register"}
	ErrAlreadyRegistered      = &Error{CodeAlreadyRegistered, "email is already registered"}
	ErrWaitlistFull           = &Error{CodeWaitlistFull, "the waitlist is full"}
	ErrUnauthorizedAdmin      = &Error{CodeUnauthorizedAdmin, "admin role required"}
)

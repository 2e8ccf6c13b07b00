package users

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegisterd     = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserDisabled       = errors.New("user is disabled")
)

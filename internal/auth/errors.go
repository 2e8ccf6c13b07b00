package auth

import "errors"

var (
	ErrTokenInvalid   = errors.New("token invalid")
	ErrTokenExpired   = errors.New("token expired")
	ErrMasterKeyUnset = errors.New("master key is not set")
)

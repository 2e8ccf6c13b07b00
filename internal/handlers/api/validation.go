package api

import (
	"net/mail"
	"strings"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt input limit
	maxReasonLength   = 512
)

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return badRequest("MISSING_EMAIL", "Email is required.")
	}
	// display names and angle brackets would be stored as part of the address
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return badRequest("INVALID_EMAIL", "Invalid email address.")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return badRequest("INVALID_PASSWORD", "Password must be at least 8 characters.")
	}
	if len(password) > maxPasswordLength {
		return badRequest("INVALID_PASSWORD", "Password must be at most 72 characters.")
	}
	return nil
}

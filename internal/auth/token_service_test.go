package auth

import (
	"testing"
	"time"

	"github.com/khanghh/kwaitlist/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParseToken(t *testing.T) {
	svc, err := NewTokenService("test-master-key", time.Hour)
	require.NoError(t, err)

	token, expiresAt, err := svc.IssueToken(&model.User{ID: 42, Email: "admin@example.com", Role: "admin"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "42", claims.Subject)
}

func TestParseTokenExpired(t *testing.T) {
	svc, err := NewTokenService("test-master-key", time.Minute)
	require.NoError(t, err)
	issuedAt := time.Now()
	svc.now = func() time.Time { return issuedAt }

	token, _, err := svc.IssueToken(&model.User{ID: 1, Role: "user"})
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	_, err = svc.ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseTokenWrongKey(t *testing.T) {
	issuer, err := NewTokenService("key-one", time.Hour)
	require.NoError(t, err)
	verifier, err := NewTokenService("key-two", time.Hour)
	require.NoError(t, err)

	token, _, err := issuer.IssueToken(&model.User{ID: 1})
	require.NoError(t, err)
	_, err = verifier.ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = verifier.ParseToken("garbage")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestNewTokenServiceRequiresKey(t *testing.T) {
	_, err := NewTokenService("", time.Hour)
	assert.ErrorIs(t, err, ErrMasterKeyUnset)
}

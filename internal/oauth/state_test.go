package oauth

import (
	"context"
	"testing"

	"github.com/gofiber/storage/memory/v2"
	"github.com/khanghh/kwaitlist/internal/store"
	"github.com/khanghh/kwaitlist/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStateManager() *StateManager {
	return NewStateManager(store.New[State](memory.New(), params.OAuthStateKeyPrefix))
}

func TestStateRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := newTestStateManager()

	key, err := m.Create(ctx, "google", "invite-123")
	require.NoError(t, err)
	require.NotEmpty(t, key)

	peeked, err := m.Peek(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "invite-123", peeked.InviteCode)

	state, err := m.Consume(ctx, key, "google")
	require.NoError(t, err)
	assert.Equal(t, "google", state.Provider)
	assert.Equal(t, "invite-123", state.InviteCode)

	_, err = m.Consume(ctx, key, "google")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestStateProviderMismatch(t *testing.T) {
	ctx := context.Background()
	m := newTestStateManager()

	key, err := m.Create(ctx, "google", "")
	require.NoError(t, err)
	_, err = m.Consume(ctx, key, "github")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestStateUnknownKey(t *testing.T) {
	m := newTestStateManager()
	_, err := m.Peek(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = m.Consume(context.Background(), "", "google")
	assert.ErrorIs(t, err, ErrInvalidState)
}

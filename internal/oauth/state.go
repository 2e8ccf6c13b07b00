package oauth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/khanghh/kwaitlist/internal/store"
	"github.com/khanghh/kwaitlist/params"
)

var ErrInvalidState = errors.New("invalid oauth state")

// State is what survives the round trip to the provider. InviteCode carries
// the waitlist invite presented when the flow started.
type State struct {
	Provider   string    `json:"provider"`
	InviteCode string    `json:"inviteCode,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type StateManager struct {
	states store.Store[State]
}

func (m *StateManager) Create(ctx context.Context, provider string, inviteCode string) (string, error) {
	key := uuid.NewString()
	state := State{
		Provider:   provider,
		InviteCode: inviteCode,
		CreatedAt:  time.Now(),
	}
	if err := m.states.Set(ctx, key, state, params.OAuthStateExpiration); err != nil {
		return "", err
	}
	return key, nil
}

// Peek returns the state without consuming it.
func (m *StateManager) Peek(ctx context.Context, key string) (*State, error) {
	if key == "" {
		return nil, ErrInvalidState
	}
	state, err := m.states.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidState
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// Consume returns the state and removes it so it cannot be replayed.
func (m *StateManager) Consume(ctx context.Context, key string, provider string) (*State, error) {
	if key == "" {
		return nil, ErrInvalidState
	}
	state, err := m.states.Take(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidState
	}
	if err != nil {
		return nil, err
	}
	if state.Provider != provider {
		return nil, ErrInvalidState
	}
	return &state, nil
}

func NewStateManager(states store.Store[State]) *StateManager {
	return &StateManager{states}
}

package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/khanghh/kwaitlist/internal/waitlist"
	"github.com/khanghh/kwaitlist/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	routingKey string
	body       []byte
}

type fakePublisher struct {
	messages []published
	err      error
}

func (p *fakePublisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	p.messages = append(p.messages, published{routingKey, body})
	return p.err
}

var fixedNow = time.Date(2030, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestNotifier(pub Publisher) *EventNotifier {
	n := NewEventNotifier(pub)
	n.now = func() time.Time { return fixedNow }
	return n
}

func decodeEvent(t *testing.T, body []byte) map[string]any {
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestEventNotifierTransitions(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	n := newTestNotifier(pub)
	entry := &model.WaitlistEntry{Email: "alice@example.com", Status: model.EntryStatusPending, Position: 3}

	require.NoError(t, n.OnJoinWaitlist(ctx, entry))
	entry.Status = model.EntryStatusRejected
	require.NoError(t, n.OnRejected(ctx, entry, "spam"))

	require.Len(t, pub.messages, 2)
	assert.Equal(t, EventJoined, pub.messages[0].routingKey)
	joined := decodeEvent(t, pub.messages[0].body)
	assert.Equal(t, "alice@example.com", joined["email"])
	assert.Equal(t, "pending", joined["status"])
	assert.EqualValues(t, 3, joined["position"])
	assert.Equal(t, "2030-05-01T12:00:00Z", joined["occurredAt"])

	assert.Equal(t, EventRejected, pub.messages[1].routingKey)
	rejected := decodeEvent(t, pub.messages[1].body)
	assert.Equal(t, "spam", rejected["reason"])
}

func TestEventNotifierInviteOmitsCode(t *testing.T) {
	pub := &fakePublisher{}
	n := newTestNotifier(pub)

	err := n.SendInviteEmail(context.Background(), waitlist.Invite{
		Email:      "bob@example.com",
		InviteCode: "super-secret-code",
		ExpiresAt:  fixedNow.Add(time.Hour),
	})
	require.NoError(t, err)
	require.Len(t, pub.messages, 1)
	assert.Equal(t, EventInviteIssued, pub.messages[0].routingKey)
	assert.NotContains(t, string(pub.messages[0].body), "super-secret-code")
	invite := decodeEvent(t, pub.messages[0].body)
	assert.Equal(t, "2030-05-01T13:00:00Z", invite["expiresAt"])
}

func TestEventNotifierPropagatesPublishError(t *testing.T) {
	pubErr := errors.New("broker down")
	n := newTestNotifier(&fakePublisher{err: pubErr})
	err := n.OnApproved(context.Background(), &model.WaitlistEntry{Email: "carol@example.com"})
	assert.ErrorIs(t, err, pubErr)
}

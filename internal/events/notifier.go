package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/khanghh/kwaitlist/internal/waitlist"
	"github.com/khanghh/kwaitlist/model"
)

const (
	EventJoined       = "waitlist.joined"
	EventApproved     = "waitlist.approved"
	EventRejected     = "waitlist.rejected"
	EventInviteIssued = "waitlist.invite_issued"
)

// Event is the message body published for every waitlist transition. Invite
// codes are never published.
type Event struct {
	Type       string            `json:"type"`
	Email      string            `json:"email"`
	Status     model.EntryStatus `json:"status,omitempty"`
	Position   int               `json:"position,omitempty"`
	Reason     string            `json:"reason,omitempty"`
	ExpiresAt  *time.Time        `json:"expiresAt,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// EventNotifier forwards waitlist transitions to a message broker.
type EventNotifier struct {
	publisher Publisher
	now       func() time.Time
}

func (n *EventNotifier) publish(ctx context.Context, event Event) error {
	event.OccurredAt = n.now()
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return n.publisher.Publish(ctx, event.Type, body)
}

func entryEvent(eventType string, entry *model.WaitlistEntry) Event {
	return Event{
		Type:     eventType,
		Email:    entry.Email,
		Status:   entry.Status,
		Position: entry.Position,
	}
}

func (n *EventNotifier) OnJoinWaitlist(ctx context.Context, entry *model.WaitlistEntry) error {
	return n.publish(ctx, entryEvent(EventJoined, entry))
}

func (n *EventNotifier) OnApproved(ctx context.Context, entry *model.WaitlistEntry) error {
	return n.publish(ctx, entryEvent(EventApproved, entry))
}

func (n *EventNotifier) OnRejected(ctx context.Context, entry *model.WaitlistEntry, reason string) error {
	event := entryEvent(EventRejected, entry)
	event.Reason = reason
	return n.publish(ctx, event)
}

func (n *EventNotifier) SendInviteEmail(ctx context.Context, invite waitlist.Invite) error {
	expiresAt := invite.ExpiresAt
	return n.publish(ctx, Event{
		Type:      EventInviteIssued,
		Email:     invite.Email,
		ExpiresAt: &expiresAt,
	})
}

func NewEventNotifier(publisher Publisher) *EventNotifier {
	return &EventNotifier{
		publisher: publisher,
		now:       time.Now,
	}
}

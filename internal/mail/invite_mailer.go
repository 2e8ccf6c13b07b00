package mail

import (
	"context"
	"net/url"
	"time"

	"github.com/khanghh/kwaitlist/internal/render"
	"github.com/khanghh/kwaitlist/internal/waitlist"
)

const inviteTemplate = "mail/invite"

// InviteMailer delivers waitlist invite codes by email. It only reacts to
// SendInviteEmail and ignores the other waitlist events.
type InviteMailer struct {
	waitlist.NopNotifier
	sender    MailSender
	renderer  *render.Renderer
	signUpURL string
}

func (m *InviteMailer) buildSignUpURL(invite waitlist.Invite) string {
	if m.signUpURL == "" {
		return ""
	}
	u, err := url.Parse(m.signUpURL)
	if err != nil {
		return ""
	}
	query := u.Query()
	query.Set("inviteCode", invite.InviteCode)
	query.Set("email", invite.Email)
	u.RawQuery = query.Encode()
	return u.String()
}

func (m *InviteMailer) SendInviteEmail(ctx context.Context, invite waitlist.Invite) error {
	body, err := m.renderer.RenderHTML(inviteTemplate, map[string]interface{}{
		"email":      invite.Email,
		"inviteCode": invite.InviteCode,
		"expiresAt":  invite.ExpiresAt.UTC().Format(time.RFC1123),
		"signUpURL":  m.buildSignUpURL(invite),
	})
	if err != nil {
		return err
	}
	return m.sender.Send(&Message{
		To:      []string{invite.Email},
		Subject: "You're invited",
		Body:    body,
		IsHTML:  true,
	})
}

func NewInviteMailer(sender MailSender, renderer *render.Renderer, signUpURL string) *InviteMailer {
	return &InviteMailer{
		sender:    sender,
		renderer:  renderer,
		signUpURL: signUpURL,
	}
}

package mail

import "log/slog"

type Message struct {
	From        string
	To          []string
	Cc          []string
	Bcc         []string
	Subject     string
	Body        string
	IsHTML      bool
	Embeds      map[string]string
	Attachments []string
}

type MailSender interface {
	Send(message *Message) error
}

// LogMailSender writes messages to the log instead of delivering them.
type LogMailSender struct{}

func (LogMailSender) Send(message *Message) error {
	slog.Info("Mail not delivered, no mail backend configured", "to", message.To, "subject", message.Subject)
	return nil
}

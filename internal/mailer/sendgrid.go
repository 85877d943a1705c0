package mailer

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendgridSender delivers messages through the SendGrid v3 API.
type SendgridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

var _ Sender = (*SendgridSender)(nil)

func NewSendgridSender(apiKey, fromEmail, fromName string) *SendgridSender {
	return &SendgridSender{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *SendgridSender) Send(msg *Message) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(msg.ToName, msg.To)

	m := mail.NewSingleEmail(from, msg.Subject, to, msg.TextBody, msg.HTMLBody)

	resp, err := s.client.Send(m)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

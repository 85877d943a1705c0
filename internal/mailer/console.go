package mailer

import "github.com/rs/zerolog"

// ConsoleSender logs messages instead of delivering them. Used when no
// SendGrid API key is configured (dev default).
type ConsoleSender struct {
	log zerolog.Logger
}

var _ Sender = (*ConsoleSender)(nil)

func NewConsoleSender(log zerolog.Logger) *ConsoleSender {
	return &ConsoleSender{log: log.With().Str("component", "console_mail").Logger()}
}

func (s *ConsoleSender) Send(msg *Message) error {
	s.log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("text", msg.TextBody).
		Msg("Email (console)")
	return nil
}

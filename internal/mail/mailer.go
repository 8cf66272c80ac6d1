package mail

import (
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	apperrors "ketotrack/internal/errors"
)

// Mailer sends a plain-text message with one attached file.
type Mailer interface {
	Send(to, subject, body, filename string, attachment []byte) error
}

// SMTPMailer delivers mail through a configured SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer builds a mailer for the given relay.
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send builds and delivers the message. Transport failures wrap
// ErrExternalService so callers can classify them as retryable.
func (m *SMTPMailer) Send(to, subject, body, filename string, attachment []byte) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	msg.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(attachment)
		return err
	}))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("%w: smtp send: %v", apperrors.ErrExternalService, err)
	}
	return nil
}

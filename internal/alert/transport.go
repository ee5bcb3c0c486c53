package alert

import (
	"fmt"

	"github.com/wneessen/go-mail"
)

// Transport delivers a notification to a recipient. Implementations own
// all connection and authentication detail; the evaluator only hands over
// the payload.
type Transport interface {
	Send(recipient, subject, body string) error
}

// SMTPTransport sends alert emails over SMTP. Credentials are injected at
// construction, never embedded in source.
type SMTPTransport struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// NewSMTPTransport creates an email transport with the given account.
func NewSMTPTransport(host string, port int, username, password, from string) *SMTPTransport {
	return &SMTPTransport{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
	}
}

// Send delivers one plain-text email. Failures are returned to the caller
// with the underlying reason; no retries.
func (t *SMTPTransport) Send(recipient, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(t.From); err != nil {
		return fmt.Errorf("set sender %q: %w", t.From, err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("set recipient %q: %w", recipient, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(t.Host,
		mail.WithPort(t.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(t.Username),
		mail.WithPassword(t.Password),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPNotifier sends plain-text mail. When no host is configured it is a
// no-op, which keeps dev setups working without a mail relay.
type SMTPNotifier struct {
	addr string
	auth smtp.Auth
	from string
}

func NewSMTPNotifier(host string, port int, user, pass, from string) *SMTPNotifier {
	n := &SMTPNotifier{from: from}
	if host == "" {
		return n
	}
	n.addr = fmt.Sprintf("%s:%d", host, port)
	if user != "" {
		n.auth = smtp.PlainAuth("", user, pass, host)
	}
	return n
}

func (n *SMTPNotifier) Notify(_ context.Context, recipients []string, subject, body string) error {
	if n.addr == "" {
		return nil
	}
	msg := strings.Join([]string{
		"From: " + n.from,
		"To: " + strings.Join(recipients, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")
	return smtp.SendMail(n.addr, n.auth, n.from, recipients, []byte(msg))
}

// Package mail delivers confirmation codes over SMTP. Delivery is
// best-effort, at-least-once; failures are returned to the caller rather than
// dropped.
package mail

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/jordan-wright/email"
)

// Sender is the delivery channel consumed by the sign-up flow.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromName    string
	FromAddress string
	UseTLS      bool
}

type SMTPSender struct {
	cfg SMTPConfig
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(to, subject, htmlBody string) error {
	e := email.NewEmail()
	e.From = fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.FromAddress)
	e.To = []string{to}
	e.Subject = subject
	e.HTML = []byte(htmlBody)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	if !s.cfg.UseTLS {
		if err := e.Send(addr, auth); err != nil {
			return fmt.Errorf("send mail: %w", err)
		}
		return nil
	}

	tlsConfig := &tls.Config{
		ServerName: s.cfg.Host,
		MinVersion: tls.VersionTLS12,
	}

	// Port picks the handshake: 465 is implicit TLS, 587 is STARTTLS.
	var err error
	switch s.cfg.Port {
	case 465:
		err = e.SendWithTLS(addr, auth, tlsConfig)
	case 587:
		err = e.SendWithStartTLS(addr, auth, tlsConfig)
	default:
		return fmt.Errorf("unsupported SMTP port %d with TLS enabled", s.cfg.Port)
	}
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

const confirmationSubject = "Your confirmation code"

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`
<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
	<p>Hello {{.Username}},</p>
	<p>Your confirmation code:</p>
	<div style="background-color: #f5f5f5; padding: 15px; margin: 20px 0; border-radius: 5px;">
		<p style="font-size: 24px; font-weight: bold; text-align: center;">{{.Code}}</p>
	</div>
	<p>Exchange it for an access token at POST /api/v1/auth/token.</p>
	<p style="font-size: 12px; color: #999;">This message was sent automatically, please do not reply.</p>
</div>
`))

// ConfirmationSubject is the subject line used for code emails.
func ConfirmationSubject() string {
	return confirmationSubject
}

// ConfirmationBody renders the HTML body for a confirmation-code email.
func ConfirmationBody(username, code string) (string, error) {
	var body bytes.Buffer
	data := struct {
		Username string
		Code     string
	}{Username: username, Code: code}

	if err := confirmationTemplate.Execute(&body, data); err != nil {
		return "", fmt.Errorf("render confirmation mail: %w", err)
	}
	return body.String(), nil
}

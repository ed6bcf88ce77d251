package utils

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"net/url"
	"time"

	"gopkg.in/gomail.v2"
)

//go:embed templates/account_activation.html
var activationTemplateHTML string

var activationTemplate = template.Must(template.New("account_activation").Parse(activationTemplateHTML))

// Mailer delivers a rendered HTML email
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// EmailConfig holds email configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer sends mail through an SMTP relay
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates an SMTP backed Mailer
func NewSMTPMailer(cfg EmailConfig) *SMTPMailer {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   from,
	}
}

// Send sends an email using SMTP
func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// ActivationEmail is the data rendered into the activation template
type ActivationEmail struct {
	Username      string
	ActivateLink  string
	ExpiryHours   string
	Year          int
	Timestamp     string
	ReferralBonus bool
}

// NewActivationEmail builds template data for a verification link
func NewActivationEmail(username, activationURL, token string, ttl time.Duration, referralBonus bool) ActivationEmail {
	now := time.Now()
	return ActivationEmail{
		Username:      username,
		ActivateLink:  activationLink(activationURL, token),
		ExpiryHours:   formatTTL(ttl),
		Year:          now.Year(),
		Timestamp:     now.Format("02 Jan 2006 15:04 MST"),
		ReferralBonus: referralBonus,
	}
}

// RenderActivationEmail renders the account activation HTML body
func RenderActivationEmail(data ActivationEmail) (string, error) {
	var buf bytes.Buffer
	if err := activationTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render activation email: %w", err)
	}
	return buf.String(), nil
}

func activationLink(base, token string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "?token=" + url.QueryEscape(token)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String()
}

func formatTTL(ttl time.Duration) string {
	if ttl >= time.Hour && ttl%time.Hour == 0 {
		h := int(ttl / time.Hour)
		if h == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", h)
	}
	return fmt.Sprintf("%d minutes", int(ttl/time.Minute))
}

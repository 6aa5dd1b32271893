// Package mailer delivers contact-form submissions over SMTP.
package mailer

import (
	"fmt"
	"html"
	"strings"

	gomail "gopkg.in/gomail.v2"
)

// Config holds SMTP delivery settings. Host, User, and Pass are required
// before any mail can be sent.
type Config struct {
	Host string
	Port int
	User string
	Pass string
	// From defaults to User when empty.
	From string
}

// sender is the dial-and-send seam, swapped out in tests.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends contact-form notifications to the site's contact address.
type Mailer struct {
	cfg    Config
	sender sender
}

// New creates a Mailer from SMTP settings. Port defaults to 587.
func New(cfg Config) *Mailer {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	return &Mailer{
		cfg:    cfg,
		sender: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
	}
}

// IsConfigured reports whether enough SMTP settings are present to send.
func (m *Mailer) IsConfigured() bool {
	return m.cfg.Host != "" && m.cfg.User != "" && m.cfg.Pass != ""
}

// SendContactEmail mails a contact-form submission to the recipient, with
// the visitor's address as Reply-To.
func (m *Mailer) SendContactEmail(to, name, email, message string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Reply-To", email)
	msg.SetHeader("Subject", fmt.Sprintf("New contact request from %s", name))
	msg.SetBody("text/plain", fmt.Sprintf("Name: %s\nEmail: %s\n\n%s", name, email, message))
	msg.AddAlternative("text/html", contactHTML(name, email, message))

	if err := m.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending contact email: %w", err)
	}
	return nil
}

func contactHTML(name, email, message string) string {
	safeMessage := strings.ReplaceAll(html.EscapeString(message), "\n", "<br />")
	return fmt.Sprintf(
		"<p><strong>Name:</strong> %s</p>"+
			"<p><strong>Email:</strong> %s</p>"+
			"<p><strong>Message:</strong></p>"+
			"<p>%s</p>",
		html.EscapeString(name), html.EscapeString(email), safeMessage,
	)
}

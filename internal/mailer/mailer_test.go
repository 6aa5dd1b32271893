package mailer

import (
	"bytes"
	"strings"
	"testing"

	gomail "gopkg.in/gomail.v2"
)

// captureSender records messages instead of dialing an SMTP server.
type captureSender struct {
	messages []*gomail.Message
}

func (c *captureSender) DialAndSend(m ...*gomail.Message) error {
	c.messages = append(c.messages, m...)
	return nil
}

func TestIsConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"complete", Config{Host: "smtp.example.com", User: "u", Pass: "p"}, true},
		{"missing host", Config{User: "u", Pass: "p"}, false},
		{"missing user", Config{Host: "smtp.example.com", Pass: "p"}, false},
		{"missing pass", Config{Host: "smtp.example.com", User: "u"}, false},
		{"empty", Config{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.cfg).IsConfigured(); got != tt.want {
				t.Errorf("IsConfigured() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	m := New(Config{Host: "smtp.example.com", User: "bot@example.com", Pass: "p"})
	if m.cfg.Port != 587 {
		t.Errorf("Port = %d, want 587", m.cfg.Port)
	}
	if m.cfg.From != "bot@example.com" {
		t.Errorf("From = %q, want the user address", m.cfg.From)
	}
}

func TestSendContactEmail(t *testing.T) {
	capture := &captureSender{}
	m := New(Config{
		Host: "smtp.example.com",
		User: "bot@example.com",
		Pass: "p",
		From: "noreply@example.com",
	})
	m.sender = capture

	err := m.SendContactEmail("hello@example.com", "Visitor", "visitor@example.com",
		"Line one\nLine two <script>")
	if err != nil {
		t.Fatalf("SendContactEmail error: %v", err)
	}
	if len(capture.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(capture.messages))
	}

	msg := capture.messages[0]
	if got := msg.GetHeader("To"); len(got) != 1 || got[0] != "hello@example.com" {
		t.Errorf("To = %v", got)
	}
	if got := msg.GetHeader("From"); len(got) != 1 || got[0] != "noreply@example.com" {
		t.Errorf("From = %v", got)
	}
	if got := msg.GetHeader("Reply-To"); len(got) != 1 || got[0] != "visitor@example.com" {
		t.Errorf("Reply-To = %v", got)
	}
	if got := msg.GetHeader("Subject"); len(got) != 1 || got[0] != "New contact request from Visitor" {
		t.Errorf("Subject = %v", got)
	}

	var body bytes.Buffer
	if _, err := msg.WriteTo(&body); err != nil {
		t.Fatalf("rendering message: %v", err)
	}
	rendered := body.String()
	if !strings.Contains(rendered, "Line one") {
		t.Error("plain body missing message text")
	}
}

func TestContactHTML_EscapesInput(t *testing.T) {
	got := contactHTML("<b>Name</b>", "a@b.c", "hi\nthere & <script>")
	if strings.Contains(got, "<script>") {
		t.Error("html body must escape script tags")
	}
	if !strings.Contains(got, "hi<br />there") {
		t.Errorf("expected newlines converted to <br />, got %q", got)
	}
	if !strings.Contains(got, "&amp;") {
		t.Error("expected ampersand to be escaped")
	}
}

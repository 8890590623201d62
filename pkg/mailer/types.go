package mailer

import (
	"context"
	"net/mail"
)

// Sender delivers a fully prepared Email.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// Tags are provider-specific message labels. Presence-only tags use struct{}{}.
type Tags map[string]any

// Address formats a name and email as an RFC 5322 address.
// Non-ASCII names are RFC 2047 encoded.
func Address(name, email string) string {
	if name == "" {
		return email
	}
	return (&mail.Address{Name: name, Address: email}).String()
}

// Email is a message ready for delivery.
type Email struct {
	Headers map[string]string // Extra headers
	Tags    Tags              // Provider tags
	Subject string
	HTML    string   // HTML part
	Text    string   // Plain text part
	From    string   // Overrides the sender default when set
	ReplyTo string   // Optional
	To      []string // At least one
}

// Validate reports whether the email has the fields every provider needs.
func (e *Email) Validate() error {
	switch {
	case len(e.To) == 0:
		return ErrNoRecipient
	case e.Subject == "":
		return ErrNoSubject
	case e.HTML == "" && e.Text == "":
		return ErrNoContent
	}
	return nil
}

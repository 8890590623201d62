package mailer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// WriterSender writes emails to an io.Writer instead of delivering them.
type WriterSender struct {
	w    io.Writer
	from string
	mu   sync.Mutex
}

// NewWriterSender creates a WriterSender. from is used when the email has no From.
func NewWriterSender(w io.Writer, from string) *WriterSender {
	return &WriterSender{w: w, from: from}
}

// Send implements Sender. Only the plain text part is printed.
func (s *WriterSender) Send(_ context.Context, email *Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := email.From
	if from == "" {
		from = s.from
	}

	_, err := fmt.Fprintf(s.w, "From: %s\nTo: %s\nSubject: %s\n\n%s\n",
		from, strings.Join(email.To, ", "), email.Subject, strings.TrimRight(email.Text, "\n"))
	return err
}

var _ Sender = (*WriterSender)(nil)

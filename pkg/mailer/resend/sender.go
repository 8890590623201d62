package resend

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/launchdigest/pkg/mailer"
)

// Sender implements mailer.Sender using the Resend HTTP API.
type Sender struct {
	client *resend.Client
	config Config
}

// New creates a Resend sender.
func New(cfg Config) *Sender {
	return &Sender{
		client: resend.NewClient(cfg.APIKey),
		config: cfg,
	}
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if err := email.Validate(); err != nil {
		return err
	}
	if _, err := s.client.Emails.SendWithContext(ctx, s.request(email)); err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}
	return nil
}

func (s *Sender) request(email *mailer.Email) *resend.SendEmailRequest {
	from := email.From
	if from == "" {
		from = mailer.Address(s.config.SenderName, s.config.SenderEmail)
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
		Headers: email.Headers,
	}
	if len(email.Tags) > 0 {
		req.Tags = convertTags(email.Tags)
	}
	return req
}

// convertTags maps mailer tags to Resend name/value pairs, sorted by name.
func convertTags(tags mailer.Tags) []resend.Tag {
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]resend.Tag, 0, len(tags))
	for _, name := range names {
		out = append(out, resend.Tag{Name: name, Value: tagValue(tags[name])})
	}
	return out
}

// tagValue renders a tag value. Presence-only tags become "true".
func tagValue(v any) string {
	switch val := v.(type) {
	case nil, struct{}:
		return "true"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

var _ mailer.Sender = (*Sender)(nil)

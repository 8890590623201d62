package mailer

import (
	"bytes"
	"context"
	"errors"
	texttemplate "text/template"
)

// Mailer renders templates and hands the result to a Sender.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
}

// New creates a Mailer.
func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	return &Mailer{sender: sender, renderer: renderer, config: cfg}
}

// SendParams describes a templated email.
type SendParams struct {
	Data     any
	Headers  map[string]string
	Tags     Tags
	To       string // Recipient
	Template string // Template filename, e.g. "digest.md"

	Subject string // Overrides the template subject
	Text    string // Overrides the plain text part
	Layout  string // Overrides Config.DefaultLayout
	From    string // Overrides the sender default
	ReplyTo string
}

// Send renders params.Template and delivers it.
// Subject resolution: params.Subject, then frontmatter Subject, then Config.FallbackSubject.
func (m *Mailer) Send(ctx context.Context, params SendParams) error {
	if params.To == "" {
		return ErrNoRecipient
	}

	layout := params.Layout
	if layout == "" {
		layout = m.config.DefaultLayout
	}

	result, err := m.renderer.Render(layout, params.Template, params.Data)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	subject := params.Subject
	if subject == "" {
		if s, ok := result.Metadata["Subject"].(string); ok && s != "" {
			subject = s
		} else {
			subject = m.config.FallbackSubject
		}
	}
	subject, err = executeSubject(subject, params.Data)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	text := params.Text
	if text == "" {
		text = result.Text
	}

	return m.SendRaw(ctx, &Email{
		To:      []string{params.To},
		Subject: subject,
		HTML:    result.HTML,
		Text:    text,
		From:    params.From,
		ReplyTo: params.ReplyTo,
		Headers: params.Headers,
		Tags:    params.Tags,
	})
}

// SendRaw delivers a prepared email.
func (m *Mailer) SendRaw(ctx context.Context, email *Email) error {
	if err := email.Validate(); err != nil {
		return err
	}
	if err := m.sender.Send(ctx, email); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}

func executeSubject(subject string, data any) (string, error) {
	tmpl, err := texttemplate.New("subject").Parse(subject)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

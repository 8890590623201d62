package mailer

import "errors"

var (
	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("mailer: email must have at least one recipient")

	// ErrNoSubject indicates no subject was provided.
	ErrNoSubject = errors.New("mailer: email must have a subject")

	// ErrNoContent indicates neither an HTML nor a text body was provided.
	ErrNoContent = errors.New("mailer: email must have content")

	// ErrTemplateNotFound indicates the template file was not found.
	ErrTemplateNotFound = errors.New("mailer: template not found")

	// ErrLayoutNotFound indicates the layout file was not found.
	ErrLayoutNotFound = errors.New("mailer: layout not found")

	// ErrRenderFailed indicates template rendering failed.
	ErrRenderFailed = errors.New("mailer: failed to render template")

	// ErrSendFailed indicates email delivery failed.
	ErrSendFailed = errors.New("mailer: failed to send email")

	// ErrInvalidFrontmatter indicates invalid YAML frontmatter.
	ErrInvalidFrontmatter = errors.New("mailer: invalid frontmatter")
)

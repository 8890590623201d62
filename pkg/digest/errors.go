package digest

import "errors"

var (
	// ErrFetch wraps failures to obtain launch data.
	ErrFetch = errors.New("digest: fetch failed")

	// ErrSend wraps failures to render or deliver the email.
	ErrSend = errors.New("digest: send failed")
)

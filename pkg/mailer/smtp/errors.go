package smtp

import "errors"

var (
	// ErrDial is returned when the server cannot be reached.
	ErrDial = errors.New("smtp: failed to connect")

	// ErrTLS is returned when the TLS handshake or STARTTLS upgrade fails.
	ErrTLS = errors.New("smtp: failed to secure connection")

	// ErrAuth is returned when the server rejects the credentials.
	ErrAuth = errors.New("smtp: authentication failed")

	// ErrRejected is returned when the server rejects the envelope or the message.
	ErrRejected = errors.New("smtp: message rejected")

	// ErrNoSender is returned when neither the email nor the config has a From address.
	ErrNoSender = errors.New("smtp: no sender address")
)

package launch

import "errors"

var (
	// ErrUnexpectedStatus is returned when an API responds with a non-2xx status.
	ErrUnexpectedStatus = errors.New("launch: unexpected response status")

	// ErrDecode is returned when a response body is not valid JSON for the expected shape.
	ErrDecode = errors.New("launch: failed to decode response")

	// ErrInvalidTime is returned when a launch date cannot be parsed.
	ErrInvalidTime = errors.New("launch: invalid launch time")

	// ErrAllSourcesFailed is returned by Fallback when no source produced an answer.
	ErrAllSourcesFailed = errors.New("launch: all sources failed")

	// ErrNoSources is returned by Fallback when it has nothing to query.
	ErrNoSources = errors.New("launch: no sources configured")
)

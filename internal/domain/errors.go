package domain

import "errors"

// Domain errors. Transport adapters wrap these; the public Pusher logs them
// and never returns them for network conditions.
var (
	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("graphitepush: invalid configuration")

	// ErrNoEventsURL is reported when an event is added without an HTTP URL.
	ErrNoEventsURL = errors.New("graphitepush: no http url configured for events")

	// ErrUnexpectedStatus is wrapped when the events endpoint answers non-2xx.
	ErrUnexpectedStatus = errors.New("graphitepush: unexpected http status")
)

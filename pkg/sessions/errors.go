package sessions

import "errors"

var (
	// ErrNotAuthorized signals the current user may not perform the
	// operation. The server enforces the same rule; the client checks first
	// so the UI can gate affordances.
	ErrNotAuthorized = errors.New("sessions: not authorized")
	// ErrIncomplete signals a submit was rejected by client-side validation.
	// The session's Errors map carries the per-field messages.
	ErrIncomplete = errors.New("sessions: submission incomplete")
	// ErrNotLoaded signals an operation that needs Load to have run first.
	ErrNotLoaded = errors.New("sessions: session not loaded")
)

package sessions

import "errors"

var (
	// ErrSessionNotFound signals that no session exists for the provided id
	ErrSessionNotFound = errors.New("session not found")
	// ErrTooManySessions signals that the maximum number of open sessions was reached
	ErrTooManySessions = errors.New("too many sessions")
	// ErrInvalidMaxSessions signals that an invalid maximum number of sessions was provided
	ErrInvalidMaxSessions = errors.New("invalid maximum number of sessions")
	// ErrNilStoreFactory signals that a nil store factory was provided
	ErrNilStoreFactory = errors.New("nil store factory")
	// ErrHolderClosed signals that the sessions holder was closed
	ErrHolderClosed = errors.New("sessions holder closed")
)

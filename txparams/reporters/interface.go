package reporters

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// ErrorLogger is the logger subset used to write coded errors
type ErrorLogger interface {
	Error(message string, args ...interface{})
}

// SentryHub holds the sentry hub primitives used to forward coded errors
type SentryHub interface {
	Clone() *sentry.Hub
	Flush(timeout time.Duration) bool
}

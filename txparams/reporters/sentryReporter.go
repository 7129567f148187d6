package reporters

import (
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/klever-io/klv-txparams-go/txparams"
)

const codeTag = "code"

type sentryReporter struct {
	hub SentryHub
}

// NewSentryHub creates a dedicated sentry hub for the provided DSN
func NewSentryHub(dsn string, environment string) (*sentry.Hub, error) {
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
	})
	if err != nil {
		return nil, err
	}

	return sentry.NewHub(client, sentry.NewScope()), nil
}

// NewSentryReporter creates a reporter that forwards the coded errors to sentry
func NewSentryReporter(hub SentryHub) (*sentryReporter, error) {
	if hub == nil {
		return nil, errNilSentryHub
	}

	return &sentryReporter{
		hub: hub,
	}, nil
}

// ReportError captures the coded error. Sending is done asynchronously by the sentry transport.
// Each report captures on its own hub clone, the shared hub scope stack must not be used concurrently.
func (reporter *sentryReporter) ReportError(code txparams.ErrorCode, message string) {
	hub := reporter.hub.Clone()
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentry.LevelError)
		scope.SetTag(codeTag, strconv.Itoa(int(code)))
		hub.CaptureException(txparams.NewCodedError(code, message))
	})
}

// Close flushes the buffered events
func (reporter *sentryReporter) Close(timeout time.Duration) {
	reporter.hub.Flush(timeout)
}

// IsInterfaceNil returns true if there is no value under the interface
func (reporter *sentryReporter) IsInterfaceNil() bool {
	return reporter == nil
}

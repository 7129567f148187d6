package reporters

import "errors"

var (
	errNilLogger        = errors.New("nil logger")
	errNilSentryHub     = errors.New("nil sentry hub")
	errNilErrorReporter = errors.New("nil error reporter")
)

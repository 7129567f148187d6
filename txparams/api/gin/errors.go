package gin

import "errors"

var (
	// ErrNilSessionsHandler signals that a nil sessions handler was provided
	ErrNilSessionsHandler = errors.New("nil sessions handler")
	// ErrEmptyListenAddress signals that an empty listen address was provided
	ErrEmptyListenAddress = errors.New("empty listen address")
	// ErrUnknownField signals that the parameter field is not known
	ErrUnknownField = errors.New("unknown parameter field")
	// ErrGasDefaultsDisabled signals that the gas defaults service is not enabled
	ErrGasDefaultsDisabled = errors.New("gas defaults are disabled")
	// ErrServerAlreadyStarted signals that the http server was already started
	ErrServerAlreadyStarted = errors.New("http server already started")
)

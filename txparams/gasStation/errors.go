package gas

import "errors"

var (
	// ErrNilGasPriceFetcher signals that a nil gas price fetcher was provided
	ErrNilGasPriceFetcher = errors.New("nil gas price fetcher")
	// ErrNilErrorReporter signals that a nil error reporter was provided
	ErrNilErrorReporter = errors.New("nil error reporter")
	// ErrNoGasDefaults signals that no gas defaults were fetched yet
	ErrNoGasDefaults = errors.New("no gas defaults available")
	// ErrInvalidGasPrice signals that the fetched gas price is not a finite, non negative number
	ErrInvalidGasPrice = errors.New("invalid gas price")
	// ErrNilTipCap signals that the tip cap suggester returned a nil value
	ErrNilTipCap = errors.New("nil tip cap")
)

package txparams

import "errors"

var (
	// ErrNilAccountNonceSource signals that a nil account nonce source was provided
	ErrNilAccountNonceSource = errors.New("nil account nonce source")
	// ErrNilNonceRecommender signals that a nil nonce recommender was provided
	ErrNilNonceRecommender = errors.New("nil nonce recommender")
	// ErrNilErrorReporter signals that a nil error reporter was provided
	ErrNilErrorReporter = errors.New("nil error reporter")
	// ErrInvalidGasMarkup signals that the gas markup is not a positive finite number
	ErrInvalidGasMarkup = errors.New("invalid gas markup")
	// ErrInvalidFetchTimeout signals that a negative fetch timeout was provided
	ErrInvalidFetchTimeout = errors.New("invalid fetch timeout")
	// ErrInvalidNumericValue signals that a value could not be parsed as a decimal number
	ErrInvalidNumericValue = errors.New("invalid numeric value")
	// ErrNegativeGasValue signals that a negative gas value was provided
	ErrNegativeGasValue = errors.New("negative gas value")
	// ErrUnknownUnit signals that the denomination unit is not known
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrFractionalBaseUnits signals that the converted value has a fractional part in base units
	ErrFractionalBaseUnits = errors.New("value has too many decimal places for the unit")
	// ErrNilResponse signals that a nil response container was provided
	ErrNilResponse = errors.New("nil response")
	// ErrHttpStatus signals that the remote server responded with an unexpected status code
	ErrHttpStatus = errors.New("unexpected http status")
)

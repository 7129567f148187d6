package txparams

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// DefaultGasMarkup is the safety margin applied over raw gas estimations
const DefaultGasMarkup = 1.2

// ApplyGasMarkup returns round(value * markup) as an integer string. Halves are rounded away from zero.
func ApplyGasMarkup(value string, markup float64) (string, error) {
	if !isValidMarkup(markup) {
		return "", fmt.Errorf("%w: %v", ErrInvalidGasMarkup, markup)
	}

	amount, err := parseDecimal(value)
	if err != nil {
		return "", err
	}
	if amount.IsNegative() {
		return "", fmt.Errorf("%w: %s", ErrNegativeGasValue, value)
	}

	return amount.Mul(decimal.NewFromFloat(markup)).Round(0).String(), nil
}

func isValidMarkup(markup float64) bool {
	return markup > 0 && !math.IsInf(markup, 0) && !math.IsNaN(markup)
}

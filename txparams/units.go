package txparams

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/params"
	"github.com/shopspring/decimal"
)

// GweiUnit is the display denomination used for gas prices and priority fees
const GweiUnit = "gwei"

const maxUnitDecimals = 18

var unitFactors = map[string]decimal.Decimal{
	"wei":    decimal.NewFromInt(params.Wei),
	"kwei":   decimal.New(1, 3),
	"mwei":   decimal.New(1, 6),
	"gwei":   decimal.NewFromInt(params.GWei),
	"szabo":  decimal.New(1, 12),
	"finney": decimal.New(1, 15),
	"ether":  decimal.NewFromBigInt(new(big.Int).SetUint64(params.Ether), 0),
}

// ToBaseUnits converts a decimal value expressed in the provided unit into the chain's base unit (wei)
func ToBaseUnits(value string, unit string) (string, error) {
	factor, ok := unitFactors[strings.ToLower(unit)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownUnit, unit)
	}

	amount, err := parseDecimal(value)
	if err != nil {
		return "", err
	}

	result := amount.Mul(factor)
	if !result.IsInteger() {
		return "", fmt.Errorf("%w: %s %s", ErrFractionalBaseUnits, value, unit)
	}

	return result.String(), nil
}

// FromBaseUnits converts a base unit (wei) amount into a decimal string expressed in the provided unit
func FromBaseUnits(amount *big.Int, unit string) (string, error) {
	factor, ok := unitFactors[strings.ToLower(unit)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownUnit, unit)
	}
	if amount == nil {
		return "", ErrInvalidNumericValue
	}

	return decimal.NewFromBigInt(amount, 0).DivRound(factor, maxUnitDecimals).String(), nil
}

func parseDecimal(value string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return decimal.Zero, fmt.Errorf("%w: empty value", ErrInvalidNumericValue)
	}

	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidNumericValue, value)
	}

	return amount, nil
}

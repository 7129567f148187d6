package gas

import (
	"context"
	"math/big"
)

// TipCapSuggester defines the behavior of a component able to suggest an EIP-1559 priority fee, in wei
type TipCapSuggester interface {
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
}

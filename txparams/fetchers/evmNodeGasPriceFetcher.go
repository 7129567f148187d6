package fetchers

import (
	"context"
	"math/big"
	"strconv"

	"github.com/klever-io/klv-txparams-go/txparams"
)

// EVMNodeGasPrice is the name of the fetcher asking the JSON-RPC node for its suggested gas price
const EVMNodeGasPrice = "EVM node gas price"

// EVMGasPriceClient is the subset of the go-ethereum client used to read gas price suggestions
type EVMGasPriceClient interface {
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
}

type evmNodeGasPriceFetcher struct {
	client EVMGasPriceClient
}

// Name returns the name of the fetcher
func (fetcher *evmNodeGasPriceFetcher) Name() string {
	return EVMNodeGasPrice
}

// FetchGasPrice returns the gas price suggested by the node, in Gwei
func (fetcher *evmNodeGasPriceFetcher) FetchGasPrice(ctx context.Context) (float64, error) {
	price, err := fetcher.client.SuggestGasPrice(ctx)
	if err != nil {
		return 0, err
	}

	gwei, err := txparams.FromBaseUnits(price, txparams.GweiUnit)
	if err != nil {
		return 0, err
	}

	return strconv.ParseFloat(gwei, 64)
}

// IsInterfaceNil returns true if there is no value under the interface
func (fetcher *evmNodeGasPriceFetcher) IsInterfaceNil() bool {
	return fetcher == nil
}

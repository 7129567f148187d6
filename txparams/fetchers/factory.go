package fetchers

import (
	"fmt"

	"github.com/klever-io/klv-txparams-go/txparams"
)

// ImplementedGasPriceFetchers holds the names of the gas price fetchers that can be created
var ImplementedGasPriceFetchers = map[string]struct{}{
	EVMGasPriceStation: {},
	EVMNodeGasPrice:    {},
}

// ArgsGasPriceFetcher represents the arguments for the NewGasPriceFetcher function
type ArgsGasPriceFetcher struct {
	FetcherName    string
	ResponseGetter txparams.ResponseGetter
	EVMGasConfig   EVMGasPriceFetcherConfig
	NodeClient     EVMGasPriceClient
}

// NewGasPriceFetcher returns a new gas price fetcher of the type provided
func NewGasPriceFetcher(args ArgsGasPriceFetcher) (txparams.GasPriceFetcher, error) {
	switch args.FetcherName {
	case EVMGasPriceStation:
		fetcher, err := NewEVMGasPriceFetcher(ArgsEVMGasPriceFetcher{
			ResponseGetter: args.ResponseGetter,
			Config:         args.EVMGasConfig,
		})
		if err != nil {
			return nil, err
		}
		return fetcher, nil
	case EVMNodeGasPrice:
		if isNilClient(args.NodeClient) {
			return nil, errNilEVMClient
		}
		return &evmNodeGasPriceFetcher{
			client: args.NodeClient,
		}, nil
	}

	return nil, fmt.Errorf("%w, fetcherName %s", errInvalidFetcherName, args.FetcherName)
}

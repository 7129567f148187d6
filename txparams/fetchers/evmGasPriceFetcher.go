package fetchers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/klever-io/klv-txparams-go/txparams"
	"github.com/multiversx/mx-chain-core-go/core/check"
)

const (
	// EVMGasPriceStation is the name of the etherscan-like gas oracle fetcher
	EVMGasPriceStation = "EVM gas price station"

	// SafeGasPriceSelector selects the slow gas price
	SafeGasPriceSelector = "SafeGasPrice"
	// ProposeGasPriceSelector selects the average gas price
	ProposeGasPriceSelector = "ProposeGasPrice"
	// FastGasPriceSelector selects the fast gas price
	FastGasPriceSelector = "FastGasPrice"
)

// EVMGasPriceFetcherConfig holds the gas oracle endpoint and the price it should report
type EVMGasPriceFetcherConfig struct {
	ApiURL   string
	Selector string
}

// ArgsEVMGasPriceFetcher is the DTO used to create a new EVM gas price fetcher
type ArgsEVMGasPriceFetcher struct {
	ResponseGetter txparams.ResponseGetter
	Config         EVMGasPriceFetcherConfig
}

type gasStationResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  struct {
		LastBlock       string `json:"LastBlock"`
		SafeGasPrice    string `json:"SafeGasPrice"`
		ProposeGasPrice string `json:"ProposeGasPrice"`
		FastGasPrice    string `json:"FastGasPrice"`
		SuggestBaseFee  string `json:"suggestBaseFee"`
		GasUsedRatio    string `json:"gasUsedRatio"`
	} `json:"result"`
}

type evmGasPriceFetcher struct {
	responseGetter txparams.ResponseGetter
	config         EVMGasPriceFetcherConfig
}

// NewEVMGasPriceFetcher creates a fetcher able to read gas prices, in Gwei, from an etherscan-like gas oracle
func NewEVMGasPriceFetcher(args ArgsEVMGasPriceFetcher) (*evmGasPriceFetcher, error) {
	if check.IfNil(args.ResponseGetter) {
		return nil, errNilResponseGetter
	}
	if len(args.Config.ApiURL) == 0 {
		return nil, errEmptyApiURL
	}
	switch args.Config.Selector {
	case SafeGasPriceSelector, ProposeGasPriceSelector, FastGasPriceSelector:
	default:
		return nil, fmt.Errorf("%w: %s", errInvalidGasPriceSelector, args.Config.Selector)
	}

	return &evmGasPriceFetcher{
		responseGetter: args.ResponseGetter,
		config:         args.Config,
	}, nil
}

// Name returns the name of the fetcher
func (fetcher *evmGasPriceFetcher) Name() string {
	return EVMGasPriceStation
}

// FetchGasPrice returns the selected gas price, in Gwei
func (fetcher *evmGasPriceFetcher) FetchGasPrice(ctx context.Context) (float64, error) {
	response := gasStationResponse{}
	err := fetcher.responseGetter.Get(ctx, fetcher.config.ApiURL, &response)
	if err != nil {
		return 0, err
	}

	var selected string
	switch fetcher.config.Selector {
	case SafeGasPriceSelector:
		selected = response.Result.SafeGasPrice
	case ProposeGasPriceSelector:
		selected = response.Result.ProposeGasPrice
	case FastGasPriceSelector:
		selected = response.Result.FastGasPrice
	}

	if len(selected) == 0 {
		return 0, fmt.Errorf("%w: status %s, message %s", errInvalidResponseData, response.Status, response.Message)
	}

	price, err := strconv.ParseFloat(selected, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errInvalidResponseData, err.Error())
	}

	return price, nil
}

// IsInterfaceNil returns true if there is no value under the interface
func (fetcher *evmGasPriceFetcher) IsInterfaceNil() bool {
	return fetcher == nil
}

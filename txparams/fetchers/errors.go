package fetchers

import "errors"

var (
	errNilResponseGetter       = errors.New("nil response getter")
	errNilEVMClient            = errors.New("nil EVM client")
	errInvalidAddress          = errors.New("invalid address")
	errEmptyBaseURL            = errors.New("empty base URL")
	errEmptyChainID            = errors.New("empty chain ID")
	errEmptyApiURL             = errors.New("empty API URL")
	errInvalidResponseData     = errors.New("invalid response data")
	errInvalidGasPriceSelector = errors.New("invalid gas price selector")
	errInvalidFetcherName      = errors.New("invalid fetcher name")
)

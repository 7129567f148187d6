package txparams

import (
	"context"
)

// ResponseGetter is the component able to execute get and post operations on the provided URL
type ResponseGetter interface {
	Get(ctx context.Context, url string, response interface{}) error
	Post(ctx context.Context, url string, request interface{}, response interface{}) error
	IsInterfaceNil() bool
}

// AccountNonceSource defines the behavior of a component able to query the on-chain nonce of an account
type AccountNonceSource interface {
	GetNonce(ctx context.Context, address string) (uint64, error)
	IsInterfaceNil() bool
}

// NonceRecommender defines the behavior of a component able to query the next recommended nonce of a Safe contract
type NonceRecommender interface {
	GetRecommendedNonce(ctx context.Context, safeAddress string) (uint64, error)
	IsInterfaceNil() bool
}

// ErrorReporter defines the behavior of a component able to report coded errors. It must not block.
type ErrorReporter interface {
	ReportError(code ErrorCode, message string)
	IsInterfaceNil() bool
}

// StateObserver defines the behavior of a component able to be notified each time the parameters change
type StateObserver interface {
	StateChanged(params TransactionParameters)
	IsInterfaceNil() bool
}

// GasPriceFetcher defines the behavior of a component able to query a gas price, in Gwei
type GasPriceFetcher interface {
	Name() string
	FetchGasPrice(ctx context.Context) (float64, error)
	IsInterfaceNil() bool
}

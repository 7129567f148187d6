package mock

import "context"

// GasPriceFetcherStub -
type GasPriceFetcherStub struct {
	NameCalled          func() string
	FetchGasPriceCalled func(ctx context.Context) (float64, error)
}

// Name -
func (stub *GasPriceFetcherStub) Name() string {
	if stub.NameCalled != nil {
		return stub.NameCalled()
	}

	return "GasPriceFetcherStub"
}

// FetchGasPrice -
func (stub *GasPriceFetcherStub) FetchGasPrice(ctx context.Context) (float64, error) {
	if stub.FetchGasPriceCalled != nil {
		return stub.FetchGasPriceCalled(ctx)
	}

	return 0, nil
}

// IsInterfaceNil -
func (stub *GasPriceFetcherStub) IsInterfaceNil() bool {
	return stub == nil
}

package mock

import "context"

// NonceRecommenderStub -
type NonceRecommenderStub struct {
	GetRecommendedNonceCalled func(ctx context.Context, safeAddress string) (uint64, error)
}

// GetRecommendedNonce -
func (stub *NonceRecommenderStub) GetRecommendedNonce(ctx context.Context, safeAddress string) (uint64, error) {
	if stub.GetRecommendedNonceCalled != nil {
		return stub.GetRecommendedNonceCalled(ctx, safeAddress)
	}

	return 0, nil
}

// IsInterfaceNil -
func (stub *NonceRecommenderStub) IsInterfaceNil() bool {
	return stub == nil
}

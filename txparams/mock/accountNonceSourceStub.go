package mock

import "context"

// AccountNonceSourceStub -
type AccountNonceSourceStub struct {
	GetNonceCalled func(ctx context.Context, address string) (uint64, error)
}

// GetNonce -
func (stub *AccountNonceSourceStub) GetNonce(ctx context.Context, address string) (uint64, error) {
	if stub.GetNonceCalled != nil {
		return stub.GetNonceCalled(ctx, address)
	}

	return 0, nil
}

// IsInterfaceNil -
func (stub *AccountNonceSourceStub) IsInterfaceNil() bool {
	return stub == nil
}

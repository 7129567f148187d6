package mock

import "context"

// ResponseGetterStub -
type ResponseGetterStub struct {
	GetCalled  func(ctx context.Context, url string, response interface{}) error
	PostCalled func(ctx context.Context, url string, request interface{}, response interface{}) error
}

// Get -
func (stub *ResponseGetterStub) Get(ctx context.Context, url string, response interface{}) error {
	if stub.GetCalled != nil {
		return stub.GetCalled(ctx, url, response)
	}

	return nil
}

// Post -
func (stub *ResponseGetterStub) Post(ctx context.Context, url string, request interface{}, response interface{}) error {
	if stub.PostCalled != nil {
		return stub.PostCalled(ctx, url, request, response)
	}

	return nil
}

// IsInterfaceNil -
func (stub *ResponseGetterStub) IsInterfaceNil() bool {
	return stub == nil
}

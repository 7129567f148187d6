package mock

import "github.com/klever-io/klv-txparams-go/txparams"

// StateObserverStub -
type StateObserverStub struct {
	StateChangedCalled func(params txparams.TransactionParameters)
}

// StateChanged -
func (stub *StateObserverStub) StateChanged(params txparams.TransactionParameters) {
	if stub.StateChangedCalled != nil {
		stub.StateChangedCalled(params)
	}
}

// IsInterfaceNil -
func (stub *StateObserverStub) IsInterfaceNil() bool {
	return stub == nil
}

package sessions

import (
	"github.com/klever-io/klv-txparams-go/txparams"
	gas "github.com/klever-io/klv-txparams-go/txparams/gasStation"
)

// ParameterStore defines the operations of a transaction parameter store used by a session
type ParameterStore interface {
	GetState() txparams.TransactionParameters
	ConnectedAccount() string
	SafeAddress() string
	SetContractNonce(value *string)
	SetWalletNonce(value *string)
	SetContractGasAllowance(value *string) error
	SetWalletGasLimit(value *string) error
	SetWalletGasPrice(value *string) error
	SetWalletPriorityFee(value *string) error
	SetConnectedAccount(account string)
	SetSafeAddress(address string)
	Reconcile()
	Close() error
	IsInterfaceNil() bool
}

// GasDefaultsProvider defines the behavior of a component able to provide the current gas defaults
type GasDefaultsProvider interface {
	GasDefaults() (gas.GasDefaults, error)
	IsInterfaceNil() bool
}

// StoreFactory creates the parameter store of a new session
type StoreFactory func(initialValues txparams.InitialValues, observer txparams.StateObserver) (ParameterStore, error)

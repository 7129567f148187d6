package sessions

import (
	"time"

	"github.com/klever-io/klv-txparams-go/txparams"
)

// ArgsStoreFactory holds the components shared by all the sessions' stores
type ArgsStoreFactory struct {
	NonceSource      txparams.AccountNonceSource
	NonceRecommender txparams.NonceRecommender
	ErrorReporter    txparams.ErrorReporter
	GasMarkup        float64
	FetchTimeout     time.Duration
}

// NewStoreFactory returns a StoreFactory creating transaction parameter stores wired to the shared components
func NewStoreFactory(args ArgsStoreFactory) StoreFactory {
	return func(initialValues txparams.InitialValues, observer txparams.StateObserver) (ParameterStore, error) {
		store, err := txparams.NewTransactionParameterStore(txparams.ArgsTransactionParameterStore{
			InitialValues:    initialValues,
			NonceSource:      args.NonceSource,
			NonceRecommender: args.NonceRecommender,
			ErrorReporter:    args.ErrorReporter,
			Observer:         observer,
			GasMarkup:        args.GasMarkup,
			FetchTimeout:     args.FetchTimeout,
		})
		if err != nil {
			return nil, err
		}

		return store, nil
	}
}

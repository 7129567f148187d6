package sessions

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/klever-io/klv-txparams-go/txparams"
	gas "github.com/klever-io/klv-txparams-go/txparams/gasStation"
	"github.com/klever-io/klv-txparams-go/txparams/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gasDefaultsProviderStub struct {
	GasDefaultsCalled func() (gas.GasDefaults, error)
}

func (stub *gasDefaultsProviderStub) GasDefaults() (gas.GasDefaults, error) {
	if stub.GasDefaultsCalled != nil {
		return stub.GasDefaultsCalled()
	}

	return gas.GasDefaults{}, nil
}

func (stub *gasDefaultsProviderStub) IsInterfaceNil() bool {
	return stub == nil
}

func strPtr(value string) *string {
	return &value
}

func createMockArgsSessionsHolder() ArgsSessionsHolder {
	return ArgsSessionsHolder{
		StoreFactory: NewStoreFactory(ArgsStoreFactory{
			NonceSource:      &mock.AccountNonceSourceStub{},
			NonceRecommender: &mock.NonceRecommenderStub{},
			ErrorReporter:    &mock.ErrorReporterStub{},
			GasMarkup:        txparams.DefaultGasMarkup,
		}),
		MaxSessions: 10,
	}
}

func TestNewSessionsHolder(t *testing.T) {
	t.Parallel()

	t.Run("nil store factory should error", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsSessionsHolder()
		args.StoreFactory = nil

		holder, err := NewSessionsHolder(args)
		assert.Nil(t, holder)
		assert.Equal(t, ErrNilStoreFactory, err)
	})
	t.Run("invalid max sessions should error", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsSessionsHolder()
		args.MaxSessions = 0

		holder, err := NewSessionsHolder(args)
		assert.Nil(t, holder)
		assert.ErrorIs(t, err, ErrInvalidMaxSessions)
	})
	t.Run("should work", func(t *testing.T) {
		t.Parallel()

		holder, err := NewSessionsHolder(createMockArgsSessionsHolder())
		assert.Nil(t, err)
		assert.False(t, holder.IsInterfaceNil())
		assert.Empty(t, holder.IDs())
	})
}

func TestSessionsHolder_Create(t *testing.T) {
	t.Parallel()

	t.Run("store factory error should propagate", func(t *testing.T) {
		t.Parallel()

		expectedErr := errors.New("expected error")
		args := createMockArgsSessionsHolder()
		args.StoreFactory = func(initialValues txparams.InitialValues, observer txparams.StateObserver) (ParameterStore, error) {
			return nil, expectedErr
		}
		holder, _ := NewSessionsHolder(args)

		id, err := holder.Create(ArgsCreateSession{})
		assert.Empty(t, id)
		assert.Equal(t, expectedErr, err)
		assert.Empty(t, holder.IDs())
	})
	t.Run("invalid initial gas price should error", func(t *testing.T) {
		t.Parallel()

		holder, _ := NewSessionsHolder(createMockArgsSessionsHolder())

		id, err := holder.Create(ArgsCreateSession{
			InitialValues: txparams.InitialValues{WalletGasPrice: strPtr("abc")},
		})
		assert.Empty(t, id)
		assert.NotNil(t, err)
	})
	t.Run("too many sessions should error", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsSessionsHolder()
		args.MaxSessions = 1
		holder, _ := NewSessionsHolder(args)

		_, err := holder.Create(ArgsCreateSession{})
		require.Nil(t, err)

		id, err := holder.Create(ArgsCreateSession{})
		assert.Empty(t, id)
		assert.ErrorIs(t, err, ErrTooManySessions)
	})
	t.Run("should create a session with the provided values", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsSessionsHolder()
		args.StoreFactory = NewStoreFactory(ArgsStoreFactory{
			NonceSource: &mock.AccountNonceSourceStub{
				GetNonceCalled: func(ctx context.Context, address string) (uint64, error) {
					return 7, nil
				},
			},
			NonceRecommender: &mock.NonceRecommenderStub{
				GetRecommendedNonceCalled: func(ctx context.Context, safeAddress string) (uint64, error) {
					return 3, nil
				},
			},
			ErrorReporter: &mock.ErrorReporterStub{},
			GasMarkup:     txparams.DefaultGasMarkup,
		})
		holder, _ := NewSessionsHolder(args)

		id, err := holder.Create(ArgsCreateSession{
			InitialValues:    txparams.InitialValues{WalletGasLimit: strPtr("21000")},
			SafeAddress:      "0xsafe",
			ConnectedAccount: "0xaccount",
		})
		require.Nil(t, err)
		assert.Equal(t, []string{id}, holder.IDs())

		store, err := holder.Get(id)
		require.Nil(t, err)
		assert.Equal(t, "0xsafe", store.SafeAddress())
		assert.Equal(t, "0xaccount", store.ConnectedAccount())

		assert.Eventually(t, func() bool {
			state := store.GetState()
			return state.WalletNonce != nil && state.ContractNonce != nil
		}, time.Second, time.Millisecond*5)

		state := store.GetState()
		assert.Equal(t, "7", *state.WalletNonce)
		assert.Equal(t, "3", *state.ContractNonce)
		assert.Equal(t, "21000", *state.WalletGasLimit)

		_ = holder.Close()
	})
}

func TestSessionsHolder_CreateWithGasDefaults(t *testing.T) {
	t.Parallel()

	t.Run("should fill missing prices", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsSessionsHolder()
		args.GasDefaults = &gasDefaultsProviderStub{
			GasDefaultsCalled: func() (gas.GasDefaults, error) {
				return gas.GasDefaults{GasPrice: "12.5", PriorityFee: "1.5"}, nil
			},
		}
		holder, _ := NewSessionsHolder(args)

		id, err := holder.Create(ArgsCreateSession{ApplyGasDefaults: true})
		require.Nil(t, err)

		store, _ := holder.Get(id)
		state := store.GetState()
		assert.Equal(t, "12.5", *state.WalletGasPrice)
		assert.Equal(t, "12500000000", *state.WalletGasPriceBase)
		assert.Equal(t, "1.5", *state.WalletPriorityFee)
		assert.Equal(t, "1500000000", *state.WalletPriorityFeeBase)
	})
	t.Run("should not override supplied prices", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsSessionsHolder()
		args.GasDefaults = &gasDefaultsProviderStub{
			GasDefaultsCalled: func() (gas.GasDefaults, error) {
				return gas.GasDefaults{GasPrice: "12.5", PriorityFee: "1.5"}, nil
			},
		}
		holder, _ := NewSessionsHolder(args)

		id, err := holder.Create(ArgsCreateSession{
			InitialValues:    txparams.InitialValues{WalletGasPrice: strPtr("30")},
			ApplyGasDefaults: true,
		})
		require.Nil(t, err)

		store, _ := holder.Get(id)
		state := store.GetState()
		assert.Equal(t, "30", *state.WalletGasPrice)
		assert.Equal(t, "1.5", *state.WalletPriorityFee)
	})
	t.Run("blank prices should be filled", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsSessionsHolder()
		args.GasDefaults = &gasDefaultsProviderStub{
			GasDefaultsCalled: func() (gas.GasDefaults, error) {
				return gas.GasDefaults{GasPrice: "12.5", PriorityFee: "1.5"}, nil
			},
		}
		holder, _ := NewSessionsHolder(args)

		id, err := holder.Create(ArgsCreateSession{
			InitialValues: txparams.InitialValues{
				WalletGasPrice:    strPtr(""),
				WalletPriorityFee: strPtr("  "),
			},
			ApplyGasDefaults: true,
		})
		require.Nil(t, err)

		store, _ := holder.Get(id)
		state := store.GetState()
		require.NotNil(t, state.WalletGasPrice)
		assert.Equal(t, "12.5", *state.WalletGasPrice)
		require.NotNil(t, state.WalletPriorityFee)
		assert.Equal(t, "1.5", *state.WalletPriorityFee)
	})
	t.Run("unavailable defaults should leave prices unset", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsSessionsHolder()
		args.GasDefaults = &gasDefaultsProviderStub{
			GasDefaultsCalled: func() (gas.GasDefaults, error) {
				return gas.GasDefaults{}, gas.ErrNoGasDefaults
			},
		}
		holder, _ := NewSessionsHolder(args)

		id, err := holder.Create(ArgsCreateSession{ApplyGasDefaults: true})
		require.Nil(t, err)

		store, _ := holder.Get(id)
		state := store.GetState()
		assert.Nil(t, state.WalletGasPrice)
		assert.Nil(t, state.WalletPriorityFee)
	})
	t.Run("defaults not requested should not be queried", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsSessionsHolder()
		args.GasDefaults = &gasDefaultsProviderStub{
			GasDefaultsCalled: func() (gas.GasDefaults, error) {
				assert.Fail(t, "should not have been called")
				return gas.GasDefaults{}, nil
			},
		}
		holder, _ := NewSessionsHolder(args)

		_, err := holder.Create(ArgsCreateSession{})
		assert.Nil(t, err)
	})
}

func TestSessionsHolder_GetAndCloseSession(t *testing.T) {
	t.Parallel()

	holder, _ := NewSessionsHolder(createMockArgsSessionsHolder())

	store, err := holder.Get("missing")
	assert.Nil(t, store)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	err = holder.CloseSession("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	id, _ := holder.Create(ArgsCreateSession{})
	ch, _, err := holder.Subscribe(id)
	require.Nil(t, err)

	err = holder.CloseSession(id)
	assert.Nil(t, err)
	assert.Empty(t, holder.IDs())

	_, ok := <-ch
	assert.False(t, ok)

	_, err = holder.Get(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionsHolder_Subscribe(t *testing.T) {
	t.Parallel()

	t.Run("missing session should error", func(t *testing.T) {
		t.Parallel()

		holder, _ := NewSessionsHolder(createMockArgsSessionsHolder())

		ch, unsubscribe, err := holder.Subscribe("missing")
		assert.Nil(t, ch)
		assert.Nil(t, unsubscribe)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
	t.Run("should deliver the latest state", func(t *testing.T) {
		t.Parallel()

		holder, _ := NewSessionsHolder(createMockArgsSessionsHolder())
		id, _ := holder.Create(ArgsCreateSession{})
		store, _ := holder.Get(id)

		ch, unsubscribe, err := holder.Subscribe(id)
		require.Nil(t, err)

		_ = store.SetWalletGasLimit(strPtr("100"))
		_ = store.SetWalletGasLimit(strPtr("200"))

		state := <-ch
		assert.Equal(t, "240", *state.WalletGasLimit)

		unsubscribe()
		_, ok := <-ch
		assert.False(t, ok)

		unsubscribe()
	})
}

func TestSessionsHolder_Close(t *testing.T) {
	t.Parallel()

	numClosed := uint32(0)
	args := createMockArgsSessionsHolder()
	factory := args.StoreFactory
	args.StoreFactory = func(initialValues txparams.InitialValues, observer txparams.StateObserver) (ParameterStore, error) {
		store, err := factory(initialValues, observer)
		if err != nil {
			return nil, err
		}

		return &closeCountingStore{ParameterStore: store, numClosed: &numClosed}, nil
	}
	holder, _ := NewSessionsHolder(args)

	_, _ = holder.Create(ArgsCreateSession{})
	_, _ = holder.Create(ArgsCreateSession{})

	err := holder.Close()
	assert.Nil(t, err)
	assert.Equal(t, uint32(2), atomic.LoadUint32(&numClosed))
	assert.Empty(t, holder.IDs())

	id, err := holder.Create(ArgsCreateSession{})
	assert.Empty(t, id)
	assert.Equal(t, ErrHolderClosed, err)
}

type closeCountingStore struct {
	ParameterStore
	numClosed *uint32
}

func (store *closeCountingStore) Close() error {
	atomic.AddUint32(store.numClosed, 1)
	return store.ParameterStore.Close()
}

func TestStateFanout_KeepsOnlyLatestSnapshot(t *testing.T) {
	t.Parallel()

	fanout := newStateFanout()
	ch, _ := fanout.subscribe()

	fanout.StateChanged(txparams.TransactionParameters{WalletNonce: strPtr("1")})
	fanout.StateChanged(txparams.TransactionParameters{WalletNonce: strPtr("2")})

	state := <-ch
	assert.Equal(t, "2", *state.WalletNonce)

	fanout.close()
	_, ok := <-ch
	assert.False(t, ok)

	closedCh, _ := fanout.subscribe()
	_, ok = <-closedCh
	assert.False(t, ok)
}

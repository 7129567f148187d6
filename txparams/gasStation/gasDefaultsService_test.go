package gas_test

import (
	"context"
	"math"
	"math/big"
	"testing"

	"github.com/klever-io/klv-txparams-go/txparams"
	gas "github.com/klever-io/klv-txparams-go/txparams/gasStation"
	"github.com/klever-io/klv-txparams-go/txparams/mock"
	"github.com/multiversx/mx-chain-core-go/core/check"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tipCapSuggesterStub struct {
	SuggestGasTipCapCalled func(ctx context.Context) (*big.Int, error)
}

func (stub *tipCapSuggesterStub) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	if stub.SuggestGasTipCapCalled != nil {
		return stub.SuggestGasTipCapCalled(ctx)
	}

	return big.NewInt(0), nil
}

func createMockArgsGasDefaultsService(price float64) gas.ArgsGasDefaultsService {
	return gas.ArgsGasDefaultsService{
		GasPriceFetcher: &mock.GasPriceFetcherStub{
			FetchGasPriceCalled: func(ctx context.Context) (float64, error) {
				return price, nil
			},
		},
		ErrorReporter: &mock.ErrorReporterStub{},
	}
}

func TestGasDefaultsService_NewGasDefaultsService(t *testing.T) {
	t.Parallel()

	t.Run("nil gas price fetcher should error", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsGasDefaultsService(1)
		args.GasPriceFetcher = nil
		gds, err := gas.NewGasDefaultsService(args)

		assert.True(t, check.IfNil(gds))
		assert.Equal(t, gas.ErrNilGasPriceFetcher, err)
	})
	t.Run("nil error reporter should error", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsGasDefaultsService(1)
		args.ErrorReporter = nil
		gds, err := gas.NewGasDefaultsService(args)

		assert.True(t, check.IfNil(gds))
		assert.Equal(t, gas.ErrNilErrorReporter, err)
	})
	t.Run("valid setup should work", func(t *testing.T) {
		t.Parallel()

		gds, err := gas.NewGasDefaultsService(createMockArgsGasDefaultsService(1))

		assert.False(t, check.IfNil(gds))
		assert.Nil(t, err)

		_, err = gds.GasDefaults()
		assert.Equal(t, gas.ErrNoGasDefaults, err)
	})
}

func TestGasDefaultsService_Execute(t *testing.T) {
	t.Parallel()

	t.Run("fetcher error should be reported", func(t *testing.T) {
		t.Parallel()

		var reportedCode txparams.ErrorCode
		args := createMockArgsGasDefaultsService(0)
		args.GasPriceFetcher = &mock.GasPriceFetcherStub{
			FetchGasPriceCalled: func(ctx context.Context) (float64, error) {
				return 0, assert.AnError
			},
		}
		args.ErrorReporter = &mock.ErrorReporterStub{
			ReportErrorCalled: func(code txparams.ErrorCode, message string) {
				reportedCode = code
			},
		}
		gds, _ := gas.NewGasDefaultsService(args)

		err := gds.Execute(context.Background())
		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, txparams.CodeGasDefaults, reportedCode)

		_, err = gds.GasDefaults()
		assert.Equal(t, gas.ErrNoGasDefaults, err)
	})
	t.Run("invalid gas price should error", func(t *testing.T) {
		t.Parallel()

		for _, price := range []float64{-1, math.NaN(), math.Inf(1)} {
			gds, _ := gas.NewGasDefaultsService(createMockArgsGasDefaultsService(price))

			err := gds.Execute(context.Background())
			assert.ErrorIs(t, err, gas.ErrInvalidGasPrice)
		}
	})
	t.Run("should work without tip cap suggester", func(t *testing.T) {
		t.Parallel()

		gds, _ := gas.NewGasDefaultsService(createMockArgsGasDefaultsService(30.123))

		err := gds.Execute(context.Background())
		require.Nil(t, err)

		defaults, err := gds.GasDefaults()
		require.Nil(t, err)
		assert.Equal(t, "30.123", defaults.GasPrice)
		assert.Empty(t, defaults.PriorityFee)
		assert.Equal(t, "GasPriceFetcherStub", defaults.Source)
		assert.True(t, defaults.Timestamp > 0)
	})
	t.Run("gas price should be rounded to whole wei", func(t *testing.T) {
		t.Parallel()

		gds, _ := gas.NewGasDefaultsService(createMockArgsGasDefaultsService(1.0000000001))

		require.Nil(t, gds.Execute(context.Background()))

		defaults, _ := gds.GasDefaults()
		assert.Equal(t, "1", defaults.GasPrice)
		_, err := txparams.ToBaseUnits(defaults.GasPrice, txparams.GweiUnit)
		assert.Nil(t, err)
	})
	t.Run("should work with tip cap suggester", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsGasDefaultsService(20)
		args.TipCapSuggester = &tipCapSuggesterStub{
			SuggestGasTipCapCalled: func(ctx context.Context) (*big.Int, error) {
				return big.NewInt(1500000000), nil
			},
		}
		gds, _ := gas.NewGasDefaultsService(args)

		require.Nil(t, gds.Execute(context.Background()))

		defaults, _ := gds.GasDefaults()
		assert.Equal(t, "20", defaults.GasPrice)
		assert.Equal(t, "1.5", defaults.PriorityFee)
	})
	t.Run("tip cap errors should keep the previous defaults", func(t *testing.T) {
		t.Parallel()

		numCalls := 0
		args := createMockArgsGasDefaultsService(20)
		args.TipCapSuggester = &tipCapSuggesterStub{
			SuggestGasTipCapCalled: func(ctx context.Context) (*big.Int, error) {
				numCalls++
				if numCalls == 1 {
					return big.NewInt(2000000000), nil
				}
				if numCalls == 2 {
					return nil, nil
				}
				return nil, assert.AnError
			},
		}
		gds, _ := gas.NewGasDefaultsService(args)

		require.Nil(t, gds.Execute(context.Background()))
		assert.Equal(t, gas.ErrNilTipCap, gds.Execute(context.Background()))
		assert.ErrorIs(t, gds.Execute(context.Background()), assert.AnError)

		defaults, err := gds.GasDefaults()
		require.Nil(t, err)
		assert.Equal(t, "2", defaults.PriorityFee)
	})
}

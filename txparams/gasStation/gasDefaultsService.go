package gas

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/klever-io/klv-txparams-go/txparams"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/shopspring/decimal"
)

// gweiDecimals keeps the Gwei values convertible to whole wei
const gweiDecimals = 9

var log = logger.GetOrCreate("txparams/gasStation")

// GasDefaults holds the last known gas price and priority fee, both expressed in Gwei
type GasDefaults struct {
	GasPrice    string `json:"gasPrice"`
	PriorityFee string `json:"priorityFee,omitempty"`
	Source      string `json:"source"`
	Timestamp   int64  `json:"timestamp"`
}

// ArgsGasDefaultsService is the DTO used to create a new gas defaults service
type ArgsGasDefaultsService struct {
	GasPriceFetcher txparams.GasPriceFetcher
	TipCapSuggester TipCapSuggester
	ErrorReporter   txparams.ErrorReporter
}

type gasDefaultsService struct {
	mut             sync.RWMutex
	gasPriceFetcher txparams.GasPriceFetcher
	tipCapSuggester TipCapSuggester
	errorReporter   txparams.ErrorReporter
	defaults        *GasDefaults
	timeNowHandler  func() time.Time
}

// NewGasDefaultsService creates a new instance of the gas defaults service
func NewGasDefaultsService(args ArgsGasDefaultsService) (*gasDefaultsService, error) {
	if err := checkArgsGasDefaultsService(args); err != nil {
		return nil, err
	}

	return &gasDefaultsService{
		gasPriceFetcher: args.GasPriceFetcher,
		tipCapSuggester: args.TipCapSuggester,
		errorReporter:   args.ErrorReporter,
		timeNowHandler:  time.Now,
	}, nil
}

func checkArgsGasDefaultsService(args ArgsGasDefaultsService) error {
	if check.IfNil(args.GasPriceFetcher) {
		return ErrNilGasPriceFetcher
	}
	if check.IfNil(args.ErrorReporter) {
		return ErrNilErrorReporter
	}

	return nil
}

// Execute refreshes the cached gas defaults. It is meant to be called by a polling handler.
func (gds *gasDefaultsService) Execute(ctx context.Context) error {
	defaults, err := gds.fetchDefaults(ctx)
	if err != nil {
		gds.errorReporter.ReportError(txparams.CodeGasDefaults, err.Error())
		return err
	}

	gds.mut.Lock()
	gds.defaults = defaults
	gds.mut.Unlock()

	log.Debug("gas defaults refreshed", "source", defaults.Source,
		"gas price", defaults.GasPrice, "priority fee", defaults.PriorityFee)

	return nil
}

func (gds *gasDefaultsService) fetchDefaults(ctx context.Context) (*GasDefaults, error) {
	gasPrice, err := gds.gasPriceFetcher.FetchGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w while fetching the gas price from %s", err, gds.gasPriceFetcher.Name())
	}
	if gasPrice < 0 || math.IsNaN(gasPrice) || math.IsInf(gasPrice, 0) {
		return nil, fmt.Errorf("%w: %v from %s", ErrInvalidGasPrice, gasPrice, gds.gasPriceFetcher.Name())
	}

	defaults := &GasDefaults{
		GasPrice:  decimal.NewFromFloat(gasPrice).Round(gweiDecimals).String(),
		Source:    gds.gasPriceFetcher.Name(),
		Timestamp: gds.timeNowHandler().Unix(),
	}

	if gds.tipCapSuggester == nil {
		return defaults, nil
	}

	tipCap, err := gds.tipCapSuggester.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w while fetching the priority fee", err)
	}
	if tipCap == nil {
		return nil, ErrNilTipCap
	}

	defaults.PriorityFee, err = txparams.FromBaseUnits(tipCap, txparams.GweiUnit)
	if err != nil {
		return nil, err
	}

	return defaults, nil
}

// GasDefaults returns the last successfully fetched gas defaults
func (gds *gasDefaultsService) GasDefaults() (GasDefaults, error) {
	gds.mut.RLock()
	defer gds.mut.RUnlock()

	if gds.defaults == nil {
		return GasDefaults{}, ErrNoGasDefaults
	}

	return *gds.defaults, nil
}

// IsInterfaceNil returns true if there is no value under the interface
func (gds *gasDefaultsService) IsInterfaceNil() bool {
	return gds == nil
}

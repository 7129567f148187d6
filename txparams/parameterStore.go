package txparams

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("txparams")

// InitialValues holds the caller supplied values a store starts with. Values are stored verbatim.
type InitialValues struct {
	ContractNonce        *string `json:"contractNonce,omitempty"`
	ContractGasAllowance *string `json:"contractGasAllowance,omitempty"`
	WalletGasLimit       *string `json:"walletGasLimit,omitempty"`
	WalletGasPrice       *string `json:"walletGasPrice,omitempty"`
	WalletPriorityFee    *string `json:"walletPriorityFee,omitempty"`
}

// TransactionParameters is the snapshot of the parameters needed to submit a multisig transaction.
// A nil field means the value is not known yet.
type TransactionParameters struct {
	WalletNonce           *string `json:"walletNonce,omitempty"`
	ContractNonce         *string `json:"contractNonce,omitempty"`
	ContractGasAllowance  *string `json:"contractGasAllowance,omitempty"`
	WalletGasLimit        *string `json:"walletGasLimit,omitempty"`
	WalletGasPrice        *string `json:"walletGasPrice,omitempty"`
	WalletGasPriceBase    *string `json:"walletGasPriceBase,omitempty"`
	WalletPriorityFee     *string `json:"walletPriorityFee,omitempty"`
	WalletPriorityFeeBase *string `json:"walletPriorityFeeBase,omitempty"`
}

func (tp TransactionParameters) clone() TransactionParameters {
	return TransactionParameters{
		WalletNonce:           copyValue(tp.WalletNonce),
		ContractNonce:         copyValue(tp.ContractNonce),
		ContractGasAllowance:  copyValue(tp.ContractGasAllowance),
		WalletGasLimit:        copyValue(tp.WalletGasLimit),
		WalletGasPrice:        copyValue(tp.WalletGasPrice),
		WalletGasPriceBase:    copyValue(tp.WalletGasPriceBase),
		WalletPriorityFee:     copyValue(tp.WalletPriorityFee),
		WalletPriorityFeeBase: copyValue(tp.WalletPriorityFeeBase),
	}
}

// ArgsTransactionParameterStore is the DTO used to create a new transaction parameter store
type ArgsTransactionParameterStore struct {
	InitialValues    InitialValues
	NonceSource      AccountNonceSource
	NonceRecommender NonceRecommender
	ErrorReporter    ErrorReporter
	Observer         StateObserver
	GasMarkup        float64
	FetchTimeout     time.Duration
}

// fetchTrigger tracks the value that triggers a fetch and the generation of the latest fetch started for it
type fetchTrigger struct {
	value      string
	generation uint64
	inFlight   bool
	cancel     context.CancelFunc
}

func (ft *fetchTrigger) supersede() uint64 {
	if ft.cancel != nil {
		ft.cancel()
		ft.cancel = nil
	}
	ft.inFlight = false
	ft.generation++

	return ft.generation
}

type transactionParameterStore struct {
	mut              sync.Mutex
	notifyMut        sync.Mutex
	params           TransactionParameters
	nonceSource      AccountNonceSource
	nonceRecommender NonceRecommender
	errorReporter    ErrorReporter
	observer         StateObserver
	gasMarkup        float64
	fetchTimeout     time.Duration
	account          fetchTrigger
	safe             fetchTrigger
	ctx              context.Context
	cancel           context.CancelFunc
	tasks            sync.WaitGroup
	closed           bool
}

// NewTransactionParameterStore creates a new store holding the parameters of one transaction drafting session
func NewTransactionParameterStore(args ArgsTransactionParameterStore) (*transactionParameterStore, error) {
	err := checkArgsTransactionParameterStore(args)
	if err != nil {
		return nil, err
	}

	gasPrice := normalizeValue(args.InitialValues.WalletGasPrice)
	gasPriceBase, err := toGweiBaseUnits(gasPrice)
	if err != nil {
		return nil, fmt.Errorf("%w for the initial wallet gas price", err)
	}

	priorityFee := normalizeValue(args.InitialValues.WalletPriorityFee)
	priorityFeeBase, err := toGweiBaseUnits(priorityFee)
	if err != nil {
		return nil, fmt.Errorf("%w for the initial wallet priority fee", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	store := &transactionParameterStore{
		params: TransactionParameters{
			ContractNonce:         normalizeValue(args.InitialValues.ContractNonce),
			ContractGasAllowance:  normalizeValue(args.InitialValues.ContractGasAllowance),
			WalletGasLimit:        normalizeValue(args.InitialValues.WalletGasLimit),
			WalletGasPrice:        gasPrice,
			WalletGasPriceBase:    gasPriceBase,
			WalletPriorityFee:     priorityFee,
			WalletPriorityFeeBase: priorityFeeBase,
		},
		nonceSource:      args.NonceSource,
		nonceRecommender: args.NonceRecommender,
		errorReporter:    args.ErrorReporter,
		observer:         args.Observer,
		gasMarkup:        args.GasMarkup,
		fetchTimeout:     args.FetchTimeout,
		ctx:              ctx,
		cancel:           cancel,
	}

	return store, nil
}

func checkArgsTransactionParameterStore(args ArgsTransactionParameterStore) error {
	if check.IfNil(args.NonceSource) {
		return ErrNilAccountNonceSource
	}
	if check.IfNil(args.NonceRecommender) {
		return ErrNilNonceRecommender
	}
	if check.IfNil(args.ErrorReporter) {
		return ErrNilErrorReporter
	}
	if !isValidMarkup(args.GasMarkup) {
		return fmt.Errorf("%w: %v", ErrInvalidGasMarkup, args.GasMarkup)
	}
	if args.FetchTimeout < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidFetchTimeout, args.FetchTimeout)
	}

	return nil
}

// GetState returns a snapshot of the current parameters, derived fields included
func (store *transactionParameterStore) GetState() TransactionParameters {
	store.mut.Lock()
	defer store.mut.Unlock()

	return store.params.clone()
}

// ConnectedAccount returns the account the wallet nonce is tracked for
func (store *transactionParameterStore) ConnectedAccount() string {
	store.mut.Lock()
	defer store.mut.Unlock()

	return store.account.value
}

// SafeAddress returns the Safe contract address the contract nonce is tracked for
func (store *transactionParameterStore) SafeAddress() string {
	store.mut.Lock()
	defer store.mut.Unlock()

	return store.safe.value
}

// SetContractNonce assigns the contract nonce. Clearing it makes the store fetch the recommended nonce again.
func (store *transactionParameterStore) SetContractNonce(value *string) {
	value = normalizeValue(value)

	store.mut.Lock()
	if value != nil || store.params.ContractNonce != nil {
		store.safe.supersede()
	}
	store.params.ContractNonce = value
	store.fetchContractNonceIfNeeded()
	store.mut.Unlock()

	store.notifyObserver()
}

// SetWalletNonce assigns the wallet nonce, overriding any fetched or in-flight value
func (store *transactionParameterStore) SetWalletNonce(value *string) {
	store.mut.Lock()
	store.account.supersede()
	store.params.WalletNonce = normalizeValue(value)
	store.mut.Unlock()

	store.notifyObserver()
}

// SetContractGasAllowance stores the provided gas allowance inflated by the gas markup
func (store *transactionParameterStore) SetContractGasAllowance(value *string) error {
	marked, err := store.applyMarkup(value)
	if err != nil {
		return err
	}

	store.mut.Lock()
	store.params.ContractGasAllowance = marked
	store.mut.Unlock()

	store.notifyObserver()

	return nil
}

// SetWalletGasLimit stores the provided gas limit inflated by the gas markup
func (store *transactionParameterStore) SetWalletGasLimit(value *string) error {
	marked, err := store.applyMarkup(value)
	if err != nil {
		return err
	}

	store.mut.Lock()
	store.params.WalletGasLimit = marked
	store.mut.Unlock()

	store.notifyObserver()

	return nil
}

// SetWalletGasPrice assigns the gas price (Gwei) and recomputes its base unit value
func (store *transactionParameterStore) SetWalletGasPrice(value *string) error {
	value = normalizeValue(value)
	base, err := toGweiBaseUnits(value)
	if err != nil {
		return err
	}

	store.mut.Lock()
	store.params.WalletGasPrice = value
	store.params.WalletGasPriceBase = base
	store.mut.Unlock()

	store.notifyObserver()

	return nil
}

// SetWalletPriorityFee assigns the priority fee (Gwei) and recomputes its base unit value
func (store *transactionParameterStore) SetWalletPriorityFee(value *string) error {
	value = normalizeValue(value)
	base, err := toGweiBaseUnits(value)
	if err != nil {
		return err
	}

	store.mut.Lock()
	store.params.WalletPriorityFee = value
	store.params.WalletPriorityFeeBase = base
	store.mut.Unlock()

	store.notifyObserver()

	return nil
}

// SetConnectedAccount switches the connected signing account and fetches its nonce.
// Setting the same account again is a no-op.
func (store *transactionParameterStore) SetConnectedAccount(account string) {
	account = strings.TrimSpace(account)

	store.mut.Lock()
	if account == store.account.value {
		store.mut.Unlock()
		return
	}

	store.account.value = account
	generation := store.account.supersede()
	store.params.WalletNonce = nil
	if len(account) > 0 && !store.closed {
		store.startWalletNonceFetch(account, generation)
	}
	store.mut.Unlock()

	store.notifyObserver()
}

// SetSafeAddress switches the Safe contract address and fetches its recommended nonce if no contract nonce is set
func (store *transactionParameterStore) SetSafeAddress(address string) {
	address = strings.TrimSpace(address)

	store.mut.Lock()
	defer store.mut.Unlock()

	if address == store.safe.value {
		return
	}

	store.safe.value = address
	store.safe.supersede()
	store.fetchContractNonceIfNeeded()
}

// Reconcile re-evaluates the fetch triggers. A recommended nonce fetch that failed is attempted again.
func (store *transactionParameterStore) Reconcile() {
	store.mut.Lock()
	defer store.mut.Unlock()

	store.fetchContractNonceIfNeeded()
}

// Close cancels all in-flight fetches and waits for them to finish
func (store *transactionParameterStore) Close() error {
	store.mut.Lock()
	if store.closed {
		store.mut.Unlock()
		return nil
	}
	store.closed = true
	store.mut.Unlock()

	store.cancel()
	store.tasks.Wait()

	return nil
}

func (store *transactionParameterStore) applyMarkup(value *string) (*string, error) {
	value = normalizeValue(value)
	if value == nil {
		return nil, nil
	}

	marked, err := ApplyGasMarkup(*value, store.gasMarkup)
	if err != nil {
		return nil, err
	}

	return &marked, nil
}

// fetchContractNonceIfNeeded must be called under mutex
func (store *transactionParameterStore) fetchContractNonceIfNeeded() {
	if store.closed || store.safe.inFlight {
		return
	}
	if store.params.ContractNonce != nil || len(store.safe.value) == 0 {
		return
	}

	ctx, cancel := store.newFetchContext()
	store.safe.cancel = cancel
	store.safe.inFlight = true

	store.tasks.Add(1)
	go store.fetchContractNonce(ctx, cancel, store.safe.value, store.safe.generation)
}

// startWalletNonceFetch must be called under mutex
func (store *transactionParameterStore) startWalletNonceFetch(account string, generation uint64) {
	ctx, cancel := store.newFetchContext()
	store.account.cancel = cancel
	store.account.inFlight = true

	store.tasks.Add(1)
	go store.fetchWalletNonce(ctx, cancel, account, generation)
}

func (store *transactionParameterStore) newFetchContext() (context.Context, context.CancelFunc) {
	if store.fetchTimeout > 0 {
		return context.WithTimeout(store.ctx, store.fetchTimeout)
	}

	return context.WithCancel(store.ctx)
}

func (store *transactionParameterStore) fetchWalletNonce(ctx context.Context, cancel context.CancelFunc, account string, generation uint64) {
	defer store.tasks.Done()
	defer cancel()

	nonce, err := store.nonceSource.GetNonce(ctx, account)

	store.mut.Lock()
	if store.closed || generation != store.account.generation {
		store.mut.Unlock()
		log.Debug("discarding superseded wallet nonce fetch", "account", account, "error", err)
		return
	}
	store.account.inFlight = false
	store.account.cancel = nil
	if err != nil {
		store.mut.Unlock()
		log.Debug("wallet nonce fetch failed", "account", account, "error", err)
		store.errorReporter.ReportError(CodeWalletNonce, err.Error())
		return
	}
	store.params.WalletNonce = formatNonce(nonce)
	store.mut.Unlock()

	log.Debug("wallet nonce fetched", "account", account, "nonce", nonce)
	store.notifyObserver()
}

func (store *transactionParameterStore) fetchContractNonce(ctx context.Context, cancel context.CancelFunc, safeAddress string, generation uint64) {
	defer store.tasks.Done()
	defer cancel()

	nonce, err := store.nonceRecommender.GetRecommendedNonce(ctx, safeAddress)

	store.mut.Lock()
	if store.closed || generation != store.safe.generation {
		store.mut.Unlock()
		log.Debug("discarding superseded recommended nonce fetch", "safe", safeAddress, "error", err)
		return
	}
	store.safe.inFlight = false
	store.safe.cancel = nil
	if err != nil {
		store.mut.Unlock()
		log.Debug("recommended nonce fetch failed", "safe", safeAddress, "error", err)
		store.errorReporter.ReportError(CodeRecommendedNonce, err.Error())
		return
	}
	store.params.ContractNonce = formatNonce(nonce)
	store.mut.Unlock()

	log.Debug("recommended nonce fetched", "safe", safeAddress, "nonce", nonce)
	store.notifyObserver()
}

// notifyObserver takes the snapshot after acquiring notifyMut so the last notification always carries the latest state
func (store *transactionParameterStore) notifyObserver() {
	if check.IfNil(store.observer) {
		return
	}

	store.notifyMut.Lock()
	defer store.notifyMut.Unlock()

	store.observer.StateChanged(store.GetState())
}

// IsInterfaceNil returns true if there is no value under the interface
func (store *transactionParameterStore) IsInterfaceNil() bool {
	return store == nil
}

func toGweiBaseUnits(value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}

	base, err := ToBaseUnits(*value, GweiUnit)
	if err != nil {
		return nil, err
	}

	return &base, nil
}

func formatNonce(nonce uint64) *string {
	value := strconv.FormatUint(nonce, 10)
	return &value
}

func normalizeValue(value *string) *string {
	if value == nil || len(strings.TrimSpace(*value)) == 0 {
		return nil
	}

	return copyValue(value)
}

func copyValue(value *string) *string {
	if value == nil {
		return nil
	}

	result := *value
	return &result
}

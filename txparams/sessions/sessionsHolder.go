package sessions

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/klever-io/klv-txparams-go/txparams"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("txparams/sessions")

// ArgsSessionsHolder is the DTO used to create a new sessions holder
type ArgsSessionsHolder struct {
	StoreFactory StoreFactory
	GasDefaults  GasDefaultsProvider
	MaxSessions  int
}

// ArgsCreateSession holds the values a new drafting session starts with
type ArgsCreateSession struct {
	InitialValues    txparams.InitialValues `json:"initialValues"`
	SafeAddress      string                 `json:"safeAddress"`
	ConnectedAccount string                 `json:"connectedAccount"`
	ApplyGasDefaults bool                   `json:"applyGasDefaults"`
}

type session struct {
	store  ParameterStore
	fanout *stateFanout
}

type sessionsHolder struct {
	mut          sync.RWMutex
	sessions     map[string]*session
	storeFactory StoreFactory
	gasDefaults  GasDefaultsProvider
	maxSessions  int
	closed       bool
	newIDHandler func() string
}

// NewSessionsHolder creates a registry of transaction drafting sessions
func NewSessionsHolder(args ArgsSessionsHolder) (*sessionsHolder, error) {
	if args.StoreFactory == nil {
		return nil, ErrNilStoreFactory
	}
	if args.MaxSessions < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidMaxSessions, args.MaxSessions)
	}

	return &sessionsHolder{
		sessions:     make(map[string]*session),
		storeFactory: args.StoreFactory,
		gasDefaults:  args.GasDefaults,
		maxSessions:  args.MaxSessions,
		newIDHandler: uuid.NewString,
	}, nil
}

// Create opens a new session and returns its id
func (holder *sessionsHolder) Create(args ArgsCreateSession) (string, error) {
	initialValues := args.InitialValues
	if args.ApplyGasDefaults {
		holder.applyGasDefaults(&initialValues)
	}

	holder.mut.Lock()
	defer holder.mut.Unlock()

	if holder.closed {
		return "", ErrHolderClosed
	}
	if len(holder.sessions) >= holder.maxSessions {
		return "", fmt.Errorf("%w, maximum %d", ErrTooManySessions, holder.maxSessions)
	}

	fanout := newStateFanout()
	store, err := holder.storeFactory(initialValues, fanout)
	if err != nil {
		return "", err
	}

	id := holder.newIDHandler()
	holder.sessions[id] = &session{
		store:  store,
		fanout: fanout,
	}

	store.SetSafeAddress(args.SafeAddress)
	store.SetConnectedAccount(args.ConnectedAccount)

	log.Debug("session created", "id", id, "safe", args.SafeAddress, "account", args.ConnectedAccount)

	return id, nil
}

// applyGasDefaults fills the prices the caller did not supply with the latest gas defaults
func (holder *sessionsHolder) applyGasDefaults(initialValues *txparams.InitialValues) {
	if check.IfNil(holder.gasDefaults) {
		return
	}

	defaults, err := holder.gasDefaults.GasDefaults()
	if err != nil {
		log.Debug("gas defaults not applied", "error", err)
		return
	}

	if isUnset(initialValues.WalletGasPrice) {
		gasPrice := defaults.GasPrice
		initialValues.WalletGasPrice = &gasPrice
	}
	if isUnset(initialValues.WalletPriorityFee) && len(defaults.PriorityFee) > 0 {
		priorityFee := defaults.PriorityFee
		initialValues.WalletPriorityFee = &priorityFee
	}
}

// isUnset matches the store normalization where blank values mean unknown
func isUnset(value *string) bool {
	return value == nil || len(strings.TrimSpace(*value)) == 0
}

// Get returns the store of the provided session
func (holder *sessionsHolder) Get(id string) (ParameterStore, error) {
	holder.mut.RLock()
	defer holder.mut.RUnlock()

	s, ok := holder.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	return s.store, nil
}

// Subscribe returns a channel delivering the latest state of the session after each change.
// The channel is closed when the session is closed or the returned function is called.
func (holder *sessionsHolder) Subscribe(id string) (<-chan txparams.TransactionParameters, func(), error) {
	holder.mut.RLock()
	defer holder.mut.RUnlock()

	s, ok := holder.sessions[id]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	ch, unsubscribe := s.fanout.subscribe()

	return ch, unsubscribe, nil
}

// IDs returns the sorted ids of the open sessions
func (holder *sessionsHolder) IDs() []string {
	holder.mut.RLock()
	defer holder.mut.RUnlock()

	ids := make([]string, 0, len(holder.sessions))
	for id := range holder.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// CloseSession closes the session and discards its state
func (holder *sessionsHolder) CloseSession(id string) error {
	holder.mut.Lock()
	s, ok := holder.sessions[id]
	delete(holder.sessions, id)
	holder.mut.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	log.Debug("session closed", "id", id)

	return closeSession(s)
}

// Close closes all the sessions
func (holder *sessionsHolder) Close() error {
	holder.mut.Lock()
	holder.closed = true
	sessions := holder.sessions
	holder.sessions = make(map[string]*session)
	holder.mut.Unlock()

	var lastErr error
	for id, s := range sessions {
		err := closeSession(s)
		if err != nil {
			log.Warn("error closing session", "id", id, "error", err)
			lastErr = err
		}
	}

	return lastErr
}

func closeSession(s *session) error {
	err := s.store.Close()
	s.fanout.close()

	return err
}

// IsInterfaceNil returns true if there is no value under the interface
func (holder *sessionsHolder) IsInterfaceNil() bool {
	return holder == nil
}

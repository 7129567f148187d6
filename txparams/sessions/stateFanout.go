package sessions

import (
	"sync"

	"github.com/klever-io/klv-txparams-go/txparams"
)

// stateFanout forwards state snapshots to subscribers. Each subscriber only keeps the latest snapshot.
type stateFanout struct {
	mut         sync.Mutex
	nextID      int
	subscribers map[int]chan txparams.TransactionParameters
	closed      bool
}

func newStateFanout() *stateFanout {
	return &stateFanout{
		subscribers: make(map[int]chan txparams.TransactionParameters),
	}
}

// StateChanged forwards the snapshot to all subscribers, replacing any snapshot not yet consumed
func (fanout *stateFanout) StateChanged(params txparams.TransactionParameters) {
	fanout.mut.Lock()
	defer fanout.mut.Unlock()

	for _, ch := range fanout.subscribers {
		select {
		case ch <- params:
			continue
		default:
		}

		select {
		case <-ch:
		default:
		}
		select {
		case ch <- params:
		default:
		}
	}
}

func (fanout *stateFanout) subscribe() (<-chan txparams.TransactionParameters, func()) {
	fanout.mut.Lock()
	defer fanout.mut.Unlock()

	ch := make(chan txparams.TransactionParameters, 1)
	if fanout.closed {
		close(ch)
		return ch, func() {}
	}

	id := fanout.nextID
	fanout.nextID++
	fanout.subscribers[id] = ch

	unsubscribe := func() {
		fanout.mut.Lock()
		defer fanout.mut.Unlock()

		existing, ok := fanout.subscribers[id]
		if !ok {
			return
		}
		delete(fanout.subscribers, id)
		close(existing)
	}

	return ch, unsubscribe
}

func (fanout *stateFanout) close() {
	fanout.mut.Lock()
	defer fanout.mut.Unlock()

	fanout.closed = true
	for id, ch := range fanout.subscribers {
		delete(fanout.subscribers, id)
		close(ch)
	}
}

// IsInterfaceNil returns true if there is no value under the interface
func (fanout *stateFanout) IsInterfaceNil() bool {
	return fanout == nil
}

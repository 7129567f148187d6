package gin

import (
	"github.com/klever-io/klv-txparams-go/txparams"
	"github.com/klever-io/klv-txparams-go/txparams/sessions"
)

// SessionsHandler defines the session registry operations exposed by the web server
type SessionsHandler interface {
	Create(args sessions.ArgsCreateSession) (string, error)
	Get(id string) (sessions.ParameterStore, error)
	Subscribe(id string) (<-chan txparams.TransactionParameters, func(), error)
	IDs() []string
	CloseSession(id string) error
	IsInterfaceNil() bool
}

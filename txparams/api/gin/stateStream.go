package gin

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/klever-io/klv-txparams-go/txparams"
)

const writeTimeout = time.Second * 10

type stateMessage struct {
	SessionID string                         `json:"sessionId"`
	Params    txparams.TransactionParameters `json:"params"`
}

// streamState pushes the session state to the websocket client: the current state first, then every change
func (ws *webServer) streamState(c *gin.Context) {
	id := c.Param("id")
	store, err := ws.sessions.Get(id)
	if err != nil {
		respondSessionsError(c, err)
		return
	}

	updates, unsubscribe, err := ws.sessions.Subscribe(id)
	if err != nil {
		respondSessionsError(c, err)
		return
	}
	defer unsubscribe()

	conn, err := ws.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Debug("websocket upgrade failed", "session", id, "error", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	clientGone := make(chan struct{})
	go func() {
		defer close(clientGone)
		for {
			_, _, errRead := conn.ReadMessage()
			if errRead != nil {
				return
			}
		}
	}()

	err = writeState(conn, id, store.GetState())
	if err != nil {
		log.Debug("websocket write failed", "session", id, "error", err)
		return
	}

	for {
		select {
		case state, ok := <-updates:
			if !ok {
				writeClose(conn, websocket.CloseNormalClosure, "session closed")
				return
			}
			err = writeState(conn, id, state)
			if err != nil {
				log.Debug("websocket write failed", "session", id, "error", err)
				return
			}
		case <-clientGone:
			return
		case <-ws.ctx.Done():
			writeClose(conn, websocket.CloseGoingAway, "server closing")
			return
		}
	}
}

func writeState(conn *websocket.Conn, id string, state txparams.TransactionParameters) error {
	err := conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err != nil {
		return err
	}

	return conn.WriteJSON(stateMessage{
		SessionID: id,
		Params:    state,
	})
}

func writeClose(conn *websocket.Conn, code int, text string) {
	message := websocket.FormatCloseMessage(code, text)
	err := conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(writeTimeout))
	if err != nil && err != websocket.ErrCloseSent {
		log.Debug("websocket close failed", "error", err)
	}
}

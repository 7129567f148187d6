package gin

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/klever-io/klv-txparams-go/txparams/sessions"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
)

// DisabledListenAddress disables the REST API when used as listen address
const DisabledListenAddress = "off"

const shutdownTimeout = time.Second * 5

var log = logger.GetOrCreate("txparams/api/gin")

// ArgsWebServerHandler is the DTO used to create a new web server handler
type ArgsWebServerHandler struct {
	ListenAddress string
	Sessions      SessionsHandler
	GasDefaults   sessions.GasDefaultsProvider
}

type webServer struct {
	mut           sync.Mutex
	listenAddress string
	sessions      SessionsHandler
	gasDefaults   sessions.GasDefaultsProvider
	engine        *gin.Engine
	upgrader      websocket.Upgrader
	httpServer    *http.Server
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewWebServerHandler returns a new instance of the web server handling the sessions REST and websocket routes
func NewWebServerHandler(args ArgsWebServerHandler) (*webServer, error) {
	if len(args.ListenAddress) == 0 {
		return nil, ErrEmptyListenAddress
	}
	if check.IfNil(args.Sessions) {
		return nil, ErrNilSessionsHandler
	}

	ctx, cancel := context.WithCancel(context.Background())
	ws := &webServer{
		listenAddress: args.ListenAddress,
		sessions:      args.Sessions,
		gasDefaults:   args.GasDefaults,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		ctx:    ctx,
		cancel: cancel,
	}
	ws.engine = ws.createEngine()

	return ws, nil
}

func (ws *webServer) createEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.Default())
	engine.Use(requestLogger())

	sessionsGroup := engine.Group("/sessions")
	sessionsGroup.POST("", ws.createSession)
	sessionsGroup.GET("", ws.listSessions)
	sessionsGroup.GET("/:id", ws.getSession)
	sessionsGroup.DELETE("/:id", ws.closeSession)
	sessionsGroup.PUT("/:id/params/:field", ws.setParameter)
	sessionsGroup.PUT("/:id/account", ws.setConnectedAccount)
	sessionsGroup.PUT("/:id/safe", ws.setSafeAddress)
	sessionsGroup.POST("/:id/reconcile", ws.reconcile)
	sessionsGroup.GET("/:id/ws", ws.streamState)

	engine.GET("/gas/defaults", ws.getGasDefaults)

	return engine
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Trace("api request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// StartHttpServer starts the http server in a separate go routine
func (ws *webServer) StartHttpServer() error {
	if ws.listenAddress == DisabledListenAddress {
		log.Debug("web server is turned off")
		return nil
	}

	ws.mut.Lock()
	defer ws.mut.Unlock()

	if ws.httpServer != nil {
		return ErrServerAlreadyStarted
	}

	ws.httpServer = &http.Server{
		Addr:    ws.listenAddress,
		Handler: ws.engine,
	}

	go func(server *http.Server) {
		log.Info("starting web server", "interface", server.Addr)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("could not start web server", "error", err)
		}
	}(ws.httpServer)

	return nil
}

// Close stops the http server and the websocket streams
func (ws *webServer) Close() error {
	ws.cancel()

	ws.mut.Lock()
	defer ws.mut.Unlock()

	if ws.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := ws.httpServer.Shutdown(ctx)
	ws.httpServer = nil

	return err
}

// IsInterfaceNil returns true if there is no value under the interface
func (ws *webServer) IsInterfaceNil() bool {
	return ws == nil
}

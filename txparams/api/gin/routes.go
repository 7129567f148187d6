package gin

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/klever-io/klv-txparams-go/txparams"
	"github.com/klever-io/klv-txparams-go/txparams/sessions"
	"github.com/multiversx/mx-chain-core-go/core/check"
)

const (
	contractNonceField        = "contractNonce"
	walletNonceField          = "walletNonce"
	contractGasAllowanceField = "contractGasAllowance"
	walletGasLimitField       = "walletGasLimit"
	walletGasPriceField       = "walletGasPrice"
	walletPriorityFeeField    = "walletPriorityFee"
)

// ReturnCode classifies the outcome of an API call
type ReturnCode string

const (
	// ReturnCodeSuccess signals a successful call
	ReturnCodeSuccess ReturnCode = "successful"
	// ReturnCodeRequestError signals an invalid request
	ReturnCodeRequestError ReturnCode = "bad_request"
	// ReturnCodeNotFound signals a missing session
	ReturnCodeNotFound ReturnCode = "not_found"
	// ReturnCodeInternalError signals a failure on the server side
	ReturnCodeInternalError ReturnCode = "internal_issue"
)

type genericAPIResponse struct {
	Data  interface{} `json:"data"`
	Error string      `json:"error"`
	Code  ReturnCode  `json:"code"`
}

type sessionResponse struct {
	ID               string                         `json:"id"`
	SafeAddress      string                         `json:"safeAddress"`
	ConnectedAccount string                         `json:"connectedAccount"`
	Params           txparams.TransactionParameters `json:"params"`
}

type valueRequest struct {
	Value *string `json:"value"`
}

type accountRequest struct {
	Account string `json:"account"`
}

type safeRequest struct {
	Address string `json:"address"`
}

func (ws *webServer) createSession(c *gin.Context) {
	args := sessions.ArgsCreateSession{}
	err := c.ShouldBindJSON(&args)
	if err != nil {
		respondError(c, http.StatusBadRequest, ReturnCodeRequestError, err)
		return
	}

	id, err := ws.sessions.Create(args)
	if err != nil {
		respondSessionsError(c, err)
		return
	}

	ws.respondSession(c, http.StatusCreated, id)
}

func (ws *webServer) listSessions(c *gin.Context) {
	respond(c, http.StatusOK, gin.H{"ids": ws.sessions.IDs()})
}

func (ws *webServer) getSession(c *gin.Context) {
	ws.respondSession(c, http.StatusOK, c.Param("id"))
}

func (ws *webServer) closeSession(c *gin.Context) {
	err := ws.sessions.CloseSession(c.Param("id"))
	if err != nil {
		respondSessionsError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"closed": true})
}

func (ws *webServer) setParameter(c *gin.Context) {
	store, err := ws.sessions.Get(c.Param("id"))
	if err != nil {
		respondSessionsError(c, err)
		return
	}

	request := valueRequest{}
	err = c.ShouldBindJSON(&request)
	if err != nil {
		respondError(c, http.StatusBadRequest, ReturnCodeRequestError, err)
		return
	}

	err = setField(store, c.Param("field"), request.Value)
	if err != nil {
		respondError(c, http.StatusBadRequest, ReturnCodeRequestError, err)
		return
	}

	ws.respondSession(c, http.StatusOK, c.Param("id"))
}

func setField(store sessions.ParameterStore, field string, value *string) error {
	switch field {
	case contractNonceField:
		store.SetContractNonce(value)
		return nil
	case walletNonceField:
		store.SetWalletNonce(value)
		return nil
	case contractGasAllowanceField:
		return store.SetContractGasAllowance(value)
	case walletGasLimitField:
		return store.SetWalletGasLimit(value)
	case walletGasPriceField:
		return store.SetWalletGasPrice(value)
	case walletPriorityFeeField:
		return store.SetWalletPriorityFee(value)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
}

func (ws *webServer) setConnectedAccount(c *gin.Context) {
	store, err := ws.sessions.Get(c.Param("id"))
	if err != nil {
		respondSessionsError(c, err)
		return
	}

	request := accountRequest{}
	err = c.ShouldBindJSON(&request)
	if err != nil {
		respondError(c, http.StatusBadRequest, ReturnCodeRequestError, err)
		return
	}

	store.SetConnectedAccount(request.Account)
	ws.respondSession(c, http.StatusOK, c.Param("id"))
}

func (ws *webServer) setSafeAddress(c *gin.Context) {
	store, err := ws.sessions.Get(c.Param("id"))
	if err != nil {
		respondSessionsError(c, err)
		return
	}

	request := safeRequest{}
	err = c.ShouldBindJSON(&request)
	if err != nil {
		respondError(c, http.StatusBadRequest, ReturnCodeRequestError, err)
		return
	}

	store.SetSafeAddress(request.Address)
	ws.respondSession(c, http.StatusOK, c.Param("id"))
}

func (ws *webServer) reconcile(c *gin.Context) {
	store, err := ws.sessions.Get(c.Param("id"))
	if err != nil {
		respondSessionsError(c, err)
		return
	}

	store.Reconcile()
	ws.respondSession(c, http.StatusOK, c.Param("id"))
}

func (ws *webServer) getGasDefaults(c *gin.Context) {
	if check.IfNil(ws.gasDefaults) {
		respondError(c, http.StatusServiceUnavailable, ReturnCodeInternalError, ErrGasDefaultsDisabled)
		return
	}

	defaults, err := ws.gasDefaults.GasDefaults()
	if err != nil {
		respondError(c, http.StatusServiceUnavailable, ReturnCodeInternalError, err)
		return
	}

	respond(c, http.StatusOK, defaults)
}

func (ws *webServer) respondSession(c *gin.Context, status int, id string) {
	store, err := ws.sessions.Get(id)
	if err != nil {
		respondSessionsError(c, err)
		return
	}

	respond(c, status, sessionResponse{
		ID:               id,
		SafeAddress:      store.SafeAddress(),
		ConnectedAccount: store.ConnectedAccount(),
		Params:           store.GetState(),
	})
}

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, genericAPIResponse{
		Data: data,
		Code: ReturnCodeSuccess,
	})
}

func respondSessionsError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, sessions.ErrSessionNotFound):
		respondError(c, http.StatusNotFound, ReturnCodeNotFound, err)
	case errors.Is(err, sessions.ErrTooManySessions):
		respondError(c, http.StatusTooManyRequests, ReturnCodeRequestError, err)
	case errors.Is(err, sessions.ErrHolderClosed):
		respondError(c, http.StatusServiceUnavailable, ReturnCodeInternalError, err)
	default:
		respondError(c, http.StatusBadRequest, ReturnCodeRequestError, err)
	}
}

func respondError(c *gin.Context, status int, code ReturnCode, err error) {
	log.Debug("api request failed", "path", c.FullPath(), "status", status, "error", err)
	c.JSON(status, genericAPIResponse{
		Error: err.Error(),
		Code:  code,
	})
}

package fetchers

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// EVMNonceClient is the subset of the go-ethereum client used to read account nonces
type EVMNonceClient interface {
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
}

// ArgsEVMNonceSource is the DTO used to create a new EVM nonce source
type ArgsEVMNonceSource struct {
	Client EVMNonceClient
}

type evmNonceSource struct {
	client EVMNonceClient
}

// NewEVMNonceSource creates an account nonce source backed by an EVM JSON-RPC node
func NewEVMNonceSource(args ArgsEVMNonceSource) (*evmNonceSource, error) {
	if isNilClient(args.Client) {
		return nil, errNilEVMClient
	}

	return &evmNonceSource{
		client: args.Client,
	}, nil
}

// GetNonce returns the pending nonce of the provided account, so transactions still in the mempool are counted
func (source *evmNonceSource) GetNonce(ctx context.Context, address string) (uint64, error) {
	if !common.IsHexAddress(address) {
		return 0, fmt.Errorf("%w: %s", errInvalidAddress, address)
	}

	nonce, err := source.client.PendingNonceAt(ctx, common.HexToAddress(address))
	if err != nil {
		return 0, fmt.Errorf("%w while querying the nonce of %s", err, address)
	}

	return nonce, nil
}

// IsInterfaceNil returns true if there is no value under the interface
func (source *evmNonceSource) IsInterfaceNil() bool {
	return source == nil
}

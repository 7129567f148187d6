package fetchers

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/klever-io/klv-txparams-go/txparams"
	"github.com/multiversx/mx-chain-core-go/core/check"
)

const (
	estimationsPathFormat = "%s/v2/chains/%s/safes/%s/multisig-transactions/estimations"
	callOperation         = 0
	emptyCallData         = "0x"
)

// ArgsSafeNonceRecommender is the DTO used to create a new Safe nonce recommender
type ArgsSafeNonceRecommender struct {
	ResponseGetter txparams.ResponseGetter
	BaseURL        string
	ChainID        string
}

type estimationRequest struct {
	To        string `json:"to"`
	Value     string `json:"value"`
	Data      string `json:"data"`
	Operation int    `json:"operation"`
}

type estimationResponse struct {
	CurrentNonce     *uint64 `json:"currentNonce"`
	RecommendedNonce *uint64 `json:"recommendedNonce"`
	SafeTxGas        string  `json:"safeTxGas"`
}

type safeNonceRecommender struct {
	responseGetter txparams.ResponseGetter
	baseURL        string
	chainID        string
}

// NewSafeNonceRecommender creates a client of the Safe gas estimation backend able to recommend the next Safe nonce
func NewSafeNonceRecommender(args ArgsSafeNonceRecommender) (*safeNonceRecommender, error) {
	if check.IfNil(args.ResponseGetter) {
		return nil, errNilResponseGetter
	}
	if len(args.BaseURL) == 0 {
		return nil, errEmptyBaseURL
	}
	if len(args.ChainID) == 0 {
		return nil, errEmptyChainID
	}

	return &safeNonceRecommender{
		responseGetter: args.ResponseGetter,
		baseURL:        strings.TrimRight(args.BaseURL, "/"),
		chainID:        args.ChainID,
	}, nil
}

// GetRecommendedNonce estimates an empty self call of the Safe and returns the nonce recommended by the backend
func (recommender *safeNonceRecommender) GetRecommendedNonce(ctx context.Context, safeAddress string) (uint64, error) {
	if !common.IsHexAddress(safeAddress) {
		return 0, fmt.Errorf("%w: %s", errInvalidAddress, safeAddress)
	}

	checksumAddress := common.HexToAddress(safeAddress).Hex()
	url := fmt.Sprintf(estimationsPathFormat, recommender.baseURL, recommender.chainID, checksumAddress)
	request := estimationRequest{
		To:        checksumAddress,
		Value:     "0",
		Data:      emptyCallData,
		Operation: callOperation,
	}

	response := estimationResponse{}
	err := recommender.responseGetter.Post(ctx, url, request, &response)
	if err != nil {
		return 0, err
	}
	if response.RecommendedNonce == nil {
		return 0, fmt.Errorf("%w: missing recommendedNonce for safe %s", errInvalidResponseData, checksumAddress)
	}

	return *response.RecommendedNonce, nil
}

// IsInterfaceNil returns true if there is no value under the interface
func (recommender *safeNonceRecommender) IsInterfaceNil() bool {
	return recommender == nil
}

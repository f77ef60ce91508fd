package types

import (
	"context"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/types/query"
)

// QueryServer defines the query server interface
type QueryServer interface {
	Params(context.Context, *QueryParamsRequest) (*QueryParamsResponse, error)
	Pool(context.Context, *QueryPoolRequest) (*QueryPoolResponse, error)
	Pools(context.Context, *QueryPoolsRequest) (*QueryPoolsResponse, error)
	PoolByTokens(context.Context, *QueryPoolByTokensRequest) (*QueryPoolByTokensResponse, error)
	Position(context.Context, *QueryPositionRequest) (*QueryPositionResponse, error)
	Positions(context.Context, *QueryPositionsRequest) (*QueryPositionsResponse, error)
	SimulateSwap(context.Context, *QuerySimulateSwapRequest) (*QuerySimulateSwapResponse, error)
	SpotPrice(context.Context, *QuerySpotPriceRequest) (*QuerySpotPriceResponse, error)
}

// QueryParamsRequest is the request type for the Query/Params RPC method
type QueryParamsRequest struct{}

// QueryParamsResponse is the response type for the Query/Params RPC method
type QueryParamsResponse struct {
	Params Params `json:"params"`
}

// QueryPoolRequest is the request type for the Query/Pool RPC method
type QueryPoolRequest struct {
	PoolId uint64 `json:"pool_id"`
}

// QueryPoolResponse is the response type for the Query/Pool RPC method
type QueryPoolResponse struct {
	Pool Pool `json:"pool"`
}

// QueryPoolsRequest is the request type for the Query/Pools RPC method
type QueryPoolsRequest struct {
	Pagination *query.PageRequest `json:"pagination,omitempty"`
}

// QueryPoolsResponse is the response type for the Query/Pools RPC method
type QueryPoolsResponse struct {
	Pools      []Pool              `json:"pools"`
	Pagination *query.PageResponse `json:"pagination,omitempty"`
}

// QueryPoolByTokensRequest is the request type for the Query/PoolByTokens RPC method
type QueryPoolByTokensRequest struct {
	TokenA string `json:"token_a"`
	TokenB string `json:"token_b"`
	FeeBps uint32 `json:"fee_bps"`
}

// QueryPoolByTokensResponse is the response type for the Query/PoolByTokens RPC method
type QueryPoolByTokensResponse struct {
	Pool Pool `json:"pool"`
}

// QueryPositionRequest is the request type for the Query/Position RPC method
type QueryPositionRequest struct {
	PoolId uint64 `json:"pool_id"`
	Owner  string `json:"owner"`
}

// QueryPositionResponse is the response type for the Query/Position RPC method.
// PendingFeesA/B include accrued fees plus growth since the last checkpoint.
type QueryPositionResponse struct {
	Position     Position `json:"position"`
	PendingFeesA math.Int `json:"pending_fees_a"`
	PendingFeesB math.Int `json:"pending_fees_b"`
	// ShareBps is the position's share of the pool in basis points.
	ShareBps uint32 `json:"share_bps"`
}

// QueryPositionsRequest is the request type for the Query/Positions RPC method
type QueryPositionsRequest struct {
	PoolId     uint64             `json:"pool_id"`
	Pagination *query.PageRequest `json:"pagination,omitempty"`
}

// QueryPositionsResponse is the response type for the Query/Positions RPC method
type QueryPositionsResponse struct {
	Positions  []Position          `json:"positions"`
	Pagination *query.PageResponse `json:"pagination,omitempty"`
}

// QuerySimulateSwapRequest is the request type for the Query/SimulateSwap RPC method
type QuerySimulateSwapRequest struct {
	PoolId   uint64   `json:"pool_id"`
	TokenIn  string   `json:"token_in"`
	TokenOut string   `json:"token_out"`
	AmountIn math.Int `json:"amount_in"`
}

// QuerySimulateSwapResponse is the response type for the Query/SimulateSwap RPC method
type QuerySimulateSwapResponse struct {
	AmountOut      math.Int `json:"amount_out"`
	Fee            math.Int `json:"fee"`
	PriceImpactBps uint32   `json:"price_impact_bps"`
}

// QuerySpotPriceRequest is the request type for the Query/SpotPrice RPC method
type QuerySpotPriceRequest struct {
	PoolId uint64 `json:"pool_id"`
	// BaseToken is the token the price is quoted for; the response gives
	// units of the other token per one unit of BaseToken.
	BaseToken string `json:"base_token"`
}

// QuerySpotPriceResponse is the response type for the Query/SpotPrice RPC method
type QuerySpotPriceResponse struct {
	Price math.LegacyDec `json:"price"`
}

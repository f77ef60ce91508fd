package types

import (
	"context"

	"cosmossdk.io/math"
)

// MsgServer defines the message server interface
type MsgServer interface {
	CreatePool(context.Context, *MsgCreatePool) (*MsgCreatePoolResponse, error)
	Swap(context.Context, *MsgSwap) (*MsgSwapResponse, error)
	AddLiquidity(context.Context, *MsgAddLiquidity) (*MsgAddLiquidityResponse, error)
	RemoveLiquidity(context.Context, *MsgRemoveLiquidity) (*MsgRemoveLiquidityResponse, error)
	ClaimFees(context.Context, *MsgClaimFees) (*MsgClaimFeesResponse, error)
	CompoundFees(context.Context, *MsgCompoundFees) (*MsgCompoundFeesResponse, error)
	SetPoolPaused(context.Context, *MsgSetPoolPaused) (*MsgSetPoolPausedResponse, error)
	RampAmplification(context.Context, *MsgRampAmplification) (*MsgRampAmplificationResponse, error)
	WithdrawProtocolFees(context.Context, *MsgWithdrawProtocolFees) (*MsgWithdrawProtocolFeesResponse, error)
}

// Response types

// MsgCreatePoolResponse defines the response for CreatePool
type MsgCreatePoolResponse struct {
	PoolId uint64   `json:"pool_id"`
	Shares math.Int `json:"shares"`
}

// MsgSwapResponse defines the response for Swap
type MsgSwapResponse struct {
	AmountOut      math.Int `json:"amount_out"`
	Fee            math.Int `json:"fee"`
	PriceImpactBps uint32   `json:"price_impact_bps"`
}

// MsgAddLiquidityResponse defines the response for AddLiquidity
type MsgAddLiquidityResponse struct {
	Shares  math.Int `json:"shares"`
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
}

// MsgRemoveLiquidityResponse defines the response for RemoveLiquidity
type MsgRemoveLiquidityResponse struct {
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
	FeesA   math.Int `json:"fees_a"`
	FeesB   math.Int `json:"fees_b"`
}

// MsgClaimFeesResponse defines the response for ClaimFees
type MsgClaimFeesResponse struct {
	FeesA math.Int `json:"fees_a"`
	FeesB math.Int `json:"fees_b"`
}

// MsgCompoundFeesResponse defines the response for CompoundFees
type MsgCompoundFeesResponse struct {
	Shares     math.Int `json:"shares"`
	AmountA    math.Int `json:"amount_a"`
	AmountB    math.Int `json:"amount_b"`
	RemainderA math.Int `json:"remainder_a"`
	RemainderB math.Int `json:"remainder_b"`
}

// MsgSetPoolPausedResponse defines the response for SetPoolPaused
type MsgSetPoolPausedResponse struct{}

// MsgRampAmplificationResponse defines the response for RampAmplification
type MsgRampAmplificationResponse struct{}

// MsgWithdrawProtocolFeesResponse defines the response for WithdrawProtocolFees
type MsgWithdrawProtocolFeesResponse struct {
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
}

package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vortex-finance/vortex/x/amm/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the amm MsgServer interface
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// CreatePool handles the creation of a new liquidity pool
func (ms msgServer) CreatePool(goCtx context.Context, msg *types.MsgCreatePool) (*types.MsgCreatePoolResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("CreatePool: validate: %w", err)
	}

	creator, err := sdk.AccAddressFromBech32(msg.Creator)
	if err != nil {
		return nil, fmt.Errorf("CreatePool: invalid creator address: %w", err)
	}

	pool, shares, err := ms.Keeper.CreatePool(goCtx, creator,
		msg.TokenA, msg.TokenB, msg.AmountA, msg.AmountB,
		msg.FeeBps, msg.Curve, msg.Amplification)
	if err != nil {
		return nil, fmt.Errorf("CreatePool: %w", err)
	}

	return &types.MsgCreatePoolResponse{
		PoolId: pool.Id,
		Shares: shares,
	}, nil
}

// Swap handles an exact-input swap
func (ms msgServer) Swap(goCtx context.Context, msg *types.MsgSwap) (*types.MsgSwapResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("Swap: validate: %w", err)
	}

	trader, err := sdk.AccAddressFromBech32(msg.Trader)
	if err != nil {
		return nil, fmt.Errorf("Swap: invalid trader address: %w", err)
	}

	result, err := ms.Keeper.ExecuteSwap(goCtx, trader, msg.PoolId,
		msg.TokenIn, msg.TokenOut, msg.AmountIn, msg.MinAmountOut, msg.Deadline)
	if err != nil {
		return nil, fmt.Errorf("Swap: %w", err)
	}

	return &types.MsgSwapResponse{
		AmountOut:      result.AmountOut,
		Fee:            result.Fee,
		PriceImpactBps: result.PriceImpactBps,
	}, nil
}

// AddLiquidity handles adding liquidity to an existing pool
func (ms msgServer) AddLiquidity(goCtx context.Context, msg *types.MsgAddLiquidity) (*types.MsgAddLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("AddLiquidity: validate: %w", err)
	}

	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		return nil, fmt.Errorf("AddLiquidity: invalid provider address: %w", err)
	}

	result, err := ms.Keeper.AddLiquidity(goCtx, provider, msg.PoolId,
		msg.AmountA, msg.AmountB, msg.MinShares)
	if err != nil {
		return nil, fmt.Errorf("AddLiquidity: %w", err)
	}

	return &types.MsgAddLiquidityResponse{
		Shares:  result.Shares,
		AmountA: result.AmountA,
		AmountB: result.AmountB,
	}, nil
}

// RemoveLiquidity handles burning shares for a proportional withdrawal
func (ms msgServer) RemoveLiquidity(goCtx context.Context, msg *types.MsgRemoveLiquidity) (*types.MsgRemoveLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: validate: %w", err)
	}

	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: invalid provider address: %w", err)
	}

	result, err := ms.Keeper.RemoveLiquidity(goCtx, provider, msg.PoolId,
		msg.Shares, msg.MinAmountA, msg.MinAmountB)
	if err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: %w", err)
	}

	return &types.MsgRemoveLiquidityResponse{
		AmountA: result.AmountA,
		AmountB: result.AmountB,
		FeesA:   result.FeesA,
		FeesB:   result.FeesB,
	}, nil
}

// ClaimFees handles settling and paying out a position's accrued fees
func (ms msgServer) ClaimFees(goCtx context.Context, msg *types.MsgClaimFees) (*types.MsgClaimFeesResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("ClaimFees: validate: %w", err)
	}

	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		return nil, fmt.Errorf("ClaimFees: invalid provider address: %w", err)
	}

	feesA, feesB, err := ms.Keeper.ClaimFees(goCtx, provider, msg.PoolId)
	if err != nil {
		return nil, fmt.Errorf("ClaimFees: %w", err)
	}

	return &types.MsgClaimFeesResponse{FeesA: feesA, FeesB: feesB}, nil
}

// CompoundFees handles reinvesting a position's accrued fees
func (ms msgServer) CompoundFees(goCtx context.Context, msg *types.MsgCompoundFees) (*types.MsgCompoundFeesResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("CompoundFees: validate: %w", err)
	}

	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		return nil, fmt.Errorf("CompoundFees: invalid provider address: %w", err)
	}

	result, remainderA, remainderB, err := ms.Keeper.CompoundFees(goCtx, provider, msg.PoolId)
	if err != nil {
		return nil, fmt.Errorf("CompoundFees: %w", err)
	}

	return &types.MsgCompoundFeesResponse{
		Shares:     result.Shares,
		AmountA:    result.AmountA,
		AmountB:    result.AmountB,
		RemainderA: remainderA,
		RemainderB: remainderB,
	}, nil
}

// SetPoolPaused handles the authority pause switch
func (ms msgServer) SetPoolPaused(goCtx context.Context, msg *types.MsgSetPoolPaused) (*types.MsgSetPoolPausedResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("SetPoolPaused: validate: %w", err)
	}

	if err := ms.Keeper.SetPoolPaused(goCtx, msg.Authority, msg.PoolId, msg.Paused); err != nil {
		return nil, fmt.Errorf("SetPoolPaused: %w", err)
	}
	return &types.MsgSetPoolPausedResponse{}, nil
}

// RampAmplification handles starting an amplification ramp
func (ms msgServer) RampAmplification(goCtx context.Context, msg *types.MsgRampAmplification) (*types.MsgRampAmplificationResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("RampAmplification: validate: %w", err)
	}

	if err := ms.Keeper.RampAmplification(goCtx, msg.Authority, msg.PoolId,
		msg.TargetAmplification, msg.RampStop); err != nil {
		return nil, fmt.Errorf("RampAmplification: %w", err)
	}
	return &types.MsgRampAmplificationResponse{}, nil
}

// WithdrawProtocolFees handles paying out the protocol fee pots
func (ms msgServer) WithdrawProtocolFees(goCtx context.Context, msg *types.MsgWithdrawProtocolFees) (*types.MsgWithdrawProtocolFeesResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("WithdrawProtocolFees: validate: %w", err)
	}

	recipient, err := sdk.AccAddressFromBech32(msg.Recipient)
	if err != nil {
		return nil, fmt.Errorf("WithdrawProtocolFees: invalid recipient address: %w", err)
	}

	amountA, amountB, err := ms.Keeper.WithdrawProtocolFees(goCtx, msg.Authority, msg.PoolId, recipient)
	if err != nil {
		return nil, fmt.Errorf("WithdrawProtocolFees: %w", err)
	}

	return &types.MsgWithdrawProtocolFeesResponse{AmountA: amountA, AmountB: amountB}, nil
}

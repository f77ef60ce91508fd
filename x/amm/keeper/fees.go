package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vortex-finance/vortex/x/amm/types"
)

// Per-share fee accounting. Swap fees never enter the reserves: the LP
// portion raises the pool's fee-growth accumulators and the protocol portion
// sits in the pool's fee pots. A position settles lazily against the
// accumulators, so fee accrual is O(1) per swap regardless of LP count.

// accrueSwapFee splits a collected swap fee between the protocol pot and the
// LP fee-growth accumulator of the input token side.
func accrueSwapFee(pool *types.Pool, fee math.Int, tokenIn string, protocolShare math.LegacyDec) error {
	if !fee.IsPositive() {
		return nil
	}

	protocolCut := protocolShare.MulInt(fee).TruncateInt()
	lpFee := fee.Sub(protocolCut)

	// With no shares outstanding there is nobody to accrue to; the whole fee
	// goes to the protocol.
	if pool.TotalShares.IsZero() {
		protocolCut = fee
		lpFee = math.ZeroInt()
	}

	var growthDelta math.Int
	if lpFee.IsPositive() {
		var err error
		growthDelta, err = CheckedMulDiv(lpFee, types.FeeGrowthScale, pool.TotalShares)
		if err != nil {
			return err
		}
	} else {
		growthDelta = math.ZeroInt()
	}

	switch tokenIn {
	case pool.TokenA:
		pool.ProtocolFeesA = pool.ProtocolFeesA.Add(protocolCut)
		pool.FeeGrowthGlobalA = pool.FeeGrowthGlobalA.Add(growthDelta)
	case pool.TokenB:
		pool.ProtocolFeesB = pool.ProtocolFeesB.Add(protocolCut)
		pool.FeeGrowthGlobalB = pool.FeeGrowthGlobalB.Add(growthDelta)
	default:
		return types.ErrInvalidTokenDenom.Wrapf("token %s not in pool %d", tokenIn, pool.Id)
	}
	return nil
}

// settlePosition folds fee growth since the position's checkpoints into its
// claimable balances and advances the checkpoints. Must run before any
// change to the position's share balance.
func settlePosition(position *types.Position, pool types.Pool) error {
	if position.Shares.IsPositive() {
		deltaA := pool.FeeGrowthGlobalA.Sub(position.FeeCheckpointA)
		deltaB := pool.FeeGrowthGlobalB.Sub(position.FeeCheckpointB)
		if deltaA.IsNegative() || deltaB.IsNegative() {
			return types.ErrInvalidPoolState.Wrap("fee growth moved backwards")
		}

		owedA, err := CheckedMulDiv(position.Shares, deltaA, types.FeeGrowthScale)
		if err != nil {
			return err
		}
		owedB, err := CheckedMulDiv(position.Shares, deltaB, types.FeeGrowthScale)
		if err != nil {
			return err
		}
		position.AccruedFeesA = position.AccruedFeesA.Add(owedA)
		position.AccruedFeesB = position.AccruedFeesB.Add(owedB)
	}

	position.FeeCheckpointA = pool.FeeGrowthGlobalA
	position.FeeCheckpointB = pool.FeeGrowthGlobalB
	return nil
}

// PendingFees returns what a position could claim right now without
// mutating state.
func (k Keeper) PendingFees(ctx context.Context, poolID uint64, owner sdk.AccAddress) (math.Int, math.Int, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	position, err := k.GetPosition(ctx, poolID, owner)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := settlePosition(position, *pool); err != nil {
		return math.Int{}, math.Int{}, err
	}
	return position.AccruedFeesA, position.AccruedFeesB, nil
}

// ClaimFees settles a position and pays out its claimable fee balances.
// Works on paused pools.
func (k Keeper) ClaimFees(ctx context.Context, provider sdk.AccAddress, poolID uint64) (math.Int, math.Int, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	position, err := k.GetPosition(ctx, poolID, provider)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := settlePosition(position, *pool); err != nil {
		return math.Int{}, math.Int{}, err
	}

	feesA, feesB := position.AccruedFeesA, position.AccruedFeesB
	if feesA.IsZero() && feesB.IsZero() {
		return math.ZeroInt(), math.ZeroInt(), nil
	}

	position.AccruedFeesA = math.ZeroInt()
	position.AccruedFeesB = math.ZeroInt()

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime().Unix()
	position.UpdatedAt = now

	coins := sdk.NewCoins()
	if feesA.IsPositive() {
		coins = coins.Add(sdk.NewCoin(pool.TokenA, feesA))
	}
	if feesB.IsPositive() {
		coins = coins.Add(sdk.NewCoin(pool.TokenB, feesB))
	}

	// State write and payout commit together or not at all.
	cacheCtx, write := sdkCtx.CacheContext()
	if err := k.SetPosition(cacheCtx, *position); err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := k.bankKeeper.SendCoins(cacheCtx, k.moduleAddress, provider, coins); err != nil {
		return math.Int{}, math.Int{}, fmt.Errorf("ClaimFees: transfer: %w", err)
	}
	write()

	poolLabel := fmt.Sprintf("%d", poolID)
	k.metrics.FeesClaimed.WithLabelValues(poolLabel, pool.TokenA).Add(floatFromInt(feesA))
	k.metrics.FeesClaimed.WithLabelValues(poolLabel, pool.TokenB).Add(floatFromInt(feesB))

	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeFeesClaimed,
		sdk.NewAttribute(types.AttributeKeyPoolID, poolLabel),
		sdk.NewAttribute(types.AttributeKeyProvider, provider.String()),
		sdk.NewAttribute(types.AttributeKeyAmountA, feesA.String()),
		sdk.NewAttribute(types.AttributeKeyAmountB, feesB.String()),
	))

	return feesA, feesB, nil
}

// CompoundFees settles a position and reinvests as much of the claimable fee
// balance as fits the pool's current ratio, minting new shares. Whatever the
// ratio clipping leaves over stays claimable. No tokens move; the fees are
// already held by the module.
func (k Keeper) CompoundFees(ctx context.Context, provider sdk.AccAddress, poolID uint64) (*types.AddLiquidityResult, math.Int, math.Int, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return nil, math.Int{}, math.Int{}, err
	}
	if pool.Paused {
		return nil, math.Int{}, math.Int{}, types.ErrPoolPaused.Wrapf("pool %d is paused", poolID)
	}
	position, err := k.GetPosition(ctx, poolID, provider)
	if err != nil {
		return nil, math.Int{}, math.Int{}, err
	}
	if err := settlePosition(position, *pool); err != nil {
		return nil, math.Int{}, math.Int{}, err
	}

	feesA, feesB := position.AccruedFeesA, position.AccruedFeesB
	if !feesA.IsPositive() || !feesB.IsPositive() {
		return nil, math.Int{}, math.Int{}, types.ErrZeroAmount.Wrap(
			"compounding needs claimable fees on both sides")
	}

	// Clip to the pool ratio, exactly like an ordinary deposit.
	useA, useB := feesA, feesB
	optimalB, err := CheckedMulDiv(feesA, pool.ReserveB, pool.ReserveA)
	if err != nil {
		return nil, math.Int{}, math.Int{}, err
	}
	if optimalB.LTE(feesB) {
		useB = optimalB
	} else {
		useA, err = CheckedMulDiv(feesB, pool.ReserveA, pool.ReserveB)
		if err != nil {
			return nil, math.Int{}, math.Int{}, err
		}
	}
	if !useA.IsPositive() || !useB.IsPositive() {
		return nil, math.Int{}, math.Int{}, types.ErrZeroAmount.Wrap("compoundable amount rounds to zero")
	}

	minted, _, err := MintShares(useA, useB, pool.ReserveA, pool.ReserveB, pool.TotalShares)
	if err != nil {
		return nil, math.Int{}, math.Int{}, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime().Unix()

	pool.ReserveA = pool.ReserveA.Add(useA)
	pool.ReserveB = pool.ReserveB.Add(useB)
	pool.TotalShares = pool.TotalShares.Add(minted)
	if err := k.refreshInvariantCache(sdkCtx, pool); err != nil {
		return nil, math.Int{}, math.Int{}, err
	}

	// Compounding raised the accumulators' backing supply; re-checkpoint the
	// position after the share change so it does not accrue from its own
	// deposit.
	position.AccruedFeesA = feesA.Sub(useA)
	position.AccruedFeesB = feesB.Sub(useB)
	position.Shares = position.Shares.Add(minted)
	position.DepositedA = position.DepositedA.Add(useA)
	position.DepositedB = position.DepositedB.Add(useB)
	position.FeeCheckpointA = pool.FeeGrowthGlobalA
	position.FeeCheckpointB = pool.FeeGrowthGlobalB
	position.UpdatedAt = now

	if err := k.SetPool(ctx, pool); err != nil {
		return nil, math.Int{}, math.Int{}, err
	}
	if err := k.SetPosition(ctx, *position); err != nil {
		return nil, math.Int{}, math.Int{}, err
	}

	poolLabel := fmt.Sprintf("%d", poolID)
	k.metrics.FeesCompounded.WithLabelValues(poolLabel, pool.TokenA).Add(floatFromInt(useA))
	k.metrics.FeesCompounded.WithLabelValues(poolLabel, pool.TokenB).Add(floatFromInt(useB))
	k.metrics.ShareSupply.WithLabelValues(poolLabel).Set(floatFromInt(pool.TotalShares))

	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeFeesCompounded,
		sdk.NewAttribute(types.AttributeKeyPoolID, poolLabel),
		sdk.NewAttribute(types.AttributeKeyProvider, provider.String()),
		sdk.NewAttribute(types.AttributeKeyAmountA, useA.String()),
		sdk.NewAttribute(types.AttributeKeyAmountB, useB.String()),
		sdk.NewAttribute(types.AttributeKeyShares, minted.String()),
	))

	return &types.AddLiquidityResult{
		PoolId:  poolID,
		AmountA: useA,
		AmountB: useB,
		Shares:  minted,
	}, position.AccruedFeesA, position.AccruedFeesB, nil
}

package keeper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vortex-finance/vortex/x/amm/types"
)

// GetPosition retrieves a provider's position in a pool.
// Returns ErrPositionNotFound if none exists.
func (k Keeper) GetPosition(ctx context.Context, poolID uint64, owner sdk.AccAddress) (*types.Position, error) {
	bz := k.getStore(ctx).Get(types.PositionKey(poolID, owner))
	if bz == nil {
		return nil, types.ErrPositionNotFound.Wrapf("no position for %s in pool %d", owner, poolID)
	}

	var position types.Position
	if err := json.Unmarshal(bz, &position); err != nil {
		return nil, fmt.Errorf("GetPosition: unmarshal: %w", err)
	}
	return &position, nil
}

// SetPosition saves a position, deleting the record exactly when its share
// balance and claimable fees have all reached zero.
func (k Keeper) SetPosition(ctx context.Context, position types.Position) error {
	owner, err := sdk.AccAddressFromBech32(position.Owner)
	if err != nil {
		return types.ErrInvalidPositionOwner.Wrapf("invalid owner address: %s", err)
	}

	store := k.getStore(ctx)
	key := types.PositionKey(position.PoolId, owner)

	if position.Shares.IsZero() && position.AccruedFeesA.IsZero() && position.AccruedFeesB.IsZero() {
		store.Delete(key)
		return nil
	}

	bz, err := json.Marshal(position)
	if err != nil {
		return fmt.Errorf("SetPosition: marshal: %w", err)
	}
	store.Set(key, bz)
	return nil
}

// IteratePositionsByPool iterates over every position in one pool
func (k Keeper) IteratePositionsByPool(ctx context.Context, poolID uint64, cb func(position types.Position) (stop bool)) error {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, types.PositionKeyByPoolPrefix(poolID))
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var position types.Position
		if err := json.Unmarshal(iterator.Value(), &position); err != nil {
			return fmt.Errorf("IteratePositionsByPool: unmarshal: %w", err)
		}
		if cb(position) {
			break
		}
	}
	return nil
}

// GetAllPositions returns every position across all pools (genesis export)
func (k Keeper) GetAllPositions(ctx context.Context) ([]types.Position, error) {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, types.PositionKeyPrefix)
	defer iterator.Close()

	var positions []types.Position
	for ; iterator.Valid(); iterator.Next() {
		var position types.Position
		if err := json.Unmarshal(iterator.Value(), &position); err != nil {
			return nil, fmt.Errorf("GetAllPositions: unmarshal: %w", err)
		}
		positions = append(positions, position)
	}
	return positions, nil
}

// AddLiquidity deposits tokens into a pool and mints shares to the provider.
//
// The deposit is clipped to the pool's current ratio: whichever side is in
// excess is reduced so share value cannot be diluted. Deposits whose ratio
// deviates from the pool's by more than the configured tolerance are
// rejected outright rather than clipped.
func (k Keeper) AddLiquidity(
	ctx context.Context,
	provider sdk.AccAddress,
	poolID uint64,
	amountA, amountB, minShares math.Int,
) (*types.AddLiquidityResult, error) {
	// 1. Validation
	if amountA.IsNil() || !amountA.IsPositive() || amountB.IsNil() || !amountB.IsPositive() {
		return nil, types.ErrZeroAmount.Wrap("deposit amounts must be positive")
	}

	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if pool.Paused {
		return nil, types.ErrPoolPaused.Wrapf("pool %d is paused", poolID)
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	// 2. Clip to the pool ratio, rejecting deposits that deviate too far
	useA, useB := amountA, amountB
	if pool.TotalShares.IsPositive() {
		deviation, err := ratioDeviationBps(amountA, amountB, pool.ReserveA, pool.ReserveB)
		if err != nil {
			return nil, err
		}
		if deviation > params.RatioToleranceBps {
			return nil, types.ErrRatioOutOfTolerance.Wrapf(
				"deposit ratio deviates %d bps from pool ratio, tolerance is %d",
				deviation, params.RatioToleranceBps)
		}

		optimalB, err := CheckedMulDiv(amountA, pool.ReserveB, pool.ReserveA)
		if err != nil {
			return nil, err
		}
		if optimalB.LTE(amountB) {
			useB = optimalB
		} else {
			optimalA, err := CheckedMulDiv(amountB, pool.ReserveA, pool.ReserveB)
			if err != nil {
				return nil, err
			}
			useA = optimalA
		}
		if !useA.IsPositive() || !useB.IsPositive() {
			return nil, types.ErrZeroAmount.Wrap("clipped deposit rounds to zero")
		}
	}

	// 3. Compute shares to mint
	minted, _, err := MintShares(useA, useB, pool.ReserveA, pool.ReserveB, pool.TotalShares)
	if err != nil {
		return nil, err
	}
	if minted.LT(minShares) {
		return nil, types.ErrSlippageExceeded.Wrapf(
			"minted shares %s below minimum %s", minted, minShares)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime().Unix()

	// 4. Load or open the position and settle fees at the old share balance.
	// Only a missing record opens a fresh position; a corrupt one must not
	// be silently replaced.
	position, err := k.GetPosition(ctx, poolID, provider)
	if err != nil {
		if !errors.Is(err, types.ErrPositionNotFound) {
			return nil, err
		}
		p := types.NewPosition(*pool, provider.String(), now)
		position = &p
	}
	if err := settlePosition(position, *pool); err != nil {
		return nil, err
	}

	// 5. Transfer tokens FIRST (checks-effects-interactions)
	coins := sdk.NewCoins(sdk.NewCoin(pool.TokenA, useA), sdk.NewCoin(pool.TokenB, useB))
	if err := k.bankKeeper.SendCoins(sdkCtx, provider, k.moduleAddress, coins); err != nil {
		return nil, types.ErrInsufficientLiquidity.Wrapf("failed to transfer tokens: %v", err)
	}

	// 6. Apply state changes
	pool.ReserveA = pool.ReserveA.Add(useA)
	pool.ReserveB = pool.ReserveB.Add(useB)
	pool.TotalShares = pool.TotalShares.Add(minted)
	if err := k.refreshInvariantCache(sdkCtx, pool); err != nil {
		return nil, err
	}
	if err := k.SetPool(ctx, pool); err != nil {
		return nil, err
	}

	position.Shares = position.Shares.Add(minted)
	position.DepositedA = position.DepositedA.Add(useA)
	position.DepositedB = position.DepositedB.Add(useB)
	position.UpdatedAt = now
	if err := k.SetPosition(ctx, *position); err != nil {
		return nil, err
	}

	// 7. Telemetry and events
	poolLabel := fmt.Sprintf("%d", poolID)
	k.metrics.LiquidityAdded.WithLabelValues(poolLabel, pool.TokenA).Add(floatFromInt(useA))
	k.metrics.LiquidityAdded.WithLabelValues(poolLabel, pool.TokenB).Add(floatFromInt(useB))
	k.metrics.PoolReserves.WithLabelValues(poolLabel, pool.TokenA).Set(floatFromInt(pool.ReserveA))
	k.metrics.PoolReserves.WithLabelValues(poolLabel, pool.TokenB).Set(floatFromInt(pool.ReserveB))
	k.metrics.ShareSupply.WithLabelValues(poolLabel).Set(floatFromInt(pool.TotalShares))

	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeLiquidityAdded,
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
	}, nil
}

// RemoveLiquidity burns shares for a proportional withdrawal. Closing the
// position entirely also pays out all settled fees.
func (k Keeper) RemoveLiquidity(
	ctx context.Context,
	provider sdk.AccAddress,
	poolID uint64,
	shares, minAmountA, minAmountB math.Int,
) (*types.RemoveLiquidityResult, error) {
	// 1. Validation
	if shares.IsNil() || !shares.IsPositive() {
		return nil, types.ErrZeroAmount.Wrap("shares must be positive")
	}

	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if pool.Paused {
		return nil, types.ErrPoolPaused.Wrapf("pool %d is paused", poolID)
	}

	position, err := k.GetPosition(ctx, poolID, provider)
	if err != nil {
		return nil, err
	}
	if position.Shares.LT(shares) {
		return nil, types.ErrInsufficientShares.Wrapf(
			"position holds %s shares, requested %s", position.Shares, shares)
	}

	// 2. Settle fees at the old share balance before it changes
	if err := settlePosition(position, *pool); err != nil {
		return nil, err
	}

	// 3. Proportional withdrawal, rounded down
	amountA, amountB, err := BurnShares(shares, pool.ReserveA, pool.ReserveB, pool.TotalShares)
	if err != nil {
		return nil, err
	}
	if amountA.LT(minAmountA) || amountB.LT(minAmountB) {
		return nil, types.ErrSlippageExceeded.Wrapf(
			"withdrawal %s/%s below minimums %s/%s", amountA, amountB, minAmountA, minAmountB)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime().Unix()

	// 4. Apply state changes
	pool.ReserveA = pool.ReserveA.Sub(amountA)
	pool.ReserveB = pool.ReserveB.Sub(amountB)
	pool.TotalShares = pool.TotalShares.Sub(shares)
	if err := k.refreshInvariantCache(sdkCtx, pool); err != nil {
		return nil, err
	}

	position.Shares = position.Shares.Sub(shares)
	position.UpdatedAt = now

	// A closing position takes its settled fees with it.
	feesA, feesB := math.ZeroInt(), math.ZeroInt()
	if position.Shares.IsZero() {
		feesA, feesB = position.AccruedFeesA, position.AccruedFeesB
		position.AccruedFeesA = math.ZeroInt()
		position.AccruedFeesB = math.ZeroInt()
	}

	// 5. Transfer after all balances are computed
	payoutA := amountA.Add(feesA)
	payoutB := amountB.Add(feesB)
	coins := sdk.NewCoins()
	if payoutA.IsPositive() {
		coins = coins.Add(sdk.NewCoin(pool.TokenA, payoutA))
	}
	if payoutB.IsPositive() {
		coins = coins.Add(sdk.NewCoin(pool.TokenB, payoutB))
	}

	cacheCtx, write := sdkCtx.CacheContext()
	if err := k.SetPool(cacheCtx, pool); err != nil {
		return nil, err
	}
	if err := k.SetPosition(cacheCtx, *position); err != nil {
		return nil, err
	}
	if !coins.IsZero() {
		if err := k.bankKeeper.SendCoins(cacheCtx, k.moduleAddress, provider, coins); err != nil {
			return nil, fmt.Errorf("RemoveLiquidity: transfer: %w", err)
		}
	}
	write()

	// 6. Telemetry and events
	poolLabel := fmt.Sprintf("%d", poolID)
	k.metrics.LiquidityRemoved.WithLabelValues(poolLabel, pool.TokenA).Add(floatFromInt(amountA))
	k.metrics.LiquidityRemoved.WithLabelValues(poolLabel, pool.TokenB).Add(floatFromInt(amountB))
	k.metrics.PoolReserves.WithLabelValues(poolLabel, pool.TokenA).Set(floatFromInt(pool.ReserveA))
	k.metrics.PoolReserves.WithLabelValues(poolLabel, pool.TokenB).Set(floatFromInt(pool.ReserveB))
	k.metrics.ShareSupply.WithLabelValues(poolLabel).Set(floatFromInt(pool.TotalShares))

	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeLiquidityRemoved,
		sdk.NewAttribute(types.AttributeKeyPoolID, poolLabel),
		sdk.NewAttribute(types.AttributeKeyProvider, provider.String()),
		sdk.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
		sdk.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
		sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
	))

	return &types.RemoveLiquidityResult{
		PoolId:  poolID,
		AmountA: amountA,
		AmountB: amountB,
		Shares:  shares,
		FeesA:   feesA,
		FeesB:   feesB,
	}, nil
}

// ratioDeviationBps measures how far the deposit ratio a/b sits from the
// pool ratio rA/rB, in basis points.
func ratioDeviationBps(a, b, reserveA, reserveB math.Int) (uint32, error) {
	lhs, err := CheckedMul(a, reserveB)
	if err != nil {
		return 0, err
	}
	rhs, err := CheckedMul(b, reserveA)
	if err != nil {
		return 0, err
	}
	if rhs.IsZero() {
		return 0, types.ErrDivisionByZero.Wrap("pool ratio undefined")
	}

	ratio, err := CheckedMulDiv(lhs, math.NewInt(types.BpsDenominator), rhs)
	if err != nil {
		return 0, err
	}
	deviation := ratio.Sub(math.NewInt(types.BpsDenominator)).Abs()
	if deviation.GT(math.NewInt(types.BpsDenominator)) {
		return types.BpsDenominator + 1, nil
	}
	return uint32(deviation.Int64()), nil
}

// refreshInvariantCache recomputes KLast or DLast after a reserve change.
func (k Keeper) refreshInvariantCache(sdkCtx sdk.Context, pool *types.Pool) error {
	if pool.IsStable() {
		if pool.ReserveA.IsZero() && pool.ReserveB.IsZero() {
			pool.DLast = math.ZeroInt()
			return nil
		}
		d, err := ComputeD(pool.ReserveA, pool.ReserveB, pool.AmplificationAt(sdkCtx.BlockTime().Unix()))
		if err != nil {
			return err
		}
		pool.DLast = d
		return nil
	}
	pool.KLast = pool.ReserveA.Mul(pool.ReserveB)
	return nil
}

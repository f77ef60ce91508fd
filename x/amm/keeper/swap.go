package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vortex-finance/vortex/x/amm/types"
)

// ExecuteSwap swaps an exact amountIn of tokenIn for tokenOut against the
// pool's curve. The guard (deadline, minimum output, price impact cap) is
// re-derived against live reserves, state changes are staged and checked
// against the curve invariant before anything is written, and the fee is
// split off before the input joins the reserves.
func (k Keeper) ExecuteSwap(
	ctx context.Context,
	trader sdk.AccAddress,
	poolID uint64,
	tokenIn, tokenOut string,
	amountIn, minAmountOut math.Int,
	deadline int64,
) (*types.SwapResult, error) {
	// 1. Input validation
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return nil, types.ErrZeroAmount.Wrap("amount in must be positive")
	}
	if tokenIn == tokenOut {
		return nil, types.ErrInvalidTokenPair.Wrap("tokens must be different")
	}

	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if pool.Paused {
		return nil, types.ErrPoolPaused.Wrapf("pool %d is paused", poolID)
	}

	reserveIn, reserveOut, ok := pool.ReservesFor(tokenIn)
	if !ok {
		return nil, types.ErrInvalidTokenDenom.Wrapf("token %s not in pool %d", tokenIn, poolID)
	}
	if _, _, ok := pool.ReservesFor(tokenOut); !ok {
		return nil, types.ErrInvalidTokenDenom.Wrapf("token %s not in pool %d", tokenOut, poolID)
	}

	// 2. Pre-trade guard against live reserves
	check, err := k.ValidateSwap(ctx, pool, tokenIn, amountIn, minAmountOut, deadline)
	if err != nil {
		k.metrics.SwapsTotal.WithLabelValues(
			fmt.Sprintf("%d", poolID), tokenIn, tokenOut, "rejected").Inc()
		return nil, err
	}
	amountOut := check.ExpectedOut

	// 3. Split the fee off the input; only the net amount joins the reserves
	fee, err := FeeAmount(amountIn, pool.FeeBps)
	if err != nil {
		return nil, err
	}
	netIn := amountIn.Sub(fee)

	// 4. Stage the post-trade reserves and verify the invariant held
	newReserveIn := reserveIn.Add(netIn)
	newReserveOut := reserveOut.Sub(amountOut)
	if !newReserveOut.IsPositive() {
		return nil, types.ErrInsufficientLiquidity.Wrap("swap would drain reserve")
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime().Unix()

	if pool.IsStable() {
		oldD, err := ComputeD(reserveIn, reserveOut, pool.AmplificationAt(now))
		if err != nil {
			return nil, err
		}
		newD, err := ComputeD(newReserveIn, newReserveOut, pool.AmplificationAt(now))
		if err != nil {
			return nil, err
		}
		// Solver convergence is to within one unit at the internal scale.
		if newD.Add(math.NewInt(stableInvariantTolerance)).LT(oldD) {
			return nil, types.ErrInvariantViolation.Wrapf(
				"stable invariant decreased: %s -> %s", oldD, newD)
		}
		pool.DLast = newD
	} else {
		oldK := reserveIn.Mul(reserveOut)
		newK := newReserveIn.Mul(newReserveOut)
		if newK.LT(oldK) {
			return nil, types.ErrInvariantViolation.Wrapf(
				"constant product decreased: %s -> %s", oldK, newK)
		}
		pool.KLast = newK
	}

	// 5. Transfer the input FIRST (checks-effects-interactions)
	if err := k.bankKeeper.SendCoins(sdkCtx, trader, k.moduleAddress,
		sdk.NewCoins(sdk.NewCoin(tokenIn, amountIn))); err != nil {
		return nil, types.ErrInsufficientLiquidity.Wrapf("failed to transfer input: %v", err)
	}

	// 6. Apply reserve changes and accrue the fee
	if tokenIn == pool.TokenA {
		pool.ReserveA = newReserveIn
		pool.ReserveB = newReserveOut
	} else {
		pool.ReserveB = newReserveIn
		pool.ReserveA = newReserveOut
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	if err := accrueSwapFee(pool, fee, tokenIn, params.ProtocolFeeShare); err != nil {
		return nil, err
	}

	if err := k.SetPool(ctx, pool); err != nil {
		return nil, fmt.Errorf("ExecuteSwap: save pool: %w", err)
	}

	// 7. Pay the trader
	if err := k.bankKeeper.SendCoins(sdkCtx, k.moduleAddress, trader,
		sdk.NewCoins(sdk.NewCoin(tokenOut, amountOut))); err != nil {
		return nil, fmt.Errorf("ExecuteSwap: transfer output: %w", err)
	}

	// 8. Telemetry and events
	newSpot := math.LegacyNewDecFromInt(newReserveOut).Quo(math.LegacyNewDecFromInt(newReserveIn))

	poolLabel := fmt.Sprintf("%d", poolID)
	k.metrics.SwapsTotal.WithLabelValues(poolLabel, tokenIn, tokenOut, "ok").Inc()
	k.metrics.SwapVolume.WithLabelValues(poolLabel, tokenIn).Add(floatFromInt(amountIn))
	k.metrics.SwapFeesCollected.WithLabelValues(poolLabel, tokenIn, "lp").Add(floatFromInt(fee))
	k.metrics.SwapPriceImpact.Observe(float64(check.PriceImpactBps))
	k.metrics.PoolReserves.WithLabelValues(poolLabel, pool.TokenA).Set(floatFromInt(pool.ReserveA))
	k.metrics.PoolReserves.WithLabelValues(poolLabel, pool.TokenB).Set(floatFromInt(pool.ReserveB))

	sdkCtx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			types.EventTypeSwapExecuted,
			sdk.NewAttribute(types.AttributeKeyPoolID, poolLabel),
			sdk.NewAttribute(types.AttributeKeyTrader, trader.String()),
			sdk.NewAttribute(types.AttributeKeyTokenIn, tokenIn),
			sdk.NewAttribute(types.AttributeKeyTokenOut, tokenOut),
			sdk.NewAttribute(types.AttributeKeyAmountIn, amountIn.String()),
			sdk.NewAttribute(types.AttributeKeyAmountOut, amountOut.String()),
			sdk.NewAttribute(types.AttributeKeyFee, fee.String()),
			sdk.NewAttribute(types.AttributeKeyPriceImpact, fmt.Sprintf("%d", check.PriceImpactBps)),
		),
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.ModuleName),
			sdk.NewAttribute(sdk.AttributeKeySender, trader.String()),
		),
	})

	return &types.SwapResult{
		PoolId:         poolID,
		TokenIn:        tokenIn,
		TokenOut:       tokenOut,
		AmountIn:       amountIn,
		AmountOut:      amountOut,
		Fee:            fee,
		PriceImpactBps: check.PriceImpactBps,
		NewSpotPrice:   newSpot,
	}, nil
}

// stableInvariantTolerance absorbs Newton convergence noise (one unit per
// solve at the internal scale) when comparing pre and post trade D.
const stableInvariantTolerance = 10

// SimulateSwap quotes a swap against current reserves without touching
// state. Paused pools still quote.
func (k Keeper) SimulateSwap(ctx context.Context, poolID uint64, tokenIn, tokenOut string, amountIn math.Int) (*types.SwapResult, error) {
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return nil, types.ErrZeroAmount.Wrap("amount in must be positive")
	}

	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	reserveIn, reserveOut, ok := pool.ReservesFor(tokenIn)
	if !ok {
		return nil, types.ErrInvalidTokenDenom.Wrapf("token %s not in pool %d", tokenIn, poolID)
	}
	if tokenOut != "" {
		if _, _, ok := pool.ReservesFor(tokenOut); !ok || tokenOut == tokenIn {
			return nil, types.ErrInvalidTokenDenom.Wrapf("token %s not in pool %d", tokenOut, poolID)
		}
	} else if tokenIn == pool.TokenA {
		tokenOut = pool.TokenB
	} else {
		tokenOut = pool.TokenA
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime().Unix()

	var amountOut math.Int
	if pool.IsStable() {
		var iters int
		amountOut, iters, err = QuoteStableOutput(amountIn, reserveIn, reserveOut, pool.FeeBps, pool.AmplificationAt(now))
		if err == nil {
			k.metrics.StableSolverIterations.Observe(float64(iters))
		} else if types.ErrConvergenceFailed.Is(err) {
			k.metrics.StableSolverFailures.Inc()
		}
	} else {
		amountOut, err = QuoteOutput(amountIn, reserveIn, reserveOut, pool.FeeBps)
	}
	if err != nil {
		return nil, err
	}

	fee, err := FeeAmount(amountIn, pool.FeeBps)
	if err != nil {
		return nil, err
	}
	impact, err := PriceImpactBps(amountIn, amountOut, reserveIn, reserveOut)
	if err != nil {
		return nil, err
	}

	return &types.SwapResult{
		PoolId:         poolID,
		TokenIn:        tokenIn,
		TokenOut:       tokenOut,
		AmountIn:       amountIn,
		AmountOut:      amountOut,
		Fee:            fee,
		PriceImpactBps: impact,
		NewSpotPrice:   math.LegacyNewDecFromInt(reserveOut).Quo(math.LegacyNewDecFromInt(reserveIn)),
	}, nil
}

// GetSpotPrice returns the instantaneous price of baseToken in units of the
// other pool token.
func (k Keeper) GetSpotPrice(ctx context.Context, poolID uint64, baseToken string) (math.LegacyDec, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return math.LegacyDec{}, err
	}
	reserveBase, reserveQuote, ok := pool.ReservesFor(baseToken)
	if !ok {
		return math.LegacyDec{}, types.ErrInvalidTokenDenom.Wrapf("token %s not in pool %d", baseToken, poolID)
	}
	if reserveBase.IsZero() {
		return math.LegacyDec{}, types.ErrInsufficientLiquidity.Wrap("empty reserves")
	}
	return math.LegacyNewDecFromInt(reserveQuote).Quo(math.LegacyNewDecFromInt(reserveBase)), nil
}

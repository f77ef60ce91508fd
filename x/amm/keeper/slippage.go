package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vortex-finance/vortex/x/amm/types"
)

// ValidateSwap runs the pre-trade guard against live reserves and returns
// the resulting check record. The executor calls this itself at commit time;
// a check produced against stale reserves is never trusted.
//
// Order of checks: deadline, curve quote, minimum output, price impact.
func (k Keeper) ValidateSwap(
	ctx context.Context,
	pool *types.Pool,
	tokenIn string,
	amountIn, minAmountOut math.Int,
	deadline int64,
) (types.SwapCheck, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime().Unix()

	// Zero deadline means no deadline.
	if deadline != 0 && now > deadline {
		return types.SwapCheck{}, types.ErrDeadlineExceeded.Wrapf(
			"deadline %d passed at block time %d", deadline, now)
	}

	reserveIn, reserveOut, ok := pool.ReservesFor(tokenIn)
	if !ok {
		return types.SwapCheck{}, types.ErrInvalidTokenDenom.Wrapf(
			"token %s not in pool %d", tokenIn, pool.Id)
	}

	var (
		expectedOut math.Int
		err         error
	)
	if pool.IsStable() {
		expectedOut, _, err = QuoteStableOutput(amountIn, reserveIn, reserveOut, pool.FeeBps, pool.AmplificationAt(now))
	} else {
		expectedOut, err = QuoteOutput(amountIn, reserveIn, reserveOut, pool.FeeBps)
	}
	if err != nil {
		return types.SwapCheck{}, err
	}

	if expectedOut.LT(minAmountOut) {
		return types.SwapCheck{}, types.ErrSlippageExceeded.Wrapf(
			"expected output %s below minimum %s", expectedOut, minAmountOut)
	}

	impact, err := PriceImpactBps(amountIn, expectedOut, reserveIn, reserveOut)
	if err != nil {
		return types.SwapCheck{}, err
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return types.SwapCheck{}, err
	}
	if impact > params.MaxPriceImpactBps {
		return types.SwapCheck{}, types.ErrPriceImpactTooHigh.Wrapf(
			"price impact %d bps exceeds cap %d", impact, params.MaxPriceImpactBps)
	}

	return types.SwapCheck{
		ExpectedOut:    expectedOut,
		MinAmountOut:   minAmountOut,
		Deadline:       deadline,
		PriceImpactBps: impact,
		Valid:          true,
	}, nil
}

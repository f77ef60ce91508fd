package types

import (
	"cosmossdk.io/math"
)

// SwapCheck is the immutable record a slippage validation pass produces.
// The executor re-derives it against live reserves at commit time instead of
// trusting a caller-supplied pre-check, since reserves may have moved between
// quote and commit.
type SwapCheck struct {
	ExpectedOut    math.Int `json:"expected_out"`
	MinAmountOut   math.Int `json:"min_amount_out"`
	Deadline       int64    `json:"deadline"`
	PriceImpactBps uint32   `json:"price_impact_bps"`
	Valid          bool     `json:"valid"`
}

// SwapResult is the typed outcome of an executed swap, returned to the caller
// and mirrored into the emitted event.
type SwapResult struct {
	PoolId         uint64   `json:"pool_id"`
	TokenIn        string   `json:"token_in"`
	TokenOut       string   `json:"token_out"`
	AmountIn       math.Int `json:"amount_in"`
	AmountOut      math.Int `json:"amount_out"`
	Fee            math.Int `json:"fee"`
	PriceImpactBps uint32   `json:"price_impact_bps"`

	// NewSpotPrice is reserveOut/reserveIn after the swap, for telemetry.
	NewSpotPrice math.LegacyDec `json:"new_spot_price"`
}

// AddLiquidityResult reports the amounts actually deposited (after ratio
// clipping) and the shares minted.
type AddLiquidityResult struct {
	PoolId  uint64   `json:"pool_id"`
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
	Shares  math.Int `json:"shares"`
}

// RemoveLiquidityResult reports the amounts withdrawn for burned shares plus
// any settled fees paid out because the position closed.
type RemoveLiquidityResult struct {
	PoolId  uint64   `json:"pool_id"`
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
	Shares  math.Int `json:"shares"`
	FeesA   math.Int `json:"fees_a"`
	FeesB   math.Int `json:"fees_b"`
}

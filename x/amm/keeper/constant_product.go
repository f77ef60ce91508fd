package keeper

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"

	ammtypes "github.com/vortex-finance/vortex/x/amm/types"
)

// Constant-product curve math. Pure functions over math.Int so they can be
// exercised directly by queries and simulations without a store.

// QuoteOutput returns the output amount for an exact input swap against
// reserves (reserveIn, reserveOut) with the fee taken on the input side:
//
//	out = netIn * reserveOut / (reserveIn * 10000 + netIn)
//
// where netIn = amountIn * (10000 - feeBps). Rounding is down, in the
// pool's favor.
func QuoteOutput(amountIn, reserveIn, reserveOut math.Int, feeBps uint32) (math.Int, error) {
	if !amountIn.IsPositive() {
		return math.Int{}, sdkerrors.Wrap(ammtypes.ErrZeroAmount, "amount in must be positive")
	}
	if !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.Int{}, sdkerrors.Wrap(ammtypes.ErrInsufficientLiquidity, "empty reserves")
	}
	if feeBps >= ammtypes.BpsDenominator {
		return math.Int{}, sdkerrors.Wrapf(ammtypes.ErrInvalidFeeTier, "fee %d bps out of range", feeBps)
	}

	feeFactor := math.NewInt(int64(ammtypes.BpsDenominator - feeBps))
	netIn, err := CheckedMul(amountIn, feeFactor)
	if err != nil {
		return math.Int{}, err
	}

	numerator, err := CheckedMul(netIn, reserveOut)
	if err != nil {
		return math.Int{}, err
	}
	scaledReserve, err := CheckedMul(reserveIn, math.NewInt(ammtypes.BpsDenominator))
	if err != nil {
		return math.Int{}, err
	}
	denominator, err := CheckedAdd(scaledReserve, netIn)
	if err != nil {
		return math.Int{}, err
	}

	out, err := CheckedQuo(numerator, denominator)
	if err != nil {
		return math.Int{}, err
	}
	if out.GTE(reserveOut) {
		return math.Int{}, sdkerrors.Wrap(ammtypes.ErrInsufficientLiquidity, "output would drain reserve")
	}
	return out, nil
}

// QuoteInput returns the input amount required to receive exactly amountOut,
// rounded up so the trader can never underpay:
//
//	in = reserveIn * amountOut * 10000 / ((reserveOut - amountOut) * (10000 - feeBps)) + 1
func QuoteInput(amountOut, reserveIn, reserveOut math.Int, feeBps uint32) (math.Int, error) {
	if !amountOut.IsPositive() {
		return math.Int{}, sdkerrors.Wrap(ammtypes.ErrZeroAmount, "amount out must be positive")
	}
	if !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.Int{}, sdkerrors.Wrap(ammtypes.ErrInsufficientLiquidity, "empty reserves")
	}
	if amountOut.GTE(reserveOut) {
		return math.Int{}, sdkerrors.Wrapf(ammtypes.ErrInsufficientLiquidity,
			"requested output %s not below reserve %s", amountOut, reserveOut)
	}
	if feeBps >= ammtypes.BpsDenominator {
		return math.Int{}, sdkerrors.Wrapf(ammtypes.ErrInvalidFeeTier, "fee %d bps out of range", feeBps)
	}

	numerator, err := CheckedMul(reserveIn, amountOut)
	if err != nil {
		return math.Int{}, err
	}
	numerator, err = CheckedMul(numerator, math.NewInt(ammtypes.BpsDenominator))
	if err != nil {
		return math.Int{}, err
	}

	remaining, err := CheckedSub(reserveOut, amountOut)
	if err != nil {
		return math.Int{}, err
	}
	denominator, err := CheckedMul(remaining, math.NewInt(int64(ammtypes.BpsDenominator-feeBps)))
	if err != nil {
		return math.Int{}, err
	}

	in, err := CheckedQuo(numerator, denominator)
	if err != nil {
		return math.Int{}, err
	}
	return in.AddRaw(1), nil
}

// FeeAmount returns the portion of amountIn retained as the swap fee,
// rounded down.
func FeeAmount(amountIn math.Int, feeBps uint32) (math.Int, error) {
	return CheckedMulDiv(amountIn, math.NewInt(int64(feeBps)), math.NewInt(ammtypes.BpsDenominator))
}

// MintShares computes the LP shares minted for a deposit of (amountA,
// amountB) against reserves (reserveA, reserveB) with totalShares
// outstanding.
//
// The first deposit mints sqrt(amountA * amountB) total, of which
// MinimumLiquidity is permanently locked and the remainder goes to the
// depositor. Subsequent deposits mint the minimum of the two proportional
// amounts, so unbalanced deposits never inflate share value.
func MintShares(amountA, amountB, reserveA, reserveB, totalShares math.Int) (minted math.Int, locked math.Int, err error) {
	if !amountA.IsPositive() || !amountB.IsPositive() {
		return math.Int{}, math.Int{}, sdkerrors.Wrap(ammtypes.ErrZeroAmount, "deposit amounts must be positive")
	}

	if totalShares.IsZero() {
		product, err := CheckedMul(amountA, amountB)
		if err != nil {
			return math.Int{}, math.Int{}, err
		}
		root, err := SqrtFloor(product)
		if err != nil {
			return math.Int{}, math.Int{}, err
		}
		lock := math.NewInt(ammtypes.MinimumLiquidity)
		if root.LTE(lock) {
			return math.Int{}, math.Int{}, sdkerrors.Wrapf(ammtypes.ErrBelowMinimumLiquidity,
				"initial shares %s not above minimum %s", root, lock)
		}
		return root.Sub(lock), lock, nil
	}

	if !reserveA.IsPositive() || !reserveB.IsPositive() {
		return math.Int{}, math.Int{}, sdkerrors.Wrap(ammtypes.ErrInvalidPoolState, "shares outstanding with empty reserves")
	}

	sharesFromA, err := CheckedMulDiv(amountA, totalShares, reserveA)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	sharesFromB, err := CheckedMulDiv(amountB, totalShares, reserveB)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}

	minted = math.MinInt(sharesFromA, sharesFromB)
	if !minted.IsPositive() {
		return math.Int{}, math.Int{}, sdkerrors.Wrap(ammtypes.ErrInsufficientLiquidity, "deposit too small to mint shares")
	}
	return minted, math.ZeroInt(), nil
}

// BurnShares computes the proportional withdrawal for burning shares out of
// totalShares, rounded down on both sides.
func BurnShares(shares, reserveA, reserveB, totalShares math.Int) (amountA, amountB math.Int, err error) {
	if !shares.IsPositive() {
		return math.Int{}, math.Int{}, sdkerrors.Wrap(ammtypes.ErrZeroAmount, "shares must be positive")
	}
	if shares.GT(totalShares) {
		return math.Int{}, math.Int{}, sdkerrors.Wrapf(ammtypes.ErrInsufficientShares,
			"burning %s exceeds supply %s", shares, totalShares)
	}

	amountA, err = CheckedMulDiv(shares, reserveA, totalShares)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	amountB, err = CheckedMulDiv(shares, reserveB, totalShares)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	return amountA, amountB, nil
}

// PriceImpactBps measures how far the execution price of a swap falls below
// the pre-trade spot price, in basis points:
//
//	impact = 10000 - amountOut * reserveIn * 10000 / (amountIn * reserveOut)
//
// Clamped to zero from below; rounding noise can push the ratio past par on
// tiny trades.
func PriceImpactBps(amountIn, amountOut, reserveIn, reserveOut math.Int) (uint32, error) {
	if !amountIn.IsPositive() || !reserveOut.IsPositive() {
		return 0, sdkerrors.Wrap(ammtypes.ErrZeroAmount, "amount in and reserve out must be positive")
	}

	numerator, err := CheckedMul(amountOut, reserveIn)
	if err != nil {
		return 0, err
	}
	denominator, err := CheckedMul(amountIn, reserveOut)
	if err != nil {
		return 0, err
	}
	ratio, err := CheckedMulDiv(numerator, math.NewInt(ammtypes.BpsDenominator), denominator)
	if err != nil {
		return 0, err
	}

	impact := math.NewInt(ammtypes.BpsDenominator).Sub(ratio)
	if impact.IsNegative() {
		return 0, nil
	}
	if impact.GT(math.NewInt(ammtypes.BpsDenominator)) {
		return ammtypes.BpsDenominator, nil
	}
	return uint32(impact.Int64()), nil
}

// ImpermanentLossBps returns the loss of holding an LP position versus
// holding the underlying tokens, for a price ratio move expressed in basis
// points (10000 = unchanged), in basis points:
//
//	il = 10000 - 2 * sqrt(ratio * 10000) * 10000 / (ratio + 10000)
func ImpermanentLossBps(priceRatioBps math.Int) (uint32, error) {
	if !priceRatioBps.IsPositive() {
		return 0, sdkerrors.Wrap(ammtypes.ErrInvalidInput, "price ratio must be positive")
	}

	bps := math.NewInt(ammtypes.BpsDenominator)
	product, err := CheckedMul(priceRatioBps, bps)
	if err != nil {
		return 0, err
	}
	root, err := SqrtFloor(product)
	if err != nil {
		return 0, err
	}

	numerator, err := CheckedMul(root.MulRaw(2), bps)
	if err != nil {
		return 0, err
	}
	denominator, err := CheckedAdd(priceRatioBps, bps)
	if err != nil {
		return 0, err
	}
	held, err := CheckedQuo(numerator, denominator)
	if err != nil {
		return 0, err
	}

	loss := bps.Sub(held)
	if loss.IsNegative() {
		return 0, nil
	}
	return uint32(loss.Int64()), nil
}

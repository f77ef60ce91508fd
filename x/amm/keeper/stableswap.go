package keeper

import (
	"math/big"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"

	ammtypes "github.com/vortex-finance/vortex/x/amm/types"
)

// StableSwap invariant solver for two-coin pools:
//
//	A*4*(x + y) + D = A*4*D + D^3/(4xy)
//
// Solved by Newton iteration on math/big. Cubic intermediates at the
// internal 10^18 scale overflow math.Int's 256-bit cap, so everything in
// here stays in big.Int until the final downscale.

const (
	// stableMaxIterations bounds both Newton loops.
	stableMaxIterations = 255

	// nCoins is fixed; the pools are strictly two-sided.
	nCoins = 2
)

// stableScale is the internal precision multiplier (10^18).
var stableScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

var (
	big1 = big.NewInt(1)
	big2 = big.NewInt(2)
	big3 = big.NewInt(3)
)

// withinOne reports |a - b| <= 1.
func withinOne(a, b *big.Int) bool {
	diff := new(big.Int).Sub(a, b)
	return diff.CmpAbs(big1) <= 0
}

// computeD solves for the invariant D given scaled balances xp, yp and
// ann = A * nCoins^nCoins. Returns the converged D and the iteration count.
func computeD(xp, yp, ann *big.Int) (*big.Int, int, error) {
	s := new(big.Int).Add(xp, yp)
	if s.Sign() == 0 {
		return new(big.Int), 0, nil
	}
	if xp.Sign() == 0 || yp.Sign() == 0 {
		return nil, 0, sdkerrors.Wrap(ammtypes.ErrDivisionByZero, "one-sided reserves have no invariant")
	}

	d := new(big.Int).Set(s)
	annS := new(big.Int).Mul(ann, s)

	for i := 0; i < stableMaxIterations; i++ {
		// dP = D^3 / (4 * xp * yp), computed stepwise so the cube never
		// materializes at full width.
		dP := new(big.Int).Set(d)
		dP.Mul(dP, d)
		dP.Quo(dP, new(big.Int).Mul(xp, big2))
		dP.Mul(dP, d)
		dP.Quo(dP, new(big.Int).Mul(yp, big2))

		// D = (ann*S + n*dP) * D / ((ann-1)*D + (n+1)*dP)
		numerator := new(big.Int).Mul(dP, big.NewInt(nCoins))
		numerator.Add(numerator, annS)
		numerator.Mul(numerator, d)

		denominator := new(big.Int).Sub(ann, big1)
		denominator.Mul(denominator, d)
		denominator.Add(denominator, new(big.Int).Mul(dP, big3))

		dNext := new(big.Int).Quo(numerator, denominator)

		if withinOne(dNext, d) {
			return dNext, i + 1, nil
		}
		d = dNext
	}
	return nil, stableMaxIterations, sdkerrors.Wrap(ammtypes.ErrConvergenceFailed, "invariant iteration did not converge")
}

// computeY solves for the post-trade balance of the output coin given the
// new balance xp of the input coin, the invariant d, and ann.
func computeY(xp, d, ann *big.Int) (*big.Int, int, error) {
	if xp.Sign() <= 0 {
		return nil, 0, sdkerrors.Wrap(ammtypes.ErrInvalidInput, "input balance must be positive")
	}

	// c = D^3 / (4 * xp * ann), stepwise like computeD.
	c := new(big.Int).Mul(d, d)
	c.Quo(c, new(big.Int).Mul(xp, big2))
	c.Mul(c, d)
	c.Quo(c, new(big.Int).Mul(ann, big2))

	// b = xp + D/ann
	b := new(big.Int).Quo(d, ann)
	b.Add(b, xp)

	y := new(big.Int).Set(d)
	for i := 0; i < stableMaxIterations; i++ {
		// y = (y^2 + c) / (2y + b - D)
		numerator := new(big.Int).Mul(y, y)
		numerator.Add(numerator, c)

		denominator := new(big.Int).Mul(y, big2)
		denominator.Add(denominator, b)
		denominator.Sub(denominator, d)
		if denominator.Sign() <= 0 {
			return nil, i, sdkerrors.Wrap(ammtypes.ErrConvergenceFailed, "non-positive denominator in output iteration")
		}

		yNext := new(big.Int).Quo(numerator, denominator)

		if withinOne(yNext, y) {
			return yNext, i + 1, nil
		}
		y = yNext
	}
	return nil, stableMaxIterations, sdkerrors.Wrap(ammtypes.ErrConvergenceFailed, "output iteration did not converge")
}

// annFor returns ann = amplification * nCoins^nCoins.
func annFor(amplification uint64) *big.Int {
	ann := new(big.Int).SetUint64(amplification)
	return ann.Mul(ann, big.NewInt(nCoins*nCoins))
}

// scaleUp converts a raw reserve to the internal 10^18 scale.
func scaleUp(n math.Int) *big.Int {
	return new(big.Int).Mul(n.BigInt(), stableScale)
}

// ComputeD returns the stable invariant D for raw reserves at the given
// amplification, at the internal 10^18 scale.
func ComputeD(reserveA, reserveB math.Int, amplification uint64) (math.Int, error) {
	if reserveA.IsNegative() || reserveB.IsNegative() {
		return math.Int{}, sdkerrors.Wrap(ammtypes.ErrInvalidInput, "reserves cannot be negative")
	}
	if amplification < ammtypes.MinAmplification || amplification > ammtypes.MaxAmplification {
		return math.Int{}, sdkerrors.Wrapf(ammtypes.ErrInvalidAmplification,
			"amplification %d outside [%d, %d]", amplification, ammtypes.MinAmplification, ammtypes.MaxAmplification)
	}

	d, _, err := computeD(scaleUp(reserveA), scaleUp(reserveB), annFor(amplification))
	if err != nil {
		return math.Int{}, err
	}
	return math.NewIntFromBigInt(d), nil
}

// QuoteStableOutput returns the output amount for an exact input swap on the
// stable curve, with the fee taken on the input side and rounding down in
// the pool's favor. The returned iteration count covers both Newton loops.
func QuoteStableOutput(amountIn, reserveIn, reserveOut math.Int, feeBps uint32, amplification uint64) (math.Int, int, error) {
	if !amountIn.IsPositive() {
		return math.Int{}, 0, sdkerrors.Wrap(ammtypes.ErrZeroAmount, "amount in must be positive")
	}
	if !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.Int{}, 0, sdkerrors.Wrap(ammtypes.ErrInsufficientLiquidity, "empty reserves")
	}
	if feeBps >= ammtypes.BpsDenominator {
		return math.Int{}, 0, sdkerrors.Wrapf(ammtypes.ErrInvalidFeeTier, "fee %d bps out of range", feeBps)
	}
	if amplification < ammtypes.MinAmplification || amplification > ammtypes.MaxAmplification {
		return math.Int{}, 0, sdkerrors.Wrapf(ammtypes.ErrInvalidAmplification,
			"amplification %d outside [%d, %d]", amplification, ammtypes.MinAmplification, ammtypes.MaxAmplification)
	}

	netIn, err := CheckedMulDiv(amountIn,
		math.NewInt(int64(ammtypes.BpsDenominator-feeBps)),
		math.NewInt(ammtypes.BpsDenominator))
	if err != nil {
		return math.Int{}, 0, err
	}
	if !netIn.IsPositive() {
		return math.Int{}, 0, sdkerrors.Wrap(ammtypes.ErrZeroAmount, "net input rounds to zero")
	}

	ann := annFor(amplification)
	xp := scaleUp(reserveIn)
	yp := scaleUp(reserveOut)

	d, dIters, err := computeD(xp, yp, ann)
	if err != nil {
		return math.Int{}, dIters, err
	}

	xNew := new(big.Int).Add(xp, scaleUp(netIn))
	yNew, yIters, err := computeY(xNew, d, ann)
	if err != nil {
		return math.Int{}, dIters + yIters, err
	}

	// out = (y_old - y_new - 1) / scale, the -1 absorbing rounding in the
	// trader's disfavor.
	outScaled := new(big.Int).Sub(yp, yNew)
	outScaled.Sub(outScaled, big1)
	if outScaled.Sign() <= 0 {
		return math.ZeroInt(), dIters + yIters, nil
	}
	out := math.NewIntFromBigInt(outScaled.Quo(outScaled, stableScale))

	if out.GTE(reserveOut) {
		return math.Int{}, dIters + yIters, sdkerrors.Wrap(ammtypes.ErrInsufficientLiquidity, "output would drain reserve")
	}
	return out, dIters + yIters, nil
}

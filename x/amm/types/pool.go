package types

import (
	"cosmossdk.io/math"
)

// CurveType selects the pricing curve a pool trades on.
type CurveType uint32

const (
	// CurveConstantProduct prices swaps on x*y=k.
	CurveConstantProduct CurveType = 0
	// CurveStable prices swaps on the amplified StableSwap invariant.
	CurveStable CurveType = 1
)

// String returns the human-readable curve name used in events and CLI output.
func (c CurveType) String() string {
	switch c {
	case CurveConstantProduct:
		return "constant-product"
	case CurveStable:
		return "stable"
	default:
		return "unknown"
	}
}

const (
	// BpsDenominator is the basis-point scale used for fees and price impact.
	BpsDenominator = 10000

	// MinimumLiquidity is the share amount permanently locked in a pool's
	// total supply on the first deposit. No position ever owns it, which
	// keeps the supply from returning to zero and deters first-depositor
	// share manipulation.
	MinimumLiquidity = 1000

	// MinAmplification and MaxAmplification bound the stable curve's
	// amplification coefficient.
	MinAmplification uint64 = 1
	MaxAmplification uint64 = 1_000_000
)

// FeeGrowthScale is the 18-decimal fixed-point scale for the per-share fee
// growth accumulators.
var FeeGrowthScale = math.NewIntWithDecimal(1, 18)

// Pool is a single liquidity pool for one (token pair, fee tier) key.
//
// Reserves hold only swappable liquidity: swap fees are split into the LP
// fee-growth accumulators and the protocol fee pots and never folded back
// into ReserveA/ReserveB. KLast and DLast cache the curve invariant after the
// most recent state change and exist only for auditing.
type Pool struct {
	Id          uint64    `json:"id"`
	TokenA      string    `json:"token_a"`
	TokenB      string    `json:"token_b"`
	ReserveA    math.Int  `json:"reserve_a"`
	ReserveB    math.Int  `json:"reserve_b"`
	FeeBps      uint32    `json:"fee_bps"`
	TotalShares math.Int  `json:"total_shares"`
	Curve       CurveType `json:"curve"`
	Paused      bool      `json:"paused"`
	Creator     string    `json:"creator"`

	// Per-share fee growth, scaled by FeeGrowthScale.
	FeeGrowthGlobalA math.Int `json:"fee_growth_global_a"`
	FeeGrowthGlobalB math.Int `json:"fee_growth_global_b"`

	// Protocol fee pots, claimable by the module authority.
	ProtocolFeesA math.Int `json:"protocol_fees_a"`
	ProtocolFeesB math.Int `json:"protocol_fees_b"`

	// KLast is reserveA*reserveB after the last state change
	// (constant-product pools only).
	KLast math.Int `json:"k_last"`

	// Stable curve state. Amplification is the coefficient at RampStart;
	// the effective value is interpolated lazily, see AmplificationAt.
	Amplification       uint64   `json:"amplification,omitempty"`
	TargetAmplification uint64   `json:"target_amplification,omitempty"`
	RampStart           int64    `json:"ramp_start,omitempty"`
	RampStop            int64    `json:"ramp_stop,omitempty"`
	DLast               math.Int `json:"d_last"`
}

// IsStable reports whether the pool trades on the stable curve.
func (p Pool) IsStable() bool {
	return p.Curve == CurveStable
}

// AmplificationAt returns the effective amplification coefficient at the
// given unix time, linearly interpolating between Amplification and
// TargetAmplification across the ramp window. Outside a ramp it returns the
// base coefficient, so the value never jumps discontinuously.
func (p Pool) AmplificationAt(now int64) uint64 {
	if p.RampStop == 0 || p.TargetAmplification == 0 {
		return p.Amplification
	}
	if now >= p.RampStop {
		return p.TargetAmplification
	}
	if now <= p.RampStart || p.RampStop <= p.RampStart {
		return p.Amplification
	}

	elapsed := uint64(now - p.RampStart)
	duration := uint64(p.RampStop - p.RampStart)
	if p.TargetAmplification >= p.Amplification {
		return p.Amplification + (p.TargetAmplification-p.Amplification)*elapsed/duration
	}
	return p.Amplification - (p.Amplification-p.TargetAmplification)*elapsed/duration
}

// Validate performs stateless consistency checks on a pool record.
func (p Pool) Validate() error {
	if p.Id == 0 {
		return ErrInvalidPoolId.Wrap("pool id cannot be zero")
	}
	if p.TokenA == "" || p.TokenB == "" {
		return ErrInvalidTokenDenom.Wrap("token denominations cannot be empty")
	}
	if p.TokenA == p.TokenB {
		return ErrInvalidTokenPair.Wrap("pool tokens must be different")
	}
	if p.TokenA > p.TokenB {
		return ErrInvalidTokenPair.Wrap("pool tokens must be sorted")
	}
	if p.ReserveA.IsNil() || p.ReserveB.IsNil() || p.TotalShares.IsNil() {
		return ErrInvalidPoolState.Wrap("pool amounts cannot be nil")
	}
	if p.ReserveA.IsNegative() || p.ReserveB.IsNegative() {
		return ErrInvalidPoolState.Wrap("reserves cannot be negative")
	}
	if p.TotalShares.IsNegative() {
		return ErrInvalidPoolState.Wrap("total shares cannot be negative")
	}
	if p.TotalShares.IsZero() != (p.ReserveA.IsZero() && p.ReserveB.IsZero()) {
		// A pool with shares must hold reserves and vice versa. Emptying a
		// pool to zero on both sides is permitted; the record persists.
		if !p.TotalShares.IsZero() && (p.ReserveA.IsZero() || p.ReserveB.IsZero()) {
			return ErrInvalidPoolState.Wrap("pool has shares but zero reserves")
		}
		if p.TotalShares.IsZero() && (!p.ReserveA.IsZero() || !p.ReserveB.IsZero()) {
			return ErrInvalidPoolState.Wrap("pool has reserves but zero shares")
		}
	}
	if p.FeeBps >= BpsDenominator {
		return ErrInvalidFeeTier.Wrapf("fee %d bps must be below %d", p.FeeBps, BpsDenominator)
	}
	if p.Curve == CurveStable {
		if p.Amplification < MinAmplification || p.Amplification > MaxAmplification {
			return ErrInvalidAmplification.Wrapf(
				"amplification %d outside [%d, %d]", p.Amplification, MinAmplification, MaxAmplification)
		}
		if p.TargetAmplification != 0 &&
			(p.TargetAmplification < MinAmplification || p.TargetAmplification > MaxAmplification) {
			return ErrInvalidAmplification.Wrapf(
				"target amplification %d outside [%d, %d]", p.TargetAmplification, MinAmplification, MaxAmplification)
		}
	}
	return nil
}

// ReservesFor maps a swap direction onto (reserveIn, reserveOut). The second
// return value is false when tokenIn does not belong to the pool.
func (p Pool) ReservesFor(tokenIn string) (reserveIn, reserveOut math.Int, ok bool) {
	switch tokenIn {
	case p.TokenA:
		return p.ReserveA, p.ReserveB, true
	case p.TokenB:
		return p.ReserveB, p.ReserveA, true
	default:
		return math.Int{}, math.Int{}, false
	}
}

package types

import (
	"cosmossdk.io/math"
)

// DefaultAllowedFeeTiers lists the fee tiers (in basis points) pools may be
// created with.
var DefaultAllowedFeeTiers = []uint32{5, 30, 100}

// Params holds the module's on-chain configuration.
type Params struct {
	// AllowedFeeTiers enumerates valid pool fee tiers in basis points.
	AllowedFeeTiers []uint32 `json:"allowed_fee_tiers"`

	// ProtocolFeeShare is the fraction of every swap fee diverted to the
	// protocol pot; the remainder accrues to LPs via fee growth.
	ProtocolFeeShare math.LegacyDec `json:"protocol_fee_share"`

	// MinLiquidity is the minimum geometric-mean share amount a pool must be
	// created with.
	MinLiquidity math.Int `json:"min_liquidity"`

	// MaxPriceImpactBps is the global price impact cap applied when a swap
	// does not carry its own tighter cap.
	MaxPriceImpactBps uint32 `json:"max_price_impact_bps"`

	// RatioToleranceBps bounds how far a deposit may deviate from the pool
	// ratio before it is rejected instead of clipped.
	RatioToleranceBps uint32 `json:"ratio_tolerance_bps"`

	// MinRampDuration is the shortest allowed amplification ramp in seconds.
	MinRampDuration int64 `json:"min_ramp_duration"`
}

// DefaultParams returns default parameters for the amm module
func DefaultParams() Params {
	return Params{
		AllowedFeeTiers:   DefaultAllowedFeeTiers,
		ProtocolFeeShare:  math.LegacyNewDecWithPrec(1666, 4), // ~1/6 of the swap fee
		MinLiquidity:      math.NewInt(MinimumLiquidity),
		MaxPriceImpactBps: 1000, // 10%
		RatioToleranceBps: 100,  // 1%
		MinRampDuration:   86400,
	}
}

// Validate checks parameter invariants.
func (p Params) Validate() error {
	if len(p.AllowedFeeTiers) == 0 {
		return ErrInvalidInput.Wrap("at least one fee tier must be allowed")
	}
	seen := make(map[uint32]bool, len(p.AllowedFeeTiers))
	for _, tier := range p.AllowedFeeTiers {
		if tier == 0 || tier >= BpsDenominator {
			return ErrInvalidFeeTier.Wrapf("fee tier %d bps out of range", tier)
		}
		if seen[tier] {
			return ErrInvalidFeeTier.Wrapf("duplicate fee tier %d", tier)
		}
		seen[tier] = true
	}
	if p.ProtocolFeeShare.IsNil() || p.ProtocolFeeShare.IsNegative() || p.ProtocolFeeShare.GTE(math.LegacyOneDec()) {
		return ErrInvalidInput.Wrap("protocol fee share must be in [0, 1)")
	}
	if p.MinLiquidity.IsNil() || p.MinLiquidity.LT(math.NewInt(MinimumLiquidity)) {
		return ErrInvalidInput.Wrapf("min liquidity must be at least %d", MinimumLiquidity)
	}
	if p.MaxPriceImpactBps == 0 || p.MaxPriceImpactBps > BpsDenominator {
		return ErrInvalidInput.Wrap("max price impact must be in (0, 10000]")
	}
	if p.RatioToleranceBps > BpsDenominator {
		return ErrInvalidInput.Wrap("ratio tolerance cannot exceed 10000 bps")
	}
	if p.MinRampDuration <= 0 {
		return ErrInvalidInput.Wrap("min ramp duration must be positive")
	}
	return nil
}

// FeeTierAllowed reports whether feeBps is one of the enumerated tiers.
func (p Params) FeeTierAllowed(feeBps uint32) bool {
	for _, tier := range p.AllowedFeeTiers {
		if tier == feeBps {
			return true
		}
	}
	return false
}

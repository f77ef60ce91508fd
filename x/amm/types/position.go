package types

import (
	"cosmossdk.io/math"
)

// Position tracks one provider's stake in one pool: the share balance, the
// fee-growth checkpoints it was last settled against, fees already settled
// but not yet claimed, and the cumulative cost basis used for impermanent
// loss reporting.
//
// A position is created on first deposit and deleted exactly when its share
// balance reaches zero (any remaining settled fees are paid out as part of
// the final withdrawal).
type Position struct {
	PoolId uint64   `json:"pool_id"`
	Owner  string   `json:"owner"`
	Shares math.Int `json:"shares"`

	// Fee-growth values (FeeGrowthScale fixed point) the position was last
	// settled at. Settlement only ever moves these forward.
	FeeCheckpointA math.Int `json:"fee_checkpoint_a"`
	FeeCheckpointB math.Int `json:"fee_checkpoint_b"`

	// Settled, claimable fee balances.
	AccruedFeesA math.Int `json:"accrued_fees_a"`
	AccruedFeesB math.Int `json:"accrued_fees_b"`

	// Cumulative deposits across the position's lifetime (cost basis).
	DepositedA math.Int `json:"deposited_a"`
	DepositedB math.Int `json:"deposited_b"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// NewPosition returns an empty position checkpointed at the pool's current
// fee growth, so it accrues nothing from swaps that predate it.
func NewPosition(pool Pool, owner string, now int64) Position {
	return Position{
		PoolId:         pool.Id,
		Owner:          owner,
		Shares:         math.ZeroInt(),
		FeeCheckpointA: pool.FeeGrowthGlobalA,
		FeeCheckpointB: pool.FeeGrowthGlobalB,
		AccruedFeesA:   math.ZeroInt(),
		AccruedFeesB:   math.ZeroInt(),
		DepositedA:     math.ZeroInt(),
		DepositedB:     math.ZeroInt(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Validate performs stateless consistency checks on a position record.
func (p Position) Validate() error {
	if p.PoolId == 0 {
		return ErrInvalidPoolId.Wrap("position pool id cannot be zero")
	}
	if p.Owner == "" {
		return ErrInvalidAddress.Wrap("position owner cannot be empty")
	}
	for _, amt := range []math.Int{
		p.Shares, p.FeeCheckpointA, p.FeeCheckpointB,
		p.AccruedFeesA, p.AccruedFeesB, p.DepositedA, p.DepositedB,
	} {
		if amt.IsNil() {
			return ErrInvalidInput.Wrap("position amounts cannot be nil")
		}
		if amt.IsNegative() {
			return ErrInvalidInput.Wrap("position amounts cannot be negative")
		}
	}
	return nil
}

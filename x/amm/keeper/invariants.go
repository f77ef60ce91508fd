package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vortex-finance/vortex/x/amm/types"
)

// RegisterInvariants registers all amm invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "module-account-balance", ModuleAccountBalanceInvariant(k))
	ir.RegisterRoute(types.ModuleName, "share-supply", ShareSupplyInvariant(k))
	ir.RegisterRoute(types.ModuleName, "positive-reserves", PositiveReservesInvariant(k))
	ir.RegisterRoute(types.ModuleName, "invariant-cache", InvariantCacheInvariant(k))
}

// AllInvariants runs all invariants of the amm module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := ModuleAccountBalanceInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		res, stop = ShareSupplyInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		res, stop = PositiveReservesInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		return InvariantCacheInvariant(k)(ctx)
	}
}

// ModuleAccountBalanceInvariant checks that the module account holds at
// least every pool's reserves plus its fee pots, per denom.
func ModuleAccountBalanceInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		required := make(map[string]math.Int)
		add := func(denom string, amount math.Int) {
			if cur, ok := required[denom]; ok {
				required[denom] = cur.Add(amount)
			} else {
				required[denom] = amount
			}
		}

		err := k.IteratePools(ctx, func(pool types.Pool) bool {
			add(pool.TokenA, pool.ReserveA.Add(pool.ProtocolFeesA))
			add(pool.TokenB, pool.ReserveB.Add(pool.ProtocolFeesB))
			return false
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "module-account-balance",
				fmt.Sprintf("failed to iterate pools: %v", err)), true
		}

		for denom, amount := range required {
			balance := k.bankKeeper.GetBalance(ctx, k.moduleAddress, denom)
			if balance.Amount.LT(amount) {
				return sdk.FormatInvariant(types.ModuleName, "module-account-balance",
					fmt.Sprintf("module holds %s %s, pools require %s",
						balance.Amount, denom, amount)), true
			}
		}
		return sdk.FormatInvariant(types.ModuleName, "module-account-balance",
			"module account covers all reserves and fee pots"), false
	}
}

// ShareSupplyInvariant checks that no pool's positions sum to more than its
// outstanding share supply. The difference is the permanently locked
// minimum liquidity plus any never-claimed dust.
func ShareSupplyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var broken string
		err := k.IteratePools(ctx, func(pool types.Pool) bool {
			sum := math.ZeroInt()
			if err := k.IteratePositionsByPool(ctx, pool.Id, func(position types.Position) bool {
				sum = sum.Add(position.Shares)
				return false
			}); err != nil {
				broken = fmt.Sprintf("failed to iterate positions of pool %d: %v", pool.Id, err)
				return true
			}
			if sum.GT(pool.TotalShares) {
				broken = fmt.Sprintf("pool %d positions hold %s shares, supply is %s",
					pool.Id, sum, pool.TotalShares)
				return true
			}
			return false
		})
		if err != nil {
			broken = fmt.Sprintf("failed to iterate pools: %v", err)
		}
		if broken != "" {
			return sdk.FormatInvariant(types.ModuleName, "share-supply", broken), true
		}
		return sdk.FormatInvariant(types.ModuleName, "share-supply",
			"position shares never exceed pool supply"), false
	}
}

// PositiveReservesInvariant checks that no pool carries negative amounts
func PositiveReservesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var broken string
		err := k.IteratePools(ctx, func(pool types.Pool) bool {
			if pool.ReserveA.IsNegative() || pool.ReserveB.IsNegative() ||
				pool.TotalShares.IsNegative() ||
				pool.ProtocolFeesA.IsNegative() || pool.ProtocolFeesB.IsNegative() {
				broken = fmt.Sprintf("pool %d carries a negative amount", pool.Id)
				return true
			}
			return false
		})
		if err != nil {
			broken = fmt.Sprintf("failed to iterate pools: %v", err)
		}
		if broken != "" {
			return sdk.FormatInvariant(types.ModuleName, "positive-reserves", broken), true
		}
		return sdk.FormatInvariant(types.ModuleName, "positive-reserves",
			"all pool amounts non-negative"), false
	}
}

// InvariantCacheInvariant checks that the cached curve invariant matches the
// reserves: KLast for constant-product pools, DLast recomputable for stable
// pools.
func InvariantCacheInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var broken string
		err := k.IteratePools(ctx, func(pool types.Pool) bool {
			if pool.IsStable() {
				if pool.ReserveA.IsZero() && pool.ReserveB.IsZero() {
					return false
				}
				d, err := ComputeD(pool.ReserveA, pool.ReserveB, pool.AmplificationAt(ctx.BlockTime().Unix()))
				if err != nil {
					broken = fmt.Sprintf("pool %d stable invariant unsolvable: %v", pool.Id, err)
					return true
				}
				diff := d.Sub(pool.DLast).Abs()
				if diff.GT(math.NewInt(stableInvariantTolerance)) {
					broken = fmt.Sprintf("pool %d cached D %s, recomputed %s", pool.Id, pool.DLast, d)
					return true
				}
				return false
			}
			if !pool.KLast.Equal(pool.ReserveA.Mul(pool.ReserveB)) {
				broken = fmt.Sprintf("pool %d cached K %s, reserves give %s",
					pool.Id, pool.KLast, pool.ReserveA.Mul(pool.ReserveB))
				return true
			}
			return false
		})
		if err != nil {
			broken = fmt.Sprintf("failed to iterate pools: %v", err)
		}
		if broken != "" {
			return sdk.FormatInvariant(types.ModuleName, "invariant-cache", broken), true
		}
		return sdk.FormatInvariant(types.ModuleName, "invariant-cache",
			"cached curve invariants match reserves"), false
	}
}

package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vortex-finance/vortex/x/amm/types"
)

// EndBlocker refreshes the per-pool gauges. Counters update inline with each
// operation; gauges are re-read here so restarts do not leave them stale.
func (k Keeper) EndBlocker(ctx context.Context) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	count := uint64(0)
	err := k.IteratePools(ctx, func(pool types.Pool) bool {
		label := fmt.Sprintf("%d", pool.Id)
		k.metrics.PoolReserves.WithLabelValues(label, pool.TokenA).Set(floatFromInt(pool.ReserveA))
		k.metrics.PoolReserves.WithLabelValues(label, pool.TokenB).Set(floatFromInt(pool.ReserveB))
		k.metrics.ShareSupply.WithLabelValues(label).Set(floatFromInt(pool.TotalShares))
		count++
		return false
	})
	if err != nil {
		k.Logger(sdkCtx).Error("failed to refresh pool gauges", "err", err)
		return nil
	}
	k.metrics.PoolsTotal.Set(float64(count))
	return nil
}

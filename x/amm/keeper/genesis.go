package keeper

import (
	"context"
	"fmt"

	"github.com/vortex-finance/vortex/x/amm/types"
)

// InitGenesis initializes the amm module's state from a genesis state
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := k.SetParams(ctx, genState.Params); err != nil {
		return fmt.Errorf("failed to set params: %w", err)
	}

	if genState.NextPoolId > 0 {
		k.SetNextPoolID(ctx, genState.NextPoolId)
	}

	count := uint64(0)
	for i := range genState.Pools {
		pool := genState.Pools[i]
		if err := pool.Validate(); err != nil {
			return fmt.Errorf("invalid pool %d: %w", pool.Id, err)
		}
		if err := k.SetPool(ctx, &pool); err != nil {
			return fmt.Errorf("failed to set pool %d: %w", pool.Id, err)
		}
		k.SetPoolIDByTokens(ctx, pool.TokenA, pool.TokenB, pool.FeeBps, pool.Id)
		count++
	}
	k.SetTotalPoolsCount(ctx, count)

	for _, position := range genState.Positions {
		if err := position.Validate(); err != nil {
			return fmt.Errorf("invalid position for %s in pool %d: %w", position.Owner, position.PoolId, err)
		}
		if err := k.SetPosition(ctx, position); err != nil {
			return fmt.Errorf("failed to set position for %s in pool %d: %w", position.Owner, position.PoolId, err)
		}
	}

	return nil
}

// ExportGenesis returns the amm module's state for a genesis file
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get params: %w", err)
	}

	var pools []types.Pool
	if err := k.IteratePools(ctx, func(pool types.Pool) bool {
		pools = append(pools, pool)
		return false
	}); err != nil {
		return nil, fmt.Errorf("failed to iterate pools: %w", err)
	}

	positions, err := k.GetAllPositions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect positions: %w", err)
	}

	return &types.GenesisState{
		Params:     params,
		NextPoolId: k.PeekNextPoolID(ctx),
		Pools:      pools,
		Positions:  positions,
	}, nil
}

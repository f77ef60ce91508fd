package types

import (
	"fmt"
)

// GenesisState defines the amm module's genesis state.
type GenesisState struct {
	Params     Params     `json:"params"`
	NextPoolId uint64     `json:"next_pool_id"`
	Pools      []Pool     `json:"pools"`
	Positions  []Position `json:"positions"`
}

// DefaultGenesis returns the default genesis state for the amm module.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:     DefaultParams(),
		NextPoolId: 1,
		Pools:      []Pool{},
		Positions:  []Position{},
	}
}

// Validate ensures the genesis state is well-formed.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	if gs.NextPoolId == 0 {
		return fmt.Errorf("next pool id must be positive")
	}

	seen := make(map[uint64]bool, len(gs.Pools))
	for _, pool := range gs.Pools {
		if err := pool.Validate(); err != nil {
			return fmt.Errorf("invalid pool %d: %w", pool.Id, err)
		}
		if seen[pool.Id] {
			return fmt.Errorf("duplicate pool id %d", pool.Id)
		}
		if pool.Id >= gs.NextPoolId {
			return fmt.Errorf("pool id %d not below next pool id %d", pool.Id, gs.NextPoolId)
		}
		seen[pool.Id] = true
	}

	type posKey struct {
		poolID uint64
		owner  string
	}
	seenPos := make(map[posKey]bool, len(gs.Positions))
	for _, pos := range gs.Positions {
		if err := pos.Validate(); err != nil {
			return fmt.Errorf("invalid position for %s in pool %d: %w", pos.Owner, pos.PoolId, err)
		}
		if !seen[pos.PoolId] {
			return fmt.Errorf("position references unknown pool %d", pos.PoolId)
		}
		k := posKey{pos.PoolId, pos.Owner}
		if seenPos[k] {
			return fmt.Errorf("duplicate position for %s in pool %d", pos.Owner, pos.PoolId)
		}
		seenPos[k] = true
	}

	return nil
}

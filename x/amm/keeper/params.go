package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	ammtypes "github.com/vortex-finance/vortex/x/amm/types"
)

// GetParams returns the current module parameters, falling back to defaults
// when genesis never ran (test fixtures).
func (k Keeper) GetParams(ctx context.Context) (ammtypes.Params, error) {
	store := k.getStore(ctx)
	bz := store.Get(ammtypes.ParamsKey)
	if bz == nil {
		return ammtypes.DefaultParams(), nil
	}

	var params ammtypes.Params
	if err := json.Unmarshal(bz, &params); err != nil {
		return ammtypes.Params{}, fmt.Errorf("GetParams: unmarshal: %w", err)
	}
	return params, nil
}

// SetParams validates and stores the module parameters
func (k Keeper) SetParams(ctx context.Context, params ammtypes.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}

	bz, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("SetParams: marshal: %w", err)
	}
	k.getStore(ctx).Set(ammtypes.ParamsKey, bz)
	return nil
}

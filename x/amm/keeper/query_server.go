package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	"cosmossdk.io/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/cosmos/cosmos-sdk/types/query"

	"github.com/vortex-finance/vortex/x/amm/types"
)

type queryServer struct {
	Keeper
}

const (
	defaultPaginationLimit = 100
	maxPaginationLimit     = 1000
)

// NewQueryServerImpl returns an implementation of the amm QueryServer interface
func NewQueryServerImpl(keeper Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

var _ types.QueryServer = queryServer{}

// Params returns the module parameters
func (qs queryServer) Params(goCtx context.Context, req *types.QueryParamsRequest) (*types.QueryParamsResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	params, err := qs.Keeper.GetParams(goCtx)
	if err != nil {
		return nil, fmt.Errorf("Params: get params: %w", err)
	}
	return &types.QueryParamsResponse{Params: params}, nil
}

// Pool returns a specific pool by ID
func (qs queryServer) Pool(goCtx context.Context, req *types.QueryPoolRequest) (*types.QueryPoolResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	pool, err := qs.Keeper.GetPool(goCtx, req.PoolId)
	if err != nil {
		return nil, fmt.Errorf("Pool: get pool %d: %w", req.PoolId, err)
	}
	return &types.QueryPoolResponse{Pool: *pool}, nil
}

// Pools returns all pools with pagination
func (qs queryServer) Pools(goCtx context.Context, req *types.QueryPoolsRequest) (*types.QueryPoolsResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	ctx := sdk.UnwrapSDKContext(goCtx)

	if req.Pagination == nil {
		req.Pagination = &query.PageRequest{Limit: defaultPaginationLimit}
	} else {
		if req.Pagination.Limit == 0 {
			req.Pagination.Limit = defaultPaginationLimit
		}
		if req.Pagination.Limit > maxPaginationLimit {
			req.Pagination.Limit = maxPaginationLimit
		}
	}

	// Gas proportional to the requested page keeps unbounded scans priced.
	ctx.GasMeter().ConsumeGas(req.Pagination.Limit*100, "paginated pools query")

	pools := make([]types.Pool, 0, req.Pagination.Limit)
	poolStore := prefix.NewStore(qs.Keeper.getStore(goCtx), types.PoolKeyPrefix)

	pageRes, err := query.Paginate(poolStore, req.Pagination, func(key []byte, value []byte) error {
		var pool types.Pool
		if err := json.Unmarshal(value, &pool); err != nil {
			return fmt.Errorf("unmarshal pool: %w", err)
		}
		pools = append(pools, pool)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("Pools: paginate: %w", err)
	}

	return &types.QueryPoolsResponse{Pools: pools, Pagination: pageRes}, nil
}

// PoolByTokens returns a pool by token pair and fee tier
func (qs queryServer) PoolByTokens(goCtx context.Context, req *types.QueryPoolByTokensRequest) (*types.QueryPoolByTokensResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	pool, err := qs.Keeper.GetPoolByTokens(goCtx, req.TokenA, req.TokenB, req.FeeBps)
	if err != nil {
		return nil, fmt.Errorf("PoolByTokens: get pool %s/%s at %d bps: %w",
			req.TokenA, req.TokenB, req.FeeBps, err)
	}
	return &types.QueryPoolByTokensResponse{Pool: *pool}, nil
}

// Position returns a provider's position with its pending fees settled
// virtually and its pool share in basis points.
func (qs queryServer) Position(goCtx context.Context, req *types.QueryPositionRequest) (*types.QueryPositionResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	owner, err := sdk.AccAddressFromBech32(req.Owner)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid owner address: %s", err)
	}

	pool, err := qs.Keeper.GetPool(goCtx, req.PoolId)
	if err != nil {
		return nil, fmt.Errorf("Position: get pool %d: %w", req.PoolId, err)
	}
	position, err := qs.Keeper.GetPosition(goCtx, req.PoolId, owner)
	if err != nil {
		return nil, fmt.Errorf("Position: get position: %w", err)
	}

	pendingA, pendingB, err := qs.Keeper.PendingFees(goCtx, req.PoolId, owner)
	if err != nil {
		return nil, fmt.Errorf("Position: pending fees: %w", err)
	}

	shareBps := uint32(0)
	if pool.TotalShares.IsPositive() {
		bps, err := CheckedMulDiv(position.Shares,
			math.NewInt(types.BpsDenominator), pool.TotalShares)
		if err != nil {
			return nil, err
		}
		shareBps = uint32(bps.Int64())
	}

	return &types.QueryPositionResponse{
		Position:     *position,
		PendingFeesA: pendingA,
		PendingFeesB: pendingB,
		ShareBps:     shareBps,
	}, nil
}

// Positions returns every position in a pool with pagination
func (qs queryServer) Positions(goCtx context.Context, req *types.QueryPositionsRequest) (*types.QueryPositionsResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	if req.Pagination == nil {
		req.Pagination = &query.PageRequest{Limit: defaultPaginationLimit}
	} else if req.Pagination.Limit == 0 || req.Pagination.Limit > maxPaginationLimit {
		req.Pagination.Limit = defaultPaginationLimit
	}

	positions := make([]types.Position, 0, req.Pagination.Limit)
	posStore := prefix.NewStore(qs.Keeper.getStore(goCtx), types.PositionKeyByPoolPrefix(req.PoolId))

	pageRes, err := query.Paginate(posStore, req.Pagination, func(key []byte, value []byte) error {
		var position types.Position
		if err := json.Unmarshal(value, &position); err != nil {
			return fmt.Errorf("unmarshal position: %w", err)
		}
		positions = append(positions, position)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("Positions: paginate: %w", err)
	}

	return &types.QueryPositionsResponse{Positions: positions, Pagination: pageRes}, nil
}

// SimulateSwap quotes a swap without mutating state
func (qs queryServer) SimulateSwap(goCtx context.Context, req *types.QuerySimulateSwapRequest) (*types.QuerySimulateSwapResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	result, err := qs.Keeper.SimulateSwap(goCtx, req.PoolId, req.TokenIn, req.TokenOut, req.AmountIn)
	if err != nil {
		return nil, fmt.Errorf("SimulateSwap: %w", err)
	}

	return &types.QuerySimulateSwapResponse{
		AmountOut:      result.AmountOut,
		Fee:            result.Fee,
		PriceImpactBps: result.PriceImpactBps,
	}, nil
}

// SpotPrice returns the instantaneous pool price for a base token
func (qs queryServer) SpotPrice(goCtx context.Context, req *types.QuerySpotPriceRequest) (*types.QuerySpotPriceResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	price, err := qs.Keeper.GetSpotPrice(goCtx, req.PoolId, req.BaseToken)
	if err != nil {
		return nil, fmt.Errorf("SpotPrice: %w", err)
	}
	return &types.QuerySpotPriceResponse{Price: price}, nil
}

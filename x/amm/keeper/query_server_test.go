package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"
	"github.com/stretchr/testify/require"

	keepertest "github.com/vortex-finance/vortex/testutil/keeper"
	"github.com/vortex-finance/vortex/x/amm/keeper"
	"github.com/vortex-finance/vortex/x/amm/types"
)

func TestQueryParams(t *testing.T) {
	k, _, ctx := keepertest.AmmKeeper(t)
	qs := keeper.NewQueryServerImpl(k)

	resp, err := qs.Params(ctx, &types.QueryParamsRequest{})
	require.NoError(t, err)
	require.Equal(t, types.DefaultParams(), resp.Params)
}

func TestQueryPool(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	qs := keeper.NewQueryServerImpl(k)
	poolID, _ := keepertest.CreateTestPool(t, k, bank, ctx, "uatom", "uvtx",
		math.NewInt(100000), math.NewInt(100000))

	resp, err := qs.Pool(ctx, &types.QueryPoolRequest{PoolId: poolID})
	require.NoError(t, err)
	require.Equal(t, poolID, resp.Pool.Id)
	require.Equal(t, math.NewInt(100000), resp.Pool.ReserveA)

	_, err = qs.Pool(ctx, &types.QueryPoolRequest{PoolId: 42})
	require.ErrorIs(t, err, types.ErrPoolNotFound)
}

func TestQueryPoolsPaginated(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	qs := keeper.NewQueryServerImpl(k)

	pairs := [][2]string{{"uatom", "uvtx"}, {"uosmo", "uvtx"}, {"uatom", "uosmo"}}
	for _, pair := range pairs {
		keepertest.CreateTestPool(t, k, bank, ctx, pair[0], pair[1],
			math.NewInt(100000), math.NewInt(100000))
	}

	resp, err := qs.Pools(ctx, &types.QueryPoolsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Pools, 3)

	// Page through two at a time
	page, err := qs.Pools(ctx, &types.QueryPoolsRequest{
		Pagination: &query.PageRequest{Limit: 2},
	})
	require.NoError(t, err)
	require.Len(t, page.Pools, 2)
	require.NotNil(t, page.Pagination)
	require.NotEmpty(t, page.Pagination.NextKey)

	rest, err := qs.Pools(ctx, &types.QueryPoolsRequest{
		Pagination: &query.PageRequest{Key: page.Pagination.NextKey},
	})
	require.NoError(t, err)
	require.Len(t, rest.Pools, 1)
}

func TestQueryPoolByTokens(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	qs := keeper.NewQueryServerImpl(k)
	poolID, _ := keepertest.CreateTestPool(t, k, bank, ctx, "uatom", "uvtx",
		math.NewInt(100000), math.NewInt(100000))

	// Order-independent lookup
	resp, err := qs.PoolByTokens(ctx, &types.QueryPoolByTokensRequest{
		TokenA: "uvtx", TokenB: "uatom", FeeBps: 30,
	})
	require.NoError(t, err)
	require.Equal(t, poolID, resp.Pool.Id)

	_, err = qs.PoolByTokens(ctx, &types.QueryPoolByTokensRequest{
		TokenA: "uatom", TokenB: "uvtx", FeeBps: 100,
	})
	require.ErrorIs(t, err, types.ErrPoolNotFound)
}

func TestQueryPosition(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	qs := keeper.NewQueryServerImpl(k)
	poolID, minted := keepertest.CreateTestPool(t, k, bank, ctx, "uatom", "uvtx",
		math.NewInt(100000), math.NewInt(100000))
	creator := keepertest.FundedAccount(bank, "pool-creator", sdk.NewCoins())

	trader := keepertest.FundedAccount(bank, "trader", sdk.NewCoins(
		sdk.NewCoin("uatom", math.NewInt(10000)),
	))
	_, err := k.ExecuteSwap(ctx, trader, poolID, "uatom", "uvtx",
		math.NewInt(10000), math.ZeroInt(), 0)
	require.NoError(t, err)

	resp, err := qs.Position(ctx, &types.QueryPositionRequest{
		PoolId: poolID, Owner: creator.String(),
	})
	require.NoError(t, err)
	require.Equal(t, minted, resp.Position.Shares)
	require.Equal(t, math.NewInt(25), resp.PendingFeesA)
	require.True(t, resp.PendingFeesB.IsZero())
	// 99000 of 100000 shares
	require.Equal(t, uint32(9900), resp.ShareBps)

	_, err = qs.Position(ctx, &types.QueryPositionRequest{
		PoolId: poolID, Owner: trader.String(),
	})
	require.ErrorIs(t, err, types.ErrPositionNotFound)
}

func TestQueryPositions(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	qs := keeper.NewQueryServerImpl(k)
	poolID, _ := keepertest.CreateTestPool(t, k, bank, ctx, "uatom", "uvtx",
		math.NewInt(100000), math.NewInt(100000))

	provider := keepertest.FundedAccount(bank, "provider", sdk.NewCoins(
		sdk.NewCoin("uatom", math.NewInt(10000)),
		sdk.NewCoin("uvtx", math.NewInt(10000)),
	))
	_, err := k.AddLiquidity(ctx, provider, poolID,
		math.NewInt(10000), math.NewInt(10000), math.ZeroInt())
	require.NoError(t, err)

	resp, err := qs.Positions(ctx, &types.QueryPositionsRequest{PoolId: poolID})
	require.NoError(t, err)
	require.Len(t, resp.Positions, 2)
}

func TestQuerySimulateSwap(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	qs := keeper.NewQueryServerImpl(k)
	poolID, _ := keepertest.CreateTestPool(t, k, bank, ctx, "uatom", "uvtx",
		math.NewInt(100000), math.NewInt(100000))

	resp, err := qs.SimulateSwap(ctx, &types.QuerySimulateSwapRequest{
		PoolId: poolID, TokenIn: "uatom", AmountIn: math.NewInt(1000),
	})
	require.NoError(t, err)
	require.Equal(t, math.NewInt(987), resp.AmountOut)
	require.Equal(t, math.NewInt(3), resp.Fee)
	require.Equal(t, uint32(130), resp.PriceImpactBps)

	// Simulation does not move reserves
	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(100000), pool.ReserveA)
}

func TestQuerySpotPrice(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	qs := keeper.NewQueryServerImpl(k)
	poolID, _ := keepertest.CreateTestPool(t, k, bank, ctx, "uatom", "uvtx",
		math.NewInt(100000), math.NewInt(200000))

	resp, err := qs.SpotPrice(ctx, &types.QuerySpotPriceRequest{
		PoolId: poolID, BaseToken: "uatom",
	})
	require.NoError(t, err)
	require.Equal(t, math.LegacyNewDec(2), resp.Price)
}

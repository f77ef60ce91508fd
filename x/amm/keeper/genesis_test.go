package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/vortex-finance/vortex/testutil/keeper"
	"github.com/vortex-finance/vortex/x/amm/types"
)

func TestGenesisRoundTrip(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)

	// Build some state: two pools, a swap, an extra position
	poolID, _ := keepertest.CreateTestPool(t, k, bank, ctx, "uatom", "uvtx",
		math.NewInt(100000), math.NewInt(100000))

	creator := keepertest.FundedAccount(bank, "stable-creator", sdk.NewCoins(
		sdk.NewCoin("uusdc", math.NewInt(1_000_000)),
		sdk.NewCoin("uusdt", math.NewInt(1_000_000)),
	))
	_, _, err := k.CreatePool(ctx, creator, "uusdc", "uusdt",
		math.NewInt(1_000_000), math.NewInt(1_000_000), 5, types.CurveStable, 100)
	require.NoError(t, err)

	trader := keepertest.FundedAccount(bank, "trader", sdk.NewCoins(
		sdk.NewCoin("uatom", math.NewInt(1000)),
	))
	_, err = k.ExecuteSwap(ctx, trader, poolID, "uatom", "uvtx",
		math.NewInt(1000), math.ZeroInt(), 0)
	require.NoError(t, err)

	exported, err := k.ExportGenesis(ctx)
	require.NoError(t, err)
	require.NoError(t, exported.Validate())
	require.Len(t, exported.Pools, 2)
	require.Len(t, exported.Positions, 2)
	require.Equal(t, uint64(3), exported.NextPoolId)

	// Import into a fresh keeper and export again
	k2, _, ctx2 := keepertest.AmmKeeper(t)
	require.NoError(t, k2.InitGenesis(ctx2, *exported))

	reExported, err := k2.ExportGenesis(ctx2)
	require.NoError(t, err)
	require.Equal(t, exported, reExported)

	// Imported state is live: the pair index and counters came along
	found, err := k2.GetPoolByTokens(ctx2, "uatom", "uvtx", 30)
	require.NoError(t, err)
	require.Equal(t, poolID, found.Id)
	require.Equal(t, uint64(2), k2.GetTotalPoolsCount(ctx2))
	require.Equal(t, uint64(3), k2.PeekNextPoolID(ctx2))
}

func TestInitGenesisRejectsInvalidState(t *testing.T) {
	k, _, ctx := keepertest.AmmKeeper(t)

	genesis := types.DefaultGenesis()
	genesis.Pools = []types.Pool{{Id: 7}}
	genesis.NextPoolId = 1

	require.Error(t, k.InitGenesis(ctx, *genesis))
}

func TestDefaultGenesis(t *testing.T) {
	genesis := types.DefaultGenesis()
	require.NoError(t, genesis.Validate())
	require.Equal(t, uint64(1), genesis.NextPoolId)
	require.Empty(t, genesis.Pools)
	require.NoError(t, genesis.Params.Validate())
}

package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/vortex-finance/vortex/testutil/keeper"
	"github.com/vortex-finance/vortex/x/amm/types"
)

func TestAddLiquidity(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	poolID, _ := keepertest.CreateTestPool(t, k, bank, ctx, "uatom", "uvtx",
		math.NewInt(100000), math.NewInt(100000))

	provider := keepertest.FundedAccount(bank, "provider", sdk.NewCoins(
		sdk.NewCoin("uatom", math.NewInt(10000)),
		sdk.NewCoin("uvtx", math.NewInt(10000)),
	))

	result, err := k.AddLiquidity(ctx, provider, poolID,
		math.NewInt(10000), math.NewInt(10000), math.ZeroInt())
	require.NoError(t, err)
	require.Equal(t, math.NewInt(10000), result.Shares)
	require.Equal(t, math.NewInt(10000), result.AmountA)
	require.Equal(t, math.NewInt(10000), result.AmountB)

	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(110000), pool.ReserveA)
	require.Equal(t, math.NewInt(110000), pool.TotalShares)

	position, err := k.GetPosition(ctx, poolID, provider)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(10000), position.Shares)
}

func TestAddLiquidityClipsToPoolRatio(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	poolID, _ := keepertest.CreateTestPool(t, k, bank, ctx, "uatom", "uvtx",
		math.NewInt(100000), math.NewInt(100000))

	provider := keepertest.FundedAccount(bank, "provider", sdk.NewCoins(
		sdk.NewCoin("uatom", math.NewInt(10000)),
		sdk.NewCoin("uvtx", math.NewInt(10050)),
	))

	// 50 bps off the pool ratio: inside tolerance, excess B clipped away
	result, err := k.AddLiquidity(ctx, provider, poolID,
		math.NewInt(10000), math.NewInt(10050), math.ZeroInt())
	require.NoError(t, err)
	require.Equal(t, math.NewInt(10000), result.AmountA)
	require.Equal(t, math.NewInt(10000), result.AmountB)
	require.Equal(t, math.NewInt(10000), result.Shares)

	// The clipped remainder never left the provider's account
	require.Equal(t, math.NewInt(50), bank.GetBalance(ctx, provider, "uvtx").Amount)
}

func TestAddLiquidityRatioOutOfTolerance(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	poolID, _ := keepertest.CreateTestPool(t, k, bank, ctx, "uatom", "uvtx",
		math.NewInt(100000), math.NewInt(100000))

	provider := keepertest.FundedAccount(bank, "provider", sdk.NewCoins(
		sdk.NewCoin("uatom", math.NewInt(10000)),
		sdk.NewCoin("uvtx", math.NewInt(10200)),
	))

	// 200 bps off against a 100 bps tolerance
	_, err := k.AddLiquidity(ctx, provider, poolID,
		math.NewInt(10000), math.NewInt(10200), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrRatioOutOfTolerance)
}

func TestAddLiquidityMinShares(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	poolID, _ := keepertest.CreateTestPool(t, k, bank, ctx, "uatom", "uvtx",
		math.NewInt(100000), math.NewInt(100000))

	provider := keepertest.FundedAccount(bank, "provider", sdk.NewCoins(
		sdk.NewCoin("uatom", math.NewInt(10000)),
		sdk.NewCoin("uvtx", math.NewInt(10000)),
	))

	_, err := k.AddLiquidity(ctx, provider, poolID,
		math.NewInt(10000), math.NewInt(10000), math.NewInt(10001))
	require.ErrorIs(t, err, types.ErrSlippageExceeded)
}

func TestAddLiquidityPaused(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	poolID, _ := keepertest.CreateTestPool(t, k, bank, ctx, "uatom", "uvtx",
		math.NewInt(100000), math.NewInt(100000))
	require.NoError(t, k.SetPoolPaused(ctx, keepertest.Authority, poolID, true))

	provider := keepertest.FundedAccount(bank, "provider", sdk.NewCoins(
		sdk.NewCoin("uatom", math.NewInt(10000)),
		sdk.NewCoin("uvtx", math.NewInt(10000)),
	))
	_, err := k.AddLiquidity(ctx, provider, poolID,
		math.NewInt(10000), math.NewInt(10000), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrPoolPaused)
}

func TestRemoveLiquidityPartial(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	poolID, minted := keepertest.CreateTestPool(t, k, bank, ctx, "uatom", "uvtx",
		math.NewInt(100000), math.NewInt(100000))
	require.Equal(t, math.NewInt(99000), minted)

	creator := keepertest.FundedAccount(bank, "pool-creator", sdk.NewCoins())

	result, err := k.RemoveLiquidity(ctx, creator, poolID,
		math.NewInt(9000), math.ZeroInt(), math.ZeroInt())
	require.NoError(t, err)
	require.Equal(t, math.NewInt(9000), result.AmountA)
	require.Equal(t, math.NewInt(9000), result.AmountB)

	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(91000), pool.ReserveA)
	require.Equal(t, math.NewInt(91000), pool.TotalShares)

	position, err := k.GetPosition(ctx, poolID, creator)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(90000), position.Shares)

	require.Equal(t, math.NewInt(9000), bank.GetBalance(ctx, creator, "uatom").Amount)
}

func TestRemoveLiquidityGuards(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	poolID, _ := keepertest.CreateTestPool(t, k, bank, ctx, "uatom", "uvtx",
		math.NewInt(100000), math.NewInt(100000))
	creator := keepertest.FundedAccount(bank, "pool-creator", sdk.NewCoins())

	_, err := k.RemoveLiquidity(ctx, creator, poolID,
		math.ZeroInt(), math.ZeroInt(), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrZeroAmount)

	_, err = k.RemoveLiquidity(ctx, creator, poolID,
		math.NewInt(99001), math.ZeroInt(), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrInsufficientShares)

	_, err = k.RemoveLiquidity(ctx, creator, poolID,
		math.NewInt(9000), math.NewInt(9001), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrSlippageExceeded)

	stranger := keepertest.FundedAccount(bank, "stranger", sdk.NewCoins())
	_, err = k.RemoveLiquidity(ctx, stranger, poolID,
		math.NewInt(100), math.ZeroInt(), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrPositionNotFound)
}

func TestRemoveLiquidityClosesPosition(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	poolID, minted := keepertest.CreateTestPool(t, k, bank, ctx, "uatom", "uvtx",
		math.NewInt(100000), math.NewInt(100000))
	creator := keepertest.FundedAccount(bank, "pool-creator", sdk.NewCoins())

	// Accrue some fees first so closing pays them out
	trader := keepertest.FundedAccount(bank, "trader", sdk.NewCoins(
		sdk.NewCoin("uatom", math.NewInt(10000)),
	))
	_, err := k.ExecuteSwap(ctx, trader, poolID, "uatom", "uvtx",
		math.NewInt(10000), math.ZeroInt(), 0)
	require.NoError(t, err)

	pendingA, pendingB, err := k.PendingFees(ctx, poolID, creator)
	require.NoError(t, err)
	require.True(t, pendingA.IsPositive())
	require.True(t, pendingB.IsZero())

	result, err := k.RemoveLiquidity(ctx, creator, poolID,
		minted, math.ZeroInt(), math.ZeroInt())
	require.NoError(t, err)
	require.Equal(t, pendingA, result.FeesA)
	require.True(t, result.FeesB.IsZero())

	// Closed positions are deleted outright
	_, err = k.GetPosition(ctx, poolID, creator)
	require.ErrorIs(t, err, types.ErrPositionNotFound)

	// The locked shares keep the pool alive with residual reserves
	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(types.MinimumLiquidity), pool.TotalShares)
	require.True(t, pool.ReserveA.IsPositive())
	require.True(t, pool.ReserveB.IsPositive())
}

func TestAddLiquidityCorruptPositionState(t *testing.T) {
	k, bank, ctx, storeKey := keepertest.AmmKeeperWithStoreKey(t)
	poolID, _ := keepertest.CreateTestPool(t, k, bank, ctx, "uatom", "uvtx",
		math.NewInt(100000), math.NewInt(100000))
	provider := keepertest.FundedAccount(bank, "provider", sdk.NewCoins(
		sdk.NewCoin("uatom", math.NewInt(10000)),
		sdk.NewCoin("uvtx", math.NewInt(10000)),
	))

	// Unreadable position bytes must surface as an error, not be replaced
	// by a fresh position that would orphan the recorded shares.
	ctx.KVStore(storeKey).Set(types.PositionKey(poolID, provider), []byte("corrupt"))

	_, err := k.AddLiquidity(ctx, provider, poolID,
		math.NewInt(10000), math.NewInt(10000), math.ZeroInt())
	require.Error(t, err)
	require.NotErrorIs(t, err, types.ErrPositionNotFound)

	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(100000), pool.ReserveA)
}

func TestLiquidityRoundTripConservesShares(t *testing.T) {
	// Withdrawing shares and immediately re-depositing the returned amounts
	// into the otherwise unchanged pool mints the same share count, within
	// one unit of integer rounding.
	tests := []struct {
		name               string
		reserveA, reserveB int64
		depositA, depositB int64
		removeShares       int64
	}{
		{"balanced partial", 100000, 100000, 10000, 10000, 4000},
		{"balanced full", 100000, 100000, 10000, 10000, 10000},
		{"one to four ratio", 100000, 400000, 10000, 40000, 5500},
		{"near balanced odd reserves", 99999, 100001, 10000, 10000, 9999},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, bank, ctx := keepertest.AmmKeeper(t)
			poolID, _ := keepertest.CreateTestPool(t, k, bank, ctx, "uatom", "uvtx",
				math.NewInt(tt.reserveA), math.NewInt(tt.reserveB))
			provider := keepertest.FundedAccount(bank, "provider", sdk.NewCoins(
				sdk.NewCoin("uatom", math.NewInt(tt.depositA)),
				sdk.NewCoin("uvtx", math.NewInt(tt.depositB)),
			))
			_, err := k.AddLiquidity(ctx, provider, poolID,
				math.NewInt(tt.depositA), math.NewInt(tt.depositB), math.ZeroInt())
			require.NoError(t, err)

			removed, err := k.RemoveLiquidity(ctx, provider, poolID,
				math.NewInt(tt.removeShares), math.ZeroInt(), math.ZeroInt())
			require.NoError(t, err)

			readded, err := k.AddLiquidity(ctx, provider, poolID,
				removed.AmountA, removed.AmountB, math.ZeroInt())
			require.NoError(t, err)

			diff := readded.Shares.Sub(math.NewInt(tt.removeShares)).Abs()
			require.True(t, diff.LTE(math.OneInt()),
				"re-minted %s shares for %d burned", readded.Shares, tt.removeShares)
		})
	}
}

func TestRemoveLiquidityPaused(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	poolID, _ := keepertest.CreateTestPool(t, k, bank, ctx, "uatom", "uvtx",
		math.NewInt(100000), math.NewInt(100000))
	creator := keepertest.FundedAccount(bank, "pool-creator", sdk.NewCoins())
	require.NoError(t, k.SetPoolPaused(ctx, keepertest.Authority, poolID, true))

	_, err := k.RemoveLiquidity(ctx, creator, poolID,
		math.NewInt(9000), math.ZeroInt(), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrPoolPaused)

	// Unpausing restores withdrawals.
	require.NoError(t, k.SetPoolPaused(ctx, keepertest.Authority, poolID, false))
	res, err := k.RemoveLiquidity(ctx, creator, poolID,
		math.NewInt(9000), math.ZeroInt(), math.ZeroInt())
	require.NoError(t, err)
	require.Equal(t, math.NewInt(9000), res.AmountA)
}

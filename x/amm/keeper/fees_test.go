package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/vortex-finance/vortex/testutil/keeper"
	"github.com/vortex-finance/vortex/x/amm/keeper"
	"github.com/vortex-finance/vortex/x/amm/types"
)

// swapIn funds a throwaway trader and swaps amountIn of tokenIn into the pool.
func swapIn(t *testing.T, k keeper.Keeper, bank *keepertest.MockBankKeeper, ctx sdk.Context, poolID uint64, tokenIn, tokenOut string, amountIn int64) {
	t.Helper()
	trader := keepertest.FundedAccount(bank, "swap-helper", sdk.NewCoins(
		sdk.NewCoin(tokenIn, math.NewInt(amountIn)),
	))
	_, err := k.ExecuteSwap(ctx, trader, poolID, tokenIn, tokenOut,
		math.NewInt(amountIn), math.ZeroInt(), 0)
	require.NoError(t, err)
}

func TestFeeAccrualAfterSwap(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	poolID, _ := keepertest.CreateTestPool(t, k, bank, ctx, "uatom", "uvtx",
		math.NewInt(100000), math.NewInt(100000))
	creator := keepertest.FundedAccount(bank, "pool-creator", sdk.NewCoins())

	swapIn(t, k, bank, ctx, poolID, "uatom", "uvtx", 10000)

	// fee = 30: protocol takes trunc(0.1666*30) = 4, LPs accrue 26 spread
	// over 100000 shares; the creator owns 99000 of them
	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(4), pool.ProtocolFeesA)
	require.True(t, pool.ProtocolFeesB.IsZero())

	wantGrowth := math.NewInt(26).Mul(types.FeeGrowthScale).Quo(math.NewInt(100000))
	require.Equal(t, wantGrowth, pool.FeeGrowthGlobalA)
	require.True(t, pool.FeeGrowthGlobalB.IsZero())

	pendingA, pendingB, err := k.PendingFees(ctx, poolID, creator)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(25), pendingA)
	require.True(t, pendingB.IsZero())

	// PendingFees is read-only: asking twice gives the same answer
	again, _, err := k.PendingFees(ctx, poolID, creator)
	require.NoError(t, err)
	require.Equal(t, pendingA, again)
}

func TestClaimFees(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	poolID, _ := keepertest.CreateTestPool(t, k, bank, ctx, "uatom", "uvtx",
		math.NewInt(100000), math.NewInt(100000))
	creator := keepertest.FundedAccount(bank, "pool-creator", sdk.NewCoins())

	swapIn(t, k, bank, ctx, poolID, "uatom", "uvtx", 10000)

	feesA, feesB, err := k.ClaimFees(ctx, creator, poolID)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(25), feesA)
	require.True(t, feesB.IsZero())
	require.Equal(t, math.NewInt(25), bank.GetBalance(ctx, creator, "uatom").Amount)

	// Nothing left to claim
	feesA, feesB, err = k.ClaimFees(ctx, creator, poolID)
	require.NoError(t, err)
	require.True(t, feesA.IsZero())
	require.True(t, feesB.IsZero())
}

func TestClaimFeesNoPosition(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	poolID, _ := keepertest.CreateTestPool(t, k, bank, ctx, "uatom", "uvtx",
		math.NewInt(100000), math.NewInt(100000))
	stranger := keepertest.FundedAccount(bank, "stranger", sdk.NewCoins())

	_, _, err := k.ClaimFees(ctx, stranger, poolID)
	require.ErrorIs(t, err, types.ErrPositionNotFound)
}

func TestLateJoinerAccruesNothingFromEarlierSwaps(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	poolID, _ := keepertest.CreateTestPool(t, k, bank, ctx, "uatom", "uvtx",
		math.NewInt(100000), math.NewInt(100000))

	swapIn(t, k, bank, ctx, poolID, "uatom", "uvtx", 10000)

	// Join after the first swap
	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	depositB, err := keeper.CheckedMulDiv(math.NewInt(10000), pool.ReserveB, pool.ReserveA)
	require.NoError(t, err)

	joiner := keepertest.FundedAccount(bank, "joiner", sdk.NewCoins(
		sdk.NewCoin("uatom", math.NewInt(10000)),
		sdk.NewCoin("uvtx", depositB),
	))
	_, err = k.AddLiquidity(ctx, joiner, poolID, math.NewInt(10000), depositB, math.ZeroInt())
	require.NoError(t, err)

	pendingA, pendingB, err := k.PendingFees(ctx, poolID, joiner)
	require.NoError(t, err)
	require.True(t, pendingA.IsZero())
	require.True(t, pendingB.IsZero())

	// A second swap accrues to the joiner as well
	swapIn(t, k, bank, ctx, poolID, "uatom", "uvtx", 10000)

	pendingA, _, err = k.PendingFees(ctx, poolID, joiner)
	require.NoError(t, err)
	require.True(t, pendingA.IsPositive())
}

func TestCompoundFees(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	poolID, _ := keepertest.CreateTestPool(t, k, bank, ctx, "uatom", "uvtx",
		math.NewInt(1_000_000), math.NewInt(1_000_000))
	creator := keepertest.FundedAccount(bank, "pool-creator", sdk.NewCoins())

	// Fees must exist on both sides to compound
	swapIn(t, k, bank, ctx, poolID, "uatom", "uvtx", 50_000)
	_, _, _, err := k.CompoundFees(ctx, creator, poolID)
	require.ErrorIs(t, err, types.ErrZeroAmount)

	swapIn(t, k, bank, ctx, poolID, "uvtx", "uatom", 50_000)

	pendingA, pendingB, err := k.PendingFees(ctx, poolID, creator)
	require.NoError(t, err)
	require.True(t, pendingA.IsPositive())
	require.True(t, pendingB.IsPositive())

	poolBefore, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	positionBefore, err := k.GetPosition(ctx, poolID, creator)
	require.NoError(t, err)

	result, remA, remB, err := k.CompoundFees(ctx, creator, poolID)
	require.NoError(t, err)
	require.True(t, result.Shares.IsPositive())
	require.True(t, result.AmountA.LTE(pendingA))
	require.True(t, result.AmountB.LTE(pendingB))

	// The clipped remainder stays claimable
	require.Equal(t, pendingA.Sub(result.AmountA), remA)
	require.Equal(t, pendingB.Sub(result.AmountB), remB)

	// Reserves and shares grew; no tokens moved out of the module
	poolAfter, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	require.Equal(t, poolBefore.ReserveA.Add(result.AmountA), poolAfter.ReserveA)
	require.Equal(t, poolBefore.ReserveB.Add(result.AmountB), poolAfter.ReserveB)
	require.Equal(t, poolBefore.TotalShares.Add(result.Shares), poolAfter.TotalShares)

	positionAfter, err := k.GetPosition(ctx, poolID, creator)
	require.NoError(t, err)
	require.Equal(t, positionBefore.Shares.Add(result.Shares), positionAfter.Shares)
	require.Equal(t, remA, positionAfter.AccruedFeesA)
	require.Equal(t, remB, positionAfter.AccruedFeesB)

	// The compound re-checkpointed: no phantom accrual from its own deposit
	pendingA, pendingB, err = k.PendingFees(ctx, poolID, creator)
	require.NoError(t, err)
	require.Equal(t, remA, pendingA)
	require.Equal(t, remB, pendingB)
}

func TestCompoundFeesPaused(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	poolID, _ := keepertest.CreateTestPool(t, k, bank, ctx, "uatom", "uvtx",
		math.NewInt(100000), math.NewInt(100000))
	creator := keepertest.FundedAccount(bank, "pool-creator", sdk.NewCoins())
	require.NoError(t, k.SetPoolPaused(ctx, keepertest.Authority, poolID, true))

	_, _, _, err := k.CompoundFees(ctx, creator, poolID)
	require.ErrorIs(t, err, types.ErrPoolPaused)
}

package keeper

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/vortex-finance/vortex/x/amm/keeper"
	"github.com/vortex-finance/vortex/x/amm/types"
)

// Authority is the test authority address used by the fixture keeper.
var Authority = sdk.AccAddress([]byte("authority___________")).String()

// MockBankKeeper is an in-memory bank backing the amm keeper in tests. It
// enforces balances so insufficient-funds paths are exercised for real.
type MockBankKeeper struct {
	balances map[string]sdk.Coins
}

// NewMockBankKeeper creates an empty mock bank
func NewMockBankKeeper() *MockBankKeeper {
	return &MockBankKeeper{balances: make(map[string]sdk.Coins)}
}

// Fund credits an address with coins
func (m *MockBankKeeper) Fund(addr sdk.AccAddress, coins sdk.Coins) {
	m.balances[addr.String()] = m.balances[addr.String()].Add(coins...)
}

// SendCoins moves coins between accounts, failing on insufficient funds
func (m *MockBankKeeper) SendCoins(_ context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error {
	from := m.balances[fromAddr.String()]
	remaining, neg := from.SafeSub(amt...)
	if neg {
		return fmt.Errorf("insufficient funds: %s holds %s, needs %s", fromAddr, from, amt)
	}
	m.balances[fromAddr.String()] = remaining
	m.balances[toAddr.String()] = m.balances[toAddr.String()].Add(amt...)
	return nil
}

// GetBalance returns an account's balance of one denom
func (m *MockBankKeeper) GetBalance(_ context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	return sdk.NewCoin(denom, m.balances[addr.String()].AmountOf(denom))
}

// SpendableCoins returns an account's full balance
func (m *MockBankKeeper) SpendableCoins(_ context.Context, addr sdk.AccAddress) sdk.Coins {
	return m.balances[addr.String()]
}

var _ types.BankKeeper = (*MockBankKeeper)(nil)

// AmmKeeper creates a test keeper for the amm module backed by an in-memory
// multistore and mock bank. Block time starts at a fixed instant so deadline
// and ramp behavior is deterministic.
func AmmKeeper(t testing.TB) (keeper.Keeper, *MockBankKeeper, sdk.Context) {
	k, bank, ctx, _ := AmmKeeperWithStoreKey(t)
	return k, bank, ctx
}

// AmmKeeperWithStoreKey additionally returns the module store key so tests
// can inspect or corrupt raw state.
func AmmKeeperWithStoreKey(t testing.TB) (keeper.Keeper, *MockBankKeeper, sdk.Context, *storetypes.KVStoreKey) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	memStoreKey := storetypes.NewMemoryStoreKey(types.MemStoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(memStoreKey, storetypes.StoreTypeMemory, nil)
	require.NoError(t, stateStore.LoadLatestVersion())

	registry := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(registry)

	bank := NewMockBankKeeper()
	k := keeper.NewKeeper(cdc, storeKey, bank, Authority)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger()).
		WithBlockTime(time.Unix(1_700_000_000, 0))

	require.NoError(t, k.InitGenesis(ctx, *types.DefaultGenesis()))

	return *k, bank, ctx, storeKey
}

// FundedAccount returns a deterministic test address credited with coins
func FundedAccount(bank *MockBankKeeper, name string, coins sdk.Coins) sdk.AccAddress {
	addr := sdk.AccAddress([]byte(fmt.Sprintf("%-20s", name)))
	bank.Fund(addr, coins)
	return addr
}

// CreateTestPool creates a constant-product pool at the 30 bps tier and
// returns its ID along with the creator's minted shares.
func CreateTestPool(t testing.TB, k keeper.Keeper, bank *MockBankKeeper, ctx sdk.Context, tokenA, tokenB string, amountA, amountB math.Int) (uint64, math.Int) {
	creator := FundedAccount(bank, "pool-creator", sdk.NewCoins(
		sdk.NewCoin(tokenA, amountA), sdk.NewCoin(tokenB, amountB),
	))
	pool, shares, err := k.CreatePool(ctx, creator, tokenA, tokenB, amountA, amountB, 30, types.CurveConstantProduct, 0)
	require.NoError(t, err)
	return pool.Id, shares
}

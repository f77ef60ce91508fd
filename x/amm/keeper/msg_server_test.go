package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	keepertest "github.com/vortex-finance/vortex/testutil/keeper"
	"github.com/vortex-finance/vortex/x/amm/keeper"
	"github.com/vortex-finance/vortex/x/amm/types"
)

type MsgServerTestSuite struct {
	suite.Suite

	keeper    keeper.Keeper
	bank      *keepertest.MockBankKeeper
	ctx       sdk.Context
	msgServer types.MsgServer

	creator sdk.AccAddress
	poolID  uint64
}

func (s *MsgServerTestSuite) SetupTest() {
	s.keeper, s.bank, s.ctx = keepertest.AmmKeeper(s.T())
	s.msgServer = keeper.NewMsgServerImpl(s.keeper)

	s.creator = keepertest.FundedAccount(s.bank, "suite-creator", sdk.NewCoins(
		sdk.NewCoin("uatom", math.NewInt(1_000_000)),
		sdk.NewCoin("uvtx", math.NewInt(1_000_000)),
	))

	resp, err := s.msgServer.CreatePool(s.ctx, types.NewMsgCreatePool(
		s.creator.String(), "uatom", "uvtx",
		math.NewInt(100000), math.NewInt(100000), 30, types.CurveConstantProduct, 0))
	s.Require().NoError(err)
	s.poolID = resp.PoolId
}

func TestMsgServerTestSuite(t *testing.T) {
	suite.Run(t, new(MsgServerTestSuite))
}

func (s *MsgServerTestSuite) TestCreatePoolResponse() {
	resp, err := s.msgServer.CreatePool(s.ctx, types.NewMsgCreatePool(
		s.creator.String(), "uatom", "uvtx",
		math.NewInt(100000), math.NewInt(100000), 100, types.CurveConstantProduct, 0))
	s.Require().NoError(err)
	s.Require().Equal(uint64(2), resp.PoolId)
	s.Require().Equal(math.NewInt(99000), resp.Shares)
}

func (s *MsgServerTestSuite) TestCreatePoolInvalidMsg() {
	_, err := s.msgServer.CreatePool(s.ctx, types.NewMsgCreatePool(
		"not-an-address", "uatom", "uvtx",
		math.NewInt(100000), math.NewInt(100000), 30, types.CurveConstantProduct, 0))
	s.Require().ErrorIs(err, types.ErrInvalidAddress)
}

func (s *MsgServerTestSuite) TestSwap() {
	trader := keepertest.FundedAccount(s.bank, "suite-trader", sdk.NewCoins(
		sdk.NewCoin("uatom", math.NewInt(1000)),
	))

	resp, err := s.msgServer.Swap(s.ctx, types.NewMsgSwap(
		trader.String(), s.poolID, "uatom", "uvtx",
		math.NewInt(1000), math.NewInt(900), 0))
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(987), resp.AmountOut)
	s.Require().Equal(math.NewInt(3), resp.Fee)
	s.Require().Equal(uint32(130), resp.PriceImpactBps)
}

func (s *MsgServerTestSuite) TestSwapSlippage() {
	trader := keepertest.FundedAccount(s.bank, "suite-trader", sdk.NewCoins(
		sdk.NewCoin("uatom", math.NewInt(1000)),
	))

	_, err := s.msgServer.Swap(s.ctx, types.NewMsgSwap(
		trader.String(), s.poolID, "uatom", "uvtx",
		math.NewInt(1000), math.NewInt(988), 0))
	s.Require().ErrorIs(err, types.ErrSlippageExceeded)
}

func (s *MsgServerTestSuite) TestAddAndRemoveLiquidity() {
	provider := keepertest.FundedAccount(s.bank, "suite-provider", sdk.NewCoins(
		sdk.NewCoin("uatom", math.NewInt(10000)),
		sdk.NewCoin("uvtx", math.NewInt(10000)),
	))

	addResp, err := s.msgServer.AddLiquidity(s.ctx, types.NewMsgAddLiquidity(
		provider.String(), s.poolID,
		math.NewInt(10000), math.NewInt(10000), math.ZeroInt()))
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(10000), addResp.Shares)

	removeResp, err := s.msgServer.RemoveLiquidity(s.ctx, types.NewMsgRemoveLiquidity(
		provider.String(), s.poolID,
		addResp.Shares, math.ZeroInt(), math.ZeroInt()))
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(10000), removeResp.AmountA)
	s.Require().Equal(math.NewInt(10000), removeResp.AmountB)
}

func (s *MsgServerTestSuite) TestClaimFees() {
	trader := keepertest.FundedAccount(s.bank, "suite-trader", sdk.NewCoins(
		sdk.NewCoin("uatom", math.NewInt(10000)),
	))
	_, err := s.msgServer.Swap(s.ctx, types.NewMsgSwap(
		trader.String(), s.poolID, "uatom", "uvtx",
		math.NewInt(10000), math.ZeroInt(), 0))
	s.Require().NoError(err)

	resp, err := s.msgServer.ClaimFees(s.ctx, types.NewMsgClaimFees(
		s.creator.String(), s.poolID))
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(25), resp.FeesA)
	s.Require().True(resp.FeesB.IsZero())
}

func (s *MsgServerTestSuite) TestAdminMessages() {
	_, err := s.msgServer.SetPoolPaused(s.ctx, types.NewMsgSetPoolPaused(
		keepertest.Authority, s.poolID, true))
	s.Require().NoError(err)

	pool, err := s.keeper.GetPool(s.ctx, s.poolID)
	s.Require().NoError(err)
	s.Require().True(pool.Paused)

	// Only the authority may pause
	_, err = s.msgServer.SetPoolPaused(s.ctx, types.NewMsgSetPoolPaused(
		s.creator.String(), s.poolID, false))
	s.Require().ErrorIs(err, types.ErrUnauthorized)
}

func (s *MsgServerTestSuite) TestWithdrawProtocolFees() {
	trader := keepertest.FundedAccount(s.bank, "suite-trader", sdk.NewCoins(
		sdk.NewCoin("uatom", math.NewInt(10000)),
	))
	_, err := s.msgServer.Swap(s.ctx, types.NewMsgSwap(
		trader.String(), s.poolID, "uatom", "uvtx",
		math.NewInt(10000), math.ZeroInt(), 0))
	s.Require().NoError(err)

	recipient := keepertest.FundedAccount(s.bank, "suite-treasury", sdk.NewCoins())
	resp, err := s.msgServer.WithdrawProtocolFees(s.ctx, types.NewMsgWithdrawProtocolFees(
		keepertest.Authority, s.poolID, recipient.String()))
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(4), resp.AmountA)
}

func TestNewMsgServerImpl(t *testing.T) {
	k, _, _ := keepertest.AmmKeeper(t)
	require.NotNil(t, keeper.NewMsgServerImpl(k))
}

package types_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/vortex-finance/vortex/x/amm/types"
)

func validPool() types.Pool {
	return types.Pool{
		Id:               1,
		TokenA:           "uatom",
		TokenB:           "uvtx",
		ReserveA:         math.NewInt(100000),
		ReserveB:         math.NewInt(100000),
		FeeBps:           30,
		TotalShares:      math.NewInt(100000),
		Curve:            types.CurveConstantProduct,
		Creator:          "creator",
		FeeGrowthGlobalA: math.ZeroInt(),
		FeeGrowthGlobalB: math.ZeroInt(),
		ProtocolFeesA:    math.ZeroInt(),
		ProtocolFeesB:    math.ZeroInt(),
		KLast:            math.NewInt(100000).Mul(math.NewInt(100000)),
		DLast:            math.ZeroInt(),
	}
}

func TestPoolValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*types.Pool)
		wantErr error
	}{
		{"valid", func(p *types.Pool) {}, nil},
		{"zero id", func(p *types.Pool) { p.Id = 0 }, types.ErrInvalidPoolId},
		{"empty token", func(p *types.Pool) { p.TokenA = "" }, types.ErrInvalidTokenDenom},
		{"identical tokens", func(p *types.Pool) { p.TokenB = "uatom" }, types.ErrInvalidTokenPair},
		{"unsorted tokens", func(p *types.Pool) { p.TokenA, p.TokenB = "uvtx", "uatom" }, types.ErrInvalidTokenPair},
		{"nil reserve", func(p *types.Pool) { p.ReserveA = math.Int{} }, types.ErrInvalidPoolState},
		{"negative reserve", func(p *types.Pool) { p.ReserveB = math.NewInt(-1) }, types.ErrInvalidPoolState},
		{"shares without reserves", func(p *types.Pool) {
			p.ReserveA = math.ZeroInt()
			p.ReserveB = math.ZeroInt()
		}, types.ErrInvalidPoolState},
		{"fee at denominator", func(p *types.Pool) { p.FeeBps = 10000 }, types.ErrInvalidFeeTier},
		{"stable without amplification", func(p *types.Pool) { p.Curve = types.CurveStable }, types.ErrInvalidAmplification},
		{"drained pool is valid", func(p *types.Pool) {
			p.ReserveA = math.ZeroInt()
			p.ReserveB = math.ZeroInt()
			p.TotalShares = math.ZeroInt()
		}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := validPool()
			tt.mutate(&pool)
			err := pool.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestPoolReservesFor(t *testing.T) {
	pool := validPool()
	pool.ReserveB = math.NewInt(200000)

	in, out, ok := pool.ReservesFor("uatom")
	require.True(t, ok)
	require.Equal(t, math.NewInt(100000), in)
	require.Equal(t, math.NewInt(200000), out)

	in, out, ok = pool.ReservesFor("uvtx")
	require.True(t, ok)
	require.Equal(t, math.NewInt(200000), in)
	require.Equal(t, math.NewInt(100000), out)

	_, _, ok = pool.ReservesFor("uosmo")
	require.False(t, ok)
}

func TestAmplificationAt(t *testing.T) {
	pool := validPool()
	pool.Curve = types.CurveStable
	pool.Amplification = 100

	// No ramp configured: constant
	require.Equal(t, uint64(100), pool.AmplificationAt(0))
	require.Equal(t, uint64(100), pool.AmplificationAt(1_000_000))

	pool.TargetAmplification = 500
	pool.RampStart = 1000
	pool.RampStop = 2000

	tests := []struct {
		now  int64
		want uint64
	}{
		{500, 100},   // before the ramp
		{1000, 100},  // at the start
		{1250, 200},  // quarter through
		{1500, 300},  // midway
		{2000, 500},  // at the stop
		{99999, 500}, // long after
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, pool.AmplificationAt(tt.now), "now=%d", tt.now)
	}

	// Ramping down interpolates the same way
	pool.Amplification = 500
	pool.TargetAmplification = 100
	require.Equal(t, uint64(300), pool.AmplificationAt(1500))
	require.Equal(t, uint64(100), pool.AmplificationAt(2000))
}

func TestCurveTypeString(t *testing.T) {
	require.Equal(t, "constant-product", types.CurveConstantProduct.String())
	require.Equal(t, "stable", types.CurveStable.String())
	require.Equal(t, "unknown", types.CurveType(42).String())
}

func TestParamsValidate(t *testing.T) {
	require.NoError(t, types.DefaultParams().Validate())

	p := types.DefaultParams()
	p.AllowedFeeTiers = nil
	require.Error(t, p.Validate())

	p = types.DefaultParams()
	p.AllowedFeeTiers = []uint32{30, 30}
	require.Error(t, p.Validate())

	p = types.DefaultParams()
	p.ProtocolFeeShare = math.LegacyOneDec()
	require.Error(t, p.Validate())

	p = types.DefaultParams()
	p.MinLiquidity = math.NewInt(1)
	require.Error(t, p.Validate())

	p = types.DefaultParams()
	p.MaxPriceImpactBps = 0
	require.Error(t, p.Validate())

	p = types.DefaultParams()
	p.MinRampDuration = 0
	require.Error(t, p.Validate())
}

func TestParamsFeeTierAllowed(t *testing.T) {
	p := types.DefaultParams()
	require.True(t, p.FeeTierAllowed(5))
	require.True(t, p.FeeTierAllowed(30))
	require.True(t, p.FeeTierAllowed(100))
	require.False(t, p.FeeTierAllowed(25))
	require.False(t, p.FeeTierAllowed(0))
}

func TestGenesisStateValidate(t *testing.T) {
	pool := validPool()

	tests := []struct {
		name    string
		genesis types.GenesisState
		wantErr bool
	}{
		{"default", *types.DefaultGenesis(), false},
		{
			"pool with position",
			types.GenesisState{
				Params:     types.DefaultParams(),
				NextPoolId: 2,
				Pools:      []types.Pool{pool},
				Positions: []types.Position{{
					PoolId: 1, Owner: "owner", Shares: math.NewInt(1000),
					FeeCheckpointA: math.ZeroInt(), FeeCheckpointB: math.ZeroInt(),
					AccruedFeesA: math.ZeroInt(), AccruedFeesB: math.ZeroInt(),
					DepositedA: math.NewInt(1000), DepositedB: math.NewInt(1000),
				}},
			},
			false,
		},
		{
			"zero next pool id",
			types.GenesisState{Params: types.DefaultParams(), NextPoolId: 0},
			true,
		},
		{
			"duplicate pool ids",
			types.GenesisState{
				Params: types.DefaultParams(), NextPoolId: 2,
				Pools: []types.Pool{pool, pool},
			},
			true,
		},
		{
			"pool id not below counter",
			types.GenesisState{
				Params: types.DefaultParams(), NextPoolId: 1,
				Pools: []types.Pool{pool},
			},
			true,
		},
		{
			"position for unknown pool",
			types.GenesisState{
				Params: types.DefaultParams(), NextPoolId: 2,
				Pools: []types.Pool{pool},
				Positions: []types.Position{{
					PoolId: 9, Owner: "owner", Shares: math.NewInt(1000),
					FeeCheckpointA: math.ZeroInt(), FeeCheckpointB: math.ZeroInt(),
					AccruedFeesA: math.ZeroInt(), AccruedFeesB: math.ZeroInt(),
					DepositedA: math.ZeroInt(), DepositedB: math.ZeroInt(),
				}},
			},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.genesis.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

package keeper_test

import (
	"math/big"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/vortex-finance/vortex/x/amm/keeper"
	"github.com/vortex-finance/vortex/x/amm/types"
)

func TestCheckedAdd(t *testing.T) {
	sum, err := keeper.CheckedAdd(math.NewInt(2), math.NewInt(3))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(5), sum)

	// 2^255 + 2^255 busts the 256-bit bound
	huge := math.NewIntFromBigInt(new(big.Int).Lsh(big.NewInt(1), 255))
	_, err = keeper.CheckedAdd(huge, huge)
	require.ErrorIs(t, err, types.ErrOverflow)
}

func TestCheckedSub(t *testing.T) {
	diff, err := keeper.CheckedSub(math.NewInt(10), math.NewInt(4))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(6), diff)

	_, err = keeper.CheckedSub(math.NewInt(4), math.NewInt(10))
	require.ErrorIs(t, err, types.ErrUnderflow)
}

func TestCheckedMul(t *testing.T) {
	product, err := keeper.CheckedMul(math.NewInt(6), math.NewInt(7))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(42), product)

	zero, err := keeper.CheckedMul(math.ZeroInt(), math.NewInt(7))
	require.NoError(t, err)
	require.True(t, zero.IsZero())

	huge := math.NewIntFromBigInt(new(big.Int).Lsh(big.NewInt(1), 200))
	_, err = keeper.CheckedMul(huge, huge)
	require.ErrorIs(t, err, types.ErrOverflow)
}

func TestCheckedQuo(t *testing.T) {
	quo, err := keeper.CheckedQuo(math.NewInt(7), math.NewInt(2))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(3), quo)

	_, err = keeper.CheckedQuo(math.NewInt(7), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrDivisionByZero)
}

func TestCheckedMulDiv(t *testing.T) {
	// The intermediate product exceeds 256 bits; only the quotient must fit.
	huge := math.NewIntFromBigInt(new(big.Int).Lsh(big.NewInt(1), 200))
	result, err := keeper.CheckedMulDiv(huge, huge, huge)
	require.NoError(t, err)
	require.Equal(t, huge, result)

	result, err = keeper.CheckedMulDiv(math.NewInt(10), math.NewInt(3), math.NewInt(4))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(7), result)

	_, err = keeper.CheckedMulDiv(math.NewInt(10), math.NewInt(3), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrDivisionByZero)
}

func TestCheckedMulDivCeil(t *testing.T) {
	result, err := keeper.CheckedMulDivCeil(math.NewInt(10), math.NewInt(3), math.NewInt(4))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(8), result)

	// Exact division does not round up
	result, err = keeper.CheckedMulDivCeil(math.NewInt(10), math.NewInt(2), math.NewInt(4))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(5), result)
}

func TestSqrtFloor(t *testing.T) {
	tests := []struct {
		n    int64
		want int64
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 1},
		{4, 2},
		{99, 9},
		{100, 10},
		{100000000, 10000},
	}
	for _, tt := range tests {
		got, err := keeper.SqrtFloor(math.NewInt(tt.n))
		require.NoError(t, err)
		require.Equal(t, math.NewInt(tt.want), got, "sqrt(%d)", tt.n)
	}

	_, err := keeper.SqrtFloor(math.NewInt(-1))
	require.Error(t, err)

	// Perfect square beyond int64
	big10e20 := math.NewIntWithDecimal(1, 20)
	got, err := keeper.SqrtFloor(big10e20)
	require.NoError(t, err)
	require.Equal(t, math.NewIntWithDecimal(1, 10), got)
}

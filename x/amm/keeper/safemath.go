package keeper

import (
	"math/big"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"

	ammtypes "github.com/vortex-finance/vortex/x/amm/types"
)

// Overflow-safe arithmetic for pool accounting. All helpers bound results to
// the math.Int range (2^256) and route through math/big so intermediates
// never panic inside cosmossdk.io/math.

var maxIntBound = new(big.Int).Exp(big.NewInt(2), big.NewInt(256), nil)

// CheckedAdd adds two math.Int values with overflow checking
func CheckedAdd(a, b math.Int) (math.Int, error) {
	result := new(big.Int).Add(a.BigInt(), b.BigInt())
	if result.Cmp(maxIntBound) >= 0 {
		return math.Int{}, sdkerrors.Wrap(ammtypes.ErrOverflow, "addition result exceeds maximum value")
	}
	return math.NewIntFromBigInt(result), nil
}

// CheckedSub subtracts two math.Int values with underflow checking
func CheckedSub(a, b math.Int) (math.Int, error) {
	if a.LT(b) {
		return math.Int{}, sdkerrors.Wrapf(ammtypes.ErrUnderflow, "cannot subtract %s from %s", b, a)
	}
	result := new(big.Int).Sub(a.BigInt(), b.BigInt())
	return math.NewIntFromBigInt(result), nil
}

// CheckedMul multiplies two math.Int values with overflow checking
func CheckedMul(a, b math.Int) (math.Int, error) {
	if a.IsZero() || b.IsZero() {
		return math.ZeroInt(), nil
	}
	result := new(big.Int).Mul(a.BigInt(), b.BigInt())
	if result.Cmp(maxIntBound) >= 0 {
		return math.Int{}, sdkerrors.Wrap(ammtypes.ErrOverflow, "multiplication result exceeds maximum value")
	}
	return math.NewIntFromBigInt(result), nil
}

// CheckedQuo divides two math.Int values with division by zero checking.
// The quotient is truncated toward zero.
func CheckedQuo(a, b math.Int) (math.Int, error) {
	if b.IsZero() {
		return math.Int{}, sdkerrors.Wrap(ammtypes.ErrDivisionByZero, "division by zero")
	}
	result := new(big.Int).Quo(a.BigInt(), b.BigInt())
	return math.NewIntFromBigInt(result), nil
}

// CheckedMulDiv performs (a * b) / c with a full-width intermediate. Only the
// final quotient must fit in math.Int; the product may exceed it.
func CheckedMulDiv(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, sdkerrors.Wrap(ammtypes.ErrDivisionByZero, "division by zero")
	}
	intermediate := new(big.Int).Mul(a.BigInt(), b.BigInt())
	result := new(big.Int).Quo(intermediate, c.BigInt())
	if result.Cmp(maxIntBound) >= 0 {
		return math.Int{}, sdkerrors.Wrap(ammtypes.ErrOverflow, "quotient exceeds maximum value")
	}
	return math.NewIntFromBigInt(result), nil
}

// CheckedMulDivCeil performs (a * b) / c rounding the quotient up.
func CheckedMulDivCeil(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, sdkerrors.Wrap(ammtypes.ErrDivisionByZero, "division by zero")
	}
	intermediate := new(big.Int).Mul(a.BigInt(), b.BigInt())
	quo, rem := new(big.Int).QuoRem(intermediate, c.BigInt(), new(big.Int))
	if rem.Sign() != 0 {
		quo.Add(quo, big.NewInt(1))
	}
	if quo.Cmp(maxIntBound) >= 0 {
		return math.Int{}, sdkerrors.Wrap(ammtypes.ErrOverflow, "quotient exceeds maximum value")
	}
	return math.NewIntFromBigInt(quo), nil
}

// SqrtFloor returns the integer square root of n, rounded down.
// Newton's method on big.Int, seeded at (n+1)/2, monotonically decreasing.
func SqrtFloor(n math.Int) (math.Int, error) {
	if n.IsNegative() {
		return math.Int{}, sdkerrors.Wrap(ammtypes.ErrInvalidInput, "square root of negative value")
	}
	if n.LT(math.NewInt(2)) {
		return n, nil
	}

	x := n.BigInt()
	z := new(big.Int).Add(x, big.NewInt(1))
	z.Rsh(z, 1)
	y := new(big.Int).Set(x)
	for z.Cmp(y) < 0 {
		y.Set(z)
		// z = (y + x/y) / 2
		z.Quo(x, y)
		z.Add(z, y)
		z.Rsh(z, 1)
	}
	return math.NewIntFromBigInt(y), nil
}

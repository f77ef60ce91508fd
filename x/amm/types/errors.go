package types

import (
	"cosmossdk.io/errors"
)

// AMM module sentinel errors
var (
	ErrInvalidPoolId         = errors.Register(ModuleName, 1, "invalid pool id")
	ErrPoolNotFound          = errors.Register(ModuleName, 2, "pool not found")
	ErrPoolAlreadyExists     = errors.Register(ModuleName, 3, "pool already exists")
	ErrInvalidTokenDenom     = errors.Register(ModuleName, 4, "invalid token denomination")
	ErrInvalidTokenPair      = errors.Register(ModuleName, 5, "invalid token pair")
	ErrZeroAmount            = errors.Register(ModuleName, 6, "amount cannot be zero")
	ErrOverflow              = errors.Register(ModuleName, 7, "arithmetic overflow")
	ErrUnderflow             = errors.Register(ModuleName, 8, "arithmetic underflow")
	ErrDivisionByZero        = errors.Register(ModuleName, 9, "division by zero")
	ErrInsufficientLiquidity = errors.Register(ModuleName, 10, "insufficient liquidity in pool")
	ErrInsufficientShares    = errors.Register(ModuleName, 11, "insufficient liquidity shares")
	ErrBelowMinimumLiquidity = errors.Register(ModuleName, 12, "initial liquidity below minimum")
	ErrRatioOutOfTolerance   = errors.Register(ModuleName, 13, "deposit ratio out of tolerance")
	ErrSlippageExceeded      = errors.Register(ModuleName, 14, "output amount less than minimum required")
	ErrDeadlineExceeded      = errors.Register(ModuleName, 15, "deadline exceeded")
	ErrPriceImpactTooHigh    = errors.Register(ModuleName, 16, "price impact exceeds maximum")
	ErrInvalidAmplification  = errors.Register(ModuleName, 17, "amplification coefficient out of bounds")
	ErrConvergenceFailed     = errors.Register(ModuleName, 18, "invariant solver failed to converge")
	ErrPoolPaused            = errors.Register(ModuleName, 19, "pool is paused")
	ErrInvalidPositionOwner  = errors.Register(ModuleName, 20, "position does not belong to this pool or owner")
	ErrInvalidFeeTier        = errors.Register(ModuleName, 21, "fee tier not allowed")
	ErrInvalidAddress        = errors.Register(ModuleName, 22, "invalid address")
	ErrInvalidInput          = errors.Register(ModuleName, 23, "invalid input")
	ErrInvalidPoolState      = errors.Register(ModuleName, 24, "invalid pool state")
	ErrInvariantViolation    = errors.Register(ModuleName, 25, "pool invariant violation")
	ErrUnauthorized          = errors.Register(ModuleName, 26, "unauthorized")
	ErrPositionNotFound      = errors.Register(ModuleName, 27, "liquidity position not found")
)

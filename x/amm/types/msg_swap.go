package types

import (
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var _ sdk.Msg = &MsgSwap{}

// MsgSwap defines a message to swap an exact amount of one pool token for
// the other, subject to a minimum output and an optional deadline.
type MsgSwap struct {
	Trader       string   `json:"trader"`
	PoolId       uint64   `json:"pool_id"`
	TokenIn      string   `json:"token_in"`
	TokenOut     string   `json:"token_out"`
	AmountIn     math.Int `json:"amount_in"`
	MinAmountOut math.Int `json:"min_amount_out"`
	// Deadline is a unix timestamp in seconds; zero means no deadline.
	Deadline int64 `json:"deadline,omitempty"`
}

// NewMsgSwap creates a new MsgSwap instance
func NewMsgSwap(trader string, poolID uint64, tokenIn, tokenOut string, amountIn, minAmountOut math.Int, deadline int64) *MsgSwap {
	return &MsgSwap{
		Trader:       trader,
		PoolId:       poolID,
		TokenIn:      tokenIn,
		TokenOut:     tokenOut,
		AmountIn:     amountIn,
		MinAmountOut: minAmountOut,
		Deadline:     deadline,
	}
}

// Reset implements the proto.Message interface
func (msg *MsgSwap) Reset() { *msg = MsgSwap{} }

// String implements the proto.Message interface
func (msg *MsgSwap) String() string {
	return fmt.Sprintf("MsgSwap{%s, pool %d, %s %s -> %s}",
		msg.Trader, msg.PoolId, msg.AmountIn, msg.TokenIn, msg.TokenOut)
}

// ProtoMessage implements the proto.Message interface
func (*MsgSwap) ProtoMessage() {}

// Route implements the sdk.Msg interface
func (msg MsgSwap) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgSwap) Type() string { return "swap" }

// GetSigners implements the sdk.Msg interface
func (msg MsgSwap) GetSigners() []sdk.AccAddress {
	trader, err := sdk.AccAddressFromBech32(msg.Trader)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{trader}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgSwap) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgSwap) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Trader); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid trader address: %s", err)
	}
	if msg.PoolId == 0 {
		return sdkerrors.Wrap(ErrInvalidPoolId, "pool id cannot be zero")
	}
	if err := sdk.ValidateDenom(msg.TokenIn); err != nil {
		return sdkerrors.Wrapf(ErrInvalidTokenDenom, "token in: %s", err)
	}
	if err := sdk.ValidateDenom(msg.TokenOut); err != nil {
		return sdkerrors.Wrapf(ErrInvalidTokenDenom, "token out: %s", err)
	}
	if msg.TokenIn == msg.TokenOut {
		return sdkerrors.Wrap(ErrInvalidTokenPair, "tokens must be different")
	}
	if msg.AmountIn.IsNil() || !msg.AmountIn.IsPositive() {
		return sdkerrors.Wrap(ErrZeroAmount, "amount in must be positive")
	}
	if msg.MinAmountOut.IsNil() || msg.MinAmountOut.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidInput, "min amount out cannot be negative")
	}
	if msg.Deadline < 0 {
		return sdkerrors.Wrap(ErrInvalidInput, "deadline cannot be negative")
	}
	return nil
}

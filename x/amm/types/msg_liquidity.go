package types

import (
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	_ sdk.Msg = &MsgAddLiquidity{}
	_ sdk.Msg = &MsgRemoveLiquidity{}
)

// MsgAddLiquidity defines a message to deposit both tokens into a pool in
// exchange for newly minted shares.
type MsgAddLiquidity struct {
	Provider  string   `json:"provider"`
	PoolId    uint64   `json:"pool_id"`
	AmountA   math.Int `json:"amount_a"`
	AmountB   math.Int `json:"amount_b"`
	MinShares math.Int `json:"min_shares"`
}

// NewMsgAddLiquidity creates a new MsgAddLiquidity instance
func NewMsgAddLiquidity(provider string, poolID uint64, amountA, amountB, minShares math.Int) *MsgAddLiquidity {
	return &MsgAddLiquidity{
		Provider:  provider,
		PoolId:    poolID,
		AmountA:   amountA,
		AmountB:   amountB,
		MinShares: minShares,
	}
}

// Reset implements the proto.Message interface
func (msg *MsgAddLiquidity) Reset() { *msg = MsgAddLiquidity{} }

// String implements the proto.Message interface
func (msg *MsgAddLiquidity) String() string {
	return fmt.Sprintf("MsgAddLiquidity{%s, pool %d, %s/%s}",
		msg.Provider, msg.PoolId, msg.AmountA, msg.AmountB)
}

// ProtoMessage implements the proto.Message interface
func (*MsgAddLiquidity) ProtoMessage() {}

// Route implements the sdk.Msg interface
func (msg MsgAddLiquidity) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgAddLiquidity) Type() string { return "add_liquidity" }

// GetSigners implements the sdk.Msg interface
func (msg MsgAddLiquidity) GetSigners() []sdk.AccAddress {
	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{provider}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgAddLiquidity) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgAddLiquidity) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Provider); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid provider address: %s", err)
	}
	if msg.PoolId == 0 {
		return sdkerrors.Wrap(ErrInvalidPoolId, "pool id cannot be zero")
	}
	if msg.AmountA.IsNil() || !msg.AmountA.IsPositive() {
		return sdkerrors.Wrap(ErrZeroAmount, "amount a must be positive")
	}
	if msg.AmountB.IsNil() || !msg.AmountB.IsPositive() {
		return sdkerrors.Wrap(ErrZeroAmount, "amount b must be positive")
	}
	if msg.MinShares.IsNil() || msg.MinShares.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidInput, "min shares cannot be negative")
	}
	return nil
}

// MsgRemoveLiquidity defines a message to burn shares in exchange for a
// proportional withdrawal of both reserves.
type MsgRemoveLiquidity struct {
	Provider   string   `json:"provider"`
	PoolId     uint64   `json:"pool_id"`
	Shares     math.Int `json:"shares"`
	MinAmountA math.Int `json:"min_amount_a"`
	MinAmountB math.Int `json:"min_amount_b"`
}

// NewMsgRemoveLiquidity creates a new MsgRemoveLiquidity instance
func NewMsgRemoveLiquidity(provider string, poolID uint64, shares, minAmountA, minAmountB math.Int) *MsgRemoveLiquidity {
	return &MsgRemoveLiquidity{
		Provider:   provider,
		PoolId:     poolID,
		Shares:     shares,
		MinAmountA: minAmountA,
		MinAmountB: minAmountB,
	}
}

// Reset implements the proto.Message interface
func (msg *MsgRemoveLiquidity) Reset() { *msg = MsgRemoveLiquidity{} }

// String implements the proto.Message interface
func (msg *MsgRemoveLiquidity) String() string {
	return fmt.Sprintf("MsgRemoveLiquidity{%s, pool %d, %s shares}",
		msg.Provider, msg.PoolId, msg.Shares)
}

// ProtoMessage implements the proto.Message interface
func (*MsgRemoveLiquidity) ProtoMessage() {}

// Route implements the sdk.Msg interface
func (msg MsgRemoveLiquidity) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgRemoveLiquidity) Type() string { return "remove_liquidity" }

// GetSigners implements the sdk.Msg interface
func (msg MsgRemoveLiquidity) GetSigners() []sdk.AccAddress {
	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{provider}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgRemoveLiquidity) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgRemoveLiquidity) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Provider); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid provider address: %s", err)
	}
	if msg.PoolId == 0 {
		return sdkerrors.Wrap(ErrInvalidPoolId, "pool id cannot be zero")
	}
	if msg.Shares.IsNil() || !msg.Shares.IsPositive() {
		return sdkerrors.Wrap(ErrZeroAmount, "shares must be positive")
	}
	if msg.MinAmountA.IsNil() || msg.MinAmountA.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidInput, "min amount a cannot be negative")
	}
	if msg.MinAmountB.IsNil() || msg.MinAmountB.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidInput, "min amount b cannot be negative")
	}
	return nil
}

package types

import (
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	_ sdk.Msg = &MsgClaimFees{}
	_ sdk.Msg = &MsgCompoundFees{}
)

// MsgClaimFees defines a message to settle and pay out the fees accrued by
// the sender's position in a pool.
type MsgClaimFees struct {
	Provider string `json:"provider"`
	PoolId   uint64 `json:"pool_id"`
}

// NewMsgClaimFees creates a new MsgClaimFees instance
func NewMsgClaimFees(provider string, poolID uint64) *MsgClaimFees {
	return &MsgClaimFees{Provider: provider, PoolId: poolID}
}

// Reset implements the proto.Message interface
func (msg *MsgClaimFees) Reset() { *msg = MsgClaimFees{} }

// String implements the proto.Message interface
func (msg *MsgClaimFees) String() string {
	return fmt.Sprintf("MsgClaimFees{%s, pool %d}", msg.Provider, msg.PoolId)
}

// ProtoMessage implements the proto.Message interface
func (*MsgClaimFees) ProtoMessage() {}

// Route implements the sdk.Msg interface
func (msg MsgClaimFees) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgClaimFees) Type() string { return "claim_fees" }

// GetSigners implements the sdk.Msg interface
func (msg MsgClaimFees) GetSigners() []sdk.AccAddress {
	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{provider}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgClaimFees) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgClaimFees) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Provider); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid provider address: %s", err)
	}
	if msg.PoolId == 0 {
		return sdkerrors.Wrap(ErrInvalidPoolId, "pool id cannot be zero")
	}
	return nil
}

// MsgCompoundFees defines a message to reinvest accrued fees back into the
// sender's position as additional liquidity.
type MsgCompoundFees struct {
	Provider string `json:"provider"`
	PoolId   uint64 `json:"pool_id"`
}

// NewMsgCompoundFees creates a new MsgCompoundFees instance
func NewMsgCompoundFees(provider string, poolID uint64) *MsgCompoundFees {
	return &MsgCompoundFees{Provider: provider, PoolId: poolID}
}

// Reset implements the proto.Message interface
func (msg *MsgCompoundFees) Reset() { *msg = MsgCompoundFees{} }

// String implements the proto.Message interface
func (msg *MsgCompoundFees) String() string {
	return fmt.Sprintf("MsgCompoundFees{%s, pool %d}", msg.Provider, msg.PoolId)
}

// ProtoMessage implements the proto.Message interface
func (*MsgCompoundFees) ProtoMessage() {}

// Route implements the sdk.Msg interface
func (msg MsgCompoundFees) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgCompoundFees) Type() string { return "compound_fees" }

// GetSigners implements the sdk.Msg interface
func (msg MsgCompoundFees) GetSigners() []sdk.AccAddress {
	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{provider}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgCompoundFees) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgCompoundFees) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Provider); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid provider address: %s", err)
	}
	if msg.PoolId == 0 {
		return sdkerrors.Wrap(ErrInvalidPoolId, "pool id cannot be zero")
	}
	return nil
}

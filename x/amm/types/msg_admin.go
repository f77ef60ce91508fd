package types

import (
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	_ sdk.Msg = &MsgSetPoolPaused{}
	_ sdk.Msg = &MsgRampAmplification{}
	_ sdk.Msg = &MsgWithdrawProtocolFees{}
)

// MsgSetPoolPaused defines an authority-gated message to pause or unpause
// swaps, deposits and withdrawals on a pool. Fee claims remain allowed
// while paused since they draw from the fee pot, not the reserves.
type MsgSetPoolPaused struct {
	Authority string `json:"authority"`
	PoolId    uint64 `json:"pool_id"`
	Paused    bool   `json:"paused"`
}

// NewMsgSetPoolPaused creates a new MsgSetPoolPaused instance
func NewMsgSetPoolPaused(authority string, poolID uint64, paused bool) *MsgSetPoolPaused {
	return &MsgSetPoolPaused{Authority: authority, PoolId: poolID, Paused: paused}
}

// Reset implements the proto.Message interface
func (msg *MsgSetPoolPaused) Reset() { *msg = MsgSetPoolPaused{} }

// String implements the proto.Message interface
func (msg *MsgSetPoolPaused) String() string {
	return fmt.Sprintf("MsgSetPoolPaused{pool %d, paused=%t}", msg.PoolId, msg.Paused)
}

// ProtoMessage implements the proto.Message interface
func (*MsgSetPoolPaused) ProtoMessage() {}

// Route implements the sdk.Msg interface
func (msg MsgSetPoolPaused) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgSetPoolPaused) Type() string { return "set_pool_paused" }

// GetSigners implements the sdk.Msg interface
func (msg MsgSetPoolPaused) GetSigners() []sdk.AccAddress {
	authority, err := sdk.AccAddressFromBech32(msg.Authority)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{authority}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgSetPoolPaused) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgSetPoolPaused) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	if msg.PoolId == 0 {
		return sdkerrors.Wrap(ErrInvalidPoolId, "pool id cannot be zero")
	}
	return nil
}

// MsgRampAmplification defines an authority-gated message to start a linear
// ramp of a stable pool's amplification coefficient toward a new target.
type MsgRampAmplification struct {
	Authority           string `json:"authority"`
	PoolId              uint64 `json:"pool_id"`
	TargetAmplification uint64 `json:"target_amplification"`
	// RampStop is the unix timestamp in seconds at which the target is reached.
	RampStop int64 `json:"ramp_stop"`
}

// NewMsgRampAmplification creates a new MsgRampAmplification instance
func NewMsgRampAmplification(authority string, poolID, target uint64, rampStop int64) *MsgRampAmplification {
	return &MsgRampAmplification{
		Authority:           authority,
		PoolId:              poolID,
		TargetAmplification: target,
		RampStop:            rampStop,
	}
}

// Reset implements the proto.Message interface
func (msg *MsgRampAmplification) Reset() { *msg = MsgRampAmplification{} }

// String implements the proto.Message interface
func (msg *MsgRampAmplification) String() string {
	return fmt.Sprintf("MsgRampAmplification{pool %d, target %d, stop %d}",
		msg.PoolId, msg.TargetAmplification, msg.RampStop)
}

// ProtoMessage implements the proto.Message interface
func (*MsgRampAmplification) ProtoMessage() {}

// Route implements the sdk.Msg interface
func (msg MsgRampAmplification) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgRampAmplification) Type() string { return "ramp_amplification" }

// GetSigners implements the sdk.Msg interface
func (msg MsgRampAmplification) GetSigners() []sdk.AccAddress {
	authority, err := sdk.AccAddressFromBech32(msg.Authority)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{authority}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgRampAmplification) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgRampAmplification) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	if msg.PoolId == 0 {
		return sdkerrors.Wrap(ErrInvalidPoolId, "pool id cannot be zero")
	}
	if msg.TargetAmplification < MinAmplification || msg.TargetAmplification > MaxAmplification {
		return sdkerrors.Wrapf(ErrInvalidAmplification,
			"target %d outside [%d, %d]", msg.TargetAmplification, MinAmplification, MaxAmplification)
	}
	if msg.RampStop <= 0 {
		return sdkerrors.Wrap(ErrInvalidInput, "ramp stop must be positive")
	}
	return nil
}

// MsgWithdrawProtocolFees defines an authority-gated message to withdraw the
// protocol's share of accumulated swap fees from a pool.
type MsgWithdrawProtocolFees struct {
	Authority string `json:"authority"`
	PoolId    uint64 `json:"pool_id"`
	Recipient string `json:"recipient"`
}

// NewMsgWithdrawProtocolFees creates a new MsgWithdrawProtocolFees instance
func NewMsgWithdrawProtocolFees(authority string, poolID uint64, recipient string) *MsgWithdrawProtocolFees {
	return &MsgWithdrawProtocolFees{Authority: authority, PoolId: poolID, Recipient: recipient}
}

// Reset implements the proto.Message interface
func (msg *MsgWithdrawProtocolFees) Reset() { *msg = MsgWithdrawProtocolFees{} }

// String implements the proto.Message interface
func (msg *MsgWithdrawProtocolFees) String() string {
	return fmt.Sprintf("MsgWithdrawProtocolFees{pool %d, to %s}", msg.PoolId, msg.Recipient)
}

// ProtoMessage implements the proto.Message interface
func (*MsgWithdrawProtocolFees) ProtoMessage() {}

// Route implements the sdk.Msg interface
func (msg MsgWithdrawProtocolFees) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgWithdrawProtocolFees) Type() string { return "withdraw_protocol_fees" }

// GetSigners implements the sdk.Msg interface
func (msg MsgWithdrawProtocolFees) GetSigners() []sdk.AccAddress {
	authority, err := sdk.AccAddressFromBech32(msg.Authority)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{authority}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgWithdrawProtocolFees) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgWithdrawProtocolFees) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.Recipient); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid recipient address: %s", err)
	}
	if msg.PoolId == 0 {
		return sdkerrors.Wrap(ErrInvalidPoolId, "pool id cannot be zero")
	}
	return nil
}

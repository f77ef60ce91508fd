package types

import (
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var _ sdk.Msg = &MsgCreatePool{}

// MsgCreatePool defines a message to create a new liquidity pool with an
// initial deposit on both sides.
type MsgCreatePool struct {
	Creator       string    `json:"creator"`
	TokenA        string    `json:"token_a"`
	TokenB        string    `json:"token_b"`
	AmountA       math.Int  `json:"amount_a"`
	AmountB       math.Int  `json:"amount_b"`
	FeeBps        uint32    `json:"fee_bps"`
	Curve         CurveType `json:"curve"`
	Amplification uint64    `json:"amplification,omitempty"`
}

// NewMsgCreatePool creates a new MsgCreatePool instance
func NewMsgCreatePool(creator, tokenA, tokenB string, amountA, amountB math.Int, feeBps uint32, curve CurveType, amplification uint64) *MsgCreatePool {
	return &MsgCreatePool{
		Creator:       creator,
		TokenA:        tokenA,
		TokenB:        tokenB,
		AmountA:       amountA,
		AmountB:       amountB,
		FeeBps:        feeBps,
		Curve:         curve,
		Amplification: amplification,
	}
}

// Reset implements the proto.Message interface
func (msg *MsgCreatePool) Reset() { *msg = MsgCreatePool{} }

// String implements the proto.Message interface
func (msg *MsgCreatePool) String() string {
	return fmt.Sprintf("MsgCreatePool{%s, %s/%s, fee %d bps, %s curve}",
		msg.Creator, msg.TokenA, msg.TokenB, msg.FeeBps, msg.Curve)
}

// ProtoMessage implements the proto.Message interface
func (*MsgCreatePool) ProtoMessage() {}

// Route implements the sdk.Msg interface
func (msg MsgCreatePool) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgCreatePool) Type() string { return "create_pool" }

// GetSigners implements the sdk.Msg interface
func (msg MsgCreatePool) GetSigners() []sdk.AccAddress {
	creator, err := sdk.AccAddressFromBech32(msg.Creator)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{creator}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgCreatePool) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgCreatePool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid creator address: %s", err)
	}

	if err := sdk.ValidateDenom(msg.TokenA); err != nil {
		return sdkerrors.Wrapf(ErrInvalidTokenDenom, "token a: %s", err)
	}
	if err := sdk.ValidateDenom(msg.TokenB); err != nil {
		return sdkerrors.Wrapf(ErrInvalidTokenDenom, "token b: %s", err)
	}
	if msg.TokenA == msg.TokenB {
		return sdkerrors.Wrap(ErrInvalidTokenPair, "tokens must be different")
	}

	if msg.AmountA.IsNil() || !msg.AmountA.IsPositive() {
		return sdkerrors.Wrap(ErrZeroAmount, "amount a must be positive")
	}
	if msg.AmountB.IsNil() || !msg.AmountB.IsPositive() {
		return sdkerrors.Wrap(ErrZeroAmount, "amount b must be positive")
	}

	if msg.FeeBps == 0 || msg.FeeBps >= BpsDenominator {
		return sdkerrors.Wrapf(ErrInvalidFeeTier, "fee %d bps out of range", msg.FeeBps)
	}

	switch msg.Curve {
	case CurveConstantProduct:
		if msg.Amplification != 0 {
			return sdkerrors.Wrap(ErrInvalidInput, "amplification only applies to stable pools")
		}
	case CurveStable:
		if msg.Amplification < MinAmplification || msg.Amplification > MaxAmplification {
			return sdkerrors.Wrapf(ErrInvalidAmplification,
				"amplification %d outside [%d, %d]", msg.Amplification, MinAmplification, MaxAmplification)
		}
	default:
		return sdkerrors.Wrapf(ErrInvalidInput, "unknown curve type %d", msg.Curve)
	}

	return nil
}

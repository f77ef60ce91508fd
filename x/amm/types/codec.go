package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RegisterCodec registers the necessary interfaces and concrete types
func RegisterCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgCreatePool{}, "amm/MsgCreatePool", nil)
	cdc.RegisterConcrete(&MsgSwap{}, "amm/MsgSwap", nil)
	cdc.RegisterConcrete(&MsgAddLiquidity{}, "amm/MsgAddLiquidity", nil)
	cdc.RegisterConcrete(&MsgRemoveLiquidity{}, "amm/MsgRemoveLiquidity", nil)
	cdc.RegisterConcrete(&MsgClaimFees{}, "amm/MsgClaimFees", nil)
	cdc.RegisterConcrete(&MsgCompoundFees{}, "amm/MsgCompoundFees", nil)
	cdc.RegisterConcrete(&MsgSetPoolPaused{}, "amm/MsgSetPoolPaused", nil)
	cdc.RegisterConcrete(&MsgRampAmplification{}, "amm/MsgRampAmplification", nil)
	cdc.RegisterConcrete(&MsgWithdrawProtocolFees{}, "amm/MsgWithdrawProtocolFees", nil)
}

// RegisterInterfaces registers the module's interfaces with the interface registry
func RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgCreatePool{},
		&MsgSwap{},
		&MsgAddLiquidity{},
		&MsgRemoveLiquidity{},
		&MsgClaimFees{},
		&MsgCompoundFees{},
		&MsgSetPoolPaused{},
		&MsgRampAmplification{},
		&MsgWithdrawProtocolFees{},
	)
}

// ModuleCdc is the amino codec used for sign bytes
var ModuleCdc = codec.NewLegacyAmino()

func init() {
	RegisterCodec(ModuleCdc)
	ModuleCdc.Seal()
}

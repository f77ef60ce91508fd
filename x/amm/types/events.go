package types

// Event types emitted by the AMM module
const (
	EventTypePoolCreated           = "amm_pool_created"
	EventTypeLiquidityAdded        = "amm_liquidity_added"
	EventTypeLiquidityRemoved      = "amm_liquidity_removed"
	EventTypeSwapExecuted          = "amm_swap_executed"
	EventTypeFeesClaimed           = "amm_fees_claimed"
	EventTypeFeesCompounded        = "amm_fees_compounded"
	EventTypePoolPauseSet          = "amm_pool_pause_set"
	EventTypeAmplificationRamp     = "amm_amplification_ramp"
	EventTypeProtocolFeesWithdrawn = "amm_protocol_fees_withdrawn"
)

// Event attribute keys
const (
	AttributeKeyPoolID              = "pool_id"
	AttributeKeyCreator             = "creator"
	AttributeKeyProvider            = "provider"
	AttributeKeyTrader              = "trader"
	AttributeKeyTokenA              = "token_a"
	AttributeKeyTokenB              = "token_b"
	AttributeKeyTokenIn             = "token_in"
	AttributeKeyTokenOut            = "token_out"
	AttributeKeyAmountA             = "amount_a"
	AttributeKeyAmountB             = "amount_b"
	AttributeKeyAmountIn            = "amount_in"
	AttributeKeyAmountOut           = "amount_out"
	AttributeKeyShares              = "shares"
	AttributeKeyFee                 = "fee"
	AttributeKeyFeeBps              = "fee_bps"
	AttributeKeyCurve               = "curve"
	AttributeKeyPriceImpact         = "price_impact_bps"
	AttributeKeyPaused              = "paused"
	AttributeKeyAmplification       = "amplification"
	AttributeKeyTargetAmplification = "target_amplification"
	AttributeKeyRampStop            = "ramp_stop"
	AttributeKeyRecipient           = "recipient"
)

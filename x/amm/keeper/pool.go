package keeper

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math/big"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vortex-finance/vortex/x/amm/types"
)

// MaxIterationLimit caps unbounded pool listings to keep queries from
// scanning the whole store.
const MaxIterationLimit = 100

// GetNextPoolID returns the next pool ID and increments the counter
func (k Keeper) GetNextPoolID(ctx context.Context) (uint64, error) {
	store := k.getStore(ctx)
	bz := store.Get(types.PoolCountKey)

	var poolID uint64
	if bz == nil {
		poolID = 1
	} else {
		poolID = binary.BigEndian.Uint64(bz)
	}

	nextBz := make([]byte, 8)
	binary.BigEndian.PutUint64(nextBz, poolID+1)
	store.Set(types.PoolCountKey, nextBz)

	return poolID, nil
}

// SetNextPoolID sets the next pool ID counter
func (k Keeper) SetNextPoolID(ctx context.Context, poolID uint64) {
	store := k.getStore(ctx)
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, poolID)
	store.Set(types.PoolCountKey, bz)
}

// PeekNextPoolID reads the counter without incrementing it
func (k Keeper) PeekNextPoolID(ctx context.Context) uint64 {
	bz := k.getStore(ctx).Get(types.PoolCountKey)
	if bz == nil {
		return 1
	}
	return binary.BigEndian.Uint64(bz)
}

// GetTotalPoolsCount returns the number of pools in O(1) time
func (k Keeper) GetTotalPoolsCount(ctx context.Context) uint64 {
	bz := k.getStore(ctx).Get(types.TotalPoolsCountKey)
	if bz == nil {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

// SetTotalPoolsCount sets the pool count
func (k Keeper) SetTotalPoolsCount(ctx context.Context, count uint64) {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, count)
	k.getStore(ctx).Set(types.TotalPoolsCountKey, bz)
}

// IncrementTotalPoolsCount increments the pool count by 1
func (k Keeper) IncrementTotalPoolsCount(ctx context.Context) {
	k.SetTotalPoolsCount(ctx, k.GetTotalPoolsCount(ctx)+1)
}

// CreatePool creates a new liquidity pool with an initial deposit on both
// sides and mints the creator's first position. Tokens are ordered
// lexicographically; the same pair may exist once per fee tier.
func (k Keeper) CreatePool(
	ctx context.Context,
	creator sdk.AccAddress,
	tokenA, tokenB string,
	amountA, amountB math.Int,
	feeBps uint32,
	curve types.CurveType,
	amplification uint64,
) (*types.Pool, math.Int, error) {
	// 1. Input validation
	if tokenA == tokenB {
		return nil, math.Int{}, types.ErrInvalidTokenPair.Wrap("cannot create pool with identical tokens")
	}
	if tokenA == "" || tokenB == "" {
		return nil, math.Int{}, types.ErrInvalidTokenDenom.Wrap("token denoms cannot be empty")
	}
	if amountA.IsNil() || !amountA.IsPositive() {
		return nil, math.Int{}, types.ErrZeroAmount.Wrap("amount A must be positive")
	}
	if amountB.IsNil() || !amountB.IsPositive() {
		return nil, math.Int{}, types.ErrZeroAmount.Wrap("amount B must be positive")
	}

	// 2. Ensure consistent token ordering (lexicographic)
	if tokenA > tokenB {
		tokenA, tokenB = tokenB, tokenA
		amountA, amountB = amountB, amountA
	}

	// 3. Validate fee tier and curve against params
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, math.Int{}, fmt.Errorf("CreatePool: get params: %w", err)
	}
	if !params.FeeTierAllowed(feeBps) {
		return nil, math.Int{}, types.ErrInvalidFeeTier.Wrapf("fee tier %d bps not allowed", feeBps)
	}
	switch curve {
	case types.CurveConstantProduct:
		if amplification != 0 {
			return nil, math.Int{}, types.ErrInvalidInput.Wrap("amplification only applies to stable pools")
		}
	case types.CurveStable:
		if amplification < types.MinAmplification || amplification > types.MaxAmplification {
			return nil, math.Int{}, types.ErrInvalidAmplification.Wrapf(
				"amplification %d outside [%d, %d]", amplification, types.MinAmplification, types.MaxAmplification)
		}
	default:
		return nil, math.Int{}, types.ErrInvalidInput.Wrapf("unknown curve type %d", curve)
	}

	// 4. Reject duplicate (pair, tier) pools
	if existing, err := k.GetPoolByTokens(ctx, tokenA, tokenB, feeBps); err == nil && existing != nil {
		return nil, math.Int{}, types.ErrPoolAlreadyExists.Wrapf(
			"pool already exists for %s/%s at %d bps", tokenA, tokenB, feeBps)
	}

	// 5. Compute initial shares: geometric mean with a permanent lock
	minted, locked, err := MintShares(amountA, amountB, math.ZeroInt(), math.ZeroInt(), math.ZeroInt())
	if err != nil {
		return nil, math.Int{}, err
	}
	totalShares := minted.Add(locked)
	if totalShares.LT(params.MinLiquidity) {
		return nil, math.Int{}, types.ErrBelowMinimumLiquidity.Wrapf(
			"initial liquidity %s below minimum %s", totalShares, params.MinLiquidity)
	}

	// 6. Allocate the pool ID
	poolID, err := k.GetNextPoolID(ctx)
	if err != nil {
		return nil, math.Int{}, fmt.Errorf("CreatePool: get next pool ID: %w", err)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime().Unix()

	pool := &types.Pool{
		Id:               poolID,
		TokenA:           tokenA,
		TokenB:           tokenB,
		ReserveA:         amountA,
		ReserveB:         amountB,
		FeeBps:           feeBps,
		TotalShares:      totalShares,
		Curve:            curve,
		Creator:          creator.String(),
		FeeGrowthGlobalA: math.ZeroInt(),
		FeeGrowthGlobalB: math.ZeroInt(),
		ProtocolFeesA:    math.ZeroInt(),
		ProtocolFeesB:    math.ZeroInt(),
		KLast:            math.ZeroInt(),
		DLast:            math.ZeroInt(),
	}
	if curve == types.CurveStable {
		pool.Amplification = amplification
		d, err := ComputeD(amountA, amountB, amplification)
		if err != nil {
			return nil, math.Int{}, err
		}
		pool.DLast = d
	} else {
		pool.KLast = amountA.Mul(amountB)
	}
	if err := pool.Validate(); err != nil {
		return nil, math.Int{}, fmt.Errorf("CreatePool: validate pool state: %w", err)
	}

	// 7. Transfer tokens FIRST (checks-effects-interactions)
	coins := sdk.NewCoins(sdk.NewCoin(tokenA, amountA), sdk.NewCoin(tokenB, amountB))
	if err := k.bankKeeper.SendCoins(sdkCtx, creator, k.moduleAddress, coins); err != nil {
		return nil, math.Int{}, types.ErrInsufficientLiquidity.Wrapf("failed to transfer tokens: %v", err)
	}

	// 8. Persist pool, index and counters after custody succeeded
	if err := k.SetPool(ctx, pool); err != nil {
		return nil, math.Int{}, fmt.Errorf("CreatePool: save pool: %w", err)
	}
	k.SetPoolIDByTokens(ctx, tokenA, tokenB, feeBps, poolID)
	k.IncrementTotalPoolsCount(ctx)

	// 9. Mint the creator's position; the locked shares belong to nobody
	position := types.NewPosition(*pool, creator.String(), now)
	position.Shares = minted
	position.DepositedA = amountA
	position.DepositedB = amountB
	if err := k.SetPosition(ctx, position); err != nil {
		return nil, math.Int{}, fmt.Errorf("CreatePool: save creator position: %w", err)
	}

	// 10. Telemetry and events
	poolLabel := fmt.Sprintf("%d", poolID)
	k.metrics.PoolCreationRate.Inc()
	k.metrics.PoolsTotal.Set(float64(k.GetTotalPoolsCount(ctx)))
	k.metrics.PoolReserves.WithLabelValues(poolLabel, tokenA).Set(floatFromInt(amountA))
	k.metrics.PoolReserves.WithLabelValues(poolLabel, tokenB).Set(floatFromInt(amountB))
	k.metrics.ShareSupply.WithLabelValues(poolLabel).Set(floatFromInt(totalShares))

	sdkCtx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			types.EventTypePoolCreated,
			sdk.NewAttribute(types.AttributeKeyPoolID, poolLabel),
			sdk.NewAttribute(types.AttributeKeyCreator, creator.String()),
			sdk.NewAttribute(types.AttributeKeyTokenA, tokenA),
			sdk.NewAttribute(types.AttributeKeyTokenB, tokenB),
			sdk.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
			sdk.NewAttribute(types.AttributeKeyFeeBps, fmt.Sprintf("%d", feeBps)),
			sdk.NewAttribute(types.AttributeKeyCurve, curve.String()),
			sdk.NewAttribute(types.AttributeKeyShares, minted.String()),
		),
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.ModuleName),
			sdk.NewAttribute(sdk.AttributeKeySender, creator.String()),
		),
	})

	return pool, minted, nil
}

// GetPool retrieves a pool by its unique numeric ID.
// Returns ErrPoolNotFound if the pool does not exist.
func (k Keeper) GetPool(ctx context.Context, poolID uint64) (*types.Pool, error) {
	bz := k.getStore(ctx).Get(types.PoolKey(poolID))
	if bz == nil {
		return nil, types.ErrPoolNotFound.Wrapf("pool %d not found", poolID)
	}

	var pool types.Pool
	if err := json.Unmarshal(bz, &pool); err != nil {
		return nil, fmt.Errorf("GetPool: unmarshal pool %d: %w", poolID, err)
	}
	return &pool, nil
}

// SetPool saves a pool to the store
func (k Keeper) SetPool(ctx context.Context, pool *types.Pool) error {
	bz, err := json.Marshal(pool)
	if err != nil {
		return fmt.Errorf("SetPool: marshal pool %d: %w", pool.Id, err)
	}
	k.getStore(ctx).Set(types.PoolKey(pool.Id), bz)
	return nil
}

// GetPoolByTokens retrieves a pool by token pair and fee tier
// (order-independent). Returns ErrPoolNotFound if not found.
func (k Keeper) GetPoolByTokens(ctx context.Context, tokenA, tokenB string, feeBps uint32) (*types.Pool, error) {
	bz := k.getStore(ctx).Get(types.PoolByTokensKey(tokenA, tokenB, feeBps))
	if bz == nil {
		return nil, types.ErrPoolNotFound.Wrapf(
			"pool not found for token pair %s/%s at %d bps", tokenA, tokenB, feeBps)
	}
	return k.GetPool(ctx, binary.BigEndian.Uint64(bz))
}

// SetPoolIDByTokens indexes a pool by its token pair and fee tier
func (k Keeper) SetPoolIDByTokens(ctx context.Context, tokenA, tokenB string, feeBps uint32, poolID uint64) {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, poolID)
	k.getStore(ctx).Set(types.PoolByTokensKey(tokenA, tokenB, feeBps), bz)
}

// IteratePools iterates over all pools in ID order
func (k Keeper) IteratePools(ctx context.Context, cb func(pool types.Pool) (stop bool)) error {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, types.PoolKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := json.Unmarshal(iterator.Value(), &pool); err != nil {
			return fmt.Errorf("IteratePools: unmarshal pool: %w", err)
		}
		if cb(pool) {
			break
		}
	}
	return nil
}

// GetAllPools returns all pools, capped at MaxIterationLimit
func (k Keeper) GetAllPools(ctx context.Context) ([]types.Pool, error) {
	pools := make([]types.Pool, 0, MaxIterationLimit)
	err := k.IteratePools(ctx, func(pool types.Pool) bool {
		pools = append(pools, pool)
		return len(pools) >= MaxIterationLimit
	})
	if err != nil {
		return nil, err
	}
	return pools, nil
}

// SetPoolPaused pauses or unpauses a pool. Authority only. A paused pool
// rejects swaps and deposits; withdrawals and fee claims stay open.
func (k Keeper) SetPoolPaused(ctx context.Context, authority string, poolID uint64, paused bool) error {
	if authority != k.authority {
		return types.ErrUnauthorized.Wrapf("expected %s, got %s", k.authority, authority)
	}

	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return err
	}
	if pool.Paused == paused {
		return nil
	}

	pool.Paused = paused
	if err := k.SetPool(ctx, pool); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	k.Logger(sdkCtx).Info("pool pause state changed", "pool_id", poolID, "paused", paused)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypePoolPauseSet,
		sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", poolID)),
		sdk.NewAttribute(types.AttributeKeyPaused, fmt.Sprintf("%t", paused)),
	))
	return nil
}

// RampAmplification starts a linear amplification ramp on a stable pool.
// Authority only. The current effective coefficient becomes the new base so
// the value never jumps at ramp start.
func (k Keeper) RampAmplification(ctx context.Context, authority string, poolID, target uint64, rampStop int64) error {
	if authority != k.authority {
		return types.ErrUnauthorized.Wrapf("expected %s, got %s", k.authority, authority)
	}

	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return err
	}
	if !pool.IsStable() {
		return types.ErrInvalidPoolState.Wrapf("pool %d is not a stable pool", poolID)
	}
	if target < types.MinAmplification || target > types.MaxAmplification {
		return types.ErrInvalidAmplification.Wrapf(
			"target %d outside [%d, %d]", target, types.MinAmplification, types.MaxAmplification)
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime().Unix()
	if rampStop < now+params.MinRampDuration {
		return types.ErrInvalidInput.Wrapf(
			"ramp must run at least %d seconds", params.MinRampDuration)
	}

	pool.Amplification = pool.AmplificationAt(now)
	pool.TargetAmplification = target
	pool.RampStart = now
	pool.RampStop = rampStop
	if err := k.SetPool(ctx, pool); err != nil {
		return err
	}

	k.Logger(sdkCtx).Info("amplification ramp started",
		"pool_id", poolID, "from", pool.Amplification, "to", target, "stop", rampStop)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeAmplificationRamp,
		sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", poolID)),
		sdk.NewAttribute(types.AttributeKeyAmplification, fmt.Sprintf("%d", pool.Amplification)),
		sdk.NewAttribute(types.AttributeKeyTargetAmplification, fmt.Sprintf("%d", target)),
		sdk.NewAttribute(types.AttributeKeyRampStop, fmt.Sprintf("%d", rampStop)),
	))
	return nil
}

// WithdrawProtocolFees pays the accumulated protocol fee pots of a pool out
// to a recipient. Authority only.
func (k Keeper) WithdrawProtocolFees(ctx context.Context, authority string, poolID uint64, recipient sdk.AccAddress) (math.Int, math.Int, error) {
	if authority != k.authority {
		return math.Int{}, math.Int{}, types.ErrUnauthorized.Wrapf("expected %s, got %s", k.authority, authority)
	}

	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}

	amountA, amountB := pool.ProtocolFeesA, pool.ProtocolFeesB
	if amountA.IsZero() && amountB.IsZero() {
		return math.ZeroInt(), math.ZeroInt(), nil
	}

	coins := sdk.NewCoins()
	if amountA.IsPositive() {
		coins = coins.Add(sdk.NewCoin(pool.TokenA, amountA))
	}
	if amountB.IsPositive() {
		coins = coins.Add(sdk.NewCoin(pool.TokenB, amountB))
	}

	// Zero the pots before the transfer inside a cache context so a failed
	// send rolls both back together.
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()

	pool.ProtocolFeesA = math.ZeroInt()
	pool.ProtocolFeesB = math.ZeroInt()
	if err := k.SetPool(cacheCtx, pool); err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := k.bankKeeper.SendCoins(cacheCtx, k.moduleAddress, recipient, coins); err != nil {
		return math.Int{}, math.Int{}, fmt.Errorf("WithdrawProtocolFees: transfer: %w", err)
	}
	write()

	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeProtocolFeesWithdrawn,
		sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", poolID)),
		sdk.NewAttribute(types.AttributeKeyRecipient, recipient.String()),
		sdk.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
		sdk.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
	))
	return amountA, amountB, nil
}

// floatFromInt converts a math.Int to float64 for gauges, saturating instead
// of failing on very large values.
func floatFromInt(n math.Int) float64 {
	f, _ := new(big.Float).SetInt(n.BigInt()).Float64()
	return f
}

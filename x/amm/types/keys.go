package types

import (
	"encoding/binary"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// ModuleName defines the module name
	ModuleName = "amm"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName

	// QuerierRoute defines the module's query routing key
	QuerierRoute = ModuleName

	// MemStoreKey defines the in-memory store key
	MemStoreKey = "mem_" + ModuleName
)

// Store key prefixes
var (
	// PoolKeyPrefix is the prefix for pool store keys
	PoolKeyPrefix = []byte{0x01}

	// PoolCountKey is the key for the next pool ID counter
	PoolCountKey = []byte{0x02}

	// PoolByTokensKeyPrefix is the prefix for indexing pools by token pair and fee tier
	PoolByTokensKeyPrefix = []byte{0x03}

	// PositionKeyPrefix is the prefix for liquidity position store keys
	PositionKeyPrefix = []byte{0x04}

	// ParamsKey is the key for module parameters
	ParamsKey = []byte{0x05}

	// TotalPoolsCountKey is the key for the O(1) active pool counter
	TotalPoolsCountKey = []byte{0x06}
)

// PoolKey returns the store key for a pool by ID
func PoolKey(poolID uint64) []byte {
	poolIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(poolIDBytes, poolID)
	return append(PoolKeyPrefix, poolIDBytes...)
}

// PoolByTokensKey returns the store key for indexing a pool by its token pair
// and fee tier. Tokens are sorted so lookups are order-independent.
func PoolByTokensKey(tokenA, tokenB string, feeBps uint32) []byte {
	if tokenA > tokenB {
		tokenA, tokenB = tokenB, tokenA
	}
	key := append(PoolByTokensKeyPrefix, []byte(tokenA)...)
	key = append(key, []byte("/")...)
	key = append(key, []byte(tokenB)...)
	key = append(key, []byte("/")...)
	feeBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(feeBytes, feeBps)
	return append(key, feeBytes...)
}

// PositionKey returns the store key for a liquidity position
func PositionKey(poolID uint64, owner sdk.AccAddress) []byte {
	poolIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(poolIDBytes, poolID)
	key := append(PositionKeyPrefix, poolIDBytes...)
	return append(key, owner.Bytes()...)
}

// PositionKeyByPoolPrefix returns the store key prefix covering every position
// in one pool.
func PositionKeyByPoolPrefix(poolID uint64) []byte {
	poolIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(poolIDBytes, poolID)
	return append(PositionKeyPrefix, poolIDBytes...)
}

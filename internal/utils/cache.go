package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"strconv"       // Cache key formatting
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// CacheTTL is how long read-side responses stay cached. Balances are
// never served from this cache across the transfer serialization
// boundary: every completed transfer invalidates both parties' keys.
const CacheTTL = 60 * time.Second

// WalletCacheKey is the cache key for a user's wallet view
func WalletCacheKey(userID uint) string {
	return "wallet:user:" + strconv.Itoa(int(userID))
}

// HistoryCacheKey is the cache key for a user's full transaction history
func HistoryCacheKey(userID uint) string {
	return "txhistory:user:" + strconv.Itoa(int(userID))
}

// RecentCacheKey is the cache key for a user's default recent window.
// Non-default windows are never cached, so the key carries no limit.
func RecentCacheKey(userID uint) string {
	return "txrecent:user:" + strconv.Itoa(int(userID))
}

// InvalidateUserCaches drops every cached view for a user after a
// transfer touches their wallet
func InvalidateUserCaches(ctx context.Context, rdb *redis.Client, userID uint) {
	_ = DeleteCache(ctx, rdb, WalletCacheKey(userID))  // Invalidate wallet view
	_ = DeleteCache(ctx, rdb, HistoryCacheKey(userID)) // Invalidate full history
	_ = DeleteCache(ctx, rdb, RecentCacheKey(userID))  // Invalidate default recent window
}

// GetCache retrieves a value from Redis and unmarshals it into dest
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// DeleteCache deletes a key from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err() // Delete key from Redis
}

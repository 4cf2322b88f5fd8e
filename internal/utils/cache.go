package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"errors"        // redis.Nil comparison
	"fmt"           // Key formatting
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache is a JSON read-through cache over Redis. A nil *Cache is valid and caches nothing,
// so the server runs without Redis.
type Cache struct {
	rdb *redis.Client // Underlying client
	ttl time.Duration // Expiry for every entry
}

// NewCache wraps rdb; it returns nil when rdb is nil
func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	if rdb == nil {
		return nil // Caching disabled
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

// UserPrefix is the key namespace holding everything cached for one user
func UserPrefix(userID uint) string {
	return fmt.Sprintf("user:%d:", userID)
}

// UserKey builds a key inside the user's namespace, e.g. user:7:budgets
func UserKey(userID uint, name string) string {
	return UserPrefix(userID) + name
}

// Get retrieves a value and unmarshals it into dest
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil {
		return false, nil // Nothing cached without Redis
	}
	val, err := c.rdb.Get(ctx, key).Bytes() // Get value from Redis
	if errors.Is(err, redis.Nil) {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal(val, dest) // Unmarshal JSON into dest
}

// Set stores value as JSON with the cache TTL
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	if c == nil {
		return nil
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err() // Set value in Redis with TTL
}

// Delete removes keys
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err() // Delete keys from Redis
}

// DeletePrefix removes every key starting with prefix
func (c *Cache) DeletePrefix(ctx context.Context, prefix string) error {
	if c == nil {
		return nil
	}
	var keys []string
	iter := c.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator() // Incremental scan of the namespace
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err // Scan failed part way
	}
	return c.Delete(ctx, keys...)
}

// InvalidateUser drops the user's whole namespace after a committed write
func (c *Cache) InvalidateUser(ctx context.Context, userID uint) error {
	return c.DeletePrefix(ctx, UserPrefix(userID))
}

package api

import (
	"finance_tracker/internal/utils" // Redis cache

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// readThrough serves key from the cache or runs load and caches its result. Cache
// failures are logged and never fail the request.
func readThrough[T any](c *gin.Context, cache *utils.Cache, key string, load func() (T, error)) (T, bool, error) {
	ctx := c.Request.Context() // Context for Redis operations
	var out T
	found, err := cache.Get(ctx, key, &out) // Try to get from cache
	if err == nil && found {
		return out, true, nil // Cache hit
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Cache read failed")
	}

	out, err = load() // Fall back to the store
	if err != nil {
		return out, false, err
	}
	if err := cache.Set(ctx, key, out); err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Cache write failed")
	}
	return out, false, nil
}

// invalidateUser drops everything cached for userID after a committed write
func invalidateUser(c *gin.Context, cache *utils.Cache, userID uint) {
	if err := cache.InvalidateUser(c.Request.Context(), userID); err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Warn("Cache invalidation failed")
	}
}

package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const idempotencyLockTTL = 30 * time.Second

// Idempotency replays the cached response for a repeated Idempotency-Key
// and locks the key while the first request is still in flight. Handlers
// of guarded routes cache their response and release the lock.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		userID := c.GetString("user_id")
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			var cached any
			_ = json.Unmarshal([]byte(val), &cached)
			c.AbortWithStatusJSON(http.StatusOK, gin.H{"ok": true, "data": cached})
			return
		}

		// Short expiry so a crashed request cannot hold the key forever.
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", idempotencyLockTTL).Result()
		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "PROCESSING",
				"message": "A request with this idempotency key is still being processed",
			})
			return
		}

		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		c.Next()
	}
}

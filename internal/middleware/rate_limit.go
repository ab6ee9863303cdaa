package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	apierrors "github.com/westosha-tf/team-portal/internal/errors"
	"go.uber.org/zap"
)

// RateLimit allows at most limit requests per client IP and route within a
// fixed window. A nil client, or a redis error, lets the request through.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("rate_limit:%s:%s", c.FullPath(), c.ClientIP())

		count, err := hit(ctx, rdb, key, window)
		if err != nil {
			log.Warn("rate limit check failed", zap.Error(err))
			c.Next()
			return
		}

		if count > int64(limit) {
			apierrors.TooManyRequests(c, "")
			return
		}

		c.Next()
	}
}

// hit counts one request against key. The window is created with SET NX and
// the counter bumped in the same MULTI, so a counter always carries a TTL.
func hit(ctx context.Context, rdb redis.Cmdable, key string, window time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetArgs(ctx, key, 0, redis.SetArgs{Mode: "NX", TTL: window})
		incr = pipe.Incr(ctx, key)
		return nil
	})
	// SET NX replies nil once the window exists
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, err
	}
	return incr.Result()
}

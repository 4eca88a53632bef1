package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	IdempotencyHeader = "Idempotency-Key"

	ContextIdempotencyLockKey  = "idempotency_lock_key"
	ContextIdempotencyCacheKey = "idempotency_cache_key"

	idempotencyLockTTL = 30 * time.Second
)

// CachedResponse is what a finished idempotent request leaves under its cache key.
type CachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

// StoreIdempotentResponse records status and body for replay.
func StoreIdempotentResponse(ctx context.Context, rdb *redis.Client, cacheKey string, status int, body []byte, ttl time.Duration) error {
	raw, err := json.Marshal(CachedResponse{Status: status, Body: body})
	if err != nil {
		return err
	}
	return rdb.Set(ctx, cacheKey, raw, ttl).Err()
}

// decodeCached accepts both the envelope and a bare body written before the
// status was recorded; the latter replays as 200.
func decodeCached(raw []byte) (int, []byte) {
	var cr CachedResponse
	if err := json.Unmarshal(raw, &cr); err != nil || cr.Status == 0 || len(cr.Body) == 0 {
		return http.StatusOK, raw
	}
	return cr.Status, cr.Body
}

// Idempotency guards a mutating endpoint with a redis lock per
// (session, key). A finished request's cached status and body are replayed as-is.
// The handler owns releasing the lock and writing the cache entry.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			abort(c, ErrMissingIdempotencyKey)
			return
		}

		scope := SessionID(c)
		cacheKey := "idem:resp:" + scope + ":" + key
		lockKey := "idem:lock:" + scope + ":" + key
		ctx := c.Request.Context()

		// 1. Replay a finished request
		if cached, err := rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			status, body := decodeCached(cached)
			c.Data(status, "application/json; charset=utf-8", body)
			c.Abort()
			return
		}

		// 2. Acquire lock
		ok, err := rdb.SetNX(ctx, lockKey, "1", idempotencyLockTTL).Result()
		if err != nil {
			// redis down: let the request through rather than block checkout
			c.Next()
			return
		}
		if !ok {
			abort(c, ErrDuplicateRequest)
			return
		}

		c.Set(ContextIdempotencyLockKey, lockKey)
		c.Set(ContextIdempotencyCacheKey, cacheKey)
		c.Next()

		// a later middleware rejected the request before the handler ran
		if c.IsAborted() {
			rdb.Del(context.WithoutCancel(ctx), lockKey)
		}
	}
}

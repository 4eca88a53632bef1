package middleware

import (
	"sync"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/time/rate"
)

const limiterCacheSize = 10000

type limiterSet struct {
	mu    sync.Mutex
	cache *lru.Cache
	limit rate.Limit
	burst int
}

func newLimiterSet(limit rate.Limit, burst int) *limiterSet {
	c, err := lru.New(limiterCacheSize)
	if err != nil {
		panic(err)
	}
	return &limiterSet{cache: c, limit: limit, burst: burst}
}

func (s *limiterSet) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.cache.Get(key); ok {
		return v.(*rate.Limiter)
	}
	l := rate.NewLimiter(s.limit, s.burst)
	s.cache.Add(key, l)
	return l
}

func rateLimit(set *limiterSet, keyFn func(c *gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !set.get(keyFn(c)).Allow() {
			abort(c, ErrTooManyRequests)
			return
		}
		c.Next()
	}
}

// RateLimitByIP throttles per client IP.
func RateLimitByIP(limit rate.Limit, burst int) gin.HandlerFunc {
	return rateLimit(newLimiterSet(limit, burst), func(c *gin.Context) string {
		return c.ClientIP()
	})
}

// RateLimitBySession throttles per storage scope, falling back to the client IP.
func RateLimitBySession(limit rate.Limit, burst int) gin.HandlerFunc {
	return rateLimit(newLimiterSet(limit, burst), func(c *gin.Context) string {
		if sid := SessionID(c); sid != "" {
			return sid
		}
		return c.ClientIP()
	})
}

package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/shared/server/respond"
)

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// RateLimit is a token-bucket limiter keyed by the admin subject when one is
// present, falling back to client IP for anonymous traffic.
func RateLimit(ratePerMinute float64, burst float64) gin.HandlerFunc {
	var mu sync.Mutex
	buckets := make(map[string]*bucket)
	refillPerSec := ratePerMinute / 60.0

	return func(c *gin.Context) {
		key := AdminSubjectFromContext(c)
		if key == "" {
			key = c.ClientIP()
		}

		mu.Lock()
		b, ok := buckets[key]
		now := time.Now()
		if !ok {
			b = &bucket{tokens: burst, lastSeen: now}
			buckets[key] = b
		}
		elapsed := now.Sub(b.lastSeen).Seconds()
		b.tokens += elapsed * refillPerSec
		if b.tokens > burst {
			b.tokens = burst
		}
		b.lastSeen = now
		allowed := b.tokens >= 1
		if allowed {
			b.tokens--
		}
		// Drop stale buckets opportunistically to bound memory.
		if len(buckets) > 10000 {
			for k, v := range buckets {
				if now.Sub(v.lastSeen) > 10*time.Minute {
					delete(buckets, k)
				}
			}
		}
		mu.Unlock()

		if !allowed {
			respond.Error(c, http.StatusTooManyRequests, "rate_limited", "too many requests", nil)
			return
		}
		c.Next()
	}
}

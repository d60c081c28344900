package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/dwdclimate/internal/domain/dto"
)

// client represents a rate-limited client with request count and window start.
type client struct {
	windowStart time.Time
	count       int
}

// RateLimiter limits the number of requests per client IP in a fixed window.
//
// Each DWD download is expensive, so the average endpoint is the main
// consumer of this limiter.
//
// Behavior:
//   - Allows up to limit requests per window per client IP.
//   - Exceeding the limit returns HTTP 429 Too Many Requests.
//   - limit <= 0 disables limiting.
//
// NOTE: the store is in-memory and per-instance.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
	)
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		cl, ok := clients[ip]
		if !ok || now.Sub(cl.windowStart) > window {
			cl = &client{windowStart: now}
			clients[ip] = cl
		}
		cl.count++
		exceeded := cl.count > limit
		mu.Unlock()

		if exceeded {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
			return
		}

		c.Next()
	}
}

package middleware

import (
	"net/http"
	"sync"

	"emergency-bed-booking/pkg/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit returns a per-client token bucket limiter keyed by client IP.
// perMinute is the sustained request rate; bursts up to the same size are
// allowed so page loads firing a few requests at once are not penalized.
func RateLimit(perMinute int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		limiter, ok := limiters[ip]
		if !ok {
			limiter = rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute)
			limiters[ip] = limiter
		}
		return limiter
	}

	return func(c *gin.Context) {
		if !limiterFor(c.ClientIP()).Allow() {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "Rate limit exceeded, try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}

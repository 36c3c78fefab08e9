package middleware

import (
	"sync"
	"time"

	"fintrack/internal/errors"
	"fintrack/internal/handlers"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const visitorTTL = 3 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitorRegistry hands out a token-bucket limiter per client IP and evicts
// idle entries so the map cannot grow without bound.
type visitorRegistry struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
}

func newVisitorRegistry(rps, burst int) *visitorRegistry {
	r := &visitorRegistry{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
	go r.evictLoop()
	return r
}

func (r *visitorRegistry) limiterFor(ip string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(r.rps, r.burst)}
		r.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func (r *visitorRegistry) configure(rps, burst int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rps = rate.Limit(rps)
	r.burst = burst
	// Existing limiters keep their old settings; drop them
	r.visitors = make(map[string]*visitor)
}

func (r *visitorRegistry) evictIdle() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for ip, v := range r.visitors {
		if time.Since(v.lastSeen) > visitorTTL {
			delete(r.visitors, ip)
		}
	}
}

func (r *visitorRegistry) evictLoop() {
	for {
		time.Sleep(time.Minute)
		r.evictIdle()
	}
}

var registry = newVisitorRegistry(5, 10)

// RateLimiter limits requests per client IP with the current registry
// settings. Over-limit requests get a SYSTEM_005 response.
func RateLimiter() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !registry.limiterFor(clientIP(c)).Allow() {
				return handlers.SendError(c, errors.SystemRateLimitExceeded)
			}
			return next(c)
		}
	}
}

// RateLimiterWithConfig reconfigures the per-IP limits and returns the middleware
func RateLimiterWithConfig(rps, burst int) echo.MiddlewareFunc {
	registry.configure(rps, burst)
	return RateLimiter()
}

// clientIP prefers proxy-set headers over the socket address
func clientIP(c echo.Context) string {
	if xff := c.Request().Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := c.Request().Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return c.RealIP()
}

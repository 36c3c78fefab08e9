package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func resetRegistry(rps, burst int) {
	registry.configure(rps, burst)
}

func limitedRequest(e *echo.Echo, handler echo.HandlerFunc, ip string) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	req.RemoteAddr = ip
	rec := httptest.NewRecorder()
	err := handler(e.NewContext(req, rec))
	return rec, err
}

func TestRateLimiterAllowsBurstThenRejects(t *testing.T) {
	resetRegistry(2, 4)

	e := echo.New()
	handler := RateLimiter()(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	for i := 0; i < 4; i++ {
		rec, err := limitedRequest(e, handler, "10.0.0.7:40000")
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code, "request %d within burst should pass", i)
	}

	// SendError writes the response and returns nil
	rec, err := limitedRequest(e, handler, "10.0.0.7:40000")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimiterWithConfigAppliesLimits(t *testing.T) {
	e := echo.New()
	handler := RateLimiterWithConfig(1, 2)(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	for i := 0; i < 2; i++ {
		rec, err := limitedRequest(e, handler, "10.0.0.8:40000")
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec, err := limitedRequest(e, handler, "10.0.0.8:40000")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimiterTracksIPsIndependently(t *testing.T) {
	resetRegistry(5, 5)

	e := echo.New()
	handler := RateLimiter()(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	for _, ip := range []string{"10.0.1.1:1234", "10.0.1.2:1234", "10.0.1.3:1234"} {
		for i := 0; i < 5; i++ {
			rec, err := limitedRequest(e, handler, ip)
			assert.NoError(t, err)
			assert.Equal(t, http.StatusOK, rec.Code, "ip %s request %d should not hit another ip's bucket", ip, i)
		}
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{"x-forwarded-for wins", map[string]string{"X-Forwarded-For": "203.0.113.9"}, "127.0.0.1:12345", "203.0.113.9"},
		{"x-real-ip second", map[string]string{"X-Real-IP": "203.0.113.10"}, "127.0.0.1:12345", "203.0.113.10"},
		{"forwarded beats real-ip", map[string]string{"X-Forwarded-For": "203.0.113.9", "X-Real-IP": "203.0.113.10"}, "127.0.0.1:12345", "203.0.113.9"},
		{"socket address fallback", nil, "198.51.100.4:12345", "198.51.100.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			req.RemoteAddr = tt.remoteAddr

			c := e.NewContext(req, httptest.NewRecorder())
			assert.Equal(t, tt.want, clientIP(c))
		})
	}
}

func TestRegistryEvictsIdleVisitors(t *testing.T) {
	r := &visitorRegistry{visitors: make(map[string]*visitor)}
	r.visitors["stale"] = &visitor{lastSeen: time.Now().Add(-2 * visitorTTL)}
	r.visitors["active"] = &visitor{lastSeen: time.Now()}

	r.evictIdle()

	_, staleExists := r.visitors["stale"]
	_, activeExists := r.visitors["active"]
	assert.False(t, staleExists)
	assert.True(t, activeExists)
}

func TestRateLimiterConcurrentRequests(t *testing.T) {
	resetRegistry(5, 10)

	e := echo.New()
	handler := RateLimiter()(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	var wg sync.WaitGroup
	var countMu sync.Mutex
	allowed, limited := 0, 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec, err := limitedRequest(e, handler, "10.0.2.2:40000")

			countMu.Lock()
			defer countMu.Unlock()
			if err == nil {
				switch rec.Code {
				case http.StatusOK:
					allowed++
				case http.StatusTooManyRequests:
					limited++
				}
			}
		}()
	}
	wg.Wait()

	assert.Greater(t, allowed, 0)
	assert.Greater(t, limited, 0)
	assert.Equal(t, 20, allowed+limited)
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitMiddleware_Disabled(t *testing.T) {
	handler := NewRateLimitMiddleware(0).Handler(okHandler())

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects", nil))
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}
}

func TestRateLimitMiddleware_LimitsPerIP(t *testing.T) {
	handler := NewRateLimitMiddleware(1).Handler(okHandler())

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/projects", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	// burst of 1 is spent; the refill takes a minute
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/projects", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "60", second.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"Too many requests, please try again later.","code":"RATE_LIMITED"}`, second.Body.String())

	spoofed := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	spoofed.Header.Set("X-Forwarded-For", "203.0.113.9")
	third := httptest.NewRecorder()
	handler.ServeHTTP(third, spoofed)
	assert.Equal(t, http.StatusTooManyRequests, third.Code, "forwarding headers do not change the key")

	other := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	other.RemoteAddr = "203.0.113.9:4321"
	fourth := httptest.NewRecorder()
	handler.ServeHTTP(fourth, other)
	assert.Equal(t, http.StatusOK, fourth.Code)
}

func TestContactRateLimit(t *testing.T) {
	handler := ContactRateLimit(2)(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
		req.RemoteAddr = "198.51.100.7:5000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

type fakeNow struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeNow) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeNow) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

func TestLoginWindowLimiter(t *testing.T) {
	clock := &fakeNow{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	limiter := NewLoginWindowLimiter(3, 15*time.Minute, clock.Now)

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow("10.0.0.1")
		require.True(t, allowed, "attempt %d", i)
	}

	allowed, retry := limiter.Allow("10.0.0.1")
	require.False(t, allowed)
	assert.Equal(t, 15*time.Minute, retry)

	allowed, _ = limiter.Allow("10.0.0.2")
	assert.True(t, allowed, "other clients have their own window")

	clock.Advance(10 * time.Minute)
	allowed, retry = limiter.Allow("10.0.0.1")
	require.False(t, allowed, "window is fixed, not sliding")
	assert.Equal(t, 5*time.Minute, retry)

	clock.Advance(5 * time.Minute)
	allowed, _ = limiter.Allow("10.0.0.1")
	assert.True(t, allowed, "window resets once fully elapsed")
}

func TestLoginWindowLimiterHandler(t *testing.T) {
	clock := &fakeNow{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	handler := NewLoginWindowLimiter(1, time.Minute, clock.Now).Handler(okHandler())

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/auth/login", nil)
		req.RemoteAddr = "192.0.2.1:4000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send().Code)

	clock.Advance(30 * time.Second)
	limited := send()
	require.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "30", limited.Header().Get("Retry-After"))
	assert.Contains(t, limited.Body.String(), `"code":"RATE_LIMITED"`)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:1234"
	assert.Equal(t, "192.0.2.10", ClientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.1")
	req.Header.Set("X-Forwarded-For", "203.0.113.5, 198.51.100.1")
	assert.Equal(t, "192.0.2.10", ClientIP(req), "headers are ignored without TrustedProxies")

	req.RemoteAddr = "[2001:db8::1]:443"
	assert.Equal(t, "2001:db8::1", ClientIP(req))

	req.RemoteAddr = "2001:db8::2"
	assert.Equal(t, "2001:db8::2", ClientIP(req))

	req.RemoteAddr = ""
	assert.Equal(t, "unknown", ClientIP(req))
}

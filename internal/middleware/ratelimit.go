package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/httprate"
	"golang.org/x/time/rate"

	"portfolio-api/pkg/apierror"
)

const msgRateLimited = "Too many requests, please try again later."

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware applies a per-IP token bucket to every request it wraps.
// A non-positive rpm disables limiting.
type RateLimitMiddleware struct {
	rpm     int
	mu      sync.Mutex
	clients map[string]*clientLimiter
}

func NewRateLimitMiddleware(rpm int) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		rpm:     rpm,
		clients: map[string]*clientLimiter{},
	}
}

func (m *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	if m.rpm <= 0 {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.getLimiter(ClientIP(r)).Allow() {
			w.Header().Set("Retry-After", "60")
			writeErrorJSON(w, http.StatusTooManyRequests, apierror.CodeRateLimited, msgRateLimited)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *RateLimitMiddleware) getLimiter(clientIP string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if client, exists := m.clients[clientIP]; exists {
		client.lastSeen = now
		return client.limiter
	}

	m.gcLocked(now)
	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(m.rpm)), m.rpm)
	m.clients[clientIP] = &clientLimiter{limiter: limiter, lastSeen: now}
	return limiter
}

func (m *RateLimitMiddleware) gcLocked(now time.Time) {
	if len(m.clients) < 1000 {
		return
	}

	cutoff := now.Add(-10 * time.Minute)
	for ip, client := range m.clients {
		if client.lastSeen.Before(cutoff) {
			delete(m.clients, ip)
		}
	}
}

// ContactRateLimit caps contact form submissions per client IP per hour.
func ContactRateLimit(perHour int) func(http.Handler) http.Handler {
	if perHour <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return httprate.Limit(perHour, time.Hour,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			return ClientIP(r), nil
		}),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Retry-After", strconv.Itoa(int(time.Hour.Seconds())))
			writeErrorJSON(w, http.StatusTooManyRequests, apierror.CodeRateLimited, "Too many messages sent, please try again later.")
		}),
	)
}

// ClientIP is the host part of r.RemoteAddr. Forwarding headers are only
// honoured through TrustedProxies, which rewrites RemoteAddr upstream.
func ClientIP(r *http.Request) string {
	remote := strings.TrimSpace(r.RemoteAddr)
	if remote == "" {
		return "unknown"
	}

	if host, _, err := net.SplitHostPort(remote); err == nil && host != "" {
		return host
	}

	return remote
}

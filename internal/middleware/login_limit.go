package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"portfolio-api/pkg/apierror"
)

type windowCounter struct {
	start time.Time
	count int
}

// LoginWindowLimiter allows at most limit requests per client IP in each
// fixed window. The window opens at a client's first request and resets
// once it has fully elapsed.
type LoginWindowLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	clients map[string]*windowCounter
}

func NewLoginWindowLimiter(limit int, window time.Duration, now func() time.Time) *LoginWindowLimiter {
	if now == nil {
		now = time.Now
	}
	return &LoginWindowLimiter{
		limit:   limit,
		window:  window,
		now:     now,
		clients: map[string]*windowCounter{},
	}
}

// Allow records one request for key. When the window is exhausted it returns
// false and the time until the window resets.
func (l *LoginWindowLimiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	counter, ok := l.clients[key]
	if !ok || now.Sub(counter.start) >= l.window {
		if !ok {
			l.gcLocked(now)
		}
		counter = &windowCounter{start: now}
		l.clients[key] = counter
	}

	if counter.count >= l.limit {
		return false, counter.start.Add(l.window).Sub(now)
	}
	counter.count++
	return true, 0
}

func (l *LoginWindowLimiter) gcLocked(now time.Time) {
	if len(l.clients) < 1000 {
		return
	}
	for key, counter := range l.clients {
		if now.Sub(counter.start) >= l.window {
			delete(l.clients, key)
		}
	}
}

func (l *LoginWindowLimiter) Handler(next http.Handler) http.Handler {
	if l.limit <= 0 || l.window <= 0 {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, retryAfter := l.Allow(ClientIP(r))
		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			writeErrorJSON(w, http.StatusTooManyRequests, apierror.CodeRateLimited, "Too many login attempts, please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

package ratelimit

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// Limiter is a fixed-window counter keyed by client IP.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket // per-IP windows
	max     int                // requests per window
	per     time.Duration      // window size
}

type bucket struct {
	ts     time.Time // window start
	tokens int       // remaining requests
}

// New creates a limiter allowing max requests per window.
func New(max int, per time.Duration) *Limiter {
	return &Limiter{buckets: map[string]*bucket{}, max: max, per: per}
}

// Allow reports whether one more request from the given IP fits in the
// current window, consuming a token if so.
func (l *Limiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.buckets[ip]
	if b == nil || time.Since(b.ts) > l.per {
		// Stale windows pile up for one-shot clients; prune opportunistically.
		if len(l.buckets) > 10000 {
			for k, old := range l.buckets {
				if time.Since(old.ts) > l.per {
					delete(l.buckets, k)
				}
			}
		}
		b = &bucket{ts: time.Now(), tokens: l.max}
		l.buckets[ip] = b
	}

	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

// Middleware rejects over-limit requests with 429 before calling next.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ip, _, err := net.SplitHostPort(req.RemoteAddr)
		if err != nil {
			ip = req.RemoteAddr
		}
		if !l.Allow(ip) {
			http.Error(w, "rate limit", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, req)
	})
}

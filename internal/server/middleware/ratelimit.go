package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/agentstation/cardmap/internal/server/response"
)

// RateLimiter keeps one token bucket per client IP. A bucket holds limit
// tokens and refills completely over one interval.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	interval time.Duration
	now      func() time.Time
	logger   *zerolog.Logger
}

type visitor struct {
	bucket *rate.Limiter
	seen   time.Time
}

// NewRateLimiter allows limit requests per minute per IP.
func NewRateLimiter(limit int, logger *zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		visitors: map[string]*visitor{},
		limit:    limit,
		interval: time.Minute,
		now:      time.Now,
		logger:   logger,
	}
}

// Run forgets idle IPs every few minutes until ctx ends.
func (rl *RateLimiter) Run(ctx context.Context) {
	t := time.NewTicker(5 * rl.interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			rl.sweep()
		case <-ctx.Done():
			return
		}
	}
}

// sweep drops buckets untouched for two intervals; they would be full again.
func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := rl.now().Add(-2 * rl.interval)
	for ip, v := range rl.visitors {
		if v.seen.Before(cutoff) {
			delete(rl.visitors, ip)
		}
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v := rl.visitors[ip]
	if v == nil {
		refill := rate.Every(rl.interval / time.Duration(rl.limit))
		v = &visitor{bucket: rate.NewLimiter(refill, rl.limit)}
		rl.visitors[ip] = v
	}
	v.seen = now
	return v.bucket.AllowN(now, 1)
}

// RateLimit answers 429 with Retry-After once an IP's bucket is empty.
// The IP is taken from RemoteAddr. Behind a trusted proxy run chi's RealIP
// first.
func RateLimit(rl *RateLimiter) func(http.Handler) http.Handler {
	retryAfter := strconv.Itoa(int(rl.interval / time.Second))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			if rl.allow(ip) {
				next.ServeHTTP(w, r)
				return
			}
			rl.logger.Warn().Str("ip", ip).Str("path", r.URL.Path).Msg("request rate limited")
			w.Header().Set("Retry-After", retryAfter)
			response.RateLimited(w, "Too many requests. Please try again later.")
		})
	}
}

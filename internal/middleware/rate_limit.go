package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"shortr/internal/utils"
)

type dayWindow struct {
	day   string
	count int
}

// RateLimiter admits at most limit requests per client IP per UTC
// calendar day. The counters live only in memory and reset when the
// day rolls over; they are unrelated to the persisted per-IP click
// aggregates.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*dayWindow
	limit   int
	now     func() time.Time
}

func NewRateLimiter(limit int) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*dayWindow),
		limit:   limit,
		now:     time.Now,
	}
}

// Allow records a request for ip and reports whether it is within the
// daily quota. When rejected, retryAfterSec is the time to the next
// UTC midnight.
func (rl *RateLimiter) Allow(ip string) (allowed bool, retryAfterSec int) {
	now := rl.now().UTC()
	day := now.Format("2006-01-02")

	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.windows[ip]
	if !ok || w.day != day {
		rl.windows[ip] = &dayWindow{day: day, count: 1}
		return true, 0
	}

	if w.count < rl.limit {
		w.count++
		return true, 0
	}

	midnight := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
	sec := int(midnight.Sub(now).Seconds()) + 1
	return false, sec
}

// Reset clears all per-IP counters.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.windows = make(map[string]*dayWindow)
}

// CleanupLoop periodically drops windows from previous days.
func (rl *RateLimiter) CleanupLoop(stop <-chan struct{}) {
	t := time.NewTicker(time.Hour)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			rl.cleanup()
		case <-stop:
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	day := rl.now().UTC().Format("2006-01-02")

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, w := range rl.windows {
		if w.day != day {
			delete(rl.windows, ip)
		}
	}
}

// RateLimitMiddleware gates a route on the caller's daily quota. It
// runs before the resolve cache, so cached hits still consume quota.
func RateLimitMiddleware(rl *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.GetClientIP(r)

			allowed, retryAfter := rl.Allow(ip)
			if !allowed {
				w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

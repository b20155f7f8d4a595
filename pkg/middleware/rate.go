// Package middleware provides HTTP middleware for the storefront API.
package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/shashiranjanraj/storefront/pkg/response"
)

// visitor is one client's token bucket.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterSet hands out one limiter per client IP and evicts idle ones.
type limiterSet struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	idleAfter time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newLimiterSet(perMinute int) *limiterSet {
	return &limiterSet{
		visitors:  make(map[string]*visitor),
		limit:     rate.Limit(float64(perMinute) / 60.0),
		burst:     perMinute,
		idleAfter: 3 * time.Minute,
		now:       time.Now,
	}
}

func (s *limiterSet) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) > time.Minute {
		for k, v := range s.visitors {
			if now.Sub(v.lastSeen) > s.idleAfter {
				delete(s.visitors, k)
			}
		}
		s.lastSweep = now
	}

	v, ok := s.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// RateLimit limits each client IP to perMinute requests, refilled smoothly,
// with a burst of perMinute. A non-positive budget disables the limiter.
//
//	r.Use(middleware.RateLimit(config.RateLimitPerMinute()))
func RateLimit(perMinute int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	set := newLimiterSet(perMinute)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !set.get(clientIP(r)).Allow() {
				w.Header().Set("Retry-After", "60")
				response.Error(w, http.StatusTooManyRequests, "Too Many Requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

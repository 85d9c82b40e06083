package middlewares

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/buildwithgo/radioitems/host"
)

const limiterIdle = 3 * time.Minute

type rateLimiter struct {
	rate      float64 // tokens per second
	burst     int
	tokens    float64
	lastCheck time.Time
}

// allow refills the bucket for the time elapsed since the last call and
// takes one token if available. Callers hold the limiter set's lock.
func (l *rateLimiter) allow(now time.Time) bool {
	l.tokens += now.Sub(l.lastCheck).Seconds() * l.rate
	l.lastCheck = now
	if l.tokens > float64(l.burst) {
		l.tokens = float64(l.burst)
	}

	if l.tokens >= 1.0 {
		l.tokens -= 1.0
		return true
	}
	return false
}

// RateLimiter is a token bucket limiter keyed by client IP. Rejected
// requests get a 429 HTTPError. Buckets idle for a few minutes are dropped
// lazily on the next request.
func RateLimiter(requestsPerSecond float64, burst int) host.Middleware {
	var (
		mu        sync.Mutex
		clients   = make(map[string]*rateLimiter)
		lastSweep = time.Now()
	)

	return func(next host.Handler) host.Handler {
		return func(c *host.Context) error {
			ip := clientIP(c.Request)
			now := time.Now()

			mu.Lock()
			if now.Sub(lastSweep) > limiterIdle {
				for k, l := range clients {
					if now.Sub(l.lastCheck) > limiterIdle {
						delete(clients, k)
					}
				}
				lastSweep = now
			}
			l, ok := clients[ip]
			if !ok {
				l = &rateLimiter{rate: requestsPerSecond, burst: burst, tokens: float64(burst), lastCheck: now}
				clients[ip] = l
			}
			allowed := l.allow(now)
			mu.Unlock()

			if !allowed {
				return host.NewHTTPError(http.StatusTooManyRequests, "Too Many Requests")
			}
			return next(c)
		}
	}
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

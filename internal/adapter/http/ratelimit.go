package httpadapter

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// userRateLimiter throttles requests per UserIDHeader value. Requests
// without the header share one bucket per remote address.
type userRateLimiter struct {
	limit rate.Limit
	burst int

	mu        sync.Mutex
	visitors  map[string]*limiterEntry
	lastSweep time.Time
	now       func() time.Time
}

func newUserRateLimiter(perSecond float64, burst int) *userRateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &userRateLimiter{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		visitors: make(map[string]*limiterEntry),
		now:      time.Now,
	}
}

func (l *userRateLimiter) Middleware(next http.Handler) http.Handler {
	if l.limit <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(UserIDHeader)
		if key == "" {
			key = "addr:" + r.RemoteAddr
		}
		if !l.obtain(key).Allow() {
			w.Header().Set("Retry-After", "1")
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *userRateLimiter) obtain(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > limiterIdleTTL {
		for k, e := range l.visitors {
			if now.Sub(e.lastSeen) > limiterIdleTTL {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}

	e, ok := l.visitors[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = e
	}
	e.lastSeen = now
	return e.limiter
}

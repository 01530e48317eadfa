package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/reserfast/reserfast-api/internal/errors"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long an IP's limiter survives without requests.
const limiterIdleTTL = 10 * time.Minute

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginLimiter throttles login attempts per client IP.
type LoginLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*ipLimiter
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewLoginLimiter allows perMinute attempts per IP, refilled evenly. A
// non-positive value disables limiting.
func NewLoginLimiter(perMinute int) *LoginLimiter {
	if perMinute <= 0 {
		return &LoginLimiter{limit: rate.Inf}
	}
	return &LoginLimiter{
		limiters: make(map[string]*ipLimiter),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		idleTTL:  limiterIdleTTL,
		now:      time.Now,
	}
}

func (l *LoginLimiter) limiterFor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idleTTL {
		for key, entry := range l.limiters {
			if now.Sub(entry.lastSeen) >= l.idleTTL {
				delete(l.limiters, key)
			}
		}
		l.lastSweep = now
	}

	entry, ok := l.limiters[ip]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// Middleware rejects requests over the limit with 429.
func (l *LoginLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.limit == rate.Inf {
			c.Next()
			return
		}
		if !l.limiterFor(c.ClientIP()).Allow() {
			apierrors.TooManyRequests(c, "Too many login attempts, try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}

package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	defaultIdleTTL    = 10 * time.Minute
	defaultMaxClients = 10000
)

// RateLimiter keeps one token bucket per client IP. Buckets idle for longer than
// idleTTL are dropped, and the map never holds more than maxClients entries.
type RateLimiter struct {
	mu         sync.Mutex
	limiters   map[string]*clientLimiter
	rps        rate.Limit
	burst      int
	idleTTL    time.Duration
	maxClients int
	lastSweep  time.Time
	now        func() time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		limiters:   make(map[string]*clientLimiter),
		rps:        rate.Limit(rps),
		burst:      burst,
		idleTTL:    defaultIdleTTL,
		maxClients: defaultMaxClients,
		now:        time.Now,
	}
	// An evicted bucket must already have refilled, otherwise eviction would reset a throttled client
	if rps > 0 {
		if refill := time.Duration(float64(burst) / rps * float64(time.Second)); refill > rl.idleTTL {
			rl.idleTTL = refill
		}
	}
	rl.lastSweep = rl.now()
	return rl
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= rl.idleTTL {
		rl.sweep(now)
	}

	entry, ok := rl.limiters[key]
	if !ok {
		if len(rl.limiters) >= rl.maxClients {
			rl.evictOldest()
		}
		entry = &clientLimiter{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// sweep drops buckets not used within idleTTL. Callers hold mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for key, entry := range rl.limiters {
		if now.Sub(entry.lastSeen) >= rl.idleTTL {
			delete(rl.limiters, key)
		}
	}
	rl.lastSweep = now
}

// evictOldest drops the least recently used bucket. Callers hold mu.
func (rl *RateLimiter) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for key, entry := range rl.limiters {
		if oldestKey == "" || entry.lastSeen.Before(oldest) {
			oldestKey, oldest = key, entry.lastSeen
		}
	}
	delete(rl.limiters, oldestKey)
}

// Len returns the number of tracked clients
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

// Allow reports whether a request from key may proceed now
func (rl *RateLimiter) Allow(key string) bool {
	return rl.limiter(key).Allow()
}

// Middleware rejects requests over the limit with 429
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if !rl.Allow(key) {
			log.WithField("client_ip", key).Warn("Rate limit exceeded")
			c.Header("Retry-After", retryAfter(rl.rps))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				models.NewAPIError(models.ErrTooManyRequests, "Too many requests"))
			return
		}
		c.Next()
	}
}

func retryAfter(rps rate.Limit) string {
	if rps <= 0 {
		return "60"
	}
	wait := time.Duration(float64(time.Second) / float64(rps))
	if wait < time.Second {
		return "1"
	}
	return strconv.Itoa(int(wait.Round(time.Second) / time.Second))
}

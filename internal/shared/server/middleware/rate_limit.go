package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	defaultRateLimitGroup = "DEFAULT"
	defaultMaxBuckets     = 10000
	bucketSweepInterval   = time.Minute
)

// RateLimitRule is a token bucket refilled at Rate tokens per second.
type RateLimitRule struct {
	Rate  float64
	Burst int
}

// RateLimitConfig selects a rule per request by group name.
type RateLimitConfig struct {
	Rules        map[string]RateLimitRule
	DefaultGroup string
	GroupFor     func(*gin.Context) string
	Limiter      *RateLimiter
}

// RateLimiter keeps one bucket per client and group, at most maxBuckets of
// them. Buckets that have refilled to their burst are dropped on sweep since a
// fresh bucket is identical.
type RateLimiter struct {
	mu         sync.Mutex
	buckets    map[string]*rateBucket
	now        func() time.Time
	maxBuckets int
	lastSweep  time.Time
}

type rateBucket struct {
	tokens float64
	last   time.Time
	full   time.Time
}

// NewRateLimiter returns a limiter bounded to the default bucket count.
func NewRateLimiter(now func() time.Time) *RateLimiter {
	return NewBoundedRateLimiter(now, defaultMaxBuckets)
}

// NewBoundedRateLimiter returns a limiter holding at most maxBuckets buckets.
func NewBoundedRateLimiter(now func() time.Time, maxBuckets int) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	if maxBuckets <= 0 {
		maxBuckets = defaultMaxBuckets
	}
	return &RateLimiter{
		buckets:    make(map[string]*rateBucket),
		now:        now,
		maxBuckets: maxBuckets,
		lastSweep:  now(),
	}
}

// RateLimit rejects requests over their group's budget with 429. Clients are
// identified by gin's ClientIP, so forwarded headers only count when the
// engine trusts the proxy that sent them.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limiter == nil {
		cfg.Limiter = NewRateLimiter(nil)
	}
	if cfg.DefaultGroup == "" {
		cfg.DefaultGroup = defaultRateLimitGroup
	}
	return func(c *gin.Context) {
		group := cfg.DefaultGroup
		if cfg.GroupFor != nil {
			if g := strings.TrimSpace(cfg.GroupFor(c)); g != "" {
				group = g
			}
		}
		rule, ok := cfg.Rules[group]
		if !ok {
			c.Next()
			return
		}

		allowed, retryAfter := cfg.Limiter.Allow(group+"|"+c.ClientIP(), rule)
		if allowed {
			c.Next()
			return
		}

		retryAfterMs := int(retryAfter / time.Millisecond)
		if retryAfterMs <= 0 {
			retryAfterMs = 1000
		}
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(float64(retryAfterMs)/1000))))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":        "rate_limited",
			"detail":       "Too many requests, retry later",
			"retryAfterMs": retryAfterMs,
		})
	}
}

// Allow takes one token from key's bucket. When empty it reports how long
// until the next token.
func (l *RateLimiter) Allow(key string, rule RateLimitRule) (bool, time.Duration) {
	if l == nil || rule.Rate <= 0 || rule.Burst <= 0 {
		return true, 0
	}
	now := l.now()
	burst := float64(rule.Burst)

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= bucketSweepInterval {
		l.sweep(now)
	}

	b, ok := l.buckets[key]
	if !ok {
		l.makeRoom(now)
		b = &rateBucket{tokens: burst, last: now}
		l.buckets[key] = b
	}
	if elapsed := now.Sub(b.last).Seconds(); elapsed > 0 {
		b.tokens = math.Min(burst, b.tokens+elapsed*rule.Rate)
		b.last = now
	}

	allowed := b.tokens >= 1
	if allowed {
		b.tokens--
	}
	b.full = now.Add(secondsToDuration((burst - b.tokens) / rule.Rate))
	if allowed {
		return true, 0
	}
	return false, secondsToDuration((1 - b.tokens) / rule.Rate)
}

// Len reports how many buckets are held.
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *RateLimiter) sweep(now time.Time) {
	for key, b := range l.buckets {
		if !now.Before(b.full) {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}

// makeRoom keeps the map under maxBuckets, evicting the least recently used
// bucket when no bucket has refilled yet.
func (l *RateLimiter) makeRoom(now time.Time) {
	if len(l.buckets) < l.maxBuckets {
		return
	}
	l.sweep(now)
	for len(l.buckets) >= l.maxBuckets {
		var (
			oldestKey string
			oldest    time.Time
		)
		for key, b := range l.buckets {
			if oldestKey == "" || b.last.Before(oldest) {
				oldestKey, oldest = key, b.last
			}
		}
		delete(l.buckets, oldestKey)
	}
}

func secondsToDuration(sec float64) time.Duration {
	if sec <= 0 {
		return 0
	}
	return time.Duration(math.Ceil(sec*1000)) * time.Millisecond
}

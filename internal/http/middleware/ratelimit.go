package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Decision is the outcome of a single limiter check.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter decides whether the request identified by key may proceed.
// Implementations must be safe for concurrent use.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// KeyFunc selects the identity used to key a rate-limit bucket.
type KeyFunc func(*gin.Context) string

// KeyByIP keys buckets by client address. The API has no authentication, so
// the address is the only stable identity available.
func KeyByIP() KeyFunc {
	return func(c *gin.Context) string { return "ip:" + c.ClientIP() }
}

// ---------- in-process token bucket ----------

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a process-local token-bucket Limiter with one bucket per key.
// Idle buckets are evicted opportunistically to keep memory bounded.
type RateLimiter struct {
	rps      rate.Limit
	burst    int
	mu       sync.Mutex
	visitors map[string]*visitor

	ttl      time.Duration
	cleanupN uint64
}

// NewRateLimiter builds a token bucket refilled at rps with the given burst.
// burst <= 0 is coerced to 1.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		visitors: make(map[string]*visitor),
		ttl:      10 * time.Minute,
	}
}

// getVisitor returns the limiter for key, creating it if absent. GC runs
// before the lookup so a stale bucket can be evicted even when requested.
func (rl *RateLimiter) getVisitor(key string) *rate.Limiter {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.cleanupN++
	if rl.cleanupN >= 5000 {
		for k, vv := range rl.visitors {
			if now.Sub(vv.lastSeen) >= rl.ttl {
				delete(rl.visitors, k)
			}
		}
		rl.cleanupN = 0
	}

	if v, ok := rl.visitors[key]; ok {
		v.lastSeen = now
		return v.limiter
	}
	lim := rate.NewLimiter(rl.rps, rl.burst)
	rl.visitors[key] = &visitor{limiter: lim, lastSeen: now}
	return lim
}

// Allow implements Limiter.
func (rl *RateLimiter) Allow(_ context.Context, key string) (Decision, error) {
	lim := rl.getVisitor(key)
	d := Decision{Limit: rl.burst}
	if lim.Allow() {
		d.Allowed = true
		d.Remaining = int(lim.Tokens())
		return d, nil
	}
	d.RetryAfter = time.Second
	if rl.rps > 0 {
		d.RetryAfter = time.Duration(float64(time.Second) / float64(rl.rps))
	}
	return d, nil
}

// ---------- Redis sliding window ----------

// RedisRateLimiter enforces a shared sliding-window limit across replicas.
// Each request is a member of a sorted set scored by its arrival time.
type RedisRateLimiter struct {
	client      redis.UniversalClient
	maxRequests int
	window      time.Duration
	prefix      string
}

// NewRedisRateLimiter allows maxRequests per window for every key.
func NewRedisRateLimiter(client redis.UniversalClient, maxRequests int, window time.Duration) *RedisRateLimiter {
	if maxRequests <= 0 {
		maxRequests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RedisRateLimiter{client: client, maxRequests: maxRequests, window: window, prefix: "ratelimit:"}
}

// Allow implements Limiter. The request is recorded before the decision, so
// rejected requests also consume the window.
func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	now := time.Now()
	k := rl.prefix + key

	pipe := rl.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, k, "0", strconv.FormatInt(now.Add(-rl.window).UnixNano(), 10))
	count := pipe.ZCard(ctx, k)
	pipe.ZAdd(ctx, k, redis.Z{Score: float64(now.UnixNano()), Member: uuid.NewString()})
	pipe.Expire(ctx, k, rl.window+time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("ratelimit: redis: %w", err)
	}

	n := int(count.Val())
	d := Decision{Limit: rl.maxRequests, Remaining: rl.maxRequests - n - 1}
	if d.Remaining < 0 {
		d.Remaining = 0
	}
	d.Allowed = n < rl.maxRequests
	if !d.Allowed {
		d.RetryAfter = rl.window
	}
	return d, nil
}

// ---------- middleware ----------

// RateLimitOptions configures RateLimit.
type RateLimitOptions struct {
	Key       KeyFunc  // defaults to KeyByIP
	SkipPaths []string // exact request paths never limited (e.g. /health)
	Backend   string   // metric label, e.g. "memory" or "redis"
}

// RateLimit returns a Gin middleware that consults l for every request.
//
// Denied requests receive 429 with Retry-After and the standard envelope:
//
//	{ "request_id": "...", "code": "too_many_requests", "msg": "Too Many Requests" }
//
// Limiter errors fail open: the request proceeds and the error is logged.
func RateLimit(l Limiter, opt RateLimitOptions) gin.HandlerFunc {
	keyFn := opt.Key
	if keyFn == nil {
		keyFn = KeyByIP()
	}
	backend := opt.Backend
	if backend == "" {
		backend = "memory"
	}
	skip := make(map[string]struct{}, len(opt.SkipPaths))
	for _, p := range opt.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		key := keyFn(c)
		d, err := l.Allow(c.Request.Context(), key)
		if err != nil {
			LoggerFrom(c).Error().Err(err).Str("key", key).Msg("rate limiter unavailable")
			c.Next()
			return
		}

		if d.Limit > 0 {
			c.Header("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		}
		if d.Allowed {
			c.Next()
			return
		}

		rateLimited.WithLabelValues(backend).Inc()
		secs := int(d.RetryAfter.Round(time.Second).Seconds())
		if secs < 1 {
			secs = 1
		}
		c.Header("Retry-After", strconv.Itoa(secs))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"request_id": RequestIDFrom(c),
			"code":       "too_many_requests",
			"msg":        "Too Many Requests",
		})
	}
}

package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/jroosing/hydrazone/internal/api/models"
)

// RateLimitSettings configures per-client token buckets.
type RateLimitSettings struct {
	// RequestsPerMinute is the sustained rate per client IP.
	RequestsPerMinute int
	// Burst is the bucket size. Zero means RequestsPerMinute.
	Burst int
	// IdleTimeout drops the bucket of a client that has been quiet this long.
	IdleTimeout time.Duration
}

// RateLimiter tracks one token bucket per client IP. Buckets live in an
// expiring cache so idle clients cost nothing.
type RateLimiter struct {
	limit   rate.Limit
	burst   int
	idle    time.Duration
	clients *cache.Cache
}

// NewRateLimiter creates a RateLimiter. A non-positive rate disables
// limiting.
func NewRateLimiter(s RateLimitSettings) *RateLimiter {
	idle := s.IdleTimeout
	if idle <= 0 {
		idle = 10 * time.Minute
	}
	burst := s.Burst
	if burst <= 0 {
		burst = s.RequestsPerMinute
	}
	return &RateLimiter{
		limit:   rate.Limit(float64(s.RequestsPerMinute) / 60),
		burst:   burst,
		idle:    idle,
		clients: cache.New(idle, idle),
	}
}

// Allow reports whether a request from client may proceed now, and if not,
// how long until it may.
func (r *RateLimiter) Allow(client string) (bool, time.Duration) {
	if r == nil || r.limit <= 0 {
		return true, 0
	}
	lim := r.limiter(client)
	res := lim.Reserve()
	if !res.OK() {
		return false, time.Minute
	}
	if delay := res.Delay(); delay > 0 {
		res.Cancel()
		return false, delay
	}
	return true, 0
}

func (r *RateLimiter) limiter(client string) *rate.Limiter {
	if v, ok := r.clients.Get(client); ok {
		r.clients.Set(client, v, cache.DefaultExpiration)
		return v.(*rate.Limiter)
	}
	lim := rate.NewLimiter(r.limit, r.burst)
	if err := r.clients.Add(client, lim, cache.DefaultExpiration); err != nil {
		// Lost a race with another request from the same client.
		if v, ok := r.clients.Get(client); ok {
			return v.(*rate.Limiter)
		}
	}
	return lim
}

// Clients returns the number of tracked clients.
func (r *RateLimiter) Clients() int {
	return r.clients.ItemCount()
}

// RateLimit rejects requests over the per-client rate with 429 and a
// Retry-After header.
func RateLimit(r *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, wait := r.Allow(c.ClientIP())
		if ok {
			c.Next()
			return
		}
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{Error: "Rate limit exceeded"})
	}
}

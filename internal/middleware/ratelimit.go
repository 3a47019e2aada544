package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/config"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/platform/metrics"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	rateLimitCleanupInterval = time.Minute
	rateLimitClientTTL       = 10 * time.Minute
)

type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limits form submissions per client IP with a token bucket.
type RateLimiter struct {
	rps   rate.Limit
	burst int

	mu      sync.Mutex
	clients map[string]*rateLimitClient
}

// NewRateLimiter creates a limiter and starts the cleanup of idle clients,
// which stops when ctx is done.
func NewRateLimiter(ctx context.Context, cfg *config.Config) *RateLimiter {
	rl := &RateLimiter{
		rps:     rate.Limit(cfg.RateLimitRPS),
		burst:   cfg.RateLimitBurst,
		clients: make(map[string]*rateLimitClient),
	}

	go func() {
		ticker := time.NewTicker(rateLimitCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.cleanup(time.Now())
			case <-ctx.Done():
				return
			}
		}
	}()
	return rl
}

func (rl *RateLimiter) cleanup(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, client := range rl.clients {
		if now.Sub(client.lastSeen) > rateLimitClientTTL {
			delete(rl.clients, ip)
		}
	}
}

// Allow reports whether a request from ip may proceed.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	client, found := rl.clients[ip]
	if !found {
		client = &rateLimitClient{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.clients[ip] = client
	}
	client.lastSeen = time.Now()
	return client.limiter.Allow()
}

// Handler returns the gin middleware.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			metrics.RateLimitedTotal.Inc()
			common.RespondWithError(c, common.ErrTooManyRequests.WithDetails("Too many submissions, please try again shortly."))
			return
		}
		c.Next()
	}
}

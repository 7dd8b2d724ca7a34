package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	rateLimiterCleanupInterval = 5 * time.Minute
	rateLimiterIdleTTL         = time.Hour
)

// ipRateLimiter keeps one token bucket per client IP and evicts idle buckets in the
// background until Close is called.
type ipRateLimiter struct {
	limiters sync.Map // client IP -> *rateLimiterEntry
	rps      float64
	burst    int
	logger   *slog.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

type rateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

func newIPRateLimiter(rps float64, burst int, logger *slog.Logger) *ipRateLimiter {
	return newIPRateLimiterWithInterval(rps, burst, logger, rateLimiterCleanupInterval)
}

func newIPRateLimiterWithInterval(
	rps float64,
	burst int,
	logger *slog.Logger,
	interval time.Duration,
) *ipRateLimiter {
	ctx, cancel := context.WithCancel(context.Background())
	l := &ipRateLimiter{
		rps:    rps,
		burst:  burst,
		logger: logger,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go l.cleanupStale(ctx, interval)
	return l
}

// Middleware rejects requests over the per-IP budget with 429 and a Retry-After header.
// c.ClientIP honours X-Forwarded-For and X-Real-IP according to the engine's trusted proxies.
func (l *ipRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		limiter := l.getLimiter(clientIP)

		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := int(reservation.Delay().Seconds())
			reservation.Cancel()
			if retryAfter < 1 {
				retryAfter = 1
			}

			l.logger.Debug("rate limit exceeded",
				slog.String("client_ip", clientIP),
				slog.Int("retry_after", retryAfter))

			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": "Too many requests from this IP. Please retry after the specified delay.",
			})
			return
		}

		c.Next()
	}
}

// Close stops the cleanup loop and waits for it to exit.
func (l *ipRateLimiter) Close() {
	l.cancel()
	<-l.done
}

func (l *ipRateLimiter) getLimiter(ip string) *rate.Limiter {
	if val, ok := l.limiters.Load(ip); ok {
		entry := val.(*rateLimiterEntry)
		entry.mu.Lock()
		entry.lastAccess = time.Now()
		entry.mu.Unlock()
		return entry.limiter
	}

	entry := &rateLimiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(l.rps), l.burst),
		lastAccess: time.Now(),
	}
	actual, _ := l.limiters.LoadOrStore(ip, entry)
	return actual.(*rateLimiterEntry).limiter
}

func (l *ipRateLimiter) cleanupStale(ctx context.Context, interval time.Duration) {
	defer close(l.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.evictIdle(time.Now().Add(-rateLimiterIdleTTL))
		}
	}
}

// evictIdle drops limiters whose last access is before threshold.
func (l *ipRateLimiter) evictIdle(threshold time.Time) {
	l.limiters.Range(func(key, value any) bool {
		entry := value.(*rateLimiterEntry)
		entry.mu.Lock()
		stale := entry.lastAccess.Before(threshold)
		entry.mu.Unlock()

		if stale {
			l.limiters.Delete(key)
		}
		return true
	})
}

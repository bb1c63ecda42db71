package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apperrors "github.com/reybeld94/terminal-api/internal/errors"
	"github.com/reybeld94/terminal-api/internal/httputil"
)

// rateLimiterStore holds per-subject rate limiters with last-access tracking.
type rateLimiterStore struct {
	mu       sync.Mutex
	limiters map[string]*rateLimiterEntry
	rps      float64
	burst    int
}

// rateLimiterEntry holds a rate limiter and last access time for cleanup.
type rateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

const staleLimiterAge = 10 * time.Minute

// getLimiter returns the limiter for the subject, creating one on first use
// and evicting entries idle longer than staleLimiterAge.
func (s *rateLimiterStore) getLimiter(subject string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, entry := range s.limiters {
		if now.Sub(entry.lastAccess) > staleLimiterAge {
			delete(s.limiters, key)
		}
	}

	entry, ok := s.limiters[subject]
	if !ok {
		entry = &rateLimiterEntry{limiter: rate.NewLimiter(rate.Limit(s.rps), s.burst)}
		s.limiters[subject] = entry
	}
	entry.lastAccess = now
	return entry.limiter
}

// RateLimitMiddleware enforces per-subject rate limiting on authenticated requests.
//
// MUST be used after AuthenticationMiddleware (requires verified claims in context).
// Uses a token bucket via golang.org/x/time/rate; each token subject gets an
// independent limiter so one busy terminal cannot starve the others.
//
// Returns 429 Too Many Requests with a Retry-After header when the limit is
// exceeded.
func RateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := &rateLimiterStore{
		limiters: make(map[string]*rateLimiterEntry),
		rps:      rps,
		burst:    burst,
	}

	return func(c *gin.Context) {
		claims, ok := GetClaims(c.Request.Context())
		if !ok || claims == nil {
			// Authentication middleware should have caught this
			logger.Error("rate limit middleware: no verified claims in context")
			httputil.HandleError(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		limiter := store.getLimiter(claims.Subject)
		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := int(reservation.Delay().Seconds())
			reservation.Cancel()
			if retryAfter < 1 {
				retryAfter = 1
			}

			logger.Debug("rate limit exceeded",
				slog.String("subject", claims.Subject),
				slog.Int("retry_after", retryAfter))

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.JSON(http.StatusTooManyRequests, httputil.ErrorResponse{Detail: httputil.DetailRateLimited})
			c.Abort()
			return
		}

		c.Next()
	}
}

package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campuschain/access-layer/internal/api/apierrors"
	"github.com/campuschain/access-layer/internal/logger"
	"github.com/campuschain/access-layer/internal/ratelimit"
)

// RateLimit returns a gin middleware that throttles write endpoints per
// authenticated actor. Runs after Auth; unauthenticated requests are
// keyed by client IP so probing a write endpoint without a token is
// still bounded.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := AuthenticatedAddress(c)
		if key == "" {
			key = "ip:" + c.ClientIP()
		}

		res, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// a broken limiter must not take the API down
			logger.Warn("Rate limit check failed, allowing request",
				zap.String("key", key),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if !res.Allowed {
			if res.RetryAfter > 0 {
				c.Header("Retry-After", fmt.Sprintf("%.0f", res.RetryAfter.Seconds()))
			}
			apiErr := apierrors.NewRateLimitedError("Too many write requests")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apiErr)
			return
		}

		c.Next()
	}
}

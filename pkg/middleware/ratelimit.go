package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/wms-platform/replenishment-service/pkg/errors"
)

// RateLimit limits requests per client IP using an in-memory store.
// rate uses the limiter format "<limit>-<period>", e.g. "100-S" or "1000-M".
// Health, readiness and metrics probes are never limited.
func RateLimit(rate string) (gin.HandlerFunc, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, err
	}

	instance := limiter.New(memory.NewStore(), parsed)
	limit := mgin.NewMiddleware(instance, mgin.WithLimitReachedHandler(func(c *gin.Context) {
		AbortWithAppError(c, errors.ErrRateLimitExceeded())
	}))

	return func(c *gin.Context) {
		switch c.Request.URL.Path {
		case "/health", "/ready", "/metrics":
			c.Next()
			return
		}
		limit(c)
	}, nil
}

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/wms-platform/replenishment-service/pkg/errors"
)

// Config holds middleware configuration
type Config struct {
	Logger         *slog.Logger
	ServiceName    string
	EnableCORS     bool
	AllowedOrigins []string
	RateLimit      string // ulule formatted rate, e.g. "100-S"; empty disables limiting
	TrustedProxies []string
}

// DefaultConfig returns a default middleware configuration
func DefaultConfig(serviceName string, logger *slog.Logger) *Config {
	return &Config{
		Logger:      logger,
		ServiceName: serviceName,
		EnableCORS:  true,
	}
}

// Setup applies all standard middleware to a Gin router
func Setup(router *gin.Engine, config *Config) error {
	InitValidator()

	if len(config.TrustedProxies) > 0 {
		if err := router.SetTrustedProxies(config.TrustedProxies); err != nil {
			return err
		}
	}

	router.Use(Recovery(config.Logger))
	router.Use(RequestID())
	router.Use(CorrelationID())
	router.Use(Logger(config.Logger))
	router.Use(InputSanitizer())

	if config.EnableCORS {
		router.Use(CORS(config.AllowedOrigins))
	}

	if config.RateLimit != "" {
		limit, err := RateLimit(config.RateLimit)
		if err != nil {
			return err
		}
		router.Use(limit)
	}

	router.Use(ContentType())
	router.Use(ErrorHandler(config.Logger))
	return nil
}

// CORS returns the CORS middleware. No origins allows every origin.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID", "X-Correlation-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID", "X-Correlation-ID", "X-RateLimit-Remaining"},
		MaxAge:        24 * time.Hour,
	}
	if len(allowedOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowedOrigins
		config.AllowCredentials = true
	}
	return cors.New(config)
}

// HealthCheck creates a liveness handler
func HealthCheck(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": serviceName,
		})
	}
}

// ReadinessCheck reports ready only when every check passes within two seconds.
func ReadinessCheck(serviceName string, checks map[string]func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		failures := make(map[string]string)
		for name, check := range checks {
			if err := check(ctx); err != nil {
				failures[name] = err.Error()
			}
		}

		if len(failures) > 0 {
			AbortWithAppError(c, errors.ErrServiceUnavailable(serviceName).WithDetails(failures))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "ready",
			"service": serviceName,
		})
	}
}

// NoRoute handles 404 errors with the standard error body
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, newAPIErrorResponse(c, "ROUTE_NOT_FOUND",
			"The requested resource was not found", nil))
	}
}

// NoMethod handles 405 errors with the standard error body
func NoMethod() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, newAPIErrorResponse(c, "METHOD_NOT_ALLOWED",
			"The request method is not supported for this resource", nil))
	}
}

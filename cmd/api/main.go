package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wms-platform/replenishment-service/pkg/cloudevents"
	"github.com/wms-platform/replenishment-service/pkg/kafka"
	"github.com/wms-platform/replenishment-service/pkg/logging"
	"github.com/wms-platform/replenishment-service/pkg/metrics"
	"github.com/wms-platform/replenishment-service/pkg/middleware"
	"github.com/wms-platform/replenishment-service/pkg/resilience"
	"github.com/wms-platform/replenishment-service/pkg/tracing"

	"github.com/wms-platform/replenishment-service/internal/application"
	"github.com/wms-platform/replenishment-service/internal/domain"
	"github.com/wms-platform/replenishment-service/internal/infrastructure/cache"
	kafkaAdapter "github.com/wms-platform/replenishment-service/internal/infrastructure/kafka"
	"github.com/wms-platform/replenishment-service/internal/infrastructure/postgres"
)

func main() {
	envLoaded := loadEnvFile()

	// Setup enhanced logger
	logConfig := logging.DefaultConfig(serviceName)
	logger := logging.New(logConfig)
	logger.SetDefault()

	logger.Info("Starting replenishment-service API", "envFile", envLoaded)

	config := loadConfig()
	ctx := context.Background()

	// Initialize OpenTelemetry tracing
	tracingConfig := tracing.DefaultConfig(serviceName)
	tracingConfig.OTLPEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	tracingConfig.Environment = getEnv("ENVIRONMENT", "development")
	tracingConfig.Enabled = getEnv("TRACING_ENABLED", "true") == "true"

	tracerProvider, err := tracing.Initialize(ctx, tracingConfig)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize tracing")
		// Continue without tracing
	} else if tracerProvider != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
				logger.WithError(err).Error("Failed to shutdown tracer")
			}
		}()
		logger.Info("Tracing initialized", "endpoint", tracingConfig.OTLPEndpoint)
	}

	// Initialize Prometheus metrics
	m := metrics.New(metrics.DefaultConfig(serviceName))
	logger.Info("Metrics initialized")

	// Initialize PostgreSQL with instrumentation, retrying while the database starts
	plugin := postgres.NewInstrumentationPlugin(config.Postgres.Database, m, logger)
	db, err := resilience.RetryWithResult(ctx, resilience.DefaultRetryConfig(), func(ctx context.Context) (*gorm.DB, error) {
		return postgres.NewConnection(ctx, config.Postgres, plugin)
	})
	if err != nil {
		logger.WithError(err).Error("Failed to connect to PostgreSQL")
		os.Exit(1)
	}
	defer postgres.Close(db)
	logger.Info("Connected to PostgreSQL", "database", config.Postgres.Database)

	if config.AutoMigrate {
		if err := postgres.AutoMigrate(db); err != nil {
			logger.WithError(err).Error("Failed to migrate database")
			os.Exit(1)
		}
	}

	// Initialize Redis snapshot cache; the service runs uncached without it
	var snapshotCache domain.SnapshotCache
	redisClient, err := cache.NewRedisClient(ctx, config.Redis)
	if err != nil {
		logger.WithError(err).Warn("Failed to connect to Redis - snapshot cache disabled")
	} else {
		defer redisClient.Close()
		snapshotCache = cache.NewSnapshotCache(redisClient, config.Redis.TTL, m, logger)
		logger.Info("Connected to Redis", "addr", config.Redis.Addr, "ttl", config.Redis.TTL)
	}

	// Initialize Kafka producer with instrumentation
	kafkaProducer := kafka.NewProducer(config.Kafka)
	defer kafkaProducer.Close()
	instrumentedProducer := kafka.NewInstrumentedProducer(kafkaProducer, m, logger)
	logger.Info("Kafka producer initialized", "brokers", config.Kafka.Brokers)

	// Initialize Event Publisher (implements domain.EventPublisher)
	eventFactory := cloudevents.NewEventFactory(cloudevents.SourceReplenishment)
	eventPublisher := kafkaAdapter.NewEventPublisher(instrumentedProducer, eventFactory, m, logger)

	// Initialize application service
	service := application.NewReplenishmentService(
		application.Repositories{
			Stock:         postgres.NewStockRepository(db),
			Products:      postgres.NewProductRepository(db),
			Replenishment: postgres.NewReplenishmentRepository(db),
			Picks:         postgres.NewPickRepository(db),
			Workers:       postgres.NewWorkerRepository(db),
			QRLocations:   postgres.NewQRLocationRepository(db),
			ManualLists:   postgres.NewManualListRepository(db),
			Discards:      postgres.NewDiscardRepository(db),
		},
		snapshotCache,
		eventPublisher,
		m,
		logger,
	)

	// Setup Gin router with middleware
	router := gin.New()

	middlewareConfig := middleware.DefaultConfig(serviceName, logger.Logger)
	middlewareConfig.RateLimit = config.RateLimit
	middlewareConfig.AllowedOrigins = config.AllowedOrigins
	if err := middleware.Setup(router, middlewareConfig); err != nil {
		logger.WithError(err).Error("Failed to setup middleware")
		os.Exit(1)
	}

	router.Use(middleware.MetricsMiddleware(m))
	router.Use(middleware.SimpleTracingMiddleware(serviceName))

	// Handle 404 and 405 errors
	router.HandleMethodNotAllowed = true
	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	// Health check endpoints
	readinessChecks := map[string]func(ctx context.Context) error{
		"postgres": func(ctx context.Context) error { return postgres.HealthCheck(ctx, db) },
	}
	if redisClient != nil {
		readinessChecks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	router.GET("/health", middleware.HealthCheck(serviceName))
	router.GET("/ready", middleware.ReadinessCheck(serviceName, readinessChecks))

	// Metrics endpoint
	router.GET("/metrics", middleware.MetricsEndpoint(m))

	registerRoutes(router, service, logger)

	// Start server
	srv := &http.Server{
		Addr:         config.ServerAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Server error")
		}
	}()
	logger.Info("Server started", "addr", config.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server stopped")
}

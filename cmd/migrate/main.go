package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/wms-platform/replenishment-service/pkg/logging"

	"github.com/wms-platform/replenishment-service/internal/infrastructure/postgres"
)

func main() {
	// .env must be loaded before the logger reads LOG_LEVEL
	_ = godotenv.Load()

	logger := logging.New(logging.DefaultConfig("replenishment-migrate"))
	logger.SetDefault()

	if err := run(logger); err != nil {
		logger.WithError(err).Error("Migration failed")
		os.Exit(1)
	}
	logger.Info("Migration completed")
}

func run(logger *logging.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	config := postgres.DefaultConfig()
	config.Database = getEnv("DB_NAME", config.Database)
	config.DSN = os.Getenv("DATABASE_DSN")
	if config.DSN == "" {
		config.DSN = postgres.BuildDSN(
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", "postgres"),
			config.Database,
			getEnv("DB_SSLMODE", "disable"),
		)
	}

	db, err := postgres.NewConnection(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer postgres.Close(db)

	logger.Info("Running migrations", "database", config.Database)
	return postgres.AutoMigrate(db)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/wms-platform/replenishment-service/internal/domain"
	"github.com/wms-platform/replenishment-service/pkg/logging"
	"github.com/wms-platform/replenishment-service/pkg/metrics"
)

// StockSnapshotKey is the Redis key holding the serialised stock snapshot
const StockSnapshotKey = "replenishment:stock:snapshot"

const cacheName = "stock_snapshot"

// Config holds Redis connection configuration
type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Addr: "localhost:6379",
		TTL:  15 * time.Minute,
	}
}

// NewRedisClient creates a Redis client and verifies the connection
func NewRedisClient(ctx context.Context, config *Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}

// SnapshotCache implements domain.SnapshotCache on Redis
type SnapshotCache struct {
	client  *redis.Client
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  *logging.Logger
}

// NewSnapshotCache creates a new SnapshotCache
func NewSnapshotCache(client *redis.Client, ttl time.Duration, m *metrics.Metrics, logger *logging.Logger) *SnapshotCache {
	return &SnapshotCache{client: client, ttl: ttl, metrics: m, logger: logger}
}

// Get returns the cached snapshot; ok is false on a miss
func (c *SnapshotCache) Get(ctx context.Context) ([]domain.StockEntry, bool, error) {
	val, err := c.client.Get(ctx, StockSnapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		c.record(ctx, "get", "miss", nil)
		return nil, false, nil
	}
	if err != nil {
		c.record(ctx, "get", "error", err)
		return nil, false, fmt.Errorf("failed to read snapshot cache: %w", err)
	}

	var entries []domain.StockEntry
	if err := json.Unmarshal(val, &entries); err != nil {
		c.record(ctx, "get", "error", err)
		return nil, false, fmt.Errorf("failed to decode snapshot cache: %w", err)
	}

	c.record(ctx, "get", "hit", nil)
	return entries, true, nil
}

// Set stores the snapshot with the configured TTL
func (c *SnapshotCache) Set(ctx context.Context, entries []domain.StockEntry) error {
	if entries == nil {
		entries = []domain.StockEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := c.client.Set(ctx, StockSnapshotKey, data, c.ttl).Err(); err != nil {
		c.record(ctx, "set", "error", err)
		return fmt.Errorf("failed to write snapshot cache: %w", err)
	}
	c.record(ctx, "set", "stored", nil)
	return nil
}

// Invalidate removes the cached snapshot
func (c *SnapshotCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, StockSnapshotKey).Err(); err != nil {
		c.record(ctx, "invalidate", "error", err)
		return fmt.Errorf("failed to invalidate snapshot cache: %w", err)
	}
	c.record(ctx, "invalidate", "deleted", nil)
	return nil
}

func (c *SnapshotCache) record(ctx context.Context, operation, result string, err error) {
	if c.metrics != nil {
		c.metrics.RecordCacheRequest(cacheName, result)
	}
	if c.logger != nil {
		c.logger.CacheAccess(ctx, StockSnapshotKey, operation, result == "hit", err)
	}
}

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/creatorpulse/backend/internal/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// TTLs for cached derived results. Progress and analytics responses are
// recomputed on miss; these bound staleness.
const (
	ProgressTTL  = 5 * time.Minute
	AnalyticsTTL = 10 * time.Minute
)

// RedisClient wraps the redis.Client with centralized connection pooling
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient creates and initializes a Redis client with connection pooling
// Requires REDIS_HOST and optionally REDIS_PORT, REDIS_PASSWORD environment variables
func NewRedisClient(host string, port string, password string) (*RedisClient, error) {
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "6379"
	}

	addr := fmt.Sprintf("%s:%s", host, port)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		MaxRetries:   3,
		PoolSize:     10,
		MinIdleConns: 5,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.ErrorWithFields("Failed to connect to Redis", err)
		return nil, err
	}

	logger.Log.Info("✅ Redis client connected successfully",
		zap.String("address", addr),
	)

	return &RedisClient{client: client}, nil
}

// ProgressKey is the cache key for a user's progress report
func ProgressKey(userID string) string {
	return fmt.Sprintf("progress:%s", userID)
}

// SnapshotKey is the cache key for an analytics snapshot
func SnapshotKey(userID string, periodStart, periodEnd time.Time) string {
	return fmt.Sprintf("analytics:%s:%d:%d", userID, periodStart.Unix(), periodEnd.Unix())
}

// GetJSON loads and unmarshals a cached value into dest. Returns false
// on a miss; errors other than a miss are surfaced.
func (rc *RedisClient) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	data, err := rc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		// A corrupt entry behaves like a miss; it will be overwritten.
		logger.Warn("Dropping unreadable cache entry", zap.String("key", key), zap.Error(err))
		return false, nil
	}
	return true, nil
}

// SetJSON marshals and stores a value with a TTL
func (rc *RedisClient) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rc.client.Set(ctx, key, data, ttl).Err()
}

// Invalidate removes keys
func (rc *RedisClient) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return rc.client.Del(ctx, keys...).Err()
}

// Health checks Redis connectivity
func (rc *RedisClient) Health(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// Close shuts down the connection pool
func (rc *RedisClient) Close() error {
	return rc.client.Close()
}

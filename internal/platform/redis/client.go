// Package redis provides the Redis client used for server-side session state.
package redis

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewClient creates a Redis client and checks the connection.
func NewClient(cfg *config.Config, logger *zap.Logger) (*redis.Client, error) {
	options := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	// Managed Redis with a password is reached over TLS in release.
	if cfg.RedisPassword != "" && cfg.GinMode == "release" {
		options.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	client := redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.RedisAddr, err)
	}

	logger.Info("Connected to Redis", zap.String("addr", cfg.RedisAddr), zap.Int("db", cfg.RedisDB))
	return client, nil
}

// Close closes the client, logging any error.
func Close(client *redis.Client, logger *zap.Logger) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		logger.Error("Error closing Redis client", zap.Error(err))
		return
	}
	logger.Info("Redis connection closed")
}

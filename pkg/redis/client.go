package redis

import (
	"context"
	"time"

	"github.com/muhammadchandra19/hft/pkg/errors"
	"github.com/muhammadchandra19/hft/pkg/logger"
	"github.com/redis/go-redis/v9"
)

type client struct {
	logger    *logger.Logger
	config    *Config
	universal redis.UniversalClient
}

// NewClient creates a new Redis client with the provided logger and configuration.
func NewClient(logger *logger.Logger, config *Config) Client {
	return &client{
		logger: logger,
		config: config,
	}
}

func errRedisConfig(message string) error {
	return errors.NewErrorDetails(message, string(errors.RedisConfigError), "connect")
}

func (c *client) Connect(ctx context.Context) error {
	if c.config == nil {
		return errRedisConfig("Redis config is nil")
	}
	if err := c.config.Validate(); err != nil {
		return err
	}

	switch c.config.Mode {
	case Standalone:
		c.universal = redis.NewClient(&redis.Options{
			Addr:            c.config.Addrs[0],
			Username:        c.config.Username,
			Password:        c.config.Password,
			DB:              c.config.DB,
			MaxRetries:      c.config.MaxRetries,
			MinRetryBackoff: c.config.MinRetryBackoff,
			MaxRetryBackoff: c.config.MaxRetryBackoff,
			DialTimeout:     c.config.ConnectTimeout,
			ReadTimeout:     c.config.ConnectTimeout,
			WriteTimeout:    c.config.ConnectTimeout,
			PoolSize:        c.config.PoolSize,
			MinIdleConns:    c.config.MinIdleConns,
			PoolTimeout:     c.config.PoolTimeout,
		})
	case Cluster:
		c.universal = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:           c.config.Addrs,
			Username:        c.config.Username,
			Password:        c.config.Password,
			MaxRetries:      c.config.MaxRetries,
			MinRetryBackoff: c.config.MinRetryBackoff,
			MaxRetryBackoff: c.config.MaxRetryBackoff,
			DialTimeout:     c.config.ConnectTimeout,
			ReadTimeout:     c.config.ConnectTimeout,
			WriteTimeout:    c.config.ConnectTimeout,
			PoolSize:        c.config.PoolSize,
			MinIdleConns:    c.config.MinIdleConns,
			PoolTimeout:     c.config.PoolTimeout,
		})
	}

	if err := c.universal.Ping(ctx).Err(); err != nil {
		return errors.NewTracer("failed to connect to Redis").Wrap(
			errors.NewErrorDetails(err.Error(), string(errors.RedisConnectionError), "connect"),
		)
	}

	c.logger.Info("Connected to Redis",
		logger.Field{Key: "mode", Value: c.config.Mode},
		logger.Field{Key: "addrs", Value: c.config.Addrs},
	)
	return nil
}

func (c *client) Disconnect(ctx context.Context) error {
	if c.universal == nil {
		return nil
	}
	if err := c.universal.Close(); err != nil {
		return errors.NewErrorDetails(err.Error(), string(errors.RedisDisconnectionError), "disconnect")
	}
	return nil
}

func (c *client) Ping(ctx context.Context) error {
	if c.universal == nil {
		return errors.NewErrorDetails("Redis client is not connected", string(errors.RedisPingError), "ping")
	}
	if err := c.universal.Ping(ctx).Err(); err != nil {
		return errors.NewErrorDetails("Failed to ping Redis", string(errors.RedisPingError), "ping")
	}
	return nil
}

// Set stores value under the configured key prefix. A zero expiration falls back to DefaultTTL.
func (c *client) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	if expiration == 0 {
		expiration = c.config.DefaultTTL
	}
	if err := c.universal.Set(ctx, c.config.PrefixKey+key, value, expiration).Err(); err != nil {
		return errors.NewErrorDetails("Failed to set value in Redis", string(errors.RedisSetError), "set")
	}
	return nil
}

// Publish returns the number of subscribers that received the message. Zero
// subscribers is not an error: quotes are fire-and-forget on the channel.
func (c *client) Publish(ctx context.Context, channel string, message any) (int64, error) {
	published, err := c.universal.Publish(ctx, channel, message).Result()
	if err != nil {
		return 0, errors.NewErrorDetails("Failed to publish to Redis channel", string(errors.RedisPublishError), "publish")
	}
	return published, nil
}

package redis

import (
	"context"
	"time"
)

// Client defines the subset of Redis operations used for quote fan-out.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=redis_mock
type Client interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	Ping(ctx context.Context) error

	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Publish(ctx context.Context, channel string, message any) (int64, error)
}

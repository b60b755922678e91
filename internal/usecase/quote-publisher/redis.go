package quotepublisher

import (
	"context"
	"strconv"

	quotev1 "github.com/muhammadchandra19/hft/internal/domain/quote/v1"
	"github.com/muhammadchandra19/hft/pkg/config"
	"github.com/muhammadchandra19/hft/pkg/errors"
	"github.com/muhammadchandra19/hft/pkg/logger"
	"github.com/muhammadchandra19/hft/pkg/redis"
)

// RedisPublisher stores the latest quote per instrument and broadcasts every
// quote on a pub/sub channel.
type RedisPublisher struct {
	client    redis.Client
	channel   string
	latestKey string
	logger    *logger.Logger
}

// NewRedisPublisher creates a publisher over an already connected client.
func NewRedisPublisher(client redis.Client, cfg config.QuoteRedisConfig, log *logger.Logger) *RedisPublisher {
	return &RedisPublisher{
		client:    client,
		channel:   cfg.Channel,
		latestKey: cfg.LatestKey,
		logger:    log,
	}
}

// PublishQuote sets the instrument's latest quote key, then publishes the quote.
func (p *RedisPublisher) PublishQuote(ctx context.Context, payload *quotev1.Payload) error {
	value := quotev1.ToBytes(payload)
	key := p.latestKey + strconv.FormatUint(payload.InstrumentID, 10)

	if err := p.client.Set(ctx, key, value, 0); err != nil {
		return errors.NewTracer("failed to store latest quote").Wrap(err)
	}

	receivers, err := p.client.Publish(ctx, p.channel, value)
	if err != nil {
		return errors.NewTracer("failed to broadcast quote").Wrap(err)
	}

	p.logger.DebugContext(ctx, "Quote broadcast",
		logger.Field{Key: "channel", Value: p.channel},
		logger.Field{Key: "receivers", Value: receivers},
	)
	return nil
}

// Close disconnects the client.
func (p *RedisPublisher) Close() error {
	return p.client.Disconnect(context.Background())
}

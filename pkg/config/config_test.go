package config

import (
	"testing"
	"time"

	"github.com/muhammadchandra19/hft/pkg/redis"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, Load(cfg))

	assert.Equal(t, "hft-quoter", cfg.App.Name)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, ":8080", cfg.App.HTTPAddr)
	assert.Empty(t, cfg.FeedKafka.GroupID)
	assert.Empty(t, cfg.Quoting.InstrumentIDs)
	assert.Equal(t, 0, cfg.Quoting.VolatilityWindow)
	assert.Equal(t, 1.0, cfg.Quoting.PriceScale)
	assert.Equal(t, int32(6), cfg.Quoting.PricePrecision)
	assert.Equal(t, kafka.LastOffset, cfg.FeedKafka.StartOffset)
	assert.Equal(t, []string{"localhost:9092"}, cfg.FeedKafka.Brokers)
	assert.Equal(t, "itch-feed", cfg.FeedKafka.Topic)
	assert.True(t, cfg.QuoteKafka.Enabled)
	assert.False(t, cfg.QuoteRedis.Enabled)
	assert.Equal(t, redis.Standalone, cfg.Redis.Mode)
	assert.Equal(t, 5*time.Second, cfg.Redis.ConnectTimeout)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("QUOTING_INSTRUMENT_IDS", "4294967298,17,99")
	t.Setenv("QUOTING_VOLATILITY_WINDOW", "256")
	t.Setenv("QUOTING_PRICE_SCALE", "10000")
	t.Setenv("QUOTING_PRICE_PRECISION", "2")
	t.Setenv("FEED_KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("FEED_KAFKA_START_OFFSET", "-2")
	t.Setenv("QUOTE_REDIS_ENABLED", "true")
	t.Setenv("REDIS_ADDRS", "cache:6379")

	cfg := &Config{}
	require.NoError(t, Load(cfg))

	assert.Equal(t, []uint64{4294967298, 17, 99}, cfg.Quoting.InstrumentIDs)
	assert.Equal(t, 256, cfg.Quoting.VolatilityWindow)
	assert.Equal(t, 10000.0, cfg.Quoting.PriceScale)
	assert.Equal(t, int32(2), cfg.Quoting.PricePrecision)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.FeedKafka.Brokers)
	assert.Equal(t, kafka.FirstOffset, cfg.FeedKafka.StartOffset)
	assert.True(t, cfg.QuoteRedis.Enabled)
	assert.Equal(t, []string{"cache:6379"}, cfg.Redis.Addrs)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("QUOTING_VOLATILITY_WINDOW", "not-a-number")

	err := Load(&Config{})
	assert.Error(t, err)
}

func TestMustLoad_Panics(t *testing.T) {
	t.Setenv("QUOTING_PRICE_PRECISION", "six")

	assert.Panics(t, func() { MustLoad(&Config{}) })
}

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/muhammadchandra19/hft/pkg/redis"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load()

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and an optional .env file.
func Load[T any](cfg T) error {
	_ = godotenv.Load()

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	return nil
}

// Config holds the configuration for the quoter.
type Config struct {
	App        AppConfig        `envPrefix:"APP_"`
	Quoting    QuotingConfig    `envPrefix:"QUOTING_"`
	FeedKafka  FeedKafkaConfig  `envPrefix:"FEED_KAFKA_"`
	QuoteKafka QuoteKafkaConfig `envPrefix:"QUOTE_KAFKA_"`
	Redis      redis.Config     `envPrefix:"REDIS_"`
	QuoteRedis QuoteRedisConfig `envPrefix:"QUOTE_REDIS_"`
}

// AppConfig holds process-level settings.
type AppConfig struct {
	Name        string `env:"NAME" envDefault:"hft-quoter"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogEncoding string `env:"LOG_ENCODING" envDefault:"json"`
	// HTTPAddr serves /health and /stats; empty disables the listener.
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
}

// QuotingConfig holds the session parameters.
type QuotingConfig struct {
	// InstrumentIDs maps feed instrument ids to slots by position. Empty means the
	// instrument id is used as the slot index directly.
	InstrumentIDs []uint64 `env:"INSTRUMENT_IDS" envSeparator:","`
	// VolatilityWindow bounds each volatility buffer; 0 keeps every sample.
	VolatilityWindow int `env:"VOLATILITY_WINDOW" envDefault:"0"`
	// PriceScale divides raw book prices before quoting, e.g. 10000 for 4 implied decimals.
	PriceScale float64 `env:"PRICE_SCALE" envDefault:"1"`
	// PricePrecision is the number of decimal places published quote prices carry.
	PricePrecision int32 `env:"PRICE_PRECISION" envDefault:"6"`
}

// FeedKafkaConfig holds the configuration for the raw feed consumer.
type FeedKafkaConfig struct {
	Brokers   []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic     string   `env:"TOPIC" envDefault:"itch-feed"`
	GroupID   string   `env:"GROUP_ID"`
	Partition int      `env:"PARTITION" envDefault:"0"`
	// StartOffset seeds a partition reader: -1 is the newest message, -2 the oldest.
	StartOffset int64 `env:"START_OFFSET" envDefault:"-1"`
	MinBytes  int      `env:"MIN_BYTES" envDefault:"1"`
	MaxBytes  int      `env:"MAX_BYTES" envDefault:"10000000"`
}

// QuoteKafkaConfig holds the configuration for the quote producer.
type QuoteKafkaConfig struct {
	Enabled bool     `env:"ENABLED" envDefault:"true"`
	Brokers []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic   string   `env:"TOPIC" envDefault:"quotes"`
}

// QuoteRedisConfig holds the configuration for the Redis quote fan-out.
type QuoteRedisConfig struct {
	Enabled   bool   `env:"ENABLED" envDefault:"false"`
	Channel   string `env:"CHANNEL" envDefault:"quotes"`
	LatestKey string `env:"LATEST_KEY" envDefault:"quote:latest:"`
}

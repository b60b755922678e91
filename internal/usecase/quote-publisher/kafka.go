package quotepublisher

import (
	"context"

	quotev1 "github.com/muhammadchandra19/hft/internal/domain/quote/v1"
	"github.com/muhammadchandra19/hft/pkg/config"
	"github.com/muhammadchandra19/hft/pkg/errors"
	"github.com/muhammadchandra19/hft/pkg/logger"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes quotes to a Kafka topic keyed by instrument.
type KafkaPublisher struct {
	kafkaWriter messageWriter
	logger      *logger.Logger
}

// NewKafkaPublisher creates a new Kafka publisher for the quote topic.
func NewKafkaPublisher(cfg config.QuoteKafkaConfig, log *logger.Logger) *KafkaPublisher {
	kafkaWriter := &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers...),
		Topic:    cfg.Topic,
		Balancer: &kafka.Hash{},
	}

	return &KafkaPublisher{
		kafkaWriter: kafkaWriter,
		logger:      log,
	}
}

// PublishQuote publishes a quote to the Kafka topic.
func (p *KafkaPublisher) PublishQuote(ctx context.Context, payload *quotev1.Payload) error {
	msg := kafka.Message{
		Key:   payload.Key(),
		Value: quotev1.ToBytes(payload),
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.ErrorContext(ctx, err,
			logger.Field{Key: "quoteID", Value: payload.ID},
			logger.Field{Key: "instrumentID", Value: payload.InstrumentID},
		)
		return errors.NewTracer("failed to publish quote").Wrap(
			errors.NewErrorDetails(err.Error(), string(errors.ErrQuotePublish), "kafka"),
		)
	}
	return nil
}

// Close flushes pending writes and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.kafkaWriter.Close()
}

package feedreader

import (
	"context"

	itchv1 "github.com/muhammadchandra19/hft/internal/domain/itch/v1"
	"github.com/muhammadchandra19/hft/internal/usecase/decoder"
	"github.com/muhammadchandra19/hft/pkg/config"
	"github.com/muhammadchandra19/hft/pkg/errors"
	"github.com/muhammadchandra19/hft/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// messageReader is the part of *kafka.Reader the feed reader depends on.
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	SetOffset(offset int64) error
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Reader consumes raw 36-byte frames from the feed topic.
type Reader struct {
	kafkaReader messageReader
	logger      *logger.Logger
	grouped     bool
}

// NewReader creates a new Kafka reader for the feed topic. With a GroupID the
// reader joins the consumer group and offsets are committed; without one it
// reads the configured partition directly.
func NewReader(cfg config.FeedKafkaConfig, log *logger.Logger) *Reader {
	readerConfig := kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		MinBytes:    cfg.MinBytes,
		MaxBytes:    cfg.MaxBytes,
		StartOffset: kafka.LastOffset,
	}
	if cfg.GroupID != "" {
		readerConfig.GroupID = cfg.GroupID
	} else {
		readerConfig.Partition = cfg.Partition
	}

	return newReader(kafka.NewReader(readerConfig), log, cfg.GroupID != "")
}

func newReader(r messageReader, log *logger.Logger, grouped bool) *Reader {
	return &Reader{
		kafkaReader: r,
		logger:      log,
		grouped:     grouped,
	}
}

// logError is a helper method to log errors consistently
func (r *Reader) logError(err error, operation string) {
	r.logger.Error(err,
		logger.Field{Key: "operation", Value: operation},
	)
}

// SetOffset sets the offset for the Kafka reader. Group readers manage their
// own offsets and ignore it.
func (r *Reader) SetOffset(offset int64) error {
	if r.grouped {
		return nil
	}
	if err := r.kafkaReader.SetOffset(offset); err != nil {
		r.logError(err, "SetOffset")
		return errors.TracerFromError(err)
	}
	return nil
}

// ReadFrame reads a message from the Kafka topic and parses it as a block.
func (r *Reader) ReadFrame(ctx context.Context) (kafka.Message, itchv1.Block, error) {
	msg, err := r.kafkaReader.ReadMessage(ctx)
	if err != nil {
		return kafka.Message{}, itchv1.Block{}, errors.NewTracer("failed to read feed message").Wrap(err)
	}

	block, err := decoder.ParseFrame(msg.Value)
	if err != nil {
		r.logger.Warn("Discarding malformed frame",
			logger.Field{Key: "partition", Value: msg.Partition},
			logger.Field{Key: "offset", Value: msg.Offset},
			logger.Field{Key: "size", Value: len(msg.Value)},
		)
		return msg, itchv1.Block{}, err
	}

	r.logger.Debug("ReadFrame",
		logger.Field{Key: "partition", Value: msg.Partition},
		logger.Field{Key: "offset", Value: msg.Offset},
	)

	return msg, block, nil
}

// Close properly closes the Kafka reader.
func (r *Reader) Close() error {
	if err := r.kafkaReader.Close(); err != nil {
		r.logError(err, "Close")
		return err
	}
	return nil
}

// CommitMessages commits the messages to Kafka after processing. Partition
// readers have nothing to commit.
func (r *Reader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	if !r.grouped {
		return nil
	}
	if err := r.kafkaReader.CommitMessages(ctx, msgs...); err != nil {
		r.logError(err, "CommitMessages")
		return errors.TracerFromError(err)
	}
	return nil
}

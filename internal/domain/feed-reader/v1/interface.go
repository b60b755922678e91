package feedreaderv1

import (
	"context"

	itchv1 "github.com/muhammadchandra19/hft/internal/domain/itch/v1"
	"github.com/segmentio/kafka-go"
)

// FeedReader defines the interface for reading raw feed frames from a source.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=feedreaderv1_mock
type FeedReader interface {
	// ReadFrame reads the next message and parses its value as a register block.
	// A message that is not a valid frame is returned together with the error
	// so the caller can still commit past it.
	ReadFrame(ctx context.Context) (kafka.Message, itchv1.Block, error)
	// SetOffset sets the offset for the reader
	SetOffset(offset int64) error
	// Close closes the reader
	Close() error

	// CommitMessages commits the messages to Kafka after processing
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

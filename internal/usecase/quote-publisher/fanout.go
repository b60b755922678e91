package quotepublisher

import (
	"context"

	quotepublisherv1 "github.com/muhammadchandra19/hft/internal/domain/quote-publisher/v1"
	quotev1 "github.com/muhammadchandra19/hft/internal/domain/quote/v1"
	"github.com/muhammadchandra19/hft/pkg/errors"
	"github.com/muhammadchandra19/hft/pkg/logger"
)

// Fanout delivers every quote to each of its sinks in order. A failing sink
// does not stop delivery to the rest.
type Fanout struct {
	sinks  []quotepublisherv1.QuotePublisher
	logger *logger.Logger
}

// NewFanout creates a publisher over sinks.
func NewFanout(log *logger.Logger, sinks ...quotepublisherv1.QuotePublisher) *Fanout {
	return &Fanout{sinks: sinks, logger: log}
}

// PublishQuote publishes to every sink and returns the first failure.
func (f *Fanout) PublishQuote(ctx context.Context, payload *quotev1.Payload) error {
	var firstErr error
	for _, sink := range f.sinks {
		if err := sink.PublishQuote(ctx, payload); err != nil {
			f.logger.ErrorContext(ctx, err, logger.Field{Key: "action", Value: "publish_quote"})
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Close closes every sink and returns the first failure.
func (f *Fanout) Close() error {
	var firstErr error
	for _, sink := range f.sinks {
		if err := sink.Close(); err != nil && firstErr == nil {
			firstErr = errors.TracerFromError(err)
		}
	}
	return firstErr
}

// Len returns the number of sinks.
func (f *Fanout) Len() int {
	return len(f.sinks)
}

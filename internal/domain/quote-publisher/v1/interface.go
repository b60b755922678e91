package quotepublisherv1

import (
	"context"

	quotev1 "github.com/muhammadchandra19/hft/internal/domain/quote/v1"
)

// QuotePublisher defines the interface for publishing quotes.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=quotepublisherv1_mock
type QuotePublisher interface {
	// PublishQuote delivers a quote to the sink.
	PublishQuote(ctx context.Context, payload *quotev1.Payload) error
	// Close releases the sink.
	Close() error
}

package session

import (
	"time"

	itchv1 "github.com/muhammadchandra19/hft/internal/domain/itch/v1"
	quotev1 "github.com/muhammadchandra19/hft/internal/domain/quote/v1"
	"github.com/segmentio/kafka-go"
)

// Options represents configuration options for the Session.
type Options struct {
	// InstrumentCount is the number of volatility and inventory slots. It is
	// raised to len(InstrumentIDs) when that is larger.
	InstrumentCount int
	// InstrumentIDs maps feed instrument ids to slots by position. When empty
	// the instrument id is the slot index.
	InstrumentIDs []uint64
	// VolatilityWindow bounds each volatility buffer; 0 keeps every sample.
	VolatilityWindow int
	// PriceScale divides raw book prices before quoting.
	PriceScale float64
	// PricePrecision is the number of decimal places published quotes carry.
	PricePrecision int32
	// StartOffset is handed to the feed reader before the first read.
	StartOffset int64
	// ReadBackoff is the pause after a failed feed read.
	ReadBackoff time.Duration
}

// DefaultSessionOptions returns the default session options.
func DefaultSessionOptions() *Options {
	return &Options{
		InstrumentCount:  itchv1.DefaultInstrumentCount,
		VolatilityWindow: 0,
		PriceScale:       1,
		PricePrecision:   quotev1.DefaultPricePrecision,
		StartOffset:      kafka.LastOffset,
		ReadBackoff:      100 * time.Millisecond,
	}
}

func (o *Options) instrumentCount() int {
	return max(o.InstrumentCount, len(o.InstrumentIDs))
}

func (o *Options) priceScale() float64 {
	if o.PriceScale <= 0 {
		return 1
	}
	return o.PriceScale
}

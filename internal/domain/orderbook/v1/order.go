package orderbookv1

import (
	"time"

	itchv1 "github.com/muhammadchandra19/hft/internal/domain/itch/v1"
)

// Order represents a single resting order in the book.
type Order struct {
	ID           uint64      `json:"id"`
	InstrumentID uint64      `json:"instrumentID"`
	Side         itchv1.Side `json:"side"`
	Size         uint32      `json:"size"`
	Limit        *Limit      `json:"-"`
	Timestamp    int64       `json:"timestamp"`
}

// NewOrder creates a new order with the given parameters.
func NewOrder(instrumentID, orderID uint64, side itchv1.Side, size uint32) *Order {
	return &Order{
		ID:           orderID,
		InstrumentID: instrumentID,
		Side:         side,
		Size:         size,
		Timestamp:    time.Now().UnixNano(),
	}
}

// IsBid checks if the order is a bid (buy) order.
func (o *Order) IsBid() bool {
	return o.Side.IsBuy()
}

// IsAsk checks if the order is an ask (sell) order.
func (o *Order) IsAsk() bool {
	return o.Side.IsSell()
}

// IsFilled checks if the order is filled (size is zero).
func (o *Order) IsFilled() bool {
	return o.Size == 0
}

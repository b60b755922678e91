package orderbookv1

import (
	"errors"
	"fmt"
)

var (
	ErrNilOrder      = errors.New("order cannot be nil")
	ErrInvalidSize   = errors.New("size must be positive")
	ErrOrderNotFound = errors.New("order not found in limit")
)

// Limit represents a price level in the order book with associated orders.
// Access is serialized by the owning book.
type Limit struct {
	Price       uint32   `json:"price"`
	Orders      []*Order `json:"orders"`
	TotalVolume uint64   `json:"totalVolume"`
}

// NewLimit creates a new Limit with the specified price.
func NewLimit(price uint32) *Limit {
	return &Limit{
		Price:  price,
		Orders: make([]*Order, 0),
	}
}

// AddOrder adds an order to the limit and updates the total volume.
func (l *Limit) AddOrder(order *Order) error {
	if order == nil {
		return ErrNilOrder
	}
	if order.Size == 0 {
		return fmt.Errorf("%w: order %d", ErrInvalidSize, order.ID)
	}

	order.Limit = l
	l.Orders = append(l.Orders, order)
	l.TotalVolume += uint64(order.Size)

	return nil
}

// RemoveOrder removes an order from the limit and updates the total volume.
func (l *Limit) RemoveOrder(order *Order) error {
	if order == nil {
		return ErrNilOrder
	}

	for i, o := range l.Orders {
		if o == order {
			l.Orders = append(l.Orders[:i], l.Orders[i+1:]...)
			l.TotalVolume -= uint64(order.Size)
			order.Limit = nil
			return nil
		}
	}

	return ErrOrderNotFound
}

// Fill takes up to quantity from order and returns the size actually filled.
// A fully filled order is removed from the limit.
func (l *Limit) Fill(order *Order, quantity uint32) (uint32, error) {
	if order == nil {
		return 0, ErrNilOrder
	}
	if order.Limit != l {
		return 0, ErrOrderNotFound
	}

	filled := min(quantity, order.Size)
	order.Size -= filled
	l.TotalVolume -= uint64(filled)

	if order.IsFilled() {
		// Size is already zero so the volume is not subtracted twice.
		return filled, l.RemoveOrder(order)
	}
	return filled, nil
}

// IsEmpty checks if the limit has no orders
func (l *Limit) IsEmpty() bool {
	return len(l.Orders) == 0
}

// OrderCount returns the number of orders at this limit
func (l *Limit) OrderCount() int {
	return len(l.Orders)
}

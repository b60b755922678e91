package orderbook

import (
	"fmt"
	"sort"
	"sync"

	itchv1 "github.com/muhammadchandra19/hft/internal/domain/itch/v1"
	orderbookv1 "github.com/muhammadchandra19/hft/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/hft/pkg/errors"
)

var _ orderbookv1.Book = (*Orderbook)(nil)

// Orderbook is an in-memory book keeping every instrument seen on the feed.
type Orderbook struct {
	mu          sync.RWMutex
	instruments map[uint64]*instrumentBook
}

// instrumentBook holds the price levels and resting orders of one instrument.
type instrumentBook struct {
	askLimits map[uint32]*orderbookv1.Limit // price -> limit
	bidLimits map[uint32]*orderbookv1.Limit // price -> limit
	orders    map[uint64]*orderbookv1.Order // orderID -> order
}

// NewOrderbook creates a new orderbook
func NewOrderbook() *Orderbook {
	return &Orderbook{
		instruments: make(map[uint64]*instrumentBook),
	}
}

func newInstrumentBook() *instrumentBook {
	return &instrumentBook{
		askLimits: make(map[uint32]*orderbookv1.Limit),
		bidLimits: make(map[uint32]*orderbookv1.Limit),
		orders:    make(map[uint64]*orderbookv1.Order),
	}
}

// AddOrder rests a new order at price.
func (ob *Orderbook) AddOrder(instrumentID, orderID uint64, side itchv1.Side, quantity, price uint32) error {
	if !side.IsBuy() && !side.IsSell() {
		return invalidOrder(fmt.Sprintf("order %d has unknown side %s", orderID, side), "side")
	}
	if quantity == 0 {
		return invalidOrder(fmt.Sprintf("order %d has zero quantity", orderID), "quantity")
	}
	if price == 0 {
		return invalidOrder(fmt.Sprintf("order %d has zero price", orderID), "price")
	}

	ob.mu.Lock()
	defer ob.mu.Unlock()

	book, exists := ob.instruments[instrumentID]
	if !exists {
		book = newInstrumentBook()
		ob.instruments[instrumentID] = book
	}

	if _, exists := book.orders[orderID]; exists {
		return errors.NewErrorDetails(
			fmt.Sprintf("order %d already rests on instrument %d", orderID, instrumentID),
			string(errors.ErrDuplicateOrder),
			"orderID",
		)
	}

	limits := book.limits(side)
	limit, exists := limits[price]
	if !exists {
		limit = orderbookv1.NewLimit(price)
		limits[price] = limit
	}

	order := orderbookv1.NewOrder(instrumentID, orderID, side, quantity)
	if err := limit.AddOrder(order); err != nil {
		return errors.TracerFromError(err)
	}

	book.orders[orderID] = order

	return nil
}

// CancelOrder removes an order. The side must match the side the order rests on.
func (ob *Orderbook) CancelOrder(instrumentID uint64, side itchv1.Side, orderID uint64) error {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	book, order, err := ob.lookup(instrumentID, orderID)
	if err != nil {
		return err
	}
	if order.Side != side {
		return orderNotFound(instrumentID, orderID)
	}

	book.remove(order)
	return nil
}

// ExecuteOrder fills quantity of a resting order and returns its side. A fill
// larger than the resting size removes the order.
func (ob *Orderbook) ExecuteOrder(instrumentID uint64, quantity uint32, orderID uint64) (itchv1.Side, error) {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	book, order, err := ob.lookup(instrumentID, orderID)
	if err != nil {
		return 0, err
	}

	// Store limit reference before filling (a full fill sets order.Limit to nil)
	limit := order.Limit
	if _, err := limit.Fill(order, quantity); err != nil {
		return 0, errors.TracerFromError(err)
	}

	if order.IsFilled() {
		delete(book.orders, orderID)
		if limit.IsEmpty() {
			delete(book.limits(order.Side), limit.Price)
		}
	}

	return order.Side, nil
}

// BestBid returns the highest resting bid price.
func (ob *Orderbook) BestBid(instrumentID uint64) (uint32, error) {
	bids := ob.Bids(instrumentID)
	if len(bids) == 0 {
		return 0, noLiquidity(instrumentID, itchv1.SideBuy)
	}
	return bids[0].Price, nil
}

// BestAsk returns the lowest resting ask price.
func (ob *Orderbook) BestAsk(instrumentID uint64) (uint32, error) {
	asks := ob.Asks(instrumentID)
	if len(asks) == 0 {
		return 0, noLiquidity(instrumentID, itchv1.SideSell)
	}
	return asks[0].Price, nil
}

// Asks returns ask limits sorted by price (ascending)
func (ob *Orderbook) Asks(instrumentID uint64) orderbookv1.Limits {
	ob.mu.RLock()
	defer ob.mu.RUnlock()

	book, exists := ob.instruments[instrumentID]
	if !exists {
		return nil
	}

	limits := collect(book.askLimits)
	sort.Sort(orderbookv1.ByBestAsk{Limits: limits})
	return limits
}

// Bids returns bid limits sorted by price (descending)
func (ob *Orderbook) Bids(instrumentID uint64) orderbookv1.Limits {
	ob.mu.RLock()
	defer ob.mu.RUnlock()

	book, exists := ob.instruments[instrumentID]
	if !exists {
		return nil
	}

	limits := collect(book.bidLimits)
	sort.Sort(orderbookv1.ByBestBid{Limits: limits})
	return limits
}

// OrderCount returns the number of resting orders for the instrument.
func (ob *Orderbook) OrderCount(instrumentID uint64) int {
	ob.mu.RLock()
	defer ob.mu.RUnlock()

	book, exists := ob.instruments[instrumentID]
	if !exists {
		return 0
	}
	return len(book.orders)
}

func (ob *Orderbook) lookup(instrumentID, orderID uint64) (*instrumentBook, *orderbookv1.Order, error) {
	book, exists := ob.instruments[instrumentID]
	if !exists {
		return nil, nil, orderNotFound(instrumentID, orderID)
	}
	order, exists := book.orders[orderID]
	if !exists {
		return nil, nil, orderNotFound(instrumentID, orderID)
	}
	return book, order, nil
}

func (b *instrumentBook) limits(side itchv1.Side) map[uint32]*orderbookv1.Limit {
	if side.IsBuy() {
		return b.bidLimits
	}
	return b.askLimits
}

func (b *instrumentBook) remove(order *orderbookv1.Order) {
	limit := order.Limit
	if limit != nil {
		_ = limit.RemoveOrder(order)
		if limit.IsEmpty() {
			delete(b.limits(order.Side), limit.Price)
		}
	}
	delete(b.orders, order.ID)
}

func collect(levels map[uint32]*orderbookv1.Limit) orderbookv1.Limits {
	limits := make(orderbookv1.Limits, 0, len(levels))
	for _, limit := range levels {
		limits = append(limits, limit)
	}
	return limits
}

func invalidOrder(message, field string) error {
	return errors.NewErrorDetails(message, string(errors.ErrInvalidOrder), field)
}

func orderNotFound(instrumentID, orderID uint64) error {
	return errors.NewErrorDetails(
		fmt.Sprintf("order %d not found on instrument %d", orderID, instrumentID),
		string(errors.ErrOrderNotFound),
		"orderID",
	)
}

func noLiquidity(instrumentID uint64, side itchv1.Side) error {
	return errors.NewErrorDetails(
		fmt.Sprintf("no %s liquidity on instrument %d", side, instrumentID),
		string(errors.ErrNoLiquidity),
		"side",
	)
}

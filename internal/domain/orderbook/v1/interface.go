package orderbookv1

import itchv1 "github.com/muhammadchandra19/hft/internal/domain/itch/v1"

// Book is the per-instrument limit order book the session maintains from the
// feed. Prices are raw feed units.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=orderbookv1_mock
type Book interface {
	// AddOrder rests a new order on the book.
	AddOrder(instrumentID, orderID uint64, side itchv1.Side, quantity, price uint32) error
	// CancelOrder removes a resting order.
	CancelOrder(instrumentID uint64, side itchv1.Side, orderID uint64) error
	// ExecuteOrder fills quantity of a resting order and returns the side it rested on.
	ExecuteOrder(instrumentID uint64, quantity uint32, orderID uint64) (itchv1.Side, error)

	BestBid(instrumentID uint64) (uint32, error)
	BestAsk(instrumentID uint64) (uint32, error)
}

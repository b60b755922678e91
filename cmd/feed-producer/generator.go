package main

import (
	"math/rand"

	itchv1 "github.com/muhammadchandra19/hft/internal/domain/itch/v1"
)

const (
	orderIDLowMask   = 0xFFF
	timestampGapBit  = uint64(1) << 24
	timestampMaxBits = uint64(1)<<49 - 1
)

// restingOrder is an order the generator believes is on the book.
type restingOrder struct {
	id       uint64
	side     itchv1.Side
	quantity uint32
}

// generator produces a plausible stream of add, cancel and execute events
// whose values the register layout can carry.
type generator struct {
	rng         *rand.Rand
	instruments []uint64
	basePrice   uint32
	spread      uint32
	seq         uint64
	clock       uint64
	resting     map[uint64][]restingOrder
}

// newGenerator creates a generator. spread is clamped below basePrice so bid
// prices stay positive.
func newGenerator(seed int64, instruments []uint64, basePrice, spread uint32) *generator {
	basePrice = max(basePrice, 2)
	spread = min(max(spread, 1), basePrice-1)

	return &generator{
		rng:         rand.New(rand.NewSource(seed)),
		instruments: instruments,
		basePrice:   basePrice,
		spread:      spread,
		resting:     make(map[uint64][]restingOrder),
	}
}

// representableID spreads a sequence number over the order id bits the layout
// keeps: the low 12 bits and bits 32 and up. Sequence numbers below 4096
// yield ids under 2^29, which the quoter treats as its own orders.
func representableID(seq uint64) uint64 {
	return seq&orderIDLowMask | (seq>>12)<<32
}

// representableTimestamp clears the bit the layout drops and caps the width.
func representableTimestamp(ts uint64) uint64 {
	return ts & timestampMaxBits &^ timestampGapBit
}

func (g *generator) next() itchv1.OrderEvent {
	instrument := g.instruments[g.rng.Intn(len(g.instruments))]
	g.clock += uint64(g.rng.Intn(1000) + 1)

	resting := g.resting[instrument]
	roll := g.rng.Float64()

	switch {
	case len(resting) > 0 && roll < 0.15:
		return g.execute(instrument)
	case len(resting) > 0 && roll < 0.35:
		return g.cancel(instrument)
	default:
		return g.add(instrument)
	}
}

func (g *generator) add(instrument uint64) itchv1.OrderEvent {
	g.seq++
	side := itchv1.SideBuy
	price := g.basePrice - uint32(g.rng.Intn(int(g.spread)))
	if g.rng.Intn(2) == 0 {
		side = itchv1.SideSell
		price = g.basePrice + 1 + uint32(g.rng.Intn(int(g.spread)))
	}

	order := restingOrder{
		id:       representableID(g.seq),
		side:     side,
		quantity: uint32(g.rng.Intn(500) + 1),
	}
	g.resting[instrument] = append(g.resting[instrument], order)

	return g.event(itchv1.OrderTypeAdd, instrument, order, order.quantity, price)
}

func (g *generator) cancel(instrument uint64) itchv1.OrderEvent {
	order := g.take(instrument, g.rng.Intn(len(g.resting[instrument])))
	return g.event(itchv1.OrderTypeCancel, instrument, order, 0, 0)
}

func (g *generator) execute(instrument uint64) itchv1.OrderEvent {
	i := g.rng.Intn(len(g.resting[instrument]))
	order := g.resting[instrument][i]

	fill := uint32(g.rng.Intn(int(order.quantity)) + 1)
	if fill == order.quantity {
		g.take(instrument, i)
	} else {
		g.resting[instrument][i].quantity -= fill
	}

	return g.event(itchv1.OrderTypeExecute, instrument, order, fill, 0)
}

func (g *generator) take(instrument uint64, i int) restingOrder {
	orders := g.resting[instrument]
	order := orders[i]
	g.resting[instrument] = append(orders[:i], orders[i+1:]...)
	return order
}

func (g *generator) event(t itchv1.OrderType, instrument uint64, order restingOrder, quantity, price uint32) itchv1.OrderEvent {
	return itchv1.OrderEvent{
		Type:           t,
		TrackingNumber: uint16(g.seq),
		Timestamp:      representableTimestamp(g.clock),
		OrderID:        order.id,
		Side:           order.side,
		Quantity:       quantity,
		InstrumentID:   instrument,
		Price:          price,
	}
}

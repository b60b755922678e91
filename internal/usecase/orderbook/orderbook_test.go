package orderbook

import (
	"sync"
	"testing"

	itchv1 "github.com/muhammadchandra19/hft/internal/domain/itch/v1"
	"github.com/muhammadchandra19/hft/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const instrument uint64 = 4294967298

func TestOrderbook_BestPrices(t *testing.T) {
	ob := NewOrderbook()

	require.NoError(t, ob.AddOrder(instrument, 1, itchv1.SideBuy, 10, 99))
	require.NoError(t, ob.AddOrder(instrument, 2, itchv1.SideBuy, 10, 98))
	require.NoError(t, ob.AddOrder(instrument, 3, itchv1.SideSell, 10, 101))
	require.NoError(t, ob.AddOrder(instrument, 4, itchv1.SideSell, 10, 103))

	bid, err := ob.BestBid(instrument)
	require.NoError(t, err)
	assert.Equal(t, uint32(99), bid)

	ask, err := ob.BestAsk(instrument)
	require.NoError(t, err)
	assert.Equal(t, uint32(101), ask)

	assert.Equal(t, 4, ob.OrderCount(instrument))
	assert.Len(t, ob.Bids(instrument), 2)
	assert.Equal(t, uint32(103), ob.Asks(instrument)[1].Price)
}

func TestOrderbook_SamePriceLevel(t *testing.T) {
	ob := NewOrderbook()

	require.NoError(t, ob.AddOrder(instrument, 1, itchv1.SideSell, 10, 100))
	require.NoError(t, ob.AddOrder(instrument, 2, itchv1.SideSell, 5, 100))

	asks := ob.Asks(instrument)
	require.Len(t, asks, 1)
	assert.Equal(t, 2, asks[0].OrderCount())
	assert.Equal(t, uint64(15), asks[0].TotalVolume)
}

func TestOrderbook_InstrumentsAreSeparate(t *testing.T) {
	ob := NewOrderbook()

	require.NoError(t, ob.AddOrder(1, 1, itchv1.SideBuy, 10, 99))
	// the same order id is allowed on another instrument
	require.NoError(t, ob.AddOrder(2, 1, itchv1.SideBuy, 10, 50))

	bid, err := ob.BestBid(2)
	require.NoError(t, err)
	assert.Equal(t, uint32(50), bid)

	_, err = ob.BestAsk(1)
	assert.True(t, errors.ErrorCodeEquals(err, string(errors.ErrNoLiquidity)))
}

func TestOrderbook_AddOrderRejects(t *testing.T) {
	testCases := []struct {
		name         string
		orderID      uint64
		side         itchv1.Side
		quantity     uint32
		price        uint32
		expectedCode errors.ErrorCode
	}{
		{name: "unknown side", orderID: 2, side: itchv1.Side('?'), quantity: 1, price: 1, expectedCode: errors.ErrInvalidOrder},
		{name: "zero quantity", orderID: 2, side: itchv1.SideBuy, quantity: 0, price: 1, expectedCode: errors.ErrInvalidOrder},
		{name: "zero price", orderID: 2, side: itchv1.SideBuy, quantity: 1, price: 0, expectedCode: errors.ErrInvalidOrder},
		{name: "duplicate", orderID: 1, side: itchv1.SideSell, quantity: 1, price: 1, expectedCode: errors.ErrDuplicateOrder},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ob := NewOrderbook()
			require.NoError(t, ob.AddOrder(instrument, 1, itchv1.SideBuy, 10, 99))

			err := ob.AddOrder(instrument, tc.orderID, tc.side, tc.quantity, tc.price)
			require.Error(t, err)
			assert.True(t, errors.ErrorCodeEquals(err, string(tc.expectedCode)))
			assert.Equal(t, 1, ob.OrderCount(instrument))
		})
	}
}

func TestOrderbook_CancelOrder(t *testing.T) {
	ob := NewOrderbook()
	require.NoError(t, ob.AddOrder(instrument, 1, itchv1.SideBuy, 10, 99))
	require.NoError(t, ob.AddOrder(instrument, 2, itchv1.SideBuy, 10, 98))

	err := ob.CancelOrder(instrument, itchv1.SideSell, 1)
	assert.True(t, errors.ErrorCodeEquals(err, string(errors.ErrOrderNotFound)))

	require.NoError(t, ob.CancelOrder(instrument, itchv1.SideBuy, 1))

	bid, err := ob.BestBid(instrument)
	require.NoError(t, err)
	assert.Equal(t, uint32(98), bid)
	assert.Len(t, ob.Bids(instrument), 1)

	err = ob.CancelOrder(instrument, itchv1.SideBuy, 1)
	assert.True(t, errors.ErrorCodeEquals(err, string(errors.ErrOrderNotFound)))

	err = ob.CancelOrder(77, itchv1.SideBuy, 2)
	assert.True(t, errors.ErrorCodeEquals(err, string(errors.ErrOrderNotFound)))
}

func TestOrderbook_ExecuteOrder(t *testing.T) {
	ob := NewOrderbook()
	require.NoError(t, ob.AddOrder(instrument, 1, itchv1.SideSell, 10, 101))
	require.NoError(t, ob.AddOrder(instrument, 2, itchv1.SideSell, 10, 102))

	side, err := ob.ExecuteOrder(instrument, 4, 1)
	require.NoError(t, err)
	assert.Equal(t, itchv1.SideSell, side)
	assert.Equal(t, uint64(6), ob.Asks(instrument)[0].TotalVolume)

	side, err = ob.ExecuteOrder(instrument, 6, 1)
	require.NoError(t, err)
	assert.Equal(t, itchv1.SideSell, side)

	ask, err := ob.BestAsk(instrument)
	require.NoError(t, err)
	assert.Equal(t, uint32(102), ask)
	assert.Equal(t, 1, ob.OrderCount(instrument))

	_, err = ob.ExecuteOrder(instrument, 1, 1)
	assert.True(t, errors.ErrorCodeEquals(err, string(errors.ErrOrderNotFound)))
}

func TestOrderbook_EmptyBook(t *testing.T) {
	ob := NewOrderbook()

	_, err := ob.BestBid(instrument)
	assert.True(t, errors.ErrorCodeEquals(err, string(errors.ErrNoLiquidity)))
	_, err = ob.BestAsk(instrument)
	assert.True(t, errors.ErrorCodeEquals(err, string(errors.ErrNoLiquidity)))
	assert.Nil(t, ob.Bids(instrument))
	assert.Zero(t, ob.OrderCount(instrument))
}

func TestOrderbook_ConcurrentReaders(t *testing.T) {
	ob := NewOrderbook()
	require.NoError(t, ob.AddOrder(instrument, 1, itchv1.SideBuy, 10, 99))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id uint64) {
			defer wg.Done()
			_ = ob.AddOrder(instrument, id, itchv1.SideSell, 1, 100+uint32(id))
			_, _ = ob.BestBid(instrument)
			_, _ = ob.BestAsk(instrument)
		}(uint64(i + 2))
	}
	wg.Wait()

	assert.Equal(t, 9, ob.OrderCount(instrument))
	ask, err := ob.BestAsk(instrument)
	require.NoError(t, err)
	assert.Equal(t, uint32(102), ask)
}

package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	feedreadermock "github.com/muhammadchandra19/hft/internal/domain/feed-reader/v1/mock"
	itchv1 "github.com/muhammadchandra19/hft/internal/domain/itch/v1"
	orderbookmock "github.com/muhammadchandra19/hft/internal/domain/orderbook/v1/mock"
	quotepublishermock "github.com/muhammadchandra19/hft/internal/domain/quote-publisher/v1/mock"
	quotev1 "github.com/muhammadchandra19/hft/internal/domain/quote/v1"
	"github.com/muhammadchandra19/hft/internal/usecase/decoder"
	"github.com/muhammadchandra19/hft/internal/usecase/orderbook"
	"github.com/muhammadchandra19/hft/pkg/errors"
	"github.com/muhammadchandra19/hft/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test fixtures and helpers
type testFixture struct {
	ctrl          *gomock.Controller
	mockBook      *orderbookmock.MockBook
	mockFeed      *feedreadermock.MockFeedReader
	mockPublisher *quotepublishermock.MockQuotePublisher
	logger        *logger.Logger
}

func setupTestFixture(t *testing.T) *testFixture {
	ctrl := gomock.NewController(t)

	return &testFixture{
		ctrl:          ctrl,
		mockBook:      orderbookmock.NewMockBook(ctrl),
		mockFeed:      feedreadermock.NewMockFeedReader(ctrl),
		mockPublisher: quotepublishermock.NewMockQuotePublisher(ctrl),
		logger:        logger.NewNopLogger(),
	}
}

func (f *testFixture) teardown() {
	f.ctrl.Finish()
}

func (f *testFixture) expectTouch(instrumentID uint64, bid, ask uint32) {
	f.mockBook.EXPECT().BestBid(instrumentID).Return(bid, nil)
	f.mockBook.EXPECT().BestAsk(instrumentID).Return(ask, nil)
}

func createTestEvent(orderType itchv1.OrderType, instrumentID, orderID uint64, side itchv1.Side, quantity, price uint32) itchv1.OrderEvent {
	return itchv1.OrderEvent{
		Type:         orderType,
		Timestamp:    8,
		OrderID:      orderID,
		Side:         side,
		Quantity:     quantity,
		InstrumentID: instrumentID,
		Price:        price,
	}
}

func encodeEvent(t *testing.T, ev itchv1.OrderEvent) itchv1.Block {
	t.Helper()
	block, err := decoder.Encode(ev)
	require.NoError(t, err)
	return block
}

func TestSession_ProcessEvent(t *testing.T) {
	testCases := []struct {
		name              string
		event             itchv1.OrderEvent
		setupMocks        func(*testFixture)
		expectedCode      errors.ErrorCode
		expectedPrice     float64
		expectedSide      itchv1.Side
		expectedInventory float64
		expectedSize      float64
	}{
		{
			name:  "add buy quotes the bid",
			event: createTestEvent(itchv1.OrderTypeAdd, 1, 10, itchv1.SideBuy, 100, 99),
			setupMocks: func(f *testFixture) {
				f.mockBook.EXPECT().AddOrder(uint64(1), uint64(10), itchv1.SideBuy, uint32(100), uint32(99)).Return(nil)
				f.expectTouch(1, 99, 101)
			},
			expectedPrice: 100,
			expectedSide:  itchv1.SideBuy,
		},
		{
			name:  "cancel sell quotes the ask",
			event: createTestEvent(itchv1.OrderTypeCancel, 1, 10, itchv1.SideSell, 0, 0),
			setupMocks: func(f *testFixture) {
				f.mockBook.EXPECT().CancelOrder(uint64(1), itchv1.SideSell, uint64(10)).Return(nil)
				f.expectTouch(1, 99, 101)
			},
			expectedPrice: 100,
			expectedSide:  itchv1.SideSell,
		},
		{
			name:  "execute takes the resting side and moves inventory",
			event: createTestEvent(itchv1.OrderTypeExecute, 1, 5, itchv1.SideSell, 100, 0),
			setupMocks: func(f *testFixture) {
				f.mockBook.EXPECT().ExecuteOrder(uint64(1), uint32(100), uint64(5)).Return(itchv1.SideBuy, nil)
				f.expectTouch(1, 99, 101)
			},
			expectedPrice:     100,
			expectedSide:      itchv1.SideBuy,
			expectedInventory: 0.01,
			expectedSize:      0.005,
		},
		{
			name:  "execute of a foreign order leaves inventory",
			event: createTestEvent(itchv1.OrderTypeExecute, 1, 1<<30, itchv1.SideBuy, 100, 0),
			setupMocks: func(f *testFixture) {
				f.mockBook.EXPECT().ExecuteOrder(uint64(1), uint32(100), uint64(1<<30)).Return(itchv1.SideSell, nil)
				f.expectTouch(1, 99, 101)
			},
			expectedPrice: 100,
			expectedSide:  itchv1.SideSell,
		},
		{
			name:         "invalid order type never touches the book",
			event:        createTestEvent(itchv1.OrderType('Z'), 1, 10, itchv1.SideBuy, 100, 99),
			setupMocks:   func(f *testFixture) {},
			expectedCode: errors.ErrInvalidOrderType,
		},
		{
			name:  "book rejection propagates",
			event: createTestEvent(itchv1.OrderTypeAdd, 1, 10, itchv1.SideBuy, 100, 99),
			setupMocks: func(f *testFixture) {
				f.mockBook.EXPECT().AddOrder(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.NewErrorDetails("dup", string(errors.ErrDuplicateOrder), "orderID"))
			},
			expectedCode: errors.ErrDuplicateOrder,
		},
		{
			name:  "empty side of the book propagates",
			event: createTestEvent(itchv1.OrderTypeAdd, 1, 10, itchv1.SideBuy, 100, 99),
			setupMocks: func(f *testFixture) {
				f.mockBook.EXPECT().AddOrder(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.mockBook.EXPECT().BestBid(uint64(1)).Return(uint32(99), nil)
				f.mockBook.EXPECT().BestAsk(uint64(1)).
					Return(uint32(0), errors.NewErrorDetails("empty", string(errors.ErrNoLiquidity), "side"))
			},
			expectedCode: errors.ErrNoLiquidity,
		},
		{
			name:  "instrument outside the slots",
			event: createTestEvent(itchv1.OrderTypeAdd, 9, 10, itchv1.SideBuy, 100, 99),
			setupMocks: func(f *testFixture) {
				f.mockBook.EXPECT().AddOrder(uint64(9), uint64(10), itchv1.SideBuy, uint32(100), uint32(99)).Return(nil)
			},
			expectedCode: errors.ErrInvalidInstrumentIndex,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fixture := setupTestFixture(t)
			defer fixture.teardown()

			tc.setupMocks(fixture)
			session := NewSession(fixture.mockBook, fixture.logger, nil)

			quote, err := session.ProcessEvent(context.Background(), tc.event)
			assert.Equal(t, StageIdle, session.Stage())

			stats := session.Stats()
			assert.Equal(t, int64(1), stats.Processed)

			if tc.expectedCode != "" {
				require.Error(t, err)
				assert.Nil(t, quote)
				assert.True(t, errors.ErrorCodeEquals(err, string(tc.expectedCode)))
				assert.Equal(t, int64(1), stats.Rejected)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, quote)
			assert.Equal(t, int64(1), stats.Quoted)
			assert.Equal(t, tc.expectedSide, quote.Side)
			assert.InDelta(t, tc.expectedPrice, quote.Price, 1e-12)
			assert.InDelta(t, tc.expectedInventory, quote.Inventory, 1e-12)
			assert.InDelta(t, tc.expectedSize, quote.Size, 1e-12)
			assert.Equal(t, tc.event.InstrumentID, quote.InstrumentID)
			assert.Equal(t, tc.event.Timestamp, quote.Timestamp)
		})
	}
}

func TestSession_Process(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()

	session := NewSession(fixture.mockBook, fixture.logger, nil)
	ev := createTestEvent(itchv1.OrderTypeAdd, 2, 10, itchv1.SideSell, 100, 101)

	fixture.mockBook.EXPECT().AddOrder(uint64(2), uint64(10), itchv1.SideSell, uint32(100), uint32(101)).Return(nil)
	fixture.expectTouch(2, 99, 101)

	quote, err := session.Process(context.Background(), encodeEvent(t, ev))
	require.NoError(t, err)
	assert.Equal(t, 2, quote.Index)
	assert.Equal(t, itchv1.OrderTypeAdd, quote.EventType)

	var unknown itchv1.Block
	unknown.SetReg(0, 'Z')
	_, err = session.Process(context.Background(), unknown)
	require.Error(t, err)
	assert.True(t, errors.ErrorCodeEquals(err, string(errors.ErrUnrecognizedOrderType)))
	assert.Equal(t, StageIdle, session.Stage())

	assert.Equal(t, Stats{Processed: 2, Quoted: 1, Rejected: 1}, session.Stats())
}

func TestSession_VolatilityWidensQuotes(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()

	session := NewSession(fixture.mockBook, fixture.logger, nil)

	fixture.mockBook.EXPECT().AddOrder(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	gomock.InOrder(
		fixture.mockBook.EXPECT().BestBid(uint64(0)).Return(uint32(99), nil),
		fixture.mockBook.EXPECT().BestBid(uint64(0)).Return(uint32(100), nil),
	)
	gomock.InOrder(
		fixture.mockBook.EXPECT().BestAsk(uint64(0)).Return(uint32(101), nil),
		fixture.mockBook.EXPECT().BestAsk(uint64(0)).Return(uint32(102), nil),
	)

	_, err := session.ProcessEvent(context.Background(), createTestEvent(itchv1.OrderTypeAdd, 0, 1, itchv1.SideSell, 10, 101))
	require.NoError(t, err)

	// mids 100 then 101: variance 0.25, spread 0.125 * 0.25 * 8
	quote, err := session.ProcessEvent(context.Background(), createTestEvent(itchv1.OrderTypeAdd, 0, 2, itchv1.SideSell, 10, 102))
	require.NoError(t, err)
	assert.InDelta(t, 0.25, quote.Volatility, 1e-12)
	assert.InDelta(t, 100.75, quote.Bid, 1e-12)
	assert.InDelta(t, 101.25, quote.Ask, 1e-12)
	assert.InDelta(t, 101.25, quote.Price, 1e-12)

	v, err := session.Volatility(0)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, v, 1e-12)
}

func TestSession_InstrumentMapping(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()

	opts := DefaultSessionOptions()
	opts.InstrumentIDs = []uint64{4294967298, 17}
	opts.PriceScale = 100
	session := NewSession(fixture.mockBook, fixture.logger, opts)

	fixture.mockBook.EXPECT().AddOrder(uint64(17), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	fixture.expectTouch(17, 9900, 10100)

	quote, err := session.ProcessEvent(context.Background(), createTestEvent(itchv1.OrderTypeAdd, 17, 1, itchv1.SideBuy, 10, 9900))
	require.NoError(t, err)
	assert.Equal(t, 1, quote.Index)
	assert.InDelta(t, 100.0, quote.Price, 1e-12)

	fixture.mockBook.EXPECT().AddOrder(uint64(3), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	_, err = session.ProcessEvent(context.Background(), createTestEvent(itchv1.OrderTypeAdd, 3, 1, itchv1.SideBuy, 10, 9900))
	require.Error(t, err)
	assert.True(t, errors.ErrorCodeEquals(err, string(errors.ErrInvalidInstrumentIndex)))
}

func TestSession_InventoryAcrossExecutions(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()

	session := NewSession(fixture.mockBook, fixture.logger, nil)

	gomock.InOrder(
		fixture.mockBook.EXPECT().ExecuteOrder(uint64(3), uint32(100), uint64(1)).Return(itchv1.SideBuy, nil),
		fixture.mockBook.EXPECT().ExecuteOrder(uint64(3), uint32(100), uint64(2)).Return(itchv1.SideSell, nil),
		fixture.mockBook.EXPECT().ExecuteOrder(uint64(3), uint32(100), uint64(3)).Return(itchv1.SideBuy, nil),
	)
	fixture.mockBook.EXPECT().BestBid(uint64(3)).Return(uint32(99), nil).Times(3)
	fixture.mockBook.EXPECT().BestAsk(uint64(3)).Return(uint32(101), nil).Times(3)

	expected := []float64{0.01, 0.0, 0.01}
	for i, want := range expected {
		quote, err := session.ProcessEvent(context.Background(), createTestEvent(itchv1.OrderTypeExecute, 3, uint64(i+1), 0, 100, 0))
		require.NoError(t, err)
		assert.InDelta(t, want, quote.Inventory, 1e-12)
	}

	got, err := session.Inventory(3)
	require.NoError(t, err)
	assert.InDelta(t, 0.01, got, 1e-12)
}

func TestSession_StartStop(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()

	session := NewSession(fixture.mockBook, fixture.logger, nil)
	block := encodeEvent(t, createTestEvent(itchv1.OrderTypeAdd, 1, 10, itchv1.SideBuy, 100, 99))
	published := make(chan *quotev1.Payload, 1)

	fixture.mockFeed.EXPECT().SetOffset(kafka.LastOffset).Return(nil)
	gomock.InOrder(
		fixture.mockFeed.EXPECT().ReadFrame(gomock.Any()).
			Return(kafka.Message{Offset: 1}, itchv1.Block{}, errors.NewErrorDetails("short", string(errors.ErrMalformedFrame), "frame")),
		fixture.mockFeed.EXPECT().ReadFrame(gomock.Any()).
			Return(kafka.Message{Offset: 2}, block, nil),
		fixture.mockFeed.EXPECT().ReadFrame(gomock.Any()).
			DoAndReturn(func(ctx context.Context) (kafka.Message, itchv1.Block, error) {
				<-ctx.Done()
				return kafka.Message{}, itchv1.Block{}, ctx.Err()
			}).AnyTimes(),
	)
	fixture.mockFeed.EXPECT().CommitMessages(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	fixture.mockFeed.EXPECT().Close().Return(nil)

	fixture.mockBook.EXPECT().AddOrder(uint64(1), uint64(10), itchv1.SideBuy, uint32(100), uint32(99)).Return(nil)
	fixture.expectTouch(1, 99, 101)

	fixture.mockPublisher.EXPECT().PublishQuote(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, payload *quotev1.Payload) error {
			published <- payload
			return nil
		})

	assert.Error(t, session.Healthy())
	require.NoError(t, session.Start(context.Background(), fixture.mockFeed, fixture.mockPublisher))
	assert.NoError(t, session.Healthy())

	select {
	case payload := <-published:
		assert.Equal(t, "buy", payload.Side)
		assert.Equal(t, "100", payload.Price.String())
	case <-time.After(2 * time.Second):
		t.Fatal("quote was not published")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, session.Stop(ctx))
	assert.Error(t, session.Healthy())

	assert.Equal(t, Stats{Processed: 2, Quoted: 1, Rejected: 1, Published: 1}, session.Stats())
}

func TestSession_StartFailsOnOffset(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()

	session := NewSession(fixture.mockBook, fixture.logger, nil)
	fixture.mockFeed.EXPECT().SetOffset(gomock.Any()).Return(context.DeadlineExceeded)

	err := session.Start(context.Background(), fixture.mockFeed, fixture.mockPublisher)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func BenchmarkSession_Process(b *testing.B) {
	book := orderbook.NewOrderbook()
	_ = book.AddOrder(0, 1, itchv1.SideBuy, 1000, 99)
	_ = book.AddOrder(0, 2, itchv1.SideSell, 1000, 101)

	opts := DefaultSessionOptions()
	opts.VolatilityWindow = 256
	session := NewSession(book, logger.NewNopLogger(), opts)

	blocks := make([]itchv1.Block, 0, 2)
	for _, ev := range []itchv1.OrderEvent{
		createTestEvent(itchv1.OrderTypeAdd, 0, 3, itchv1.SideBuy, 10, 98),
		createTestEvent(itchv1.OrderTypeCancel, 0, 3, itchv1.SideBuy, 0, 0),
	} {
		block, err := decoder.Encode(ev)
		if err != nil {
			b.Fatal(err)
		}
		blocks = append(blocks, block)
	}

	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := session.Process(ctx, blocks[i%2]); err != nil {
			b.Fatal(err)
		}
	}
}

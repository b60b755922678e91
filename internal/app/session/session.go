package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	feedreaderv1 "github.com/muhammadchandra19/hft/internal/domain/feed-reader/v1"
	itchv1 "github.com/muhammadchandra19/hft/internal/domain/itch/v1"
	orderbookv1 "github.com/muhammadchandra19/hft/internal/domain/orderbook/v1"
	quotepublisherv1 "github.com/muhammadchandra19/hft/internal/domain/quote-publisher/v1"
	quotev1 "github.com/muhammadchandra19/hft/internal/domain/quote/v1"
	"github.com/muhammadchandra19/hft/internal/usecase/decoder"
	"github.com/muhammadchandra19/hft/internal/usecase/inventory"
	"github.com/muhammadchandra19/hft/internal/usecase/quoting"
	"github.com/muhammadchandra19/hft/internal/usecase/volatility"
	"github.com/muhammadchandra19/hft/pkg/errors"
	"github.com/muhammadchandra19/hft/pkg/logger"
	"github.com/muhammadchandra19/hft/pkg/util"
	"github.com/segmentio/kafka-go"
)

// Session turns feed events into quotes. It owns the volatility, inventory
// and quoting state of every instrument slot; the order book is shared.
//
// Process and ProcessEvent must be called from one goroutine at a time.
type Session struct {
	book      orderbookv1.Book
	estimator *volatility.Estimator
	tracker   *inventory.Tracker
	engine    *quoting.Engine
	logger    *logger.Logger
	options   *Options
	indexes   map[uint64]int

	mu      sync.RWMutex
	stage   Stage
	stats   Stats
	running bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSession creates a session over book. A nil opts uses DefaultSessionOptions.
func NewSession(book orderbookv1.Book, log *logger.Logger, opts *Options) *Session {
	if opts == nil {
		opts = DefaultSessionOptions()
	}

	count := opts.instrumentCount()
	estimator := volatility.NewEstimator(count, opts.VolatilityWindow)

	s := &Session{
		book:      book,
		estimator: estimator,
		tracker:   inventory.NewTracker(count),
		engine:    quoting.NewEngine(estimator),
		logger:    log,
		options:   opts,
	}

	if len(opts.InstrumentIDs) > 0 {
		s.indexes = make(map[uint64]int, len(opts.InstrumentIDs))
		for i, id := range opts.InstrumentIDs {
			s.indexes[id] = i
		}
	}

	return s
}

// Process decodes block and runs the resulting event through the pipeline.
func (s *Session) Process(ctx context.Context, block itchv1.Block) (*quotev1.Quote, error) {
	defer s.setStage(StageIdle)

	s.setStage(StageDecoding)
	ev, err := decoder.Decode(block)
	if err != nil {
		s.record(nil, err)
		return nil, err
	}

	quote, err := s.processEvent(ctx, ev)
	s.record(quote, err)
	return quote, err
}

// ProcessEvent runs an already decoded event through the pipeline: book
// update, inventory update, then quoting.
func (s *Session) ProcessEvent(ctx context.Context, ev itchv1.OrderEvent) (*quotev1.Quote, error) {
	defer s.setStage(StageIdle)

	quote, err := s.processEvent(ctx, ev)
	s.record(quote, err)
	return quote, err
}

func (s *Session) processEvent(ctx context.Context, ev itchv1.OrderEvent) (*quotev1.Quote, error) {
	s.setStage(StageBookUpdate)
	side, err := s.updateBook(ev)
	if err != nil {
		return nil, err
	}

	index, err := s.instrumentIndex(ev.InstrumentID)
	if err != nil {
		return nil, err
	}

	s.setStage(StageInventoryUpdate)
	var position float64
	if ev.Type == itchv1.OrderTypeExecute {
		position, err = s.tracker.Update(index, ev.OrderID, ev.Quantity, side)
	} else {
		position, err = s.tracker.Current(index)
	}
	if err != nil {
		return nil, err
	}

	s.setStage(StageQuoting)
	bestBid, err := s.book.BestBid(ev.InstrumentID)
	if err != nil {
		return nil, err
	}
	bestAsk, err := s.book.BestAsk(ev.InstrumentID)
	if err != nil {
		return nil, err
	}

	scale := s.options.priceScale()
	prices, err := s.engine.Quote(ev.Timestamp, float64(bestBid)/scale, float64(bestAsk)/scale, index, position)
	if err != nil {
		return nil, err
	}

	price := prices.Ask
	if side.IsBuy() {
		price = prices.Bid
	}

	quote := &quotev1.Quote{
		InstrumentID: ev.InstrumentID,
		Index:        index,
		EventType:    ev.Type,
		OrderID:      ev.OrderID,
		Timestamp:    ev.Timestamp,
		Side:         side,
		Size:         quoting.OrderSize(position),
		Price:        price,
		Bid:          prices.Bid,
		Ask:          prices.Ask,
		Mid:          prices.Mid,
		Volatility:   prices.Volatility,
		Inventory:    position,
	}

	s.setStage(StageEmitted)
	s.logger.DebugContext(ctx, "Quote emitted",
		logger.Field{Key: "instrumentID", Value: quote.InstrumentID},
		logger.Field{Key: "event", Value: ev.Type.String()},
		logger.Field{Key: "side", Value: side.String()},
		logger.Field{Key: "price", Value: quote.Price},
		logger.Field{Key: "size", Value: quote.Size},
	)

	return quote, nil
}

// updateBook applies ev to the book and returns the side the quote is priced
// for. Executions take the side the order rested on.
func (s *Session) updateBook(ev itchv1.OrderEvent) (itchv1.Side, error) {
	switch ev.Type {
	case itchv1.OrderTypeAdd:
		return ev.Side, s.book.AddOrder(ev.InstrumentID, ev.OrderID, ev.Side, ev.Quantity, ev.Price)
	case itchv1.OrderTypeCancel:
		return ev.Side, s.book.CancelOrder(ev.InstrumentID, ev.Side, ev.OrderID)
	case itchv1.OrderTypeExecute:
		return s.book.ExecuteOrder(ev.InstrumentID, ev.Quantity, ev.OrderID)
	default:
		return 0, errors.NewErrorDetailsWithObject(
			fmt.Sprintf("order type %s cannot be applied to the book", ev.Type),
			string(errors.ErrInvalidOrderType),
			"type",
			ev,
		)
	}
}

func (s *Session) instrumentIndex(instrumentID uint64) (int, error) {
	if s.indexes != nil {
		if index, ok := s.indexes[instrumentID]; ok {
			return index, nil
		}
		return 0, errors.NewErrorDetails(
			fmt.Sprintf("instrument %d is not configured", instrumentID),
			string(errors.ErrInvalidInstrumentIndex),
			"instrumentID",
		)
	}

	if instrumentID >= uint64(s.estimator.Instruments()) {
		return 0, errors.NewErrorDetails(
			fmt.Sprintf("instrument %d outside [0, %d)", instrumentID, s.estimator.Instruments()),
			string(errors.ErrInvalidInstrumentIndex),
			"instrumentID",
		)
	}
	return int(instrumentID), nil
}

// Start launches the frame processor: frames are read from feed, processed,
// committed, and the resulting quotes handed to publisher.
func (s *Session) Start(ctx context.Context, feed feedreaderv1.FeedReader, publisher quotepublisherv1.QuotePublisher) error {
	if err := feed.SetOffset(s.options.StartOffset); err != nil {
		return errors.NewTracer("failed to set feed offset").Wrap(err)
	}

	s.ctx, s.cancel = context.WithCancel(ctx)

	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.runFrameProcessor(feed, publisher)

	s.logger.Info("Session started",
		logger.Field{Key: "instruments", Value: s.estimator.Instruments()},
		logger.Field{Key: "volatilityWindow", Value: s.options.VolatilityWindow},
	)

	return nil
}

// Stop gracefully shuts down the session
func (s *Session) Stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Session stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Session stop timeout exceeded")
		return ctx.Err()
	}
}

// runFrameProcessor combines frame reading and processing in a single goroutine
func (s *Session) runFrameProcessor(feed feedreaderv1.FeedReader, publisher quotepublisherv1.QuotePublisher) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	for {
		select {
		case <-s.ctx.Done():
			s.logger.Info("Frame processor shutting down")
			if err := feed.Close(); err != nil {
				s.logger.Error(err, logger.Field{Key: "action", Value: "close_feed"})
			}
			return
		default:
		}

		msg, block, err := feed.ReadFrame(s.ctx)
		if err != nil {
			if errors.ErrorCodeEquals(err, string(errors.ErrMalformedFrame)) {
				s.record(nil, err)
				s.commit(s.ctx, feed, msg)
				continue
			}
			if s.ctx.Err() != nil {
				continue
			}
			s.logger.ErrorContext(s.ctx, err, logger.Field{Key: "action", Value: "read_frame"})
			s.backoff()
			continue
		}

		msgCtx := util.WithFeedPosition(util.WithRequestID(s.ctx, ""), msg.Partition, msg.Offset)

		quote, err := s.Process(msgCtx, block)
		s.commit(msgCtx, feed, msg)
		if err != nil {
			s.logger.WarnContext(msgCtx, "Event rejected",
				logger.Field{Key: "action", Value: "process_frame"},
				logger.Field{Key: "error", Value: err.Error()},
			)
			continue
		}

		payload := quotev1.NewPayload(quote, s.options.PricePrecision)
		if err := publisher.PublishQuote(msgCtx, payload); err != nil {
			s.logger.ErrorContext(msgCtx, err, logger.Field{Key: "action", Value: "publish_quote"})
			continue
		}

		s.mu.Lock()
		s.stats.Published++
		s.mu.Unlock()
	}
}

func (s *Session) commit(ctx context.Context, feed feedreaderv1.FeedReader, msg kafka.Message) {
	if err := feed.CommitMessages(ctx, msg); err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{Key: "action", Value: "commit_frame"})
	}
}

func (s *Session) backoff() {
	timer := time.NewTimer(s.options.ReadBackoff)
	defer timer.Stop()

	select {
	case <-s.ctx.Done():
	case <-timer.C:
	}
}

func (s *Session) setStage(stage Stage) {
	s.mu.Lock()
	s.stage = stage
	s.mu.Unlock()
}

func (s *Session) record(quote *quotev1.Quote, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.Processed++
	if err != nil {
		s.stats.Rejected++
		return
	}
	if quote != nil {
		s.stats.Quoted++
	}
}

// Stage returns the pipeline step the session is in.
func (s *Session) Stage() Stage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stage
}

// Stats returns a copy of the session counters.
func (s *Session) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Healthy returns an error unless the frame processor is running.
func (s *Session) Healthy() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.running {
		return errors.NewTracer("session is not running")
	}
	return nil
}

// Inventory returns the inventory of the slot.
func (s *Session) Inventory(index int) (float64, error) {
	return s.tracker.Current(index)
}

// Volatility returns the current variance of the slot.
func (s *Session) Volatility(index int) (float64, error) {
	return s.estimator.Variance(index)
}

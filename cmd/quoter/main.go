package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	app "github.com/muhammadchandra19/hft/internal/app/session"
	quotepublisherv1 "github.com/muhammadchandra19/hft/internal/domain/quote-publisher/v1"
	feedreader "github.com/muhammadchandra19/hft/internal/usecase/feed-reader"
	"github.com/muhammadchandra19/hft/internal/usecase/orderbook"
	quotepublisher "github.com/muhammadchandra19/hft/internal/usecase/quote-publisher"
	"github.com/muhammadchandra19/hft/pkg/config"
	"github.com/muhammadchandra19/hft/pkg/httplib/healthcheck"
	"github.com/muhammadchandra19/hft/pkg/logger"
	"github.com/muhammadchandra19/hft/pkg/redis"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	cfg = &config.Config{}
	config.MustLoad(cfg)

	l, err := logger.NewLogger(
		logger.WithLoggingLevel(logger.Level(cfg.App.LogLevel)),
		logger.WithEncoding(cfg.App.LogEncoding),
	)
	if err != nil {
		panic(err)
	}

	log = l.WithFields(
		logger.Field{Key: "app", Value: cfg.App.Name},
		logger.Field{Key: "env", Value: cfg.App.Environment},
	)
}

func main() {
	defer func() { _ = log.Sync() }()

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	publisher, err := newPublisher(ctx)
	if err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "init_publisher"})
		return
	}

	opts := app.DefaultSessionOptions()
	opts.InstrumentIDs = cfg.Quoting.InstrumentIDs
	opts.VolatilityWindow = cfg.Quoting.VolatilityWindow
	opts.PriceScale = cfg.Quoting.PriceScale
	opts.PricePrecision = cfg.Quoting.PricePrecision
	opts.StartOffset = cfg.FeedKafka.StartOffset

	book := orderbook.NewOrderbook()
	reader := feedreader.NewReader(cfg.FeedKafka, log)
	session := app.NewSession(book, log, opts)

	if err := session.Start(ctx, reader, publisher); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "start_session"})
		return
	}

	server := newOpsServer(session)

	log.Info("Quoter started successfully",
		logger.Field{Key: "topic", Value: cfg.FeedKafka.Topic},
		logger.Field{Key: "instrumentIDs", Value: cfg.Quoting.InstrumentIDs},
	)

	// Wait for shutdown signal
	sig := <-sigChan
	log.Info("Received shutdown signal", logger.Field{Key: "signal", Value: sig.String()})

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if server != nil {
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error(err, logger.Field{Key: "action", Value: "stop_http"})
		}
	}

	if err := session.Stop(shutdownCtx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "stop_session"})
	}

	if err := publisher.Close(); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "close_publisher"})
	}

	stats := session.Stats()
	log.Info("Quoter shutdown complete",
		logger.Field{Key: "processed", Value: stats.Processed},
		logger.Field{Key: "quoted", Value: stats.Quoted},
		logger.Field{Key: "rejected", Value: stats.Rejected},
		logger.Field{Key: "published", Value: stats.Published},
	)
}

// newPublisher wires the enabled quote sinks behind one fan-out.
func newPublisher(ctx context.Context) (quotepublisherv1.QuotePublisher, error) {
	var sinks []quotepublisherv1.QuotePublisher

	if cfg.QuoteKafka.Enabled {
		sinks = append(sinks, quotepublisher.NewKafkaPublisher(cfg.QuoteKafka, log))
	}

	if cfg.QuoteRedis.Enabled {
		rclient := redis.NewClient(log, &cfg.Redis)
		if err := rclient.Connect(ctx); err != nil {
			return nil, err
		}
		sinks = append(sinks, quotepublisher.NewRedisPublisher(rclient, cfg.QuoteRedis, log))
	}

	if len(sinks) == 0 {
		log.Warn("No quote sink enabled, quotes are only logged")
	}

	return quotepublisher.NewFanout(log, sinks...), nil
}

// newOpsServer serves /health and /stats when APP_HTTP_ADDR is set.
func newOpsServer(session *app.Session) *http.Server {
	if cfg.App.HTTPAddr == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/stats", healthcheck.JSONHandler(session.Stats))

	server := &http.Server{
		Addr:              cfg.App.HTTPAddr,
		Handler:           healthcheck.New(session.Healthy).Handler(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(err, logger.Field{Key: "action", Value: "serve_http"})
		}
	}()

	log.Info("Ops endpoint listening", logger.Field{Key: "addr", Value: cfg.App.HTTPAddr})
	return server
}

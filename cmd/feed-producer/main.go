package main

import (
	"context"
	"flag"
	"strconv"
	"strings"
	"time"

	"github.com/muhammadchandra19/hft/internal/usecase/decoder"
	"github.com/muhammadchandra19/hft/pkg/logger"
	"github.com/segmentio/kafka-go"
)

func parseInstruments(raw string) ([]uint64, error) {
	var ids []uint64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func main() {
	var (
		brokers     = flag.String("brokers", "localhost:9092", "Kafka broker addresses (comma-separated)")
		topic       = flag.String("topic", "itch-feed", "Kafka topic name")
		instruments = flag.String("instruments", "0,1,2,3", "Instrument ids (comma-separated)")
		delay       = flag.Duration("delay", 10*time.Millisecond, "Delay between frames")
		count       = flag.Int("count", 1000, "Number of frames to send")
		basePrice   = flag.Uint("base-price", 10000, "Base price in feed units")
		priceSpread = flag.Uint("price-spread", 50, "Price spread range in feed units")
		seed        = flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	)
	flag.Parse()

	log, err := logger.NewLogger(logger.WithEncoding("console"))
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ids, err := parseInstruments(*instruments)
	if err != nil || len(ids) == 0 {
		log.Warn("Invalid instrument list", logger.Field{Key: "instruments", Value: *instruments})
		return
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(*brokers, ",")...),
		Topic:        *topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	defer writer.Close()

	gen := newGenerator(*seed, ids, uint32(*basePrice), uint32(*priceSpread))
	ctx := context.Background()

	log.Info("Sending frames",
		logger.Field{Key: "brokers", Value: *brokers},
		logger.Field{Key: "topic", Value: *topic},
		logger.Field{Key: "count", Value: *count},
		logger.Field{Key: "seed", Value: *seed},
	)

	sent := 0
	for i := 0; i < *count; i++ {
		ev := gen.next()

		block, err := decoder.Encode(ev)
		if err != nil {
			log.Error(err, logger.Field{Key: "frame", Value: i + 1})
			continue
		}

		msg := kafka.Message{
			Key:   []byte(strconv.FormatUint(ev.InstrumentID, 10)),
			Value: decoder.MarshalFrame(block),
		}
		if err := writer.WriteMessages(ctx, msg); err != nil {
			log.Error(err, logger.Field{Key: "frame", Value: i + 1})
			continue
		}
		sent++

		log.Debug("Frame sent",
			logger.Field{Key: "type", Value: ev.Type.String()},
			logger.Field{Key: "instrumentID", Value: ev.InstrumentID},
			logger.Field{Key: "orderID", Value: ev.OrderID},
		)

		if *delay > 0 && i < *count-1 {
			time.Sleep(*delay)
		}
	}

	log.Info("Completed", logger.Field{Key: "sent", Value: sent}, logger.Field{Key: "total", Value: *count})
}

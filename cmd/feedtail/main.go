package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os/signal"
	"strings"
	"syscall"

	"fenrir/feed"
	"fenrir/infra/kafka"
)

func main() {
	var (
		brokers = flag.String("brokers", "localhost:9092", "comma-separated Kafka brokers")
		topic   = flag.String("topic", "trades", "trade feed topic")
		group   = flag.String("group", "feedtail", "consumer group id")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r := kafka.NewReader(strings.Split(*brokers, ","), *topic, *group)
	defer r.Close()

	for {
		frame, err := r.Next(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			log.Fatalf("read failed: %v", err)
		}
		tr, err := feed.DecodeTrade(frame)
		if err != nil {
			log.Printf("skipping corrupt frame: %v", err)
			continue
		}
		log.Printf("trade seq=%d taker=%d maker=%d qty=%d price=%d",
			tr.Seq, tr.TakerID, tr.MakerID, tr.Qty, tr.Price)
	}
}

package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fenrir/domain/book"
	"fenrir/feed"
	"fenrir/gen"
)

func main() {
	var (
		brokers = flag.String("brokers", "localhost:9092", "comma-separated Kafka brokers")
		topic   = flag.String("topic", "trades", "trade feed topic")
		outDir  = flag.String("outbox", "./feed_outbox", "outbox directory")
		orders  = flag.Int("orders", 100_000, "orders to generate")
		seed    = flag.Int64("seed", 42, "generator seed")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b := book.New(book.Config{Orders: *orders * 3, TradeBuffer: 1 << 16})

	outbox, err := feed.OpenOutbox(*outDir)
	if err != nil {
		log.Fatalf("outbox init failed: %v", err)
	}
	defer outbox.Close()

	pub, err := feed.NewPublisher(b.Trades(), outbox, strings.Split(*brokers, ","), *topic)
	if err != nil {
		log.Fatalf("publisher init failed: %v", err)
	}
	defer pub.Close()

	go pub.Drain(ctx)
	go pub.Broadcast(ctx, 250*time.Millisecond)

	g := gen.New(*seed, 300, 50)
	for i := 0; i < *orders && ctx.Err() == nil; i++ {
		cmd := g.Next(true)
		b.Place(cmd.ID, cmd.Side, cmd.Kind, cmd.Shares, cmd.Price, cmd.StopPrice)
	}

	log.Printf("placed %d orders: live=%d armed=%d lastSeq=%d",
		*orders, b.LiveOrders(), b.ArmedStops(), b.LastTradeSeq())

	// wait for the drain side to empty the ring, then give the
	// broadcaster a beat to flush the outbox
	for ctx.Err() == nil && b.Trades().Len() > 0 {
		time.Sleep(100 * time.Millisecond)
	}
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
	}
}

package main

import (
	"flag"
	"fmt"
	"math/rand"
	"runtime"
	"sync/atomic"
	"time"

	"fenrir/domain/book"
	"fenrir/gen"
)

func main() {
	var (
		orders = flag.Int("orders", 1_000_000, "orders per phase")
		seed   = flag.Int64("seed", 42, "generator seed")
		center = flag.Float64("center", 300, "price distribution center")
		stddev = flag.Float64("stddev", 50, "price distribution std deviation")
	)
	flag.Parse()

	b := book.New(book.Config{Orders: *orders * 3, TradeBuffer: 1 << 16})
	g := gen.New(*seed, *center, *stddev)

	// the single consumer of the trade ring
	var running atomic.Bool
	running.Store(true)
	var trades atomic.Uint64
	done := make(chan struct{})
	go func() {
		defer close(done)
		for running.Load() {
			if _, ok := b.Trades().Pop(); ok {
				trades.Add(1)
			} else {
				runtime.Gosched()
			}
		}
		for {
			if _, ok := b.Trades().Pop(); !ok {
				return
			}
			trades.Add(1)
		}
	}()

	fmt.Println("starting matching engine benchmark")

	runPhase("statistical orders", b, *orders, func(n int) {
		// warm the book with resting limits before the mixed flow
		for i := 0; i < 10_000; i++ {
			cmd := g.Next(false)
			b.Place(cmd.ID, cmd.Side, book.Limit, cmd.Shares, cmd.Price, 0)
		}
		cancels := rand.New(rand.NewSource(*seed))
		for i := 0; i < n; i++ {
			cmd := g.Next(true)
			b.Place(cmd.ID, cmd.Side, cmd.Kind, cmd.Shares, cmd.Price, cmd.StopPrice)
			if i > 100 && i%7 == 0 {
				b.Cancel(cmd.ID - uint64(cancels.Intn(50)+10))
			}
		}
	})

	var active []uint64
	runPhase("order modification", b, *orders, func(n int) {
		base := g.NextID()
		for i := 0; i < n; i++ {
			switch {
			case i%3 == 0:
				id := base + uint64(i)
				b.Place(id, book.Buy, book.Limit, 10, int64(*center)+int64(i%10), 0)
				active = append(active, id)
			case i%3 == 1 && len(active) > 0:
				b.Modify(active[i%len(active)], 15, int64(*center)+int64(i%15))
			case len(active) > 0:
				b.Cancel(active[len(active)-1])
				active = active[:len(active)-1]
			}
		}
	})

	mix := rand.New(rand.NewSource(*seed + 1))
	runPhase("mixed workload", b, *orders, func(n int) {
		for i := 0; i < n; i++ {
			cmd := g.Next(true)
			r := mix.Float64()
			switch {
			case r < 0.75:
				b.Place(cmd.ID, cmd.Side, cmd.Kind, cmd.Shares, cmd.Price, cmd.StopPrice)
			case r < 0.90:
				b.Cancel(cmd.ID - 100)
			default:
				b.Modify(cmd.ID-50, cmd.Shares+5, int64(*center)+int64(i%20))
			}
		}
	})

	running.Store(false)
	<-done

	fmt.Println("\n=== final results ===")
	fmt.Printf("trades executed: %d\n", trades.Load())
	fmt.Printf("resting orders:  %d\n", b.LiveOrders())
	fmt.Printf("armed stops:     %d\n", b.ArmedStops())
	fmt.Printf("last trade seq:  %d\n", b.LastTradeSeq())
}

func runPhase(name string, b *book.Book, n int, fn func(int)) {
	fmt.Printf("\n=== %s ===\n", name)
	start := time.Now()
	fn(n)
	elapsed := time.Since(start)

	fmt.Printf("throughput: %.2f M ops/s\n", float64(n)/elapsed.Seconds()/1e6)
	fmt.Printf("resting orders: %d, armed stops: %d, trades pending: %d\n",
		b.LiveOrders(), b.ArmedStops(), b.Trades().Len())
}

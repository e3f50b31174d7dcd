package gen

import (
	"math/rand"

	"fenrir/domain/book"
)

// Generator produces a statistically shaped order flow around a price
// center: half resting-style limits, a marketable share, and a tail of
// stop and stop-limit orders. Deterministic for a given seed.
type Generator struct {
	rng    *rand.Rand
	nextID uint64
	center float64
	stdDev float64
}

// Command is one generated order.
type Command struct {
	ID        uint64
	Side      book.Side
	Kind      book.Kind
	Shares    uint32
	Price     int64
	StopPrice int64
}

func New(seed int64, center, stdDev float64) *Generator {
	return &Generator{
		rng:    rand.New(rand.NewSource(seed)),
		nextID: 1,
		center: center,
		stdDev: stdDev,
	}
}

// Next returns the next order command. When allowStops is false the
// stop share of the distribution collapses into plain limits.
func (g *Generator) Next(allowStops bool) Command {
	cmd := Command{
		ID:     g.nextID,
		Shares: uint32(g.rng.Intn(100) + 1),
	}
	g.nextID++

	r := g.rng.Float64()
	switch {
	case r < 0.50:
		cmd.Kind = book.Limit
		cmd.Side = g.side()
		base := g.gauss()
		// shade buys below and sells above the center so most limits rest
		if cmd.Side == book.Buy {
			cmd.Price = clampPrice(base - g.stdDev*0.1)
		} else {
			cmd.Price = clampPrice(base + g.stdDev*0.1)
		}
	case r < 0.80:
		cmd.Kind = book.Market
		cmd.Side = g.side()
		if cmd.Side == book.Buy {
			cmd.Price = book.MarketBuyPrice
		} else {
			cmd.Price = book.MarketSellPrice
		}
	case allowStops && r < 0.90:
		cmd.Kind = book.Stop
		cmd.Side = g.side()
		base := g.gauss()
		if cmd.Side == book.Buy {
			cmd.StopPrice = clampPrice(base + g.stdDev*0.3)
			cmd.Price = book.MarketBuyPrice
		} else {
			cmd.StopPrice = clampPrice(base - g.stdDev*0.3)
			cmd.Price = book.MarketSellPrice
		}
	case allowStops:
		cmd.Kind = book.StopLimit
		cmd.Side = g.side()
		base := g.gauss()
		if cmd.Side == book.Buy {
			cmd.StopPrice = clampPrice(base + g.stdDev*0.25)
			cmd.Price = clampPrice(base + g.stdDev*0.35)
		} else {
			cmd.StopPrice = clampPrice(base - g.stdDev*0.25)
			cmd.Price = clampPrice(base - g.stdDev*0.35)
		}
	default:
		// stops disabled and the roll landed in their share
		cmd.Kind = book.Limit
		cmd.Side = book.Buy
		cmd.Price = int64(g.center)
	}
	return cmd
}

// NextID returns the id the next command will carry.
func (g *Generator) NextID() uint64 { return g.nextID }

func (g *Generator) side() book.Side {
	if g.rng.Float64() < 0.5 {
		return book.Buy
	}
	return book.Sell
}

func (g *Generator) gauss() float64 {
	return g.rng.NormFloat64()*g.stdDev + g.center
}

func clampPrice(p float64) int64 {
	if p < 1 {
		return 1
	}
	return int64(p)
}

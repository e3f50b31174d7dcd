package gen

import (
	"testing"

	"fenrir/domain/book"
)

func TestGeneratorDeterministic(t *testing.T) {
	a := New(42, 300, 50)
	b := New(42, 300, 50)
	for i := 0; i < 1000; i++ {
		if a.Next(true) != b.Next(true) {
			t.Fatalf("same seed diverged at command %d", i)
		}
	}
}

func TestGeneratorCommandShape(t *testing.T) {
	g := New(7, 300, 50)
	lastID := uint64(0)
	for i := 0; i < 10000; i++ {
		cmd := g.Next(true)
		if cmd.ID != lastID+1 {
			t.Fatalf("ids must be dense and increasing, got %d after %d", cmd.ID, lastID)
		}
		lastID = cmd.ID
		if cmd.Shares < 1 || cmd.Shares > 100 {
			t.Fatalf("shares out of range: %d", cmd.Shares)
		}
		switch cmd.Kind {
		case book.Market, book.Stop:
			want := book.MarketSellPrice
			if cmd.Side == book.Buy {
				want = book.MarketBuyPrice
			}
			if cmd.Price != want {
				t.Fatalf("%v order without the side sentinel: %d", cmd.Kind, cmd.Price)
			}
		case book.Limit, book.StopLimit:
			if cmd.Price < 1 {
				t.Fatalf("non-positive limit price: %d", cmd.Price)
			}
		}
		if (cmd.Kind == book.Stop || cmd.Kind == book.StopLimit) && cmd.StopPrice < 1 {
			t.Fatalf("non-positive stop price: %d", cmd.StopPrice)
		}
	}
}

func TestGeneratorNoStops(t *testing.T) {
	g := New(7, 300, 50)
	for i := 0; i < 10000; i++ {
		cmd := g.Next(false)
		if cmd.Kind == book.Stop || cmd.Kind == book.StopLimit {
			t.Fatal("stop order generated with stops disabled")
		}
	}
}

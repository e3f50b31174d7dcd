package book

import "testing"

func benchBook(n int) *Book {
	if n < 1<<20 {
		n = 1 << 20
	}
	return New(Config{Orders: n, TradeBuffer: 1 << 16})
}

func BenchmarkPlaceResting(b *testing.B) {
	book := benchBook(b.N)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		book.Place(uint64(i+1), Buy, Limit, 10, int64(1000+i%64), 0)
	}
}

func BenchmarkPlaceCancel(b *testing.B) {
	book := benchBook(b.N * 2)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id := uint64(i + 1)
		book.Place(id, Buy, Limit, 10, int64(1000+i%64), 0)
		book.Cancel(id)
	}
}

func BenchmarkCrossingFlow(b *testing.B) {
	book := benchBook(b.N)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id := uint64(i + 1)
		if i%2 == 0 {
			book.Place(id, Buy, Limit, 1, 1000, 0)
		} else {
			book.Place(id, Sell, Limit, 1, 1000, 0)
		}
		// drain inline so ring overflow drops don't skew the numbers
		book.Trades().Pop()
	}
}

func BenchmarkModifyChurn(b *testing.B) {
	book := benchBook(1 << 20)
	for i := 0; i < 1024; i++ {
		book.Place(uint64(i+1), Buy, Limit, 10, int64(900+i%32), 0)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id := uint64(i%1024 + 1)
		book.Modify(id, 15, int64(900+i%48))
	}
}

func BenchmarkStopTriggerCascade(b *testing.B) {
	book := benchBook(b.N * 4)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		base := uint64(i) * 4
		// arm a stop, print through its trigger
		book.Place(base+1, Sell, Stop, 1, MarketSellPrice, 999)
		book.Place(base+2, Sell, Limit, 1, 999, 0)
		book.Place(base+3, Buy, Limit, 1, 999, 0)
		for {
			if _, ok := book.Trades().Pop(); !ok {
				break
			}
		}
	}
}

package book

import (
	"fenrir/infra/sequence"
	"fenrir/infra/spsc"
)

// Config sizes the engine-owned arenas and the trade ring.
type Config struct {
	// Orders is the capacity of the order arena: the peak simultaneous
	// population of live, armed, and in-flight records.
	Orders int
	// Levels is the capacity of the level arena shared by all four
	// trees. Defaults to Orders/5.
	Levels int
	// TradeBuffer is the SPSC ring capacity. Must be a power of two.
	TradeBuffer uint64
}

// Synthetic ids assigned to triggered stops start above this base so
// they never collide with the external id space.
const syntheticIDBase = 1_000_000_000

// Book is the matching engine for one instrument. All commands must be
// issued from a single goroutine; the trade ring is the only
// cross-thread channel.
type Book struct {
	bids     *LevelTree
	asks     *LevelTree
	stopBids *LevelTree
	stopAsks *LevelTree

	// id indices. An id is in at most one of the two at any time; the
	// indices, not the records, are the source of truth for existence.
	live  map[uint64]*Order
	armed map[uint64]*Order

	orders *OrderPool
	levels *LevelPool

	trades   *spsc.Ring[TradeReport]
	tradeSeq *sequence.Sequencer
	synthIDs *sequence.Sequencer

	// scratch for harvested stops, reused across Place calls
	triggered []triggeredStop
}

func New(cfg Config) *Book {
	if cfg.Levels == 0 {
		cfg.Levels = cfg.Orders / 5
	}
	levels := NewLevelPool(cfg.Levels)
	return &Book{
		bids:      NewLevelTree(levels),
		asks:      NewLevelTree(levels),
		stopBids:  NewLevelTree(levels),
		stopAsks:  NewLevelTree(levels),
		live:      make(map[uint64]*Order),
		armed:     make(map[uint64]*Order),
		orders:    NewOrderPool(cfg.Orders),
		levels:    levels,
		trades:    spsc.New[TradeReport](cfg.TradeBuffer),
		tradeSeq:  sequence.New(0),
		synthIDs:  sequence.New(syntheticIDBase),
		triggered: make([]triggeredStop, 0, 64),
	}
}

// Trades returns the report ring. Exactly one consumer may pop from it.
func (b *Book) Trades() *spsc.Ring[TradeReport] { return b.trades }

// ---------------- Commands ---------------- //

// Place submits an order. Stop and StopLimit orders arm into a stop
// tree without matching; Market and Limit orders match against the
// opposite side, a Limit residual rests in the book. Executions that
// cross a stop trigger convert the armed stops and replay them with a
// synthetic id; the replayed orders do not re-trigger further stops.
//
// A command that cannot acquire a record (pool exhausted) is dropped.
func (b *Book) Place(id uint64, side Side, kind Kind, shares uint32, price, stopPrice int64) {
	b.place(id, side, kind, shares, price, stopPrice, true)
}

// Modify updates a live limit order. A same-price modify keeps the
// order's queue position; a price change re-queues it at the tail of
// the target level. Stop orders are not modifiable.
func (b *Book) Modify(id uint64, shares uint32, price int64) bool {
	o, ok := b.live[id]
	if !ok {
		return false
	}
	if price == o.Price {
		o.Shares = shares
		return true
	}

	old := o.level
	old.unlink(o)
	if old.Empty() {
		b.sideTree(o.Side).Delete(old.Price)
	}

	o.Shares = shares
	o.Price = price

	lvl := b.sideTree(o.Side).Upsert(price)
	if lvl == nil {
		// level pool exhausted: nowhere for the order to rest
		delete(b.live, id)
		b.orders.Put(o)
		return false
	}
	lvl.enqueue(o)
	return true
}

// Cancel removes a live or armed order. Returns false when the id is
// in neither index.
func (b *Book) Cancel(id uint64) bool {
	if o, ok := b.live[id]; ok {
		b.removeResting(o, b.sideTree(o.Side))
		delete(b.live, id)
		return true
	}
	if o, ok := b.armed[id]; ok {
		b.removeResting(o, b.stopTree(o.Side))
		delete(b.armed, id)
		return true
	}
	return false
}

// ---------------- Observability ---------------- //

// LiveOrders returns the number of resting limit orders.
func (b *Book) LiveOrders() int { return len(b.live) }

// ArmedStops returns the number of armed stop and stop-limit orders.
func (b *Book) ArmedStops() int { return len(b.armed) }

// LevelCount returns the populated level counts of the live trees.
func (b *Book) LevelCount() (bids, asks int) {
	return b.bids.Size(), b.asks.Size()
}

// LastTradeSeq returns the sequence number of the last executed trade.
func (b *Book) LastTradeSeq() uint64 { return b.tradeSeq.Current() }

// EachBid visits resting bid levels best-first.
func (b *Book) EachBid(fn func(*PriceLevel) bool) { b.bids.ForEachDescending(fn) }

// EachAsk visits resting ask levels best-first.
func (b *Book) EachAsk(fn func(*PriceLevel) bool) { b.asks.ForEachAscending(fn) }

// ---------------- Matching ---------------- //

func (b *Book) place(id uint64, side Side, kind Kind, shares uint32, price, stopPrice int64, checkStops bool) {
	if kind == Market {
		if side == Buy {
			price = MarketBuyPrice
		} else {
			price = MarketSellPrice
		}
	}

	if kind == Stop || kind == StopLimit {
		b.arm(id, side, kind, shares, price, stopPrice)
		return
	}

	taker := b.orders.Get()
	if taker == nil {
		return
	}
	*taker = Order{ID: id, Side: side, Kind: kind, Shares: shares, Price: price, StopPrice: stopPrice}

	lastPrice := b.match(taker)

	if checkStops && lastPrice > 0 {
		b.collectTriggered(lastPrice)
	}

	if taker.Shares > 0 && kind == Limit {
		if lvl := b.sideTree(side).Upsert(price); lvl != nil {
			lvl.enqueue(taker)
			b.live[id] = taker
		} else {
			b.orders.Put(taker)
		}
	} else {
		// fully filled, or an unfilled market remainder
		b.orders.Put(taker)
	}

	if checkStops {
		// Replay harvested stops in trigger order. The replayed
		// placements run with stop checking disabled, which bounds the
		// cascade to one level.
		n := len(b.triggered)
		for i := 0; i < n; i++ {
			ts := b.triggered[i]
			b.place(b.synthIDs.Next(), ts.side, ts.kind, ts.shares, ts.limitPrice, 0, false)
		}
		b.triggered = b.triggered[:0]
	}
}

// match runs the taker against the opposite tree until it is filled or
// no crossing level remains. Returns the price of the final trade, or
// 0 when nothing executed.
func (b *Book) match(taker *Order) int64 {
	var lastPrice int64
	for taker.Shares > 0 {
		var best *PriceLevel
		if taker.Side == Buy {
			best = b.asks.Min()
		} else {
			best = b.bids.Max()
		}
		if best == nil {
			break
		}
		if taker.Side == Buy && taker.Price < best.Price {
			break
		}
		if taker.Side == Sell && taker.Price > best.Price {
			break
		}

		maker := best.head
		for maker != nil && taker.Shares > 0 {
			qty := taker.Shares
			if maker.Shares < qty {
				qty = maker.Shares
			}
			b.trades.Push(TradeReport{
				TakerID: taker.ID,
				MakerID: maker.ID,
				Qty:     qty,
				Price:   best.Price,
				Seq:     b.tradeSeq.Next(),
			})
			lastPrice = best.Price
			taker.Shares -= qty
			maker.Shares -= qty

			if maker.Shares == 0 {
				next := maker.next
				best.unlink(maker)
				delete(b.live, maker.ID)
				b.orders.Put(maker)
				maker = next
			} else {
				// price-time priority: the surviving maker keeps the
				// head; later orders at this price cannot be skipped
				break
			}
		}

		if best.Empty() {
			if taker.Side == Buy {
				b.asks.Delete(best.Price)
			} else {
				b.bids.Delete(best.Price)
			}
		}
	}
	return lastPrice
}

// arm inserts a stop-family order into its stop tree without matching.
func (b *Book) arm(id uint64, side Side, kind Kind, shares uint32, price, stopPrice int64) {
	o := b.orders.Get()
	if o == nil {
		return
	}
	*o = Order{ID: id, Side: side, Kind: kind, Shares: shares, Price: price, StopPrice: stopPrice}

	lvl := b.stopTree(side).Upsert(stopPrice)
	if lvl == nil {
		b.orders.Put(o)
		return
	}
	lvl.enqueue(o)
	b.armed[id] = o
}

// collectTriggered harvests every armed stop whose trigger the last
// executed price reached: stop-sells with stop price >= last, then
// stop-buys with stop price <= last. Harvested records are recycled
// immediately; the conversions land in the triggered scratch list.
func (b *Book) collectTriggered(lastPrice int64) {
	for lvl := b.stopAsks.Max(); lvl != nil && lastPrice <= lvl.Price; lvl = b.stopAsks.Max() {
		b.harvestLevel(lvl)
		b.stopAsks.Delete(lvl.Price)
	}
	for lvl := b.stopBids.Min(); lvl != nil && lastPrice >= lvl.Price; lvl = b.stopBids.Min() {
		b.harvestLevel(lvl)
		b.stopBids.Delete(lvl.Price)
	}
}

func (b *Book) harvestLevel(lvl *PriceLevel) {
	for o := lvl.head; o != nil; {
		kind := Limit
		if o.Kind == Stop {
			kind = Market
		}
		b.triggered = append(b.triggered, triggeredStop{
			originalID: o.ID,
			side:       o.Side,
			kind:       kind,
			shares:     o.Shares,
			limitPrice: o.Price,
		})
		delete(b.armed, o.ID)
		next := o.next
		b.orders.Put(o)
		o = next
	}
	lvl.head, lvl.tail = nil, nil
}

// ---------------- helpers ---------------- //

func (b *Book) sideTree(s Side) *LevelTree {
	if s == Buy {
		return b.bids
	}
	return b.asks
}

func (b *Book) stopTree(s Side) *LevelTree {
	if s == Buy {
		return b.stopBids
	}
	return b.stopAsks
}

func (b *Book) removeResting(o *Order, tree *LevelTree) {
	lvl := o.level
	lvl.unlink(o)
	if lvl.Empty() {
		tree.Delete(lvl.Price)
	}
	b.orders.Put(o)
}

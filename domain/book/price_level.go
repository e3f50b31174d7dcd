package book

// PriceLevel holds the FIFO of resting orders at one price. The record
// doubles as the AVL node of the tree that owns it, so a level and its
// tree linkage recycle together.
type PriceLevel struct {
	Price int64

	head *Order
	tail *Order

	left     *PriceLevel
	right    *PriceLevel
	height   int32
	nextFree *PriceLevel
}

// enqueue appends o at the tail. Head has time priority.
func (l *PriceLevel) enqueue(o *Order) {
	if l.head == nil {
		l.head = o
		l.tail = o
	} else {
		l.tail.next = o
		o.prev = l.tail
		l.tail = o
	}
	o.level = l
}

// unlink removes o from the FIFO. o must belong to this level.
func (l *PriceLevel) unlink(o *Order) {
	if o.prev != nil {
		o.prev.next = o.next
	} else {
		l.head = o.next
	}
	if o.next != nil {
		o.next.prev = o.prev
	} else {
		l.tail = o.prev
	}
	o.next, o.prev = nil, nil
	o.level = nil
}

// Empty reports whether the level holds no orders. An empty level must
// be removed from its tree.
func (l *PriceLevel) Empty() bool { return l.head == nil }

// Head returns the order with time priority at this level.
func (l *PriceLevel) Head() *Order { return l.head }

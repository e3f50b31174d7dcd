package book

// LevelTree is a height-balanced ordered map from price to PriceLevel.
// Nodes are the level records themselves, drawn from the shared pool.
// Four independent instances exist: bids, asks, stop-buys, stop-sells.
type LevelTree struct {
	root *PriceLevel
	pool *LevelPool
	size int
}

func NewLevelTree(pool *LevelPool) *LevelTree {
	return &LevelTree{pool: pool}
}

// Size returns the number of populated price levels.
func (t *LevelTree) Size() int { return t.size }

// Upsert returns the level at price, creating it when absent. Returns
// nil when the level pool is exhausted; the tree is left unchanged.
func (t *LevelTree) Upsert(price int64) *PriceLevel {
	var target *PriceLevel
	t.root = t.insert(t.root, price, &target)
	return target
}

// Find returns the level at price, or nil.
func (t *LevelTree) Find(price int64) *PriceLevel {
	n := t.root
	for n != nil {
		switch {
		case price < n.Price:
			n = n.left
		case price > n.Price:
			n = n.right
		default:
			return n
		}
	}
	return nil
}

// Delete removes the level with the given price and recycles its
// record. No-op when the price is absent.
func (t *LevelTree) Delete(price int64) {
	t.root = t.remove(t.root, price)
}

// Min returns the lowest-priced level (best ask, or next stop-buy
// trigger), or nil on an empty tree.
func (t *LevelTree) Min() *PriceLevel {
	n := t.root
	if n == nil {
		return nil
	}
	for n.left != nil {
		n = n.left
	}
	return n
}

// Max returns the highest-priced level (best bid, or next stop-sell
// trigger), or nil on an empty tree.
func (t *LevelTree) Max() *PriceLevel {
	n := t.root
	if n == nil {
		return nil
	}
	for n.right != nil {
		n = n.right
	}
	return n
}

// ForEachAscending visits levels in increasing price order until fn
// returns false.
func (t *LevelTree) ForEachAscending(fn func(*PriceLevel) bool) {
	ascend(t.root, fn)
}

// ForEachDescending visits levels in decreasing price order until fn
// returns false.
func (t *LevelTree) ForEachDescending(fn func(*PriceLevel) bool) {
	descend(t.root, fn)
}

func ascend(n *PriceLevel, fn func(*PriceLevel) bool) bool {
	if n == nil {
		return true
	}
	return ascend(n.left, fn) && fn(n) && ascend(n.right, fn)
}

func descend(n *PriceLevel, fn func(*PriceLevel) bool) bool {
	if n == nil {
		return true
	}
	return descend(n.right, fn) && fn(n) && descend(n.left, fn)
}

// ---- balancing internals ----

func height(n *PriceLevel) int32 {
	if n == nil {
		return 0
	}
	return n.height
}

func reheight(n *PriceLevel) {
	hl, hr := height(n.left), height(n.right)
	if hl > hr {
		n.height = hl + 1
	} else {
		n.height = hr + 1
	}
}

func balance(n *PriceLevel) int32 {
	if n == nil {
		return 0
	}
	return height(n.left) - height(n.right)
}

func rotateRight(y *PriceLevel) *PriceLevel {
	x := y.left
	y.left = x.right
	x.right = y
	reheight(y)
	reheight(x)
	return x
}

func rotateLeft(x *PriceLevel) *PriceLevel {
	y := x.right
	x.right = y.left
	y.left = x
	reheight(x)
	reheight(y)
	return y
}

func (t *LevelTree) insert(n *PriceLevel, price int64, target **PriceLevel) *PriceLevel {
	if n == nil {
		lvl := t.pool.Get(price)
		if lvl != nil {
			t.size++
		}
		*target = lvl
		return lvl
	}
	switch {
	case price < n.Price:
		n.left = t.insert(n.left, price, target)
	case price > n.Price:
		n.right = t.insert(n.right, price, target)
	default:
		*target = n
		return n
	}

	reheight(n)
	b := balance(n)
	if b > 1 && price < n.left.Price {
		return rotateRight(n)
	}
	if b < -1 && price > n.right.Price {
		return rotateLeft(n)
	}
	if b > 1 && price > n.left.Price {
		n.left = rotateLeft(n.left)
		return rotateRight(n)
	}
	if b < -1 && price < n.right.Price {
		n.right = rotateRight(n.right)
		return rotateLeft(n)
	}
	return n
}

func (t *LevelTree) remove(n *PriceLevel, price int64) *PriceLevel {
	if n == nil {
		return nil
	}

	switch {
	case price < n.Price:
		n.left = t.remove(n.left, price)
	case price > n.Price:
		n.right = t.remove(n.right, price)
	default:
		if n.left == nil || n.right == nil {
			child := n.left
			if child == nil {
				child = n.right
			}
			t.pool.Put(n)
			t.size--
			return child
		}

		// Two children: splice the in-order successor into this node.
		// The successor's FIFO moves here, so every order it holds must
		// have its back-reference repointed before anything else runs.
		succ := n.right
		for succ.left != nil {
			succ = succ.left
		}
		n.Price = succ.Price
		n.head = succ.head
		n.tail = succ.tail
		for o := n.head; o != nil; o = o.next {
			o.level = n
		}
		n.right = t.remove(n.right, succ.Price)
	}

	reheight(n)
	b := balance(n)
	if b > 1 && balance(n.left) >= 0 {
		return rotateRight(n)
	}
	if b > 1 {
		n.left = rotateLeft(n.left)
		return rotateRight(n)
	}
	if b < -1 && balance(n.right) <= 0 {
		return rotateLeft(n)
	}
	if b < -1 {
		n.right = rotateRight(n.right)
		return rotateLeft(n)
	}
	return n
}

package book

import "testing"

func ids(l *PriceLevel) []uint64 {
	var out []uint64
	for o := l.Head(); o != nil; o = o.Next() {
		out = append(out, o.ID)
	}
	return out
}

func TestPriceLevelFIFO(t *testing.T) {
	l := &PriceLevel{Price: 100}
	a := &Order{ID: 1}
	b := &Order{ID: 2}
	c := &Order{ID: 3}
	l.enqueue(a)
	l.enqueue(b)
	l.enqueue(c)

	got := ids(l)
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("expected FIFO order 1,2,3, got %v", got)
	}
	if a.level != l || c.level != l {
		t.Error("enqueue must set the level back-reference")
	}
}

func TestPriceLevelUnlink(t *testing.T) {
	l := &PriceLevel{Price: 100}
	a := &Order{ID: 1}
	b := &Order{ID: 2}
	c := &Order{ID: 3}
	l.enqueue(a)
	l.enqueue(b)
	l.enqueue(c)

	l.unlink(b) // middle
	got := ids(l)
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("after middle unlink expected 1,3, got %v", got)
	}

	l.unlink(a) // head
	if l.Head() != c {
		t.Error("after head unlink, c should lead")
	}

	l.unlink(c) // tail == head
	if !l.Empty() || l.tail != nil {
		t.Error("level should be empty with tail cleared")
	}
	if c.level != nil || c.prev != nil || c.next != nil {
		t.Error("unlink must clear the order's links")
	}
}

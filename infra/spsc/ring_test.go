package spsc

import "testing"

func TestRingBasic(t *testing.T) {
	r := New[uint64](4)

	if !r.Push(1) || !r.Push(2) {
		t.Fatal("push failed unexpectedly")
	}
	if v, ok := r.Pop(); !ok || v != 1 {
		t.Errorf("expected first pop to be 1, got %d ok=%v", v, ok)
	}
	if v, ok := r.Pop(); !ok || v != 2 {
		t.Errorf("expected second pop to be 2, got %d ok=%v", v, ok)
	}
	if _, ok := r.Pop(); ok {
		t.Error("expected empty ring to report not ok")
	}
}

func TestRingFull(t *testing.T) {
	r := New[int](2)
	if !r.Push(1) || !r.Push(2) {
		t.Fatal("fill failed")
	}
	if r.Push(3) {
		t.Error("push into full ring should fail")
	}
	if !r.IsFull() {
		t.Error("IsFull should report true")
	}
	r.Pop()
	if !r.Push(3) {
		t.Error("push after pop should succeed")
	}
}

func TestRingWrapAround(t *testing.T) {
	r := New[int](4)
	for i := 0; i < 100; i++ {
		if !r.Push(i) {
			t.Fatalf("push %d failed", i)
		}
		v, ok := r.Pop()
		if !ok || v != i {
			t.Fatalf("pop %d: got %d ok=%v", i, v, ok)
		}
	}
	if r.Len() != 0 {
		t.Errorf("expected empty ring, len=%d", r.Len())
	}
}

func TestRingSPSCOrdering(t *testing.T) {
	const n = 1 << 16
	r := New[uint64](1 << 10)

	done := make(chan struct{})
	go func() {
		defer close(done)
		next := uint64(0)
		for next < n {
			v, ok := r.Pop()
			if !ok {
				continue
			}
			if v != next {
				t.Errorf("out of order: got %d want %d", v, next)
			}
			next++
		}
	}()

	for i := uint64(0); i < n; {
		if r.Push(i) {
			i++
		}
	}
	<-done
}

func TestRingPowerOfTwoPanic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on non power-of-two size")
		}
	}()
	New[int](3)
}

package feed

import (
	"testing"

	"fenrir/domain/book"
)

func TestOutboxPutScanAck(t *testing.T) {
	ob, err := OpenOutbox(t.TempDir())
	if err != nil {
		t.Fatalf("open outbox: %v", err)
	}
	defer ob.Close()

	for seq := uint64(1); seq <= 3; seq++ {
		frame := AppendTrade(nil, book.TradeReport{Seq: seq, Qty: uint32(seq)})
		if err := ob.Put(seq, frame); err != nil {
			t.Fatalf("put seq=%d: %v", seq, err)
		}
	}

	var seen []uint64
	err = ob.ScanPending(func(seq uint64, frame []byte) error {
		tr, err := DecodeTrade(frame)
		if err != nil {
			return err
		}
		if tr.Seq != seq {
			t.Errorf("key/payload mismatch: key=%d payload=%d", seq, tr.Seq)
		}
		seen = append(seen, seq)
		return nil
	})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(seen) != 3 || seen[0] != 1 || seen[1] != 2 || seen[2] != 3 {
		t.Fatalf("expected sequence order 1,2,3, got %v", seen)
	}

	if err := ob.Ack(2); err != nil {
		t.Fatalf("ack: %v", err)
	}
	seen = seen[:0]
	_ = ob.ScanPending(func(seq uint64, _ []byte) error {
		seen = append(seen, seq)
		return nil
	})
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 3 {
		t.Errorf("after ack expected 1,3, got %v", seen)
	}
}

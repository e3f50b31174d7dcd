package feed

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/cockroachdb/pebble"
)

// Outbox stages encoded trade reports until the broker acknowledges
// them. Entries survive restarts; acknowledged entries are deleted.
type Outbox struct {
	db *pebble.DB
}

const outboxPrefix = "trade/"

func OpenOutbox(dir string) (*Outbox, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("feed: open outbox: %w", err)
	}
	return &Outbox{db: db}, nil
}

func (o *Outbox) Close() error {
	return o.db.Close()
}

// Put stages one encoded report keyed by its trade sequence.
func (o *Outbox) Put(seq uint64, frame []byte) error {
	return o.db.Set(outboxKey(seq), frame, pebble.Sync)
}

// Ack removes a delivered report.
func (o *Outbox) Ack(seq uint64) error {
	return o.db.Delete(outboxKey(seq), pebble.Sync)
}

// ScanPending visits staged reports in trade-sequence order.
func (o *Outbox) ScanPending(fn func(seq uint64, frame []byte) error) error {
	iter, err := o.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(outboxPrefix),
		UpperBound: []byte(outboxPrefix + "~"),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		seq, err := parseOutboxKey(iter.Key())
		if err != nil {
			return err
		}
		// the value is only valid until the next iterator move
		frame := append([]byte(nil), iter.Value()...)
		if err := fn(seq, frame); err != nil {
			return err
		}
	}
	return iter.Error()
}

func outboxKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", outboxPrefix, seq))
}

func parseOutboxKey(key []byte) (uint64, error) {
	raw := bytes.TrimPrefix(key, []byte(outboxPrefix))
	return strconv.ParseUint(string(raw), 10, 64)
}

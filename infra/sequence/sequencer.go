package sequence

import "sync/atomic"

// Sequencer generates strictly monotonic identifiers. The engine uses
// one instance for the trade sequence and one for the synthetic order
// ids assigned to triggered stops.
type Sequencer struct {
	next atomic.Uint64
}

// New creates a sequencer. Next returns start+1, start+2, ...
func New(start uint64) *Sequencer {
	s := &Sequencer{}
	s.next.Store(start)
	return s
}

// Next returns the next identifier.
func (s *Sequencer) Next() uint64 {
	return s.next.Add(1)
}

// Current returns the last issued identifier.
func (s *Sequencer) Current() uint64 {
	return s.next.Load()
}

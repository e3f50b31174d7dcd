package feed

import (
	"errors"

	"google.golang.org/protobuf/encoding/protowire"

	"fenrir/domain/book"
)

// Field numbers of the trade frame. The message is small and fixed, so
// the feed writes the wire format directly and keeps reflection off the
// drain path.
const (
	fieldTakerID = 1
	fieldMakerID = 2
	fieldQty     = 3
	fieldPrice   = 4
	fieldSeq     = 5
)

var ErrCorruptTrade = errors.New("feed: corrupt trade frame")

// AppendTrade appends the wire encoding of tr to dst.
func AppendTrade(dst []byte, tr book.TradeReport) []byte {
	dst = protowire.AppendTag(dst, fieldTakerID, protowire.VarintType)
	dst = protowire.AppendVarint(dst, tr.TakerID)
	dst = protowire.AppendTag(dst, fieldMakerID, protowire.VarintType)
	dst = protowire.AppendVarint(dst, tr.MakerID)
	dst = protowire.AppendTag(dst, fieldQty, protowire.VarintType)
	dst = protowire.AppendVarint(dst, uint64(tr.Qty))
	dst = protowire.AppendTag(dst, fieldPrice, protowire.VarintType)
	dst = protowire.AppendVarint(dst, uint64(tr.Price))
	dst = protowire.AppendTag(dst, fieldSeq, protowire.VarintType)
	dst = protowire.AppendVarint(dst, tr.Seq)
	return dst
}

// DecodeTrade parses a frame produced by AppendTrade.
func DecodeTrade(data []byte) (book.TradeReport, error) {
	var tr book.TradeReport
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return tr, ErrCorruptTrade
		}
		data = data[n:]
		if typ != protowire.VarintType {
			return tr, ErrCorruptTrade
		}
		v, n := protowire.ConsumeVarint(data)
		if n < 0 {
			return tr, ErrCorruptTrade
		}
		data = data[n:]

		switch num {
		case fieldTakerID:
			tr.TakerID = v
		case fieldMakerID:
			tr.MakerID = v
		case fieldQty:
			tr.Qty = uint32(v)
		case fieldPrice:
			tr.Price = int64(v)
		case fieldSeq:
			tr.Seq = v
		}
	}
	return tr, nil
}

package engine

import (
	"github.com/google/btree"
	"github.com/shopspring/decimal"

	"github.com/efreitasn/spoofsim/internal/domain"
)

// bookEntry is a single order resting on one side of the book.
type bookEntry struct {
	Price   decimal.Decimal
	Seq     uint64
	OrderID string
	Order   *domain.Order
}

// PriceLevel is an aggregated price level in a depth snapshot.
type PriceLevel struct {
	Price      decimal.Decimal
	TotalSize  decimal.Decimal
	OrderCount int
}

// bidLess defines ordering for the buy side: price descending, then arrival
// sequence ascending. Min() therefore returns the best bid (highest price,
// earliest arrival). Seq is unique and monotonic per book, so equal-priced
// orders keep strict FIFO order even when two arrive on the same clock tick.
func bidLess(a, b bookEntry) bool {
	if c := a.Price.Cmp(b.Price); c != 0 {
		return c > 0
	}
	return a.Seq < b.Seq
}

// askLess defines ordering for the sell side: price ascending, then arrival
// sequence ascending. Min() returns the best ask (lowest price, earliest
// arrival).
func askLess(a, b bookEntry) bool {
	if c := a.Price.Cmp(b.Price); c != 0 {
		return c < 0
	}
	return a.Seq < b.Seq
}

// sideBook is one side of the order book: a B-tree ordered by the side's
// priority rule, plus a secondary index for O(log n) removal by order id.
// Only open orders rest here; completed and cancelled orders are removed
// and no longer tracked.
type sideBook struct {
	tree  *btree.BTreeG[bookEntry]
	index map[string]bookEntry // order id → entry
}

func newSideBook(less btree.LessFunc[bookEntry]) *sideBook {
	const degree = 32
	return &sideBook{
		tree:  btree.NewG[bookEntry](degree, less),
		index: make(map[string]bookEntry),
	}
}

// insert adds an entry to the side. Insertion is stable with respect to
// arrival: an order never jumps ahead of an equal-priced, earlier entry.
func (s *sideBook) insert(e bookEntry) {
	s.tree.ReplaceOrInsert(e)
	s.index[e.OrderID] = e
}

// peekBest returns the head entry without mutating the side.
func (s *sideBook) peekBest() (bookEntry, bool) {
	return s.tree.Min()
}

// popBest removes and returns the head entry; false when the side is empty.
func (s *sideBook) popBest() (bookEntry, bool) {
	e, ok := s.tree.DeleteMin()
	if !ok {
		return bookEntry{}, false
	}
	delete(s.index, e.OrderID)
	return e, true
}

// remove deletes the entry with this order id, wherever it sits in the
// sequence. Returns false when no such order rests on this side.
func (s *sideBook) remove(orderID string) bool {
	e, ok := s.index[orderID]
	if !ok {
		return false
	}
	delete(s.index, orderID)
	s.tree.Delete(e)
	return true
}

func (s *sideBook) len() int {
	return s.tree.Len()
}

// walk iterates entries in priority order. The callback returns true to
// continue, false to stop.
func (s *sideBook) walk(fn func(bookEntry) bool) {
	s.tree.Ascend(fn)
}

// levels aggregates the side into at most n price levels in priority order.
func (s *sideBook) levels(n int) []PriceLevel {
	if n <= 0 {
		return nil
	}
	out := make([]PriceLevel, 0, n)
	s.tree.Ascend(func(e bookEntry) bool {
		if len(out) > 0 && out[len(out)-1].Price.Equal(e.Price) {
			out[len(out)-1].TotalSize = out[len(out)-1].TotalSize.Add(e.Order.Remaining())
			out[len(out)-1].OrderCount++
			return true
		}
		if len(out) >= n {
			return false
		}
		out = append(out, PriceLevel{
			Price:      e.Price,
			TotalSize:  e.Order.Remaining(),
			OrderCount: 1,
		})
		return true
	})
	return out
}

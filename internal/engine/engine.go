package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/efreitasn/spoofsim/internal/domain"
)

// Default top-of-book prices substituted when a side of the book is empty,
// so callers always have a reference price to quote around.
var (
	DefaultBid = decimal.RequireFromString("49999.5")
	DefaultAsk = decimal.RequireFromString("50000.5")
)

var two = decimal.NewFromInt(2)

// Book is the matching engine for a single symbol: two price-time priority
// queues plus an append-only trade log. A single mutex guards the whole
// book, since one insertion can touch both sides repeatedly while matching
// and diagnostics read the book from other goroutines.
type Book struct {
	symbol string

	mu     sync.Mutex
	seq    uint64
	bids   *sideBook
	asks   *sideBook
	trades []*domain.Trade
}

// NewBook creates an empty book for the given symbol.
func NewBook(symbol string) *Book {
	return &Book{
		symbol: symbol,
		bids:   newSideBook(bidLess),
		asks:   newSideBook(askLess),
	}
}

// Symbol returns the symbol this book trades.
func (b *Book) Symbol() string {
	return b.symbol
}

// PlaceLimit constructs an open order under the caller's client id, rests
// it on the matching side, and immediately matches to quiescence. It
// returns the order id (the client id echoed back; the book generates no
// internal id) and the trades this insertion produced, in execution order.
//
// Price and size validation happens at the venue boundary, not here.
// Self-crossing is allowed: a caller may trade against its own orders.
func (b *Book) PlaceLimit(side domain.Side, price, size decimal.Decimal, clientID string) (string, []*domain.Trade) {
	b.mu.Lock()
	defer b.mu.Unlock()

	order := &domain.Order{
		ID:        clientID,
		Side:      side,
		Price:     price,
		Size:      size,
		Filled:    decimal.Zero,
		Status:    domain.StatusOpen,
		CreatedAt: time.Now(),
	}

	b.seq++
	entry := bookEntry{
		Price:   price,
		Seq:     b.seq,
		OrderID: order.ID,
		Order:   order,
	}
	if side == domain.SideBuy {
		b.bids.insert(entry)
	} else {
		b.asks.insert(entry)
	}

	return order.ID, b.match()
}

// match runs the matching loop until no cross remains or one side empties.
// A match sequence always runs to completion once started. Caller must
// hold b.mu.
func (b *Book) match() []*domain.Trade {
	var executed []*domain.Trade

	for {
		bestBuy, ok := b.bids.peekBest()
		if !ok {
			break
		}
		bestSell, ok := b.asks.peekBest()
		if !ok {
			break
		}
		buy, sell := bestBuy.Order, bestSell.Order

		// No cross: best bid strictly below best ask.
		if buy.Price.LessThan(sell.Price) {
			break
		}

		qty := decimal.Min(buy.Remaining(), sell.Remaining())

		// Trade price is the midpoint of the two resting prices. This is a
		// simulator convention, not a real exchange rule.
		px := buy.Price.Add(sell.Price).Div(two)

		trade := &domain.Trade{
			TradeID:    uuid.New().String(),
			Price:      px,
			Size:       qty,
			ExecutedAt: time.Now(),
		}
		b.trades = append(b.trades, trade)
		executed = append(executed, trade)

		buy.Filled = buy.Filled.Add(qty)
		sell.Filled = sell.Filled.Add(qty)

		// A completed order is still at the head of its queue, so popping
		// the head discards exactly it.
		if buy.Filled.Cmp(buy.Size) >= 0 {
			buy.Status = domain.StatusFilled
			b.bids.popBest()
		}
		if sell.Filled.Cmp(sell.Size) >= 0 {
			sell.Status = domain.StatusFilled
			b.asks.popBest()
		}
	}

	return executed
}

// Cancel marks the open order with this id cancelled and removes it from
// its queue. Unknown and already-terminal ids are a defined no-op, not an
// error: the caller cannot always know whether an order completed first.
// Returns whether an order was actually cancelled.
func (b *Book) Cancel(orderID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Only open orders rest in a side's index, so membership is exactly
	// "open order with this id".
	if e, ok := b.bids.index[orderID]; ok {
		e.Order.Status = domain.StatusCancelled
		b.bids.remove(orderID)
		return true
	}
	if e, ok := b.asks.index[orderID]; ok {
		e.Order.Status = domain.StatusCancelled
		b.asks.remove(orderID)
		return true
	}
	return false
}

// Top returns the best resting bid and ask prices, substituting the
// documented defaults for an empty side.
func (b *Book) Top() domain.Quote {
	b.mu.Lock()
	defer b.mu.Unlock()

	q := domain.Quote{Bid: DefaultBid, Ask: DefaultAsk}
	if e, ok := b.bids.peekBest(); ok {
		q.Bid = e.Price
	}
	if e, ok := b.asks.peekBest(); ok {
		q.Ask = e.Price
	}
	return q
}

// BestBid returns the best resting buy price, without defaulting.
func (b *Book) BestBid() (decimal.Decimal, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.bids.peekBest()
	return e.Price, ok
}

// BestAsk returns the best resting sell price, without defaulting.
func (b *Book) BestAsk() (decimal.Decimal, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.asks.peekBest()
	return e.Price, ok
}

// Len returns the number of resting orders on each side.
func (b *Book) Len() (bids, asks int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bids.len(), b.asks.len()
}

// Depth returns up to n aggregated price levels per side, best first.
func (b *Book) Depth(n int) (bids, asks []PriceLevel) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bids.levels(n), b.asks.levels(n)
}

// Trades returns a copy of the trade log in execution order.
func (b *Book) Trades() []*domain.Trade {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]*domain.Trade, len(b.trades))
	copy(out, b.trades)
	return out
}

// TradeCount returns the number of trades executed so far.
func (b *Book) TradeCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.trades)
}

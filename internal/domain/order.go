package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side indicates whether an order buys or sells.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusOpen      OrderStatus = "open"
	StatusFilled    OrderStatus = "filled"
	StatusCancelled OrderStatus = "cancelled"
)

// Order is one resting or historical order. The id is the caller's client
// order id; the book never generates a separate internal id. ID, Side,
// Price, and Size are immutable after construction. Filled only grows, and
// Status only moves from open to filled or from open to cancelled.
type Order struct {
	ID        string
	Side      Side
	Price     decimal.Decimal
	Size      decimal.Decimal
	Filled    decimal.Decimal
	Status    OrderStatus
	CreatedAt time.Time
}

// Remaining returns the unfilled quantity, Size - Filled.
func (o *Order) Remaining() decimal.Decimal {
	return o.Size.Sub(o.Filled)
}

// Open reports whether the order is still resting (not in a terminal state).
func (o *Order) Open() bool {
	return o.Status == StatusOpen
}

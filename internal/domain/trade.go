package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade represents a matched execution between a resting buy and a resting
// sell order. Trades are append-only records: never mutated, never removed,
// kept only for the lifetime of the process.
type Trade struct {
	TradeID    string
	Price      decimal.Decimal
	Size       decimal.Decimal
	ExecutedAt time.Time
}

package domain

import "github.com/shopspring/decimal"

// Quote is a top-of-book snapshot: the best resting bid and ask prices.
type Quote struct {
	Bid decimal.Decimal
	Ask decimal.Decimal
}

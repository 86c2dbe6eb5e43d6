// Package venue adapts the strategy driver to an execution venue. The sim
// venue is backed by the in-memory matching engine; the live venue is a
// paper-trading stub with no exchange SDK wired behind it.
package venue

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/efreitasn/spoofsim/internal/domain"
)

// Venue is the adapter the strategy driver trades through. An
// implementation is selected once at startup; the driver never branches on
// which venue it holds. Every call takes a context so a venue backed by
// network I/O can honor cancellation at the adapter boundary.
type Venue interface {
	// Connect verifies the venue is usable. It must be called once before
	// any trading; a configuration problem surfaces here, not mid-cycle.
	Connect(ctx context.Context) error

	// Top returns the best bid and ask prices for symbol.
	Top(ctx context.Context, symbol string) (domain.Quote, error)

	// PlaceLimit submits a limit order under the caller's client order id
	// and returns the venue's id for it.
	PlaceLimit(ctx context.Context, symbol string, side domain.Side, price, size decimal.Decimal, clientID string) (string, error)

	// Cancel requests cancellation of a previously placed order.
	Cancel(ctx context.Context, orderID string) error
}

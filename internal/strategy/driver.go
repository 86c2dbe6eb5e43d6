// Package strategy drives a spoofing pattern against a venue: a stack of
// large bids layered under the top of book, a small genuine sell opposite
// them, then rapid cancellation of the layers. It exists to generate
// recognizable spoof traffic for detection harnesses.
package strategy

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/efreitasn/spoofsim/internal/domain"
	"github.com/efreitasn/spoofsim/internal/metrics"
	"github.com/efreitasn/spoofsim/internal/venue"
)

// RealOrderSize is the size of the genuine order placed opposite the spoof
// layers each cycle.
var RealOrderSize = decimal.RequireFromString("0.01")

// CooldownPause is how long the driver waits after a failed cycle before
// starting the next one.
var CooldownPause = 5 * time.Second

// Params configure the spoof cycle.
type Params struct {
	Symbol    string
	Layers    int
	LayerSize decimal.Decimal
	Offset    decimal.Decimal
	Hold      time.Duration
	Delay     time.Duration
	Pause     time.Duration
}

// Driver runs spoof cycles against a venue until its context is cancelled.
type Driver struct {
	venue  venue.Venue
	params Params
	logger *slog.Logger
}

// NewDriver creates a driver. The venue must already be connected.
func NewDriver(v venue.Venue, p Params, logger *slog.Logger) *Driver {
	return &Driver{venue: v, params: p, logger: logger}
}

// Run loops spoof cycles until ctx is cancelled, then returns nil. A failed
// cycle is logged and followed by a cooldown; it never terminates the loop.
func (d *Driver) Run(ctx context.Context) error {
	d.logger.Info("strategy driver starting",
		slog.String("symbol", d.params.Symbol),
		slog.Int("layers", d.params.Layers),
		slog.String("layer_size", d.params.LayerSize.String()),
		slog.String("offset", d.params.Offset.String()),
	)
	defer d.logger.Info("strategy driver stopped")

	for {
		if ctx.Err() != nil {
			return nil
		}

		err := d.cycle(ctx)
		switch {
		case err == nil:
			metrics.RecordCycle()
			if !wait(ctx, d.params.Pause) {
				return nil
			}
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			return nil
		default:
			metrics.RecordCycleError()
			d.logger.Error("cycle failed", slog.String("error", err.Error()))
			if !wait(ctx, CooldownPause) {
				return nil
			}
		}
	}
}

// cycle places the spoof layers, the real order, and cancels the layers.
// The real order is never cancelled; it stays on the book.
func (d *Driver) cycle(ctx context.Context) error {
	top, err := d.venue.Top(ctx, d.params.Symbol)
	if err != nil {
		return fmt.Errorf("read top of book: %w", err)
	}
	d.logger.Debug("cycle start",
		slog.String("bid", top.Bid.String()),
		slog.String("ask", top.Ask.String()),
	)

	// Layer i sits Offset*(i+1) under the current bid.
	spoofIDs := make([]string, 0, d.params.Layers)
	for i := 0; i < d.params.Layers; i++ {
		price := top.Bid.Sub(d.params.Offset.Mul(decimal.NewFromInt(int64(i + 1))))
		id, err := d.venue.PlaceLimit(ctx, d.params.Symbol, domain.SideBuy, price, d.params.LayerSize, "sp_bid_"+shortID())
		if err != nil {
			return fmt.Errorf("place spoof layer %d: %w", i+1, err)
		}
		spoofIDs = append(spoofIDs, id)
		d.logger.Info("spoof layer placed",
			slog.String("order_id", id),
			slog.String("price", price.String()),
			slog.String("size", d.params.LayerSize.String()),
		)
	}

	if !wait(ctx, d.params.Delay) {
		return ctx.Err()
	}

	realID, err := d.venue.PlaceLimit(ctx, d.params.Symbol, domain.SideSell, top.Bid, RealOrderSize, "real_"+shortID())
	if err != nil {
		return fmt.Errorf("place real order: %w", err)
	}
	d.logger.Info("real order placed",
		slog.String("order_id", realID),
		slog.String("price", top.Bid.String()),
		slog.String("size", RealOrderSize.String()),
	)

	if !wait(ctx, d.params.Hold) {
		return ctx.Err()
	}

	for _, id := range spoofIDs {
		if err := d.venue.Cancel(ctx, id); err != nil {
			return fmt.Errorf("cancel spoof order %s: %w", id, err)
		}
	}
	d.logger.Info("spoof layers cancelled", slog.Int("count", len(spoofIDs)))
	return nil
}

// wait blocks for dur unless ctx ends first. It reports whether the full
// wait elapsed.
func wait(ctx context.Context, dur time.Duration) bool {
	if dur <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(dur)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// shortID returns 8 hex characters derived from a random uuid, used to
// suffix client order ids.
func shortID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:4])
}

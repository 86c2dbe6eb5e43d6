package venue

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/efreitasn/spoofsim/internal/domain"
	"github.com/efreitasn/spoofsim/internal/engine"
	"github.com/efreitasn/spoofsim/internal/metrics"
)

// Sim is the simulated venue: every order goes straight into an in-memory
// matching engine, one book per symbol. Input validation happens here, at
// the venue boundary; the engine trusts its callers.
type Sim struct {
	books  *engine.Books
	logger *slog.Logger
}

// NewSim creates a simulated venue backed by the given book set.
func NewSim(books *engine.Books, logger *slog.Logger) *Sim {
	return &Sim{books: books, logger: logger}
}

// Books exposes the underlying book set for read-only diagnostics.
func (s *Sim) Books() *engine.Books {
	return s.books
}

// Connect is immediate for the sim venue; there is nothing to dial.
func (s *Sim) Connect(ctx context.Context) error {
	s.logger.Info("sim venue ready")
	return nil
}

// Top returns the best bid and ask for symbol. An empty or missing side
// reports the engine's default prices, so there is always a quote.
func (s *Sim) Top(ctx context.Context, symbol string) (domain.Quote, error) {
	if symbol == "" {
		return domain.Quote{}, &domain.ValidationError{Message: "symbol must not be empty"}
	}
	return s.books.GetOrCreate(symbol).Top(), nil
}

// PlaceLimit validates the order, submits it to the symbol's book, and
// matches synchronously. The returned id is the client order id echoed
// back.
func (s *Sim) PlaceLimit(ctx context.Context, symbol string, side domain.Side, price, size decimal.Decimal, clientID string) (string, error) {
	if symbol == "" {
		return "", &domain.ValidationError{Message: "symbol must not be empty"}
	}
	if clientID == "" {
		return "", &domain.ValidationError{Message: "client order id must not be empty"}
	}
	if side != domain.SideBuy && side != domain.SideSell {
		return "", &domain.ValidationError{Message: "side must be 'buy' or 'sell'"}
	}
	if price.Sign() <= 0 {
		return "", &domain.ValidationError{Message: "price must be greater than 0"}
	}
	if size.Sign() <= 0 {
		return "", &domain.ValidationError{Message: "size must be greater than 0"}
	}

	id, trades := s.books.GetOrCreate(symbol).PlaceLimit(side, price, size, clientID)

	metrics.RecordOrderPlaced(symbol, string(side))
	for _, tr := range trades {
		metrics.RecordTrade(symbol, tr.Size.InexactFloat64())
		s.logger.Info("trade executed",
			slog.String("symbol", symbol),
			slog.String("trade_id", tr.TradeID),
			slog.String("price", tr.Price.String()),
			slog.String("size", tr.Size.String()),
		)
	}

	s.logger.Debug("order placed",
		slog.String("symbol", symbol),
		slog.String("order_id", id),
		slog.String("side", string(side)),
		slog.String("price", price.String()),
		slog.String("size", size.String()),
		slog.Int("trades", len(trades)),
	)
	return id, nil
}

// Cancel removes the order if it is still resting on any book. Unknown and
// already-completed ids are a no-op, not an error: by the time a cancel
// arrives the order may have filled.
func (s *Sim) Cancel(ctx context.Context, orderID string) error {
	if orderID == "" {
		return &domain.ValidationError{Message: "order id must not be empty"}
	}

	for _, symbol := range s.books.Symbols() {
		book, ok := s.books.Get(symbol)
		if !ok {
			continue
		}
		if book.Cancel(orderID) {
			metrics.RecordCancel(symbol, true)
			s.logger.Debug("order cancelled",
				slog.String("symbol", symbol),
				slog.String("order_id", orderID),
			)
			return nil
		}
	}

	metrics.RecordCancel("unknown", false)
	s.logger.Debug("cancel no-op", slog.String("order_id", orderID))
	return nil
}

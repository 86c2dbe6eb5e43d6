package venue

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/efreitasn/spoofsim/internal/domain"
)

// Live is a stub adapter for a real exchange. No exchange SDK is wired in:
// in paper mode it logs the intended actions and succeeds without touching
// any market, and outside paper mode it refuses to run at all. It exists so
// the rest of the program exercises the exact code path a real integration
// would take.
type Live struct {
	key    string
	secret string
	paper  bool
	logger *slog.Logger
}

// NewLive creates the live venue stub. Credentials may be empty in paper
// mode.
func NewLive(key, secret string, paper bool, logger *slog.Logger) *Live {
	return &Live{key: key, secret: secret, paper: paper, logger: logger}
}

// Connect fails unless paper mode is on. Real order submission is not
// implemented, and refusing here keeps the process from ever reaching the
// trading loop with that misconfiguration.
func (l *Live) Connect(ctx context.Context) error {
	if !l.paper {
		return domain.ErrLiveTradingDisabled
	}
	l.logger.Info("live venue in paper mode, orders are logged and not sent",
		slog.Bool("credentials_set", l.key != "" && l.secret != ""),
	)
	return nil
}

// Top has no market-data feed behind it and always reports so.
func (l *Live) Top(ctx context.Context, symbol string) (domain.Quote, error) {
	return domain.Quote{}, domain.ErrNotImplemented
}

// PlaceLimit logs the order it would have sent and echoes the client id.
func (l *Live) PlaceLimit(ctx context.Context, symbol string, side domain.Side, price, size decimal.Decimal, clientID string) (string, error) {
	if !l.paper {
		return "", domain.ErrNotImplemented
	}
	l.logger.Debug("paper place",
		slog.String("symbol", symbol),
		slog.String("side", string(side)),
		slog.String("price", price.String()),
		slog.String("size", size.String()),
		slog.String("client_id", clientID),
	)
	return clientID, nil
}

// Cancel logs the cancel it would have sent.
func (l *Live) Cancel(ctx context.Context, orderID string) error {
	if !l.paper {
		return domain.ErrNotImplemented
	}
	l.logger.Debug("paper cancel", slog.String("order_id", orderID))
	return nil
}

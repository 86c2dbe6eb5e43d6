package domain

import "errors"

// Sentinel errors for venue-level error handling. ErrLiveTradingDisabled is
// a configuration error and fatal at connect time; ErrNotImplemented marks a
// venue operation that has no real implementation behind it. They are
// distinct so callers can tell "misconfigured" apart from "not wired up".
var (
	ErrLiveTradingDisabled = errors.New("live_trading_disabled")
	ErrNotImplemented      = errors.New("not_implemented")
)

// ValidationError represents order input rejected at the venue boundary
// before it reaches the matching engine.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

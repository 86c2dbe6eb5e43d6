package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Counter: orders accepted by the venue adapter.
	OrdersPlacedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Total number of limit orders accepted by the venue",
		},
		[]string{"symbol", "side"},
	)

	// Counter: cancel requests, split by outcome.
	OrdersCancelledTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_cancelled_total",
			Help: "Total number of cancel requests handled by the venue",
		},
		[]string{"symbol", "outcome"}, // cancelled / noop
	)

	// Counter: trades produced by the matching engine.
	TradesMatchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trades_matched_total",
			Help: "Total number of trades matched",
		},
		[]string{"symbol"},
	)

	// Counter: total size traded.
	TradedVolumeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traded_volume_total",
			Help: "Total size traded across all matches",
		},
		[]string{"symbol"},
	)

	// Counter: completed spoof cycles.
	CyclesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "spoof_cycles_total",
			Help: "Total number of completed spoof cycles",
		},
	)

	// Counter: cycles that ended in an error and triggered a cooldown.
	CycleErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "spoof_cycle_errors_total",
			Help: "Total number of spoof cycles aborted by an error",
		},
	)
)

// RecordOrderPlaced increments the orders_placed_total counter.
func RecordOrderPlaced(symbol, side string) {
	OrdersPlacedTotal.WithLabelValues(symbol, side).Inc()
}

// RecordCancel increments orders_cancelled_total with the given outcome.
func RecordCancel(symbol string, cancelled bool) {
	outcome := "noop"
	if cancelled {
		outcome = "cancelled"
	}
	OrdersCancelledTotal.WithLabelValues(symbol, outcome).Inc()
}

// RecordTrade records one matched trade and its size.
func RecordTrade(symbol string, size float64) {
	TradesMatchedTotal.WithLabelValues(symbol).Inc()
	TradedVolumeTotal.WithLabelValues(symbol).Add(size)
}

// RecordCycle increments the completed-cycle counter.
func RecordCycle() {
	CyclesTotal.Inc()
}

// RecordCycleError increments the failed-cycle counter.
func RecordCycleError() {
	CycleErrorsTotal.Inc()
}

// Package ops serves read-only diagnostics over HTTP: the current book, the
// trade log, health, and Prometheus metrics. It observes the simulator and
// never places or cancels orders.
package ops

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/efreitasn/spoofsim/internal/engine"
)

// NewRouter creates a chi router with all diagnostic routes registered and
// request logging.
func NewRouter(books *engine.Books, defaultSymbol string, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(requestLogging(logger))

	bookH := NewBookHandler(books, defaultSymbol)

	// Health check.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Book routes.
	r.Get("/book", bookH.GetBook)
	r.Get("/trades", bookH.ListTrades)

	// Prometheus exposition.
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// requestLogging returns middleware that logs each request's method, path,
// status code, and duration using slog.
func requestLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

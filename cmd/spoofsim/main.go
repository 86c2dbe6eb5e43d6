package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/efreitasn/spoofsim/internal/config"
	"github.com/efreitasn/spoofsim/internal/engine"
	"github.com/efreitasn/spoofsim/internal/ops"
	"github.com/efreitasn/spoofsim/internal/strategy"
	"github.com/efreitasn/spoofsim/internal/venue"
)

func main() {
	// Load configuration.
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Handle -healthcheck flag: HTTP GET to the diagnostics address, exit 0/1.
	if cfg.Healthcheck {
		if cfg.OpsAddr == "" {
			os.Exit(1)
		}
		resp, err := http.Get(healthURL(cfg.OpsAddr))
		if err != nil || resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Set up slog logger with configured level.
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Engine.
	books := engine.NewBooks()
	books.GetOrCreate(cfg.Symbol)

	// Venue selection, once at startup.
	var v venue.Venue
	switch cfg.Mode {
	case config.ModeLive:
		v = venue.NewLive(cfg.Key, cfg.Secret, cfg.Paper, logger)
	default:
		v = venue.NewSim(books, logger)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := v.Connect(ctx); err != nil {
		logger.Error("venue connect failed",
			slog.String("mode", cfg.Mode),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// Optional diagnostics server.
	var srv *http.Server
	if cfg.OpsAddr != "" {
		router := ops.NewRouter(books, cfg.Symbol, logger)
		srv = &http.Server{
			Addr:         cfg.OpsAddr,
			Handler:      router,
			ReadTimeout:  cfg.OpsReadTimeout,
			WriteTimeout: cfg.OpsWriteTimeout,
		}
		go func() {
			logger.Info("ops server starting", slog.String("addr", cfg.OpsAddr))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("ops server error", slog.String("error", err.Error()))
				os.Exit(1)
			}
		}()
	}

	// Strategy driver.
	driver := strategy.NewDriver(v, strategy.Params{
		Symbol:    cfg.Symbol,
		Layers:    cfg.Layers,
		LayerSize: cfg.LayerSize,
		Offset:    cfg.Offset,
		Hold:      cfg.Hold,
		Delay:     cfg.Delay,
		Pause:     cfg.Pause,
	}, logger)

	driverDone := make(chan error, 1)
	go func() {
		driverDone <- driver.Run(ctx)
	}()

	// Wait for SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutdown signal received", slog.String("signal", sig.String()))

	// Graceful shutdown: stop the driver between operations, then the ops
	// server.
	cancel()
	if err := <-driverDone; err != nil {
		logger.Error("driver error", slog.String("error", err.Error()))
	}

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("ops server shutdown error", slog.String("error", err.Error()))
		}
	}

	logger.Info("stopped")
}

// healthURL builds the health probe URL for a listen address like ":9090"
// or "127.0.0.1:9090".
func healthURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr + "/healthz"
	}
	return "http://" + addr + "/healthz"
}

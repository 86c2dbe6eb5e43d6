package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Venue modes.
const (
	ModeSim  = "sim"
	ModeLive = "live"
)

// Config holds all runtime configuration for the simulator. Cycle shape
// comes from command-line flags; credentials and process tuning come from
// environment variables.
type Config struct {
	Mode      string
	Symbol    string
	Layers    int
	LayerSize decimal.Decimal
	Offset    decimal.Decimal
	Hold      time.Duration
	Delay     time.Duration
	Pause     time.Duration

	OpsAddr     string
	Healthcheck bool

	Key      string
	Secret   string
	Paper    bool
	LogLevel string

	OpsReadTimeout  time.Duration
	OpsWriteTimeout time.Duration
	ShutdownTimeout time.Duration
}

// Load parses flags from args (not including the program name), reads
// environment variables, applies defaults, and validates values. It returns
// an error for any invalid value.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("spoofsim", flag.ContinueOnError)
	mode := fs.String("mode", ModeSim, "venue mode: sim or live")
	symbol := fs.String("symbol", "BTC/USDT", "symbol to trade")
	layers := fs.Int("layers", 3, "number of spoof layers per cycle")
	layerSize := fs.String("layer-size", "5.0", "size of each spoof layer")
	offset := fs.String("offset", "0.5", "price step between spoof layers")
	hold := fs.Duration("hold", 200*time.Millisecond, "how long spoof layers rest before cancellation")
	delay := fs.Duration("delay", 50*time.Millisecond, "wait between the spoof layers and the real order")
	pause := fs.Duration("pause", 2*time.Second, "wait between cycles")
	opsAddr := fs.String("ops-addr", "", "diagnostics HTTP listen address (empty disables)")
	healthcheck := fs.Bool("healthcheck", false, "probe the diagnostics health endpoint and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if !isValidMode(*mode) {
		return nil, fmt.Errorf("invalid -mode: %q, must be one of: sim, live", *mode)
	}
	if *symbol == "" {
		return nil, fmt.Errorf("invalid -symbol: must not be empty")
	}
	if *layers < 1 {
		return nil, fmt.Errorf("invalid -layers: %d, must be >= 1", *layers)
	}

	size, err := decimal.NewFromString(*layerSize)
	if err != nil {
		return nil, fmt.Errorf("invalid -layer-size: %w", err)
	}
	if size.Sign() <= 0 {
		return nil, fmt.Errorf("invalid -layer-size: %s, must be > 0", size)
	}

	off, err := decimal.NewFromString(*offset)
	if err != nil {
		return nil, fmt.Errorf("invalid -offset: %w", err)
	}
	if off.Sign() <= 0 {
		return nil, fmt.Errorf("invalid -offset: %s, must be > 0", off)
	}

	if *hold < 0 {
		return nil, fmt.Errorf("invalid -hold: %v, must not be negative", *hold)
	}
	if *delay < 0 {
		return nil, fmt.Errorf("invalid -delay: %v, must not be negative", *delay)
	}
	if *pause < 0 {
		return nil, fmt.Errorf("invalid -pause: %v, must not be negative", *pause)
	}

	logLevel := getStr("LOG_LEVEL", "info")
	if !isValidLogLevel(logLevel) {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %q, must be one of: debug, info, warn, error", logLevel)
	}

	paper, err := getBool("EX_PAPER", true)
	if err != nil {
		return nil, fmt.Errorf("invalid EX_PAPER: %w", err)
	}

	opsReadTimeout, err := getDuration("OPS_READ_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid OPS_READ_TIMEOUT: %w", err)
	}

	opsWriteTimeout, err := getDuration("OPS_WRITE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid OPS_WRITE_TIMEOUT: %w", err)
	}

	shutdownTimeout, err := getDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	return &Config{
		Mode:      *mode,
		Symbol:    *symbol,
		Layers:    *layers,
		LayerSize: size,
		Offset:    off,
		Hold:      *hold,
		Delay:     *delay,
		Pause:     *pause,

		OpsAddr:     *opsAddr,
		Healthcheck: *healthcheck,

		Key:      getStr("EX_KEY", ""),
		Secret:   getStr("EX_SECRET", ""),
		Paper:    paper,
		LogLevel: logLevel,

		OpsReadTimeout:  opsReadTimeout,
		OpsWriteTimeout: opsWriteTimeout,
		ShutdownTimeout: shutdownTimeout,
	}, nil
}

func getStr(key, defaultVal string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v
}

func getBool(key string, defaultVal bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.ParseBool(v)
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(v)
}

func isValidMode(mode string) bool {
	switch mode {
	case ModeSim, ModeLive:
		return true
	}
	return false
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

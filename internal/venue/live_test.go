package venue

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/efreitasn/spoofsim/internal/domain"
)

func newTestLive(paper bool) *Live {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewLive("k", "s", paper, logger)
}

func TestLive_Connect_PaperMode(t *testing.T) {
	l := newTestLive(true)
	if err := l.Connect(context.Background()); err != nil {
		t.Fatalf("expected paper-mode connect to succeed, got %v", err)
	}
}

func TestLive_Connect_NonPaperRefused(t *testing.T) {
	l := newTestLive(false)
	err := l.Connect(context.Background())
	if !errors.Is(err, domain.ErrLiveTradingDisabled) {
		t.Fatalf("expected ErrLiveTradingDisabled, got %v", err)
	}
}

func TestLive_Top_NotImplemented(t *testing.T) {
	// Top is unimplemented even in paper mode: there is no feed to read.
	for _, paper := range []bool{true, false} {
		l := newTestLive(paper)
		_, err := l.Top(context.Background(), "BTC/USDT")
		if !errors.Is(err, domain.ErrNotImplemented) {
			t.Errorf("paper=%v: expected ErrNotImplemented, got %v", paper, err)
		}
	}
}

func TestLive_PlaceLimit_PaperEchoesClientID(t *testing.T) {
	l := newTestLive(true)
	id, err := l.PlaceLimit(context.Background(), "BTC/USDT", domain.SideSell, dec("50000"), dec("0.01"), "real_ab12cd34")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "real_ab12cd34" {
		t.Errorf("expected client id echoed, got %q", id)
	}
}

func TestLive_PlaceLimit_NonPaperNotImplemented(t *testing.T) {
	l := newTestLive(false)
	_, err := l.PlaceLimit(context.Background(), "BTC/USDT", domain.SideSell, dec("50000"), dec("0.01"), "c1")
	if !errors.Is(err, domain.ErrNotImplemented) {
		t.Fatalf("expected ErrNotImplemented, got %v", err)
	}
}

func TestLive_Cancel_PaperSucceeds(t *testing.T) {
	l := newTestLive(true)
	if err := l.Cancel(context.Background(), "sp_bid_12345678"); err != nil {
		t.Errorf("expected paper cancel to succeed, got %v", err)
	}
}

func TestLive_Cancel_NonPaperNotImplemented(t *testing.T) {
	l := newTestLive(false)
	err := l.Cancel(context.Background(), "sp_bid_12345678")
	if !errors.Is(err, domain.ErrNotImplemented) {
		t.Fatalf("expected ErrNotImplemented, got %v", err)
	}
}

package ops

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/efreitasn/spoofsim/internal/domain"
	"github.com/efreitasn/spoofsim/internal/engine"
	"github.com/efreitasn/spoofsim/internal/venue"
)

// testEnv bundles the router and the sim venue used to seed book state.
type testEnv struct {
	router http.Handler
	sim    *venue.Sim
}

func newTestEnv() *testEnv {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sim := venue.NewSim(engine.NewBooks(), logger)
	router := NewRouter(sim.Books(), "BTC/USDT", logger)
	return &testEnv{router: router, sim: sim}
}

// doGet sends a GET request and returns the recorder.
func (env *testEnv) doGet(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	return rr
}

// decodeJSON decodes the response body into v.
func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v (body: %s)", err, rr.Body.String())
	}
}

// place seeds an order through the sim venue.
func (env *testEnv) place(t *testing.T, symbol string, side domain.Side, price, size, clientID string) {
	t.Helper()
	_, err := env.sim.PlaceLimit(context.Background(), symbol, side,
		decimal.RequireFromString(price), decimal.RequireFromString(size), clientID)
	if err != nil {
		t.Fatalf("place %s: %v", clientID, err)
	}
}

func TestHealthz(t *testing.T) {
	env := newTestEnv()
	rr := env.doGet(t, "/healthz")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp map[string]string
	decodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Errorf("expected status ok, got %q", resp["status"])
	}
}

func TestGetBook_EmptyBook_ReportsDefaults(t *testing.T) {
	env := newTestEnv()
	env.sim.Books().GetOrCreate("BTC/USDT")

	rr := env.doGet(t, "/book?symbol=BTC/USDT")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp bookResponse
	decodeJSON(t, rr, &resp)
	if resp.Bid != "49999.5" || resp.Ask != "50000.5" {
		t.Errorf("expected default quote 49999.5/50000.5, got %s/%s", resp.Bid, resp.Ask)
	}
	if len(resp.Bids) != 0 || len(resp.Asks) != 0 {
		t.Errorf("expected no levels on an empty book, got %d/%d", len(resp.Bids), len(resp.Asks))
	}
	if resp.SnapshotAt == "" {
		t.Error("expected snapshot_at to be set")
	}
}

func TestGetBook_UnknownSymbol(t *testing.T) {
	env := newTestEnv()
	rr := env.doGet(t, "/book?symbol=NOPE/USDT")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	var resp errorResponse
	decodeJSON(t, rr, &resp)
	if resp.Error != "symbol_not_found" {
		t.Errorf("expected symbol_not_found, got %q", resp.Error)
	}
}

func TestGetBook_WithRestingOrders(t *testing.T) {
	env := newTestEnv()
	env.place(t, "BTC/USDT", domain.SideBuy, "50000", "2", "b1")
	env.place(t, "BTC/USDT", domain.SideBuy, "50000", "3", "b2")
	env.place(t, "BTC/USDT", domain.SideSell, "50010", "1", "s1")

	rr := env.doGet(t, "/book?symbol=BTC/USDT")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp bookResponse
	decodeJSON(t, rr, &resp)
	if resp.Bid != "50000" || resp.Ask != "50010" {
		t.Errorf("expected quote 50000/50010, got %s/%s", resp.Bid, resp.Ask)
	}
	if len(resp.Bids) != 1 {
		t.Fatalf("expected 1 aggregated bid level, got %d", len(resp.Bids))
	}
	if resp.Bids[0].TotalSize != "5" || resp.Bids[0].OrderCount != 2 {
		t.Errorf("expected bid level of size 5 with 2 orders, got %+v", resp.Bids[0])
	}
	if len(resp.Asks) != 1 || resp.Asks[0].Price != "50010" {
		t.Errorf("expected 1 ask level at 50010, got %+v", resp.Asks)
	}
}

func TestGetBook_DefaultSymbolFallback(t *testing.T) {
	env := newTestEnv()
	env.place(t, "BTC/USDT", domain.SideBuy, "50000", "1", "b1")

	rr := env.doGet(t, "/book")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 via default symbol, got %d", rr.Code)
	}
	var resp bookResponse
	decodeJSON(t, rr, &resp)
	if resp.Symbol != "BTC/USDT" {
		t.Errorf("expected default symbol BTC/USDT, got %q", resp.Symbol)
	}
}

func TestGetBook_DepthValidation(t *testing.T) {
	env := newTestEnv()
	env.sim.Books().GetOrCreate("BTC/USDT")

	for _, d := range []string{"abc", "0", "-3"} {
		rr := env.doGet(t, "/book?depth="+d)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("depth=%s: expected 400, got %d", d, rr.Code)
		}
	}
}

func TestGetBook_DepthTruncatesLevels(t *testing.T) {
	env := newTestEnv()
	env.place(t, "BTC/USDT", domain.SideSell, "50010", "1", "s1")
	env.place(t, "BTC/USDT", domain.SideSell, "50011", "1", "s2")
	env.place(t, "BTC/USDT", domain.SideSell, "50012", "1", "s3")

	rr := env.doGet(t, "/book?depth=2")
	var resp bookResponse
	decodeJSON(t, rr, &resp)
	if len(resp.Asks) != 2 {
		t.Errorf("expected 2 ask levels with depth=2, got %d", len(resp.Asks))
	}
}

func TestListTrades_Empty(t *testing.T) {
	env := newTestEnv()
	env.sim.Books().GetOrCreate("BTC/USDT")

	rr := env.doGet(t, "/trades")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp tradesResponse
	decodeJSON(t, rr, &resp)
	if resp.Count != 0 || len(resp.Trades) != 0 {
		t.Errorf("expected empty trade log, got count=%d len=%d", resp.Count, len(resp.Trades))
	}
}

func TestListTrades_AfterCross(t *testing.T) {
	env := newTestEnv()
	env.place(t, "BTC/USDT", domain.SideSell, "50000", "1", "s1")
	env.place(t, "BTC/USDT", domain.SideBuy, "50001", "1", "b1")

	rr := env.doGet(t, "/trades?symbol=BTC/USDT")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp tradesResponse
	decodeJSON(t, rr, &resp)
	if resp.Count != 1 {
		t.Fatalf("expected 1 trade, got %d", resp.Count)
	}
	tr := resp.Trades[0]
	if tr.Price != "50000.5" {
		t.Errorf("expected midpoint price 50000.5, got %s", tr.Price)
	}
	if tr.Size != "1" {
		t.Errorf("expected size 1, got %s", tr.Size)
	}
	if tr.TradeID == "" || tr.ExecutedAt == "" {
		t.Errorf("expected trade_id and executed_at to be set, got %+v", tr)
	}
}

func TestListTrades_UnknownSymbol(t *testing.T) {
	env := newTestEnv()
	rr := env.doGet(t, "/trades?symbol=NOPE/USDT")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestMetrics_Exposition(t *testing.T) {
	env := newTestEnv()
	env.place(t, "BTC/USDT", domain.SideBuy, "50000", "1", "b1")

	rr := env.doGet(t, "/metrics")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "orders_placed_total") {
		t.Error("expected orders_placed_total in the exposition")
	}
	if !strings.Contains(body, "go_goroutines") {
		t.Error("expected default Go collector metrics in the exposition")
	}
}

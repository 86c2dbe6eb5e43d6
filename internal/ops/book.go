package ops

import (
	"net/http"
	"strconv"
	"time"

	"github.com/efreitasn/spoofsim/internal/engine"
)

// BookHandler handles HTTP requests for book and trade diagnostics.
type BookHandler struct {
	books         *engine.Books
	defaultSymbol string
}

// NewBookHandler creates a new BookHandler. Requests without a symbol query
// parameter fall back to defaultSymbol.
func NewBookHandler(books *engine.Books, defaultSymbol string) *BookHandler {
	return &BookHandler{books: books, defaultSymbol: defaultSymbol}
}

// bookLevelResponse is a single price level in the book response.
type bookLevelResponse struct {
	Price      string `json:"price"`
	TotalSize  string `json:"total_size"`
	OrderCount int    `json:"order_count"`
}

// bookResponse is the JSON response for GET /book.
type bookResponse struct {
	Symbol     string              `json:"symbol"`
	Bid        string              `json:"bid"`
	Ask        string              `json:"ask"`
	Bids       []bookLevelResponse `json:"bids"`
	Asks       []bookLevelResponse `json:"asks"`
	SnapshotAt string              `json:"snapshot_at"`
}

// tradeResponse is a single trade in the trades response.
type tradeResponse struct {
	TradeID    string `json:"trade_id"`
	Price      string `json:"price"`
	Size       string `json:"size"`
	ExecutedAt string `json:"executed_at"`
}

// tradesResponse is the JSON response for GET /trades.
type tradesResponse struct {
	Symbol string          `json:"symbol"`
	Count  int             `json:"count"`
	Trades []tradeResponse `json:"trades"`
}

// GetBook handles GET /book.
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	symbol := h.symbolParam(r)

	// Parse depth query param (default 10, max 50).
	depth := 10
	if d := r.URL.Query().Get("depth"); d != "" {
		var err error
		depth, err = strconv.Atoi(d)
		if err != nil || depth < 1 {
			WriteError(w, http.StatusBadRequest, "validation_error", "depth must be a positive integer")
			return
		}
	}
	if depth > 50 {
		depth = 50
	}

	book, ok := h.books.Get(symbol)
	if !ok {
		WriteError(w, http.StatusNotFound, "symbol_not_found", "no book for symbol "+symbol)
		return
	}

	top := book.Top()
	bidLevels, askLevels := book.Depth(depth)

	bids := make([]bookLevelResponse, len(bidLevels))
	for i, l := range bidLevels {
		bids[i] = bookLevelResponse{
			Price:      l.Price.String(),
			TotalSize:  l.TotalSize.String(),
			OrderCount: l.OrderCount,
		}
	}
	asks := make([]bookLevelResponse, len(askLevels))
	for i, l := range askLevels {
		asks[i] = bookLevelResponse{
			Price:      l.Price.String(),
			TotalSize:  l.TotalSize.String(),
			OrderCount: l.OrderCount,
		}
	}

	WriteJSON(w, http.StatusOK, bookResponse{
		Symbol:     symbol,
		Bid:        top.Bid.String(),
		Ask:        top.Ask.String(),
		Bids:       bids,
		Asks:       asks,
		SnapshotAt: time.Now().UTC().Format("2006-01-02T15:04:05Z"),
	})
}

// ListTrades handles GET /trades.
func (h *BookHandler) ListTrades(w http.ResponseWriter, r *http.Request) {
	symbol := h.symbolParam(r)

	book, ok := h.books.Get(symbol)
	if !ok {
		WriteError(w, http.StatusNotFound, "symbol_not_found", "no book for symbol "+symbol)
		return
	}

	all := book.Trades()
	trades := make([]tradeResponse, len(all))
	for i, tr := range all {
		trades[i] = tradeResponse{
			TradeID:    tr.TradeID,
			Price:      tr.Price.String(),
			Size:       tr.Size.String(),
			ExecutedAt: tr.ExecutedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
	}

	WriteJSON(w, http.StatusOK, tradesResponse{
		Symbol: symbol,
		Count:  len(trades),
		Trades: trades,
	})
}

func (h *BookHandler) symbolParam(r *http.Request) string {
	if s := r.URL.Query().Get("symbol"); s != "" {
		return s
	}
	return h.defaultSymbol
}

package engine

import (
	"sort"
	"sync"
)

// Books keeps one Book per symbol, created lazily. Safe for concurrent use.
type Books struct {
	mu    sync.RWMutex
	books map[string]*Book
}

// NewBooks creates an empty book set.
func NewBooks() *Books {
	return &Books{books: make(map[string]*Book)}
}

// GetOrCreate returns the book for symbol, creating it on first use.
func (s *Books) GetOrCreate(symbol string) *Book {
	s.mu.RLock()
	b, ok := s.books[symbol]
	s.mu.RUnlock()
	if ok {
		return b
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.books[symbol]; ok {
		return b
	}
	b = NewBook(symbol)
	s.books[symbol] = b
	return b
}

// Get returns the book for symbol if one exists.
func (s *Books) Get(symbol string) (*Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.books[symbol]
	return b, ok
}

// Symbols returns the symbols with a book, sorted.
func (s *Books) Symbols() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.books))
	for sym := range s.books {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

// Package session holds the state scoped to one interactive dashboard
// session. Everything here lives for the process lifetime only.
package session

// DisplayLimit is how many history entries the dashboard shows.
const DisplayLimit = 5

// History is the append-only list of tickers searched during this session.
// Entries are never removed; display truncation happens at read time. The
// dashboard is single-threaded, so no locking.
type History struct {
	symbols []string
}

// NewHistory creates an empty history.
func NewHistory() *History { return &History{} }

// Add appends a symbol unless it was already searched this session.
func (h *History) Add(symbol string) {
	if symbol == "" {
		return
	}
	for _, s := range h.symbols {
		if s == symbol {
			return
		}
	}
	h.symbols = append(h.symbols, symbol)
}

// Recent returns up to n entries, most recent first.
func (h *History) Recent(n int) []string {
	if n <= 0 || len(h.symbols) == 0 {
		return nil
	}
	start := len(h.symbols) - n
	if start < 0 {
		start = 0
	}
	out := make([]string, 0, len(h.symbols)-start)
	for i := len(h.symbols) - 1; i >= start; i-- {
		out = append(out, h.symbols[i])
	}
	return out
}

// Len returns the total number of recorded symbols.
func (h *History) Len() int { return len(h.symbols) }

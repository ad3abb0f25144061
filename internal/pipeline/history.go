package pipeline

import "sync"

// History is the in-memory, newest-first collection of results. Append
// happens from a single producer (the processor); reads come from the
// API layer. No persistence: the history lives and dies with the process.
type History struct {
	mu      sync.RWMutex
	results []*Result
	limit   int
}

// NewHistory creates a history capped at limit entries; 0 means unbounded.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Add prepends a result. The oldest entry is dropped once the cap is hit.
func (h *History) Add(r *Result) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.results = append([]*Result{r}, h.results...)
	if h.limit > 0 && len(h.results) > h.limit {
		h.results = h.results[:h.limit]
	}
}

// List returns a snapshot of the history, newest first.
func (h *History) List() []*Result {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*Result, len(h.results))
	copy(out, h.results)
	return out
}

// Get returns the result with the given ID, or nil.
func (h *History) Get(id string) *Result {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, r := range h.results {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// Len returns the number of stored results.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.results)
}

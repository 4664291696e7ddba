package state

import (
	"sync"

	"sniperscope/internal/domain"
)

const defaultHistoryCapacity = 100

// ActionHistory keeps the bounded buffer of simulated snipe actions.
type ActionHistory struct {
	mu       sync.Mutex
	capacity int
	entries  []domain.ActionHistoryEntry
}

func NewActionHistory(capacity int) *ActionHistory {
	if capacity <= 0 {
		capacity = defaultHistoryCapacity
	}
	return &ActionHistory{capacity: capacity}
}

func (h *ActionHistory) Append(e domain.ActionHistoryEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, e)
	if over := len(h.entries) - h.capacity; over > 0 {
		h.entries = append(h.entries[:0], h.entries[over:]...)
	}
}

// Recent returns up to n entries, most-recent-first.
func (h *ActionHistory) Recent(n int) []domain.ActionHistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	if n <= 0 || n > len(h.entries) {
		n = len(h.entries)
	}

	out := make([]domain.ActionHistoryEntry, 0, n)
	for i := len(h.entries) - 1; i >= len(h.entries)-n; i-- {
		out = append(out, h.entries[i])
	}
	return out
}

func (h *ActionHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

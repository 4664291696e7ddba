package state

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"sniperscope/internal/domain"
)

const defaultLogCapacity = 500

// LogSink is the bounded, time-ordered operational log behind the dashboard
// panel. Written by every component, append-only, oldest entries evicted
// past capacity.
type LogSink struct {
	mu       sync.Mutex
	capacity int
	entries  []domain.LogEntry
	now      func() time.Time
}

func NewLogSink(capacity int) *LogSink {
	if capacity <= 0 {
		capacity = defaultLogCapacity
	}
	return &LogSink{
		capacity: capacity,
		now:      time.Now,
	}
}

func (l *LogSink) Append(level domain.LogLevel, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, domain.LogEntry{
		ID:        uuid.NewString(),
		Timestamp: l.now(),
		Level:     level,
		Message:   message,
	})
	if over := len(l.entries) - l.capacity; over > 0 {
		l.entries = append(l.entries[:0], l.entries[over:]...)
	}
}

// Recent returns up to n entries, most-recent-first.
func (l *LogSink) Recent(n int) []domain.LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n <= 0 || n > len(l.entries) {
		n = len(l.entries)
	}

	out := make([]domain.LogEntry, 0, n)
	for i := len(l.entries) - 1; i >= len(l.entries)-n; i-- {
		out = append(out, l.entries[i])
	}
	return out
}

// Clear empties the buffer and returns how many entries were dropped.
func (l *LogSink) Clear() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cleared := len(l.entries)
	l.entries = nil
	return cleared
}

func (l *LogSink) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

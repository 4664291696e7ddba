package state

import (
	"sync"
	"time"

	"sniperscope/internal/domain"
)

// NetworkStatsStore guards the single derived-metrics record.
// One writer (the netsim task), many readers.
type NetworkStatsStore struct {
	mu    sync.RWMutex
	stats domain.NetworkStats
}

func NewNetworkStatsStore(now time.Time) *NetworkStatsStore {
	return &NetworkStatsStore{stats: domain.DefaultNetworkStats(now)}
}

func (s *NetworkStatsStore) Snapshot() domain.NetworkStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Update applies fn to the record under the write lock, so the derived
// fields (fee tier, congestion label, epoch) always move together.
func (s *NetworkStatsStore) Update(fn func(*domain.NetworkStats)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.stats)
}

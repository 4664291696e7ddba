package state

import (
	"sync"

	"sniperscope/internal/domain"
)

// EngineStore holds the bundle-engine configuration, replaceable over the
// API while the watcher and service read it.
type EngineStore struct {
	mu  sync.RWMutex
	cfg domain.EngineConfig
}

func NewEngineStore() *EngineStore {
	return &EngineStore{cfg: domain.DefaultEngineConfig()}
}

func (s *EngineStore) Snapshot() domain.EngineConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *EngineStore) Replace(cfg domain.EngineConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

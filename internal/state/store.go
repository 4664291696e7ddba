package state

import (
	"sync"

	"sniperscope/internal/domain"
)

const defaultStoreCapacity = 50

// OpportunityStore is the authoritative bounded list of currently known
// opportunities, most-recent-first. One writer (the watcher), many readers
// (API handlers). Every write builds the full replacement slice under the
// lock and swaps it in, so a reader sees either the pre-cycle or the
// post-cycle list, never a partial splice.
type OpportunityStore struct {
	mu       sync.RWMutex
	capacity int
	opps     []domain.Opportunity
}

func NewOpportunityStore(capacity int) *OpportunityStore {
	if capacity <= 0 {
		capacity = defaultStoreCapacity
	}
	return &OpportunityStore{capacity: capacity}
}

// Snapshot returns a copy of the current list, most-recent-first.
func (s *OpportunityStore) Snapshot() []domain.Opportunity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Opportunity, len(s.opps))
	copy(out, s.opps)
	return out
}

// Prepend puts the freshly detected opportunities at the head and truncates
// to capacity, dropping the oldest.
func (s *OpportunityStore) Prepend(newOpps []domain.Opportunity) {
	if len(newOpps) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := make([]domain.Opportunity, 0, len(newOpps)+len(s.opps))
	merged = append(merged, newOpps...)
	merged = append(merged, s.opps...)
	if len(merged) > s.capacity {
		merged = merged[:s.capacity]
	}
	s.opps = merged
}

// MarkSniped flips Detected -> Sniped for the opportunity holding the token
// address. Returns false when no match exists: the address may have been
// evicted already, which is a defined no-op for callers, not an error.
func (s *OpportunityStore) MarkSniped(tokenAddress string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.opps {
		if s.opps[i].TokenAddress == tokenAddress {
			if s.opps[i].Status == domain.StatusDetected {
				s.opps[i].Status = domain.StatusSniped
			}
			return true
		}
	}
	return false
}

// FindByToken returns a copy of the opportunity for the token address.
func (s *OpportunityStore) FindByToken(tokenAddress string) (domain.Opportunity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.opps {
		if s.opps[i].TokenAddress == tokenAddress {
			return s.opps[i], true
		}
	}
	return domain.Opportunity{}, false
}

func (s *OpportunityStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.opps)
}

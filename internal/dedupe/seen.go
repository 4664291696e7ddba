package dedupe

const defaultCapacity = 2_000

// SeenSet is a capacity-bounded set of already-surfaced pair addresses.
// Retention is a full clear once the set outgrows its capacity, not an LRU:
// the pair-age filter upstream keeps cleared stale pairs from re-surfacing.
//
// Not safe for concurrent use. The watcher goroutine is the only owner.
type SeenSet struct {
	capacity int
	items    map[string]struct{}
}

func NewSeenSet(capacity int) *SeenSet {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &SeenSet{
		capacity: capacity,
		items:    make(map[string]struct{}, 1024),
	}
}

func (s *SeenSet) Seen(addr string) bool {
	_, ok := s.items[addr]
	return ok
}

func (s *SeenSet) Mark(addr string) {
	s.items[addr] = struct{}{}
}

// MaybeRotate clears the whole set once it exceeds capacity.
func (s *SeenSet) MaybeRotate() (int, bool) {
	if len(s.items) <= s.capacity {
		return 0, false
	}
	cleared := len(s.items)
	s.items = make(map[string]struct{}, 1024)
	return cleared, true
}

func (s *SeenSet) Len() int {
	return len(s.items)
}

package dedupe

// General dedup contract for the watcher pipeline.
// Implementations are owned by exactly one goroutine and need no locking.
type Deduper interface {
	// Seen reports whether the address was already surfaced.
	Seen(addr string) bool
	// Mark records an address as surfaced.
	Mark(addr string)
	// MaybeRotate applies the retention policy. When it fires it returns
	// the number of entries dropped and rotated=true.
	MaybeRotate() (cleared int, rotated bool)
	// Len is the current size of the seen-set.
	Len() int
}

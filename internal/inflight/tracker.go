// Package inflight tracks outstanding upstream calls per key so a screen's
// loading flag is raised before a call and cleared exactly once after it,
// whatever the outcome.
package inflight

import "sync"

type Tracker struct {
	mu     sync.Mutex
	counts map[string]int
}

func NewTracker() *Tracker {
	return &Tracker{counts: make(map[string]int)}
}

// Begin raises the flag for key. The returned func clears it; calling it more
// than once has no further effect.
func (t *Tracker) Begin(key string) (done func()) {
	t.mu.Lock()
	t.counts[key]++
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			t.counts[key]--
			if t.counts[key] <= 0 {
				delete(t.counts, key)
			}
		})
	}
}

// Loading reports whether any call for key is outstanding.
func (t *Tracker) Loading(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[key] > 0
}

// Snapshot returns the outstanding count per key.
func (t *Tracker) Snapshot() map[string]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]int, len(t.counts))
	for k, v := range t.counts {
		out[k] = v
	}
	return out
}

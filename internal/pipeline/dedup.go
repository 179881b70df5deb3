package pipeline

import "sync"

// workingSet tracks which person ids have already flowed through the
// pipeline, so re-fetched records are refreshed without re-notifying.
type workingSet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func newWorkingSet(seed map[string]struct{}) *workingSet {
	seen := make(map[string]struct{}, len(seed))
	for id := range seed {
		seen[id] = struct{}{}
	}
	return &workingSet{seen: seen}
}

func (w *workingSet) Has(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.seen[id]
	return ok
}

func (w *workingSet) Add(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.seen[id] = struct{}{}
}

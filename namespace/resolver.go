package namespace

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Resolver deduplicates concurrent opens of the same namespace: two
// goroutines resolving the same ns("db.schema.name") at once share one
// load (schema decode + backend construction) instead of racing separate
// file opens (spec.md §9: "the namespace resolver reads an
// environment-configured home directory; treat this as injected
// configuration, not ambient state").
type Resolver struct {
	Home string

	group singleflight.Group
	mu    sync.Mutex
	cache map[string]interface{}
}

// NewResolver creates a Resolver rooted at home.
func NewResolver(home string) *Resolver {
	return &Resolver{Home: home, cache: make(map[string]interface{})}
}

// Resolve returns the cached handle for ns, calling load exactly once even
// under concurrent callers, per singleflight.Group's Do contract.
func (r *Resolver) Resolve(ns Namespace, load func() (interface{}, error)) (interface{}, error) {
	key := ns.String()

	r.mu.Lock()
	if v, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return v, nil
	}
	r.mu.Unlock()

	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		r.mu.Lock()
		if v, ok := r.cache[key]; ok {
			r.mu.Unlock()
			return v, nil
		}
		r.mu.Unlock()
		v, err := load()
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.cache[key] = v
		r.mu.Unlock()
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Forget evicts ns from the cache, e.g. after a table is dropped or its
// backend is closed.
func (r *Resolver) Forget(ns Namespace) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cache, ns.String())
}

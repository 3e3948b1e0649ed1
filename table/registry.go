package table

import (
	"sync"

	"github.com/arloliu/rowseg/internal/collision"
	"github.com/arloliu/rowseg/internal/hash"
)

// Registry tracks loaded table names by their xxHash64 ID.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	tracker *collision.Tracker
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tracker: collision.NewTracker(hash.ID)}
}

// TableID returns the ID a table name is registered under.
func TableID(name string) uint64 {
	return hash.ID(name)
}

// Register records a table name and returns its ID.
//
// Returns errs.ErrInvalidTableName, errs.ErrTableAlreadyLoaded or
// errs.ErrHashCollision.
func (r *Registry) Register(name string) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.tracker.Track(name)
}

// Unregister removes a table name. It reports whether the name was registered.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.tracker.Untrack(name)
}

// Has reports whether a table name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.tracker.Has(name)
}

// Name returns the table registered under id.
func (r *Registry) Name(id uint64) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.tracker.Lookup(id)
}

// Names returns the registered table names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.tracker.Names()
}

// Len returns the number of registered tables.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.tracker.Count()
}

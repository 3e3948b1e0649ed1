package collision

import (
	"fmt"
	"slices"

	"github.com/arloliu/rowseg/errs"
)

// Tracker records names by their 64-bit hash and rejects duplicates and
// collisions. Names are kept in insertion order.
//
// Note: Tracker is NOT thread-safe; callers serialize access.
type Tracker struct {
	byID  map[uint64]string
	names []string
	hash  func(string) uint64
}

// NewTracker creates a tracker that hashes names with hash.
func NewTracker(hash func(string) uint64) *Tracker {
	return &Tracker{
		byID:  make(map[uint64]string),
		names: make([]string, 0),
		hash:  hash,
	}
}

// Track records name and returns its ID.
//
// Returns error if:
//   - name is empty (errs.ErrInvalidTableName)
//   - name is already tracked (errs.ErrTableAlreadyLoaded)
//   - another name has the same ID (errs.ErrHashCollision)
func (t *Tracker) Track(name string) (uint64, error) {
	if name == "" {
		return 0, errs.ErrInvalidTableName
	}

	id := t.hash(name)
	if existing, ok := t.byID[id]; ok {
		if existing == name {
			return id, fmt.Errorf("%w: %q", errs.ErrTableAlreadyLoaded, name)
		}

		return id, fmt.Errorf("%w: %q and %q share id %#x", errs.ErrHashCollision, existing, name, id)
	}

	t.byID[id] = name
	t.names = append(t.names, name)

	return id, nil
}

// Untrack removes name. It reports whether name was tracked.
func (t *Tracker) Untrack(name string) bool {
	id := t.hash(name)
	if existing, ok := t.byID[id]; !ok || existing != name {
		return false
	}

	delete(t.byID, id)
	t.names = slices.DeleteFunc(t.names, func(n string) bool { return n == name })

	return true
}

// Has reports whether name is tracked.
func (t *Tracker) Has(name string) bool {
	existing, ok := t.byID[t.hash(name)]
	return ok && existing == name
}

// Lookup returns the name tracked under id.
func (t *Tracker) Lookup(id uint64) (string, bool) {
	name, ok := t.byID[id]
	return name, ok
}

// Names returns the tracked names in insertion order.
// The returned slice is a copy.
func (t *Tracker) Names() []string {
	return slices.Clone(t.names)
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.names)
}

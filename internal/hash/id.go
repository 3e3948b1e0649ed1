package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
//
// Loaded tables are keyed by the ID of their name.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

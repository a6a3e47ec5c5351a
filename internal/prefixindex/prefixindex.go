// Package prefixindex backs the trie container's prefix-to-slice routing
// table: a plain map from each 4-symbol prefix to a dense slot. Bucket
// separately hashes a prefix with murmur3 into [0, buckets); the slot
// assignment does not use it.
package prefixindex

import (
	"github.com/spaolacci/murmur3"

	"github.com/bioaodp/oligosig/symbol"
)

// Index routes a symbol.Prefix4 to a slot in [0, Len()) and tracks
// which prefixes have been seen, so the container can lazily allocate
// one trie.Slice per distinct prefix without scanning every bucket.
type Index struct {
	buckets int
	seen    map[symbol.Prefix4]int
}

// New returns an Index with the given bucket count (a reasonable default
// is the next power of two at or above 4^4 = 256, the full prefix space).
func New(buckets int) *Index {
	if buckets <= 0 {
		buckets = 256
	}
	return &Index{buckets: buckets, seen: make(map[symbol.Prefix4]int)}
}

// Bucket returns the shard index for prefix.
func (ix *Index) Bucket(prefix symbol.Prefix4) int {
	h := murmur3.Sum32([]byte{byte(prefix)})
	return int(h) % ix.buckets
}

// Slot returns the dense slot assigned to prefix, allocating a new one
// (slots are numbered 0, 1, 2, ... in first-encounter order across all
// prefixes) the first time prefix is seen.
func (ix *Index) Slot(prefix symbol.Prefix4) int {
	if slot, ok := ix.seen[prefix]; ok {
		return slot
	}
	slot := len(ix.seen)
	ix.seen[prefix] = slot
	return slot
}

// Lookup returns prefix's slot without allocating a new one.
func (ix *Index) Lookup(prefix symbol.Prefix4) (int, bool) {
	slot, ok := ix.seen[prefix]
	return slot, ok
}

// Prefixes returns every prefix registered so far, in slot order.
func (ix *Index) Prefixes() []symbol.Prefix4 {
	out := make([]symbol.Prefix4, len(ix.seen))
	for p, slot := range ix.seen {
		out[slot] = p
	}
	return out
}

// Len reports how many distinct prefixes have been registered.
func (ix *Index) Len() int { return len(ix.seen) }

// Package trie (container.go) joins per-prefix Slices into the full
// signature index: a shard-by-prefix container routed through
// internal/prefixindex instead of a bare map.
package trie

import (
	"sync"

	"github.com/bioaodp/oligosig/internal/prefixindex"
	"github.com/bioaodp/oligosig/source"
	"github.com/bioaodp/oligosig/symbol"
)

// Container owns one Slice per unambiguous 4-symbol prefix encountered
// while indexing a Source, plus the routing table that finds them.
type Container struct {
	mu     sync.Mutex
	index  *prefixindex.Index
	slices []*Slice
	minLen int
}

// NewContainer returns an empty Container requiring at least minOligoLen
// symbols before any occurrence is recorded in a slice.
func NewContainer(minOligoLen int) *Container {
	return &Container{index: prefixindex.New(256), minLen: minOligoLen}
}

// SliceFor returns the Slice for prefix, creating it if this is the
// first time the prefix has been seen. Safe for concurrent use.
func (c *Container) SliceFor(prefix symbol.Prefix4) *Slice {
	c.mu.Lock()
	defer c.mu.Unlock()
	slot := c.index.Slot(prefix)
	for len(c.slices) <= slot {
		c.slices = append(c.slices, nil)
	}
	if c.slices[slot] == nil {
		c.slices[slot] = NewSlice(prefix)
	}
	return c.slices[slot]
}

// Slices returns every allocated slice, in prefix-registration order.
func (c *Container) Slices() []*Slice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Slice, len(c.slices))
	copy(out, c.slices)
	return out
}

// MinOligoLen returns the minimum signature length this container's
// slices were built against.
func (c *Container) MinOligoLen() int { return c.minLen }

// Index exposes the prefix routing table for callers that need to map a
// buffer position to a prefix/slice pair directly (e.g. the matcher).
func (c *Container) Index() *prefixindex.Index { return c.index }

// route returns the Prefix4 at fragment position p in src, and whether
// all four symbols there are unambiguous (only unambiguous prefixes are
// ever used to select a slice).
func route(src Reader, p uint64) (symbol.Prefix4, bool) {
	s0, s1, s2, s3 := src.At(p), src.At(p+1), src.At(p+2), src.At(p+3)
	return symbol.PackPrefix4(s0, s1, s2, s3)
}

// BuildSlices walks every admissible oligo start position in src
// (positions where MaxLen[p] >= minOligo, per source.Source's
// per-position bound) and feeds it to Add on the slice selected by its
// leading 4-symbol prefix. Ambiguous-leading positions are skipped here;
// they are handled by the ambiguity-aware Touch pass instead.
func (c *Container) BuildSlices(src *source.Source, seq source.SequenceID, frag source.Fragment) {
	lo, hi := uint64(frag.Range.Lo), uint64(frag.Range.Hi)
	for p := lo; p+4 <= hi; p++ {
		maxLen := src.MaxLen[p]
		if maxLen < c.minLen {
			continue
		}
		prefix, ok := route(src, p)
		if !ok {
			continue
		}
		length := maxLen
		if hi-p < uint64(length) {
			length = int(hi - p)
		}
		c.SliceFor(prefix).Add(src, seq, p, length, c.minLen)
	}
}

// ClusterAt returns the cluster id whose signature spans exactly the
// length-symbol window of query, read via src, or (0,false) if no such
// cluster was ever assigned — used by the Matcher's candidate-cluster
// sweep.
func (c *Container) ClusterAt(src Reader, query []symbol.Symbol) (int, bool) {
	if len(query) < 4 {
		return 0, false
	}
	prefix, ok := symbol.PackPrefix4(query[0], query[1], query[2], query[3])
	if !ok {
		return 0, false
	}
	c.mu.Lock()
	slot, known := c.index.Lookup(prefix)
	c.mu.Unlock()
	if !known || slot >= len(c.slices) || c.slices[slot] == nil {
		return 0, false
	}
	return c.slices[slot].ClusterAtDepth(src, query, len(query))
}

// Touch runs the ambiguity-marking pass: for every position whose
// window contains an ambiguous symbol, Mark is invoked on every slice
// whose prefix could overlap that window, poisoning any node an
// ambiguous run might have produced a false match for.
func (c *Container) Touch(src *source.Source, seq source.SequenceID, frag source.Fragment) {
	lo, hi := uint64(frag.Range.Lo), uint64(frag.Range.Hi)
	for p := lo; p+4 <= hi; p++ {
		length := c.minLen
		if hi-p < uint64(length) {
			length = int(hi - p)
		}
		if length <= 0 {
			continue
		}
		ambiguous := false
		for q := p; q < p+uint64(length); q++ {
			if frag.Ambiguous.Contains(q) {
				ambiguous = true
				break
			}
		}
		if !ambiguous {
			continue
		}
		for _, sl := range c.Slices() {
			if sl == nil {
				continue
			}
			sl.Mark(src, seq, p, length, c.minLen)
		}
	}
}

// Package trie implements a sliced, ambiguity-aware compressed radix
// trie: one Slice per unambiguous 4-symbol prefix, joined by a Container
// that routes positions to slices and runs the fixed pipeline passes
// over them.
//
// Each Slice is a four-case add/mark split structure, represented as a
// dense struct-of-arrays keyed by NodeID rather than a node map: no node
// is ever moved, and a split always allocates new ids.
package trie

import (
	"sync"

	"github.com/bioaodp/oligosig/source"
	"github.com/bioaodp/oligosig/symbol"
)

// NodeID is a dense index into a Slice's struct-of-arrays node storage.
// NodeID 0 is always the slice's root (the empty path; stored paths
// begin with the slice's 4-symbol prefix).
type NodeID int32

// Reader is the minimal view of the Source buffer a Slice needs to
// compare symbols during mutation; source.Source satisfies it.
type Reader interface {
	At(p uint64) symbol.Symbol
}

// Slice is the compressed radix subtree for all substrings whose first
// four symbols equal one unambiguous prefix. Every mutation acquires mu
// for its whole duration: each mutation runs under an exclusive lock on
// the slice.
type Slice struct {
	mu sync.Mutex

	Prefix symbol.Prefix4

	pos      []uint64
	length   []int
	children []map[symbol.Symbol]NodeID
	occ      []map[source.SequenceID]struct{}
	poisoned []bool
	cluster  []int
}

// NewSlice returns a Slice for prefix with its root node allocated.
func NewSlice(prefix symbol.Prefix4) *Slice {
	s := &Slice{Prefix: prefix}
	s.newNode(0, 0) // node 0: the root, zero-length incoming edge
	s.cluster[0] = -1
	return s
}

func (s *Slice) newNode(pos uint64, length int) NodeID {
	id := NodeID(len(s.pos))
	s.pos = append(s.pos, pos)
	s.length = append(s.length, length)
	s.children = append(s.children, nil)
	s.occ = append(s.occ, nil)
	s.poisoned = append(s.poisoned, false)
	s.cluster = append(s.cluster, -1)
	return id
}

// NumNodes returns the number of allocated nodes, including the root.
func (s *Slice) NumNodes() int { return len(s.pos) }

// Position and Length return node n's witness (the incoming edge's
// content is src[Position(n) .. Position(n)+Length(n))).
func (s *Slice) Position(n NodeID) uint64 { return s.pos[n] }
func (s *Slice) Length(n NodeID) int      { return s.length[n] }

// ClusterOf returns node n's assigned cluster id, or -1 if unset.
func (s *Slice) ClusterOf(n NodeID) int { return s.cluster[n] }

func (s *Slice) addOccurrence(n NodeID, seq source.SequenceID) {
	if s.occ[n] == nil {
		s.occ[n] = make(map[source.SequenceID]struct{}, 1)
	}
	s.occ[n][seq] = struct{}{}
}

// findDivergence returns the number of leading symbols (bounded by
// min(aLen,bLen)) for which cmp(src[aPos+k], src[bPos+k]) holds.
func findDivergence(src Reader, aPos uint64, aLen int, bPos uint64, bLen int, cmp func(a, b symbol.Symbol) bool) int {
	n := aLen
	if bLen < n {
		n = bLen
	}
	for k := 0; k < n; k++ {
		if !cmp(src.At(aPos+uint64(k)), src.At(bPos+uint64(k))) {
			return k
		}
	}
	return n
}

// splitEdge divides the edge leading to child at offset `at`, inserting a
// new middle node that owns the shared prefix; child is re-pointed to the
// unconsumed suffix. child's occurrences and cluster id are untouched —
// it still denotes exactly the same substring, just reached one edge
// deeper.
func (s *Slice) splitEdge(src Reader, parent NodeID, key symbol.Symbol, child NodeID, at int) NodeID {
	origPos, origLen := s.pos[child], s.length[child]
	m := s.newNode(origPos, at)
	if s.children[parent] == nil {
		s.children[parent] = make(map[symbol.Symbol]NodeID, 4)
	}
	s.children[parent][key] = m

	s.pos[child] = origPos + uint64(at)
	s.length[child] = origLen - at
	childKey := src.At(s.pos[child])
	s.children[m] = map[symbol.Symbol]NodeID{childKey: child}
	return m
}

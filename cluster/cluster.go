// Package cluster assigns a canonical, deterministic id to every
// distinct occurrence set a trie pass produces, forming a one-to-one
// mapping between sequence sets and cluster ids.
package cluster

import (
	"sort"

	"lukechampine.com/blake3"

	"github.com/bioaodp/oligosig/source"
)

// ID identifies one canonical set of sequences sharing a signature.
type ID int

// Encoder builds the set[Sequence] -> ID bijection. Registration happens
// in two phases: Register (called once per occurrence set encountered
// across every slice, in EncodeClusters) collects the distinct sets, and
// Finalize assigns ids in deterministic lexicographic order so that two
// runs over the same input produce identical ids regardless of the
// goroutine interleaving that discovered each set first.
type Encoder struct {
	byKey map[string][]source.SequenceID
	ids   map[string]ID
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder {
	return &Encoder{byKey: make(map[string][]source.SequenceID)}
}

// Register records occ (a set of sequence ids sharing a signature) and
// returns its canonical dedup key. Concurrent-safe only if the caller
// serializes calls — EncodeClusters runs this single-threaded, before
// the parallel collect passes that consume cluster ids.
func (e *Encoder) Register(occ map[source.SequenceID]struct{}) string {
	members := canonicalize(occ)
	key := dedupKey(members)
	if _, ok := e.byKey[key]; !ok {
		e.byKey[key] = members
	}
	return key
}

// Finalize assigns a canonical ID to every registered set, ordered
// lexicographically by member sequence id, and returns the lookup
// function CollectClusters needs: given an occurrence set, it returns the
// set's assigned ID.
func (e *Encoder) Finalize() func(occ map[source.SequenceID]struct{}) (int, bool) {
	keys := make([]string, 0, len(e.byKey))
	for k := range e.byKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return lexLess(e.byKey[keys[i]], e.byKey[keys[j]])
	})
	e.ids = make(map[string]ID, len(keys))
	for i, k := range keys {
		e.ids[k] = ID(i)
	}
	return func(occ map[source.SequenceID]struct{}) (int, bool) {
		key := dedupKey(canonicalize(occ))
		id, ok := e.ids[key]
		return int(id), ok
	}
}

// NumClusters reports how many distinct clusters were finalized.
func (e *Encoder) NumClusters() int { return len(e.ids) }

// Members returns the sequence ids belonging to cluster id after
// Finalize has run.
func (e *Encoder) Members(id ID) []source.SequenceID {
	for k, v := range e.ids {
		if v == id {
			return e.byKey[k]
		}
	}
	return nil
}

func canonicalize(occ map[source.SequenceID]struct{}) []source.SequenceID {
	out := make([]source.SequenceID, 0, len(occ))
	for id := range occ {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func lexLess(a, b []source.SequenceID) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// dedupKey hashes the canonical member list with BLAKE3 so large clusters
// compare and index in constant time rather than by repeated slice
// equality checks; this is a hot path (called once per trie node with a
// live occurrence set across every slice).
func dedupKey(members []source.SequenceID) string {
	buf := make([]byte, 4*len(members))
	for i, id := range members {
		buf[4*i] = byte(id)
		buf[4*i+1] = byte(id >> 8)
		buf[4*i+2] = byte(id >> 16)
		buf[4*i+3] = byte(id >> 24)
	}
	sum := blake3.Sum256(buf)
	return string(sum[:])
}

// Package match implements the Matcher: a greedy minimum-set cover of a
// query sequence by trie clusters, followed by Needleman-Wunsch
// alignment against every candidate source fragment. The alignment is
// not banded: every cell of the fragment-by-query matrix is computed.
//
// The alignment step is column-streamed: it keeps two columns of
// len(fragment)+1 cells, so scratch memory grows with the fragment's
// length and is not bounded by MaxAlignLength.
package match

import (
	"sort"

	"github.com/bioaodp/oligosig/checks"
	"github.com/bioaodp/oligosig/cluster"
	"github.com/bioaodp/oligosig/source"
	"github.com/bioaodp/oligosig/symbol"
	"github.com/bioaodp/oligosig/trie"
)

// MaxAlignLength caps the query length the aligner will run against.
const MaxAlignLength = 4096

// MinCoverage is the fraction of the query that candidate windows (and
// later the minimum-set-cover re-sweep) must explain.
const MinCoverage = 0.75

// Best is one source sequence tying for the highest match percentage
// against the query.
type Best struct {
	SourceName   string
	MatchPercent float64
	OverlapLen   int
}

// Result is one query's outcome. Matches holds every source sequence
// tying for the maximum match percentage; it is empty if no match was
// found.
type Result struct {
	QueryName  string
	QueryLen   int
	MinSetSize int
	MaxSetSize int
	Matches    []Best
}

// Matcher ties a built Container and Encoder together for repeated
// queries against the same index.
type Matcher struct {
	container *trie.Container
	encoder   *cluster.Encoder
	src       *source.Source
	maxOligo  int
}

// New returns a Matcher over an already-finalized container/encoder.
func New(src *source.Source, container *trie.Container, encoder *cluster.Encoder, maxOligo int) *Matcher {
	return &Matcher{container: container, encoder: encoder, src: src, maxOligo: maxOligo}
}

// Query runs the full Matcher pipeline for one query sequence.
func (m *Matcher) Query(name string, query []symbol.Symbol) Result {
	res := Result{QueryName: name, QueryLen: len(query)}

	if len(query) < 2*m.maxOligo || len(query) >= MaxAlignLength {
		return res
	}

	candidates, coveredArea := m.candidateClusters(query)
	if coveredArea < MinCoverage*float64(len(query)) {
		return res
	}

	minSet := m.minimumCover(query, candidates)
	res.MinSetSize = len(minSet)
	res.MaxSetSize = len(candidates)
	if len(minSet) == 0 {
		return res
	}

	var aligned []Best
	for seq := range minSet {
		s := m.src.Sequence(seq)
		for _, fid := range s.Fragments {
			frag := m.src.Fragment(fid)
			ref := m.src.Slice(frag.Range)
			_, matches, length := align(ref, query)
			if length == 0 {
				continue
			}
			percent := 100 * float64(matches) / float64(length)
			aligned = append(aligned, Best{SourceName: s.Name, MatchPercent: percent, OverlapLen: length})
		}
	}
	if len(aligned) == 0 {
		return res
	}

	// pick every source sequence tying for the maximum match percentage,
	// matching the ground-truth matcher's "reverse lexicographic order on
	// match percentage" selection rather than raw match count.
	max := aligned[0].MatchPercent
	for _, a := range aligned[1:] {
		if a.MatchPercent > max {
			max = a.MatchPercent
		}
	}
	for _, a := range aligned {
		if a.MatchPercent == max {
			res.Matches = append(res.Matches, a)
		}
	}
	return res
}

// candidateClusters slides a length-maxOligo window across every
// position of query and asks the trie for the cluster id there,
// accumulating the set of clusters seen and the union of window extents.
func (m *Matcher) candidateClusters(query []symbol.Symbol) (map[int]struct{}, float64) {
	clusters := make(map[int]struct{})
	covered := make([]bool, len(query))
	for i := 0; i+m.maxOligo <= len(query); i++ {
		window := query[i : i+m.maxOligo]
		if !checks.IsUnambiguous(window) {
			continue
		}
		id, ok := m.container.ClusterAt(m.src, window)
		if !ok {
			continue
		}
		clusters[id] = struct{}{}
		for k := i; k < i+m.maxOligo; k++ {
			covered[k] = true
		}
	}
	area := 0.0
	for _, c := range covered {
		if c {
			area++
		}
	}
	return clusters, area
}

// minimumCover greedily shrinks candidates, smallest sequence-set first,
// intersecting the running minimum set and accepting the intersection
// whenever the covered area re-swept against it stays >= MinCoverage.
func (m *Matcher) minimumCover(query []symbol.Symbol, candidates map[int]struct{}) map[source.SequenceID]struct{} {
	ids := make([]int, 0, len(candidates))
	for id := range candidates {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		si, sj := len(m.encoder.Members(cluster.ID(ids[i]))), len(m.encoder.Members(cluster.ID(ids[j])))
		if si != sj {
			return si < sj
		}
		return ids[i] < ids[j]
	})

	minSet := make(map[source.SequenceID]struct{})
	for _, id := range ids {
		members := m.encoder.Members(cluster.ID(id))
		candidate := intersect(minSet, members)
		if m.coverageWith(query, candidate) >= MinCoverage*float64(len(query)) {
			minSet = candidate
		}
	}
	return minSet
}

// coverageWith re-sweeps the maxOligo windows of query, counting a
// position covered only if its window's cluster set intersects set (or
// set is empty, meaning "no restriction yet").
func (m *Matcher) coverageWith(query []symbol.Symbol, set map[source.SequenceID]struct{}) float64 {
	if len(set) == 0 {
		return float64(len(query))
	}
	covered := make([]bool, len(query))
	for i := 0; i+m.maxOligo <= len(query); i++ {
		window := query[i : i+m.maxOligo]
		if !checks.IsUnambiguous(window) {
			continue
		}
		id, ok := m.container.ClusterAt(m.src, window)
		if !ok {
			continue
		}
		members := m.encoder.Members(cluster.ID(id))
		if anyIn(members, set) {
			for k := i; k < i+m.maxOligo; k++ {
				covered[k] = true
			}
		}
	}
	area := 0.0
	for _, c := range covered {
		if c {
			area++
		}
	}
	return area
}

func intersect(base map[source.SequenceID]struct{}, members []source.SequenceID) map[source.SequenceID]struct{} {
	if len(base) == 0 {
		out := make(map[source.SequenceID]struct{}, len(members))
		for _, m := range members {
			out[m] = struct{}{}
		}
		return out
	}
	out := make(map[source.SequenceID]struct{})
	for _, m := range members {
		if _, ok := base[m]; ok {
			out[m] = struct{}{}
		}
	}
	return out
}

func anyIn(members []source.SequenceID, set map[source.SequenceID]struct{}) bool {
	for _, m := range members {
		if _, ok := set[m]; ok {
			return true
		}
	}
	return false
}

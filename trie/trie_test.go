package trie_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioaodp/oligosig/source"
	"github.com/bioaodp/oligosig/symbol"
	"github.com/bioaodp/oligosig/trie"
)

type buf []symbol.Symbol

func (b buf) At(p uint64) symbol.Symbol { return b[p] }

func encode(t *testing.T, s string) buf {
	t.Helper()
	out := make(buf, len(s))
	for i := range s {
		sym, ok := symbol.FromByte(s[i])
		require.True(t, ok)
		out[i] = sym
	}
	return out
}

func prefixOf(t *testing.T, s string) symbol.Prefix4 {
	t.Helper()
	syms := encode(t, s)
	p, ok := symbol.PackPrefix4(syms[0], syms[1], syms[2], syms[3])
	require.True(t, ok)
	return p
}

func TestAddSharedPrefixSplitsEdge(t *testing.T) {
	src := encode(t, "ACGTACGAACGTGGGG")
	sl := trie.NewSlice(prefixOf(t, "ACGT"))

	// "ACGTACGA" at 0, length 8; "ACGTGGGG" at 8, length 8 — stored paths
	// include the slice's "ACGT" prefix, so both paths share "ACGT".
	sl.Add(src, 1, 0, 8, 4)
	sl.Add(src, 2, 8, 8, 4)

	// they diverge at offset 4, so the first leaf's edge is split there:
	// root, the "ACGT" middle node, and two leaves.
	assert.Equal(t, 4, sl.NumNodes())
}

func TestAddExactDuplicateMergesOccurrence(t *testing.T) {
	src := encode(t, "ACGTAAAA")
	sl := trie.NewSlice(prefixOf(t, "ACGT"))
	sl.Add(src, 1, 0, 8, 4)
	sl.Add(src, 2, 0, 8, 4)

	var found bool
	sl.EncodeClusters(func(occ map[source.SequenceID]struct{}) {
		if len(occ) == 2 {
			found = true
		}
	})
	assert.True(t, found)
}

func TestMarkPoisonsOverlappingNode(t *testing.T) {
	src := encode(t, "ACGTAAAA")
	sl := trie.NewSlice(prefixOf(t, "ACGT"))
	sl.Add(src, 1, 0, 8, 4)

	ambiguousSrc := buf{src[0], src[1], src[2], src[3], src[4], src[5], src[6], src[7]}
	// N overlaps every unambiguous symbol.
	n, ok := symbol.FromByte('N')
	require.True(t, ok)
	ambiguousSrc[4] = n

	sl.Mark(ambiguousSrc, 1, 0, 8, 4)

	var anyLive bool
	sl.EncodeClusters(func(map[source.SequenceID]struct{}) { anyLive = true })
	assert.False(t, anyLive)
}

func TestCollectClustersThenMatchesRoundTrip(t *testing.T) {
	src := encode(t, "ACGTAAAAACGTCCCC")
	sl := trie.NewSlice(prefixOf(t, "ACGT"))
	sl.Add(src, 1, 0, 8, 4)
	sl.Add(src, 2, 8, 8, 4)

	enc := newFakeEncoder()
	sl.EncodeClusters(enc.register)
	lookup := enc.finalize()
	sl.CollectClusters(lookup)

	var matches []trie.Match
	sl.CollectMatches(func(m trie.Match) { matches = append(matches, m) })
	assert.NotEmpty(t, matches)
	for _, m := range matches {
		assert.GreaterOrEqual(t, m.ClusterID, 0)
	}
}

func TestFindLocatesExactSubstring(t *testing.T) {
	src := encode(t, "ACGTAAAA")
	sl := trie.NewSlice(prefixOf(t, "ACGT"))
	sl.Add(src, 1, 0, 8, 4)

	query := encode(t, "ACGTAAAA")
	_, consumed := sl.Find(src, query)
	assert.Equal(t, 8, consumed)
}

func TestFilterHomoloErasesLongRun(t *testing.T) {
	src := encode(t, "ACGTAAAAAAAA") // run of 8 A's after the ACGT prefix
	sl := trie.NewSlice(prefixOf(t, "ACGT"))
	sl.Add(src, 1, 0, 12, 4)

	sl.FilterHomolo(src, 3, 4)

	var anyLive bool
	sl.EncodeClusters(func(map[source.SequenceID]struct{}) { anyLive = true })
	assert.False(t, anyLive)
}

// fakeEncoder is a minimal stand-in for cluster.Encoder so trie tests
// don't need to import the cluster package.
type fakeEncoder struct {
	sets []map[source.SequenceID]struct{}
}

func newFakeEncoder() *fakeEncoder { return &fakeEncoder{} }

func (f *fakeEncoder) register(occ map[source.SequenceID]struct{}) {
	f.sets = append(f.sets, occ)
}

func (f *fakeEncoder) finalize() func(map[source.SequenceID]struct{}) (int, bool) {
	return func(occ map[source.SequenceID]struct{}) (int, bool) {
		for i, s := range f.sets {
			if sameSet(s, occ) {
				return i, true
			}
		}
		return 0, false
	}
}

func sameSet(a, b map[source.SequenceID]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

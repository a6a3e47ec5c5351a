package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioaodp/oligosig/symbol"
)

func encode(t *testing.T, s string) []symbol.Symbol {
	t.Helper()
	out := make([]symbol.Symbol, len(s))
	for i := range s {
		sym, ok := symbol.FromByte(s[i])
		require.True(t, ok)
		out[i] = sym
	}
	return out
}

func TestAlignIdenticalSequencesAreAllMatches(t *testing.T) {
	seq := encode(t, "ACGTACGTACGT")
	score, matches, length := align(seq, seq)
	assert.Equal(t, len(seq), matches)
	assert.Equal(t, len(seq), length)
	assert.Equal(t, len(seq), score)
}

func TestAlignOverhangIsFreeWhenRefLonger(t *testing.T) {
	ref := encode(t, "TTTTACGTACGTTTTT")
	query := encode(t, "ACGTACGT")
	_, matches, _ := align(ref, query)
	assert.Equal(t, len(query), matches)
}

// TestAlignDivergentPairYieldsPartialMatch pins the alignment triple for
// a pair of sequences that share only a short run.
func TestAlignDivergentPairYieldsPartialMatch(t *testing.T) {
	s1 := encode(t, "AGACTAGTTAC")
	s2 := encode(t, "CGAGACGT")
	score, matches, length := align(s1, s2)
	assert.Equal(t, 2, score)
	assert.Equal(t, 5, matches)
	assert.Equal(t, 6, length)
}

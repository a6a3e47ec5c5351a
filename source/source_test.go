package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioaodp/oligosig/source"
	"github.com/bioaodp/oligosig/symbol"
)

func encode(t *testing.T, s string) []symbol.Symbol {
	t.Helper()
	out := make([]symbol.Symbol, len(s))
	for i := 0; i < len(s); i++ {
		sym, ok := symbol.FromByte(s[i])
		require.True(t, ok, "byte %q", s[i])
		out[i] = sym
	}
	return out
}

func buildOne(t *testing.T, cfg source.Config, name, seq string) *source.Source {
	t.Helper()
	src := source.New(cfg)
	b := source.NewBuilder(src)
	require.NoError(t, b.BeginFragment(name, "test.fa"))
	require.NoError(t, b.AppendRun(encode(t, seq)))
	require.NoError(t, b.EndFragment())
	require.NoError(t, b.Finish())
	return src
}

func TestRegistersSequenceAndFragment(t *testing.T) {
	cfg := source.Config{MinOligoSize: 4, MaxOligoSize: 10}
	src := buildOne(t, cfg, "seqA", "ACGTACGTAC")

	id, ok := src.SequenceByName("seqA")
	require.True(t, ok)
	assert.Equal(t, 1, src.NumSequences())
	assert.Equal(t, "seqA", src.Sequence(id).Name)
	assert.Equal(t, 1, src.NumFragments())
	assert.EqualValues(t, 10, src.Len())
}

func TestMaxLenPopulatedForUnambiguousRun(t *testing.T) {
	cfg := source.Config{MinOligoSize: 4, MaxOligoSize: 6}
	src := buildOne(t, cfg, "seqA", "ACGTACGTAC")

	assert.Equal(t, 6, src.MaxLen[0])
	assert.Equal(t, 4, src.MaxLen[6])
	assert.Equal(t, 0, src.MaxLen[7]) // remaining=3 < MinOligoSize
}

func TestMaxLenStopsAtAmbiguity(t *testing.T) {
	cfg := source.Config{MinOligoSize: 2, MaxOligoSize: 10}
	src := buildOne(t, cfg, "seqA", "ACGTNACGT")

	assert.Equal(t, 4, src.MaxLen[0]) // run of 4 before the N
	assert.Equal(t, 0, src.MaxLen[4]) // the N itself
	assert.Equal(t, 4, src.MaxLen[5]) // run of 4 after the N
}

func TestExcludesFragmentExceedingMaxAmbiguities(t *testing.T) {
	cfg := source.Config{MinOligoSize: 2, MaxOligoSize: 10, MaxAmbiguities: 1}
	src := buildOne(t, cfg, "seqA", "ACGTNNACGT")

	require.Len(t, src.Excluded, 1)
	assert.Equal(t, "seqA", src.Excluded[0].Name)
	assert.Equal(t, 0, src.NumFragments())
	assert.EqualValues(t, 0, src.Len())
}

func TestReverseComplementRegistersSecondFragment(t *testing.T) {
	cfg := source.Config{MinOligoSize: 2, MaxOligoSize: 10, ReverseComplement: true}
	src := buildOne(t, cfg, "seqA", "ACGT")

	require.Equal(t, 2, src.NumFragments())
	fwd := src.Fragment(0)
	rc := src.Fragment(1)
	assert.False(t, fwd.ReverseComp)
	assert.True(t, rc.ReverseComp)

	var got []symbol.Symbol
	for p := rc.Range.Lo; p < rc.Range.Hi; p++ {
		got = append(got, src.At(p))
	}
	assert.Equal(t, encode(t, "ACGT"), got) // revcomp(ACGT) == ACGT
}

func TestReverseComplementOfAsymmetricSequence(t *testing.T) {
	cfg := source.Config{MinOligoSize: 2, MaxOligoSize: 30, ReverseComplement: true}
	src := buildOne(t, cfg, "seqA", "TCATCCTTTTCAGGTTGACCTC")

	rc := src.Fragment(1)
	var got []byte
	for p := rc.Range.Lo; p < rc.Range.Hi; p++ {
		b, _ := src.At(p).Byte()
		got = append(got, b)
	}
	assert.Equal(t, "GAGGTCAACCTGAAAAGGATGA", string(got))
}

func TestDuplicateFragmentSameSequence(t *testing.T) {
	cfg := source.Config{MinOligoSize: 2, MaxOligoSize: 10}
	src := source.New(cfg)
	b := source.NewBuilder(src)

	require.NoError(t, b.BeginFragment("seqA", "test.fa"))
	require.NoError(t, b.AppendRun(encode(t, "ACGT")))
	require.NoError(t, b.EndFragment())

	require.NoError(t, b.BeginFragment("seqA", "test.fa"))
	require.NoError(t, b.AppendRun(encode(t, "TTTT")))
	require.NoError(t, b.EndFragment())

	require.NoError(t, b.Finish())

	id, ok := src.SequenceByName("seqA")
	require.True(t, ok)
	assert.Len(t, src.Sequence(id).Fragments, 2)
}

func TestInvalidSymbolRejected(t *testing.T) {
	cfg := source.Config{MinOligoSize: 2, MaxOligoSize: 10}
	src := source.New(cfg)
	b := source.NewBuilder(src)
	require.NoError(t, b.BeginFragment("seqA", "test.fa"))
	err := b.AppendRun([]symbol.Symbol{symbol.A, symbol.Invalid})
	assert.Error(t, err)
}

package fold_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioaodp/oligosig/fold"
	"github.com/bioaodp/oligosig/symbol"
	"github.com/bioaodp/oligosig/thermo"
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

func TestFoldTooShortIsInvalid(t *testing.T) {
	e := fold.NewEngine(thermo.NewModel(1.0, 10000), 37)
	res, err := e.Fold(encode(t, "ACG"))
	require.NoError(t, err)
	assert.False(t, res.Valid)
}

// TestFoldParametersCGCAAAGCG pins the folded parameters of "CGCAAAGCG"
// to the target scenario values.
func TestFoldParametersCGCAAAGCG(t *testing.T) {
	e := fold.NewEngine(thermo.NewModel(1.0, 10000), 37)
	res, err := e.Fold(encode(t, "CGCAAAGCG"))
	require.NoError(t, err)
	require.True(t, res.Valid)
	assert.InDelta(t, -0.9, res.DeltaG, 0.05)
	assert.InDelta(t, -20.4, res.DeltaH, 0.05)
	assert.InDelta(t, -62.9, res.DeltaS, 0.05)
	assert.InDelta(t, 51.1, res.MeltingC, 0.05)
}

func TestFoldRejectsInvalidSymbol(t *testing.T) {
	e := fold.NewEngine(thermo.NewModel(1.0, 10000), 37)
	_, err := e.Fold([]symbol.Symbol{symbol.A, symbol.Invalid, symbol.C, symbol.G, symbol.T, symbol.A})
	assert.Error(t, err)
}

func TestFilterMeltingNeverIncreasesMaxLen(t *testing.T) {
	e := fold.NewEngine(thermo.NewModel(1.0, 10000), 37)
	seq := encode(t, "CGCAAAGCGACGTACGTACGT")
	maxLen := make([]int, len(seq))
	for i := range maxLen {
		if i+10 <= len(seq) {
			maxLen[i] = 10
		}
	}
	before := append([]int(nil), maxLen...)
	e.FilterMelting(seq, maxLen, 0)
	for i, before := range before {
		assert.LessOrEqual(t, maxLen[i], before)
	}
}

package prefixindex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioaodp/oligosig/internal/prefixindex"
	"github.com/bioaodp/oligosig/symbol"
)

func prefix(t *testing.T, s string) symbol.Prefix4 {
	t.Helper()
	syms := make([]symbol.Symbol, 4)
	for i := 0; i < 4; i++ {
		sym, ok := symbol.FromByte(s[i])
		require.True(t, ok)
		syms[i] = sym
	}
	p, ok := symbol.PackPrefix4(syms[0], syms[1], syms[2], syms[3])
	require.True(t, ok)
	return p
}

func TestSlotIsStableAndLookupFindsIt(t *testing.T) {
	ix := prefixindex.New(64)
	p := prefix(t, "ACGT")
	slot := ix.Slot(p)
	assert.Equal(t, slot, ix.Slot(p))

	found, ok := ix.Lookup(p)
	require.True(t, ok)
	assert.Equal(t, slot, found)
}

func TestLookupMissesUnseenPrefix(t *testing.T) {
	ix := prefixindex.New(64)
	_, ok := ix.Lookup(prefix(t, "TTTT"))
	assert.False(t, ok)
}

func TestDistinctPrefixesGetDistinctSlots(t *testing.T) {
	ix := prefixindex.New(64)
	a := ix.Slot(prefix(t, "ACGT"))
	b := ix.Slot(prefix(t, "TTTT"))
	assert.NotEqual(t, a, b)
}

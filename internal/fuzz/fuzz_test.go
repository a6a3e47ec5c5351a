package fuzz_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioaodp/oligosig/internal/fuzz"
	"github.com/bioaodp/oligosig/symbol"
)

func TestSequenceProducesValidSymbols(t *testing.T) {
	g, err := fuzz.NewGenerator()
	require.NoError(t, err)
	rnd := rand.New(rand.NewSource(1))
	seq := g.Sequence(rnd, 200)
	require.Len(t, seq, 200)
	for _, s := range seq {
		assert.NotEqual(t, symbol.Invalid, s)
	}
}

package symbol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioaodp/oligosig/symbol"
)

func TestFromByteRoundTrip(t *testing.T) {
	for _, letter := range []byte("ACGTURYSWKMBDHVN") {
		sym, ok := symbol.FromByte(letter)
		require.Truef(t, ok, "expected %q to decode", letter)
		b, ok := sym.Byte()
		require.True(t, ok)
		if letter == 'U' {
			assert.Equal(t, byte('T'), b)
			continue
		}
		assert.Equal(t, letter, b)
	}
}

func TestFromByteRejectsNonIUPAC(t *testing.T) {
	for _, letter := range []byte("-. 0xZ") {
		_, ok := symbol.FromByte(letter)
		assert.Falsef(t, ok, "expected %q to be rejected", letter)
	}
}

func TestIsAmbiguous(t *testing.T) {
	assert.False(t, symbol.A.IsAmbiguous())
	assert.True(t, (symbol.A | symbol.G).IsAmbiguous())
}

func TestIsCrowded(t *testing.T) {
	assert.False(t, (symbol.A | symbol.G).IsCrowded())
	assert.True(t, (symbol.A | symbol.C | symbol.G).IsCrowded())
}

// TestMatchesSymmetric checks that overlap matching is symmetric for
// every pair of symbols.
func TestMatchesSymmetric(t *testing.T) {
	for a := symbol.Symbol(1); a < 16; a++ {
		for b := symbol.Symbol(1); b < 16; b++ {
			assert.Equal(t, symbol.Overlaps(a, b), symbol.Overlaps(b, a))
		}
	}
}

func TestStrictEqualIsNotOverlap(t *testing.T) {
	r := symbol.A | symbol.G
	assert.True(t, symbol.Overlaps(r, symbol.A))
	assert.False(t, symbol.StrictEqual(r, symbol.A))
}

// TestReverseComplementSpotChecks: complement of complement is identity,
// and known IUPAC pairs come out right.
func TestReverseComplementSpotChecks(t *testing.T) {
	cases := map[symbol.Symbol]symbol.Symbol{
		symbol.A: symbol.T,
		symbol.T: symbol.A,
		symbol.C: symbol.G,
		symbol.G: symbol.C,
	}
	for in, want := range cases {
		got := symbol.Complement(in)
		assert.Equal(t, want, got)
		assert.Equal(t, in, symbol.Complement(got))
	}

	r := symbol.A | symbol.G // R
	y := symbol.C | symbol.T // Y
	assert.Equal(t, y, symbol.Complement(r))
}

func TestIsWatsonCrickPair(t *testing.T) {
	assert.True(t, symbol.IsWatsonCrickPair(symbol.A, symbol.T))
	assert.True(t, symbol.IsWatsonCrickPair(symbol.G, symbol.C))
	assert.False(t, symbol.IsWatsonCrickPair(symbol.A, symbol.C))
}

func TestIsATPair(t *testing.T) {
	assert.True(t, symbol.IsATPair(symbol.A, symbol.T))
	assert.True(t, symbol.IsATPair(symbol.T, symbol.A))
	assert.False(t, symbol.IsATPair(symbol.G, symbol.C))
}

func TestPackPrefix4RejectsAmbiguous(t *testing.T) {
	_, ok := symbol.PackPrefix4(symbol.A, symbol.A|symbol.G, symbol.C, symbol.T)
	assert.False(t, ok)

	p, ok := symbol.PackPrefix4(symbol.A, symbol.C, symbol.G, symbol.T)
	require.True(t, ok)
	assert.Equal(t, [4]symbol.Symbol{symbol.A, symbol.C, symbol.G, symbol.T}, p.Symbols())
}

func TestMatchesAmbiguous(t *testing.T) {
	p, ok := symbol.PackPrefix4(symbol.A, symbol.C, symbol.G, symbol.T)
	require.True(t, ok)

	n := symbol.A | symbol.C | symbol.G | symbol.T
	assert.True(t, symbol.MatchesAmbiguous(p, [4]symbol.Symbol{n, n, n, n}))
	assert.False(t, symbol.MatchesAmbiguous(p, [4]symbol.Symbol{symbol.T, symbol.C, symbol.G, symbol.T}))
}

func TestMaxHomopolymerRun(t *testing.T) {
	base, length := symbol.MaxHomopolymerRun([]symbol.Symbol{symbol.A, symbol.A, symbol.A, symbol.C})
	assert.Equal(t, symbol.A, base)
	assert.Equal(t, 3, length)

	_, length = symbol.MaxHomopolymerRun(nil)
	assert.Equal(t, 0, length)
}

// Package symbol implements the IUPAC nucleotide alphabet used throughout
// oligosig as a 4-bit bitmask: bit 0 is A, bit 1 is C, bit 2 is G, bit 3 is
// T. An ambiguity code is the bitwise union of the bases it may stand for;
// 0 is not a valid symbol.
package symbol

import "fmt"

// Symbol is a 4-bit IUPAC nucleotide code. Bit 0=A, 1=C, 2=G, 3=T/U.
type Symbol byte

const (
	A Symbol = 1 << iota
	C
	G
	T
)

// U is an alias for T: this package does not distinguish RNA from DNA at
// the symbol level; FromByte decodes 'U' and 'T' to the same symbol.
const U = T

// Invalid is the zero symbol; it never appears in a well-formed sequence.
const Invalid Symbol = 0

// asciiToSymbol is the IUPAC ASCII decode table, indexed by byte value.
var asciiToSymbol [256]Symbol

// symbolToASCII is the inverse of asciiToSymbol, indexed by a 4-bit mask.
var symbolToASCII [16]byte

func init() {
	table := map[byte]Symbol{
		'A': A, 'C': C, 'G': G, 'T': T, 'U': T,
		'R': A | G, 'Y': C | T, 'S': C | G, 'W': A | T,
		'K': G | T, 'M': A | C,
		'B': C | G | T, 'D': A | G | T, 'H': A | C | T, 'V': A | C | G,
		'N': A | C | G | T,
	}
	for ascii, sym := range table {
		asciiToSymbol[ascii] = sym
		asciiToSymbol[ascii+('a'-'A')] = sym
		symbolToASCII[sym] = ascii
	}
}

// FromByte decodes one FASTA letter. It returns Invalid, false for any byte
// outside the IUPAC alphabet (including gaps and whitespace).
func FromByte(b byte) (Symbol, bool) {
	s := asciiToSymbol[b]
	return s, s != Invalid
}

// Byte encodes a symbol back to its canonical uppercase IUPAC letter. A
// symbol with no IUPAC name (bit pattern not in the standard 15, i.e.
// Invalid) yields 0 with ok false.
func (s Symbol) Byte() (byte, bool) {
	b := symbolToASCII[s&0xF]
	return b, b != 0
}

func (s Symbol) String() string {
	if b, ok := s.Byte(); ok {
		return string(b)
	}
	return fmt.Sprintf("Symbol(%#x)", byte(s))
}

// IsAmbiguous reports whether s stands for more than one base.
func (s Symbol) IsAmbiguous() bool {
	return bitCount(byte(s)) > 1
}

// IsCrowded reports whether s stands for three or more bases (B, D, H, V,
// N).
func (s Symbol) IsCrowded() bool {
	return bitCount(byte(s)) >= 3
}

func bitCount(b byte) int {
	n := 0
	for b != 0 {
		n += int(b & 1)
		b >>= 1
	}
	return n
}

// StrictEqual is the "add"/"cover" comparison mode: two symbols match only
// when they are bit-for-bit identical.
func StrictEqual(a, b Symbol) bool {
	return a == b
}

// Overlaps is the "mark"/"match"/"confirm" comparison mode: two symbols
// match when they share at least one base in common.
func Overlaps(a, b Symbol) bool {
	return a&b != 0
}

// complement maps each base to its Watson-Crick partner; ambiguity codes
// complement bit-wise (e.g. R=A|G complements to Y=T|C).
var complement = [16]Symbol{}

func init() {
	base := map[Symbol]Symbol{A: T, T: A, C: G, G: C}
	for s := Symbol(0); s < 16; s++ {
		var out Symbol
		for b, comp := range base {
			if s&b != 0 {
				out |= comp
			}
		}
		complement[s] = out
	}
}

// Complement returns the Watson-Crick complement of s.
func Complement(s Symbol) Symbol {
	return complement[s&0xF]
}

// IsWatsonCrickPair reports whether a and b can form a canonical A-T/G-C
// base pair under strict symbol matching — used by the fold engine's
// bp() test. Ambiguous symbols pair if any of their possible bases pair.
func IsWatsonCrickPair(a, b Symbol) bool {
	return Complement(a)&b != 0
}

// IsATPair reports whether a and b can form an A-T (or T-A) pair
// specifically — used for the fold engine's terminal-AT penalty test.
func IsATPair(a, b Symbol) bool {
	return (a&A != 0 && b&T != 0) || (a&T != 0 && b&A != 0)
}

// Prefix4 packs four consecutive unambiguous symbols into a single byte
// key used to route sequences into trie slices (see trie.Container).
type Prefix4 byte

// PackPrefix4 packs four symbols s0..s3 (s0 = first base) into a Prefix4.
// It returns ok=false if any symbol is ambiguous, since only unambiguous
// prefixes route deterministically.
func PackPrefix4(s0, s1, s2, s3 Symbol) (Prefix4, bool) {
	if s0.IsAmbiguous() || s1.IsAmbiguous() || s2.IsAmbiguous() || s3.IsAmbiguous() {
		return 0, false
	}
	idx := func(s Symbol) byte {
		switch s {
		case A:
			return 0
		case C:
			return 1
		case G:
			return 2
		case T:
			return 3
		}
		return 0
	}
	return Prefix4(idx(s0)<<6 | idx(s1)<<4 | idx(s2)<<2 | idx(s3)), true
}

// Symbols returns the four unambiguous symbols packed in a Prefix4, in
// order.
func (p Prefix4) Symbols() [4]Symbol {
	bases := [4]Symbol{A, C, G, T}
	return [4]Symbol{
		bases[(p>>6)&3],
		bases[(p>>4)&3],
		bases[(p>>2)&3],
		bases[p&3],
	}
}

// MatchesAmbiguous reports whether the unambiguous prefix p is consistent
// with the (possibly ambiguous) symbol run seq under overlap matching —
// the p4ma test of the original trie router.
func MatchesAmbiguous(p Prefix4, seq [4]Symbol) bool {
	ps := p.Symbols()
	for i := range ps {
		if !Overlaps(ps[i], seq[i]) {
			return false
		}
	}
	return true
}

// MaxHomopolymerRun returns the length of the longest run of a single
// strictly-repeated base starting at the first element of run, and that
// base's symbol. It stops at the first ambiguous symbol or mismatch.
func MaxHomopolymerRun(run []Symbol) (base Symbol, length int) {
	if len(run) == 0 {
		return Invalid, 0
	}
	base = run[0]
	if base.IsAmbiguous() {
		return base, 1
	}
	length = 1
	for _, s := range run[1:] {
		if s != base {
			break
		}
		length++
	}
	return base, length
}

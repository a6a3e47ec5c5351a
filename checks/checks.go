// Package checks provides simple content predicates over decoded
// nucleotide runs, covering the full IUPAC alphabet used by symbol.Symbol
// rather than a strict ACGT/ACGU classification.
package checks

import "github.com/bioaodp/oligosig/symbol"

// IsPalindromic reports whether run is its own reverse complement. More
// here: https://en.wikipedia.org/wiki/Palindromic_sequence
func IsPalindromic(run []symbol.Symbol) bool {
	n := len(run)
	for i := 0; i < n/2; i++ {
		if run[i] != symbol.Complement(run[n-1-i]) {
			return false
		}
	}
	return true
}

// GcContent returns the fraction of run that is G or C, counting each
// ambiguous symbol as a partial match weighted by how many of its
// possible bases are G/C.
func GcContent(run []symbol.Symbol) float64 {
	if len(run) == 0 {
		return 0
	}
	var gc float64
	for _, s := range run {
		if s&symbol.G != 0 {
			gc += fractionOf(s)
		}
		if s&symbol.C != 0 {
			gc += fractionOf(s)
		}
	}
	return gc / float64(len(run))
}

func fractionOf(s symbol.Symbol) float64 {
	bases := 0
	for _, b := range []symbol.Symbol{symbol.A, symbol.C, symbol.G, symbol.T} {
		if s&b != 0 {
			bases++
		}
	}
	if bases == 0 {
		return 0
	}
	return 1.0 / float64(bases)
}

// IsUnambiguous reports whether every symbol in run stands for exactly
// one base — the condition required before a run can be folded or used
// as a trie-routing prefix.
func IsUnambiguous(run []symbol.Symbol) bool {
	for _, s := range run {
		if s.IsAmbiguous() {
			return false
		}
	}
	return true
}

// IsValidDotBracketStructure reports whether seq uses valid dot-bracket
// notation.
func IsValidDotBracketStructure(seq string) bool {
	depth := 0
	for _, r := range seq {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		case '.':
		default:
			return false
		}
	}
	return depth == 0
}

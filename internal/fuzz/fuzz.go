// Package fuzz generates randomized IUPAC sequences for tests, weighting
// ambiguity codes the way real sequencing noise distributes them: mostly
// clean bases, with an occasional ambiguity code and rarer multi-base
// ambiguity.
package fuzz

import (
	"math/rand"

	"github.com/mroth/weightedrand"

	"github.com/bioaodp/oligosig/symbol"
)

// Generator produces IUPAC symbol.Symbol values from a fixed weighted
// distribution: common unambiguous bases, occasional two-base
// ambiguities, rare three/four-base ones.
type Generator struct {
	chooser *weightedrand.Chooser
}

// NewGenerator returns a Generator for the fixed distribution above. It
// takes no random source or seed of its own.
func NewGenerator() (*Generator, error) {
	chooser, err := weightedrand.NewChooser(
		weightedrand.NewChoice(byte(symbol.A), 30),
		weightedrand.NewChoice(byte(symbol.C), 30),
		weightedrand.NewChoice(byte(symbol.G), 30),
		weightedrand.NewChoice(byte(symbol.T), 30),
		weightedrand.NewChoice(byte(symbol.A|symbol.G), 3), // R
		weightedrand.NewChoice(byte(symbol.C|symbol.T), 3), // Y
		weightedrand.NewChoice(byte(symbol.A|symbol.C|symbol.G), 2), // V
		weightedrand.NewChoice(byte(0xF), 1),                        // N
	)
	if err != nil {
		return nil, err
	}
	return &Generator{chooser: chooser}, nil
}

// Symbol draws one symbol from the distribution using rnd as the
// entropy source.
func (g *Generator) Symbol(rnd *rand.Rand) symbol.Symbol {
	return symbol.Symbol(g.chooser.PickSource(rnd).(byte))
}

// Sequence draws n symbols.
func (g *Generator) Sequence(rnd *rand.Rand, n int) []symbol.Symbol {
	out := make([]symbol.Symbol, n)
	for i := range out {
		out[i] = g.Symbol(rnd)
	}
	return out
}

// Package fold implements a minimum-free-energy hairpin fold engine: a
// dynamic program over nearest-neighbour thermodynamics that finds a
// nucleotide run's most stable self-folded hairpin and the salt-corrected
// melting temperature of that structure.
//
// The DP topology (split/match/mismatch cases, the O/H/L/R
// dangle-and-helix counters, and the maxLen truncation side effect) is a
// single bounded hairpin window rather than full secondary structure
// folding.
package fold

import (
	"fmt"
	"math"

	"github.com/bioaodp/oligosig/checks"
	"github.com/bioaodp/oligosig/symbol"
	"github.com/bioaodp/oligosig/thermo"
)

// minHairpin is the shortest admissible hairpin loop.
const minHairpin = 3

// cell is one entry of the folding DP: the minimum free energy structure
// closed by (i, i+j), plus the O/H/L/R counters needed to price the next
// loop closure by topology.
type cell struct {
	valid bool
	dG    float64
	dH    float64
	dS    float64
	// H is the number of inner helices directly nested in this structure;
	// 0 means this cell is itself a hairpin closure.
	H int
	// O is the number of unstacked (unpaired) bases at the outer level of
	// this structure, used to price bulges/internal loops/multiloops.
	O int
	// L, R are the dangling-end lengths on the 5' and 3' side of the
	// innermost nested helix, used to distinguish a bulge (one of L,R is
	// zero) from a symmetric/asymmetric internal loop (both nonzero).
	L, R int
}

var invalidCell = cell{dG: math.Inf(1)}

func (c cell) betterThan(o cell) bool {
	return c.valid && (!o.valid || c.dG < o.dG)
}

// Result is the outcome of folding one window: its thermodynamic
// parameters, matching a foldParameters query.
type Result struct {
	Valid     bool
	DeltaG    float64 // kcal/mol at the model's target temperature
	DeltaH    float64 // kcal/mol
	DeltaS    float64 // cal/(mol*K)
	MeltingC  float64 // Celsius; 0 when !Valid
}

// Engine folds bounded windows against one thermodynamic Model and target
// temperature. An Engine is stateless and safe to share; each Fold call
// is single-threaded and allocates its own DP buffers.
type Engine struct {
	Model    thermo.Model
	TxKelvin float64
}

// NewEngine builds a fold Engine targeting txCelsius.
func NewEngine(model thermo.Model, txCelsius float64) *Engine {
	return &Engine{Model: model, TxKelvin: txCelsius + 273.15}
}

// Fold computes the minimum-free-energy self-fold of window and returns
// its thermodynamic parameters. window must contain only unambiguous
// symbols; an ambiguous or invalid symbol is rejected rather than folded.
func (e *Engine) Fold(window []symbol.Symbol) (Result, error) {
	n := len(window)
	if n < minHairpin+2 {
		return Result{}, nil
	}
	for _, s := range window {
		if s == symbol.Invalid {
			return Result{}, fmt.Errorf("fold: invalid symbol in window")
		}
	}
	if !checks.IsUnambiguous(window) {
		return Result{}, fmt.Errorf("fold: ambiguous symbol in window")
	}

	table := e.computeTable(window)
	best := table[0][n-1]
	if !best.valid {
		return Result{}, nil
	}
	return e.resultFromCell(best, n), nil
}

func (e *Engine) resultFromCell(c cell, n int) Result {
	tp := e.Model.PseudoT(c.dH, c.dS, e.TxKelvin)
	tmKelvin := e.Model.Tm(tp, c.dS, n, e.TxKelvin)
	return Result{
		Valid:    true,
		DeltaG:   c.dG,
		DeltaH:   c.dH,
		DeltaS:   c.dS,
		MeltingC: tmKelvin - 273.15,
	}
}

// computeTable fills the full (i,j) DP for window, where j is the offset
// such that the structure closes on (i, i+j).
func (e *Engine) computeTable(window []symbol.Symbol) [][]cell {
	n := len(window)
	table := make([][]cell, n)
	for i := range table {
		table[i] = make([]cell, n)
		for j := range table[i] {
			table[i][j] = invalidCell
		}
	}

	for length := minHairpin + 1; length < n; length++ {
		for i := 0; i+length < n; i++ {
			j := length
			best := invalidCell

			// Split: try every partition k, joining two independently
			// folded sub-windows. k=0 (one side empty, i.e. a single
			// nested helix with no 5' unpaired bases) is always among
			// the candidates tried here.
			for k := 0; k < j; k++ {
				left := table[i][k]
				right := table[i+k+1][j-k-1]
				if cand, ok := join(left, right); ok && cand.betterThan(best) {
					best = cand
				}
			}

			if symbol.IsWatsonCrickPair(window[i], window[i+j]) {
				if m, ok := e.match(window, i, j, table); ok && m.betterThan(best) {
					best = m
				}
			} else if m, ok := e.mismatch(window, i, j, table); ok && m.betterThan(best) {
				best = m
			}

			if !best.valid && j == minHairpin+1 {
				// bare hairpin closure with no inner content at all
				if h, ok := e.hairpinClosure(window, i, j); ok {
					best = h
				}
			}

			table[i][j] = best
		}
	}
	return table
}

// join combines two independently-folded sub-windows into one candidate
// for the enclosing structure: energies add, and the helix/dangle
// counters are recomputed from whichever side(s) contributed a nested
// helix.
func join(left, right cell) (cell, bool) {
	leftEmpty := !left.valid
	rightEmpty := !right.valid
	if leftEmpty && rightEmpty {
		return cell{}, false
	}
	out := cell{valid: true}
	switch {
	case leftEmpty:
		out.dG, out.dH, out.dS = right.dG, right.dH, right.dS
		out.H = right.H + 1
		out.O = right.O
		out.L, out.R = 0, right.L
	case rightEmpty:
		out.dG, out.dH, out.dS = left.dG, left.dH, left.dS
		out.H = left.H + 1
		out.O = left.O
		out.L, out.R = left.R, 0
	default:
		out.dG = left.dG + right.dG
		out.dH = left.dH + right.dH
		out.dS = left.dS + right.dS
		out.H = left.H + right.H + 2
		out.O = left.O + right.O
		out.L, out.R = left.R, right.L
	}
	return out, true
}

// match extends the diagonal stack (i+1,j-2) by one nearest-neighbour
// dimer and applies the terminal-AT penalty when this pairing closes the
// structure more favorably than any split.
func (e *Engine) match(window []symbol.Symbol, i, j int, table [][]cell) (cell, bool) {
	if j < 2 {
		return cell{}, false
	}
	inner := table[i+1][j-2]
	dimer, ok := dimerKey(window[i], window[i+1])
	if !ok {
		return cell{}, false
	}
	nn, ok := thermo.NearestNeighbor[dimer]
	if !ok {
		return cell{}, false
	}

	out := cell{valid: true, H: 0, O: 0}
	if inner.valid {
		out.dH = inner.dH + nn.EnthalpyH
		out.dS = inner.dS + nn.EntropyS
		out.H = inner.H
		out.O = inner.O
	} else {
		out.dH = nn.EnthalpyH
		out.dS = nn.EntropyS
	}

	if symbol.IsATPair(window[i], window[i+j]) {
		out.dH += thermo.TerminalATPenalty.EnthalpyH
		out.dS += thermo.TerminalATPenalty.EntropyS
	}
	out.dG = thermo.DeltaG(thermo.Energy{EnthalpyH: out.dH, EntropyS: out.dS}, e.TxKelvin)
	return out, true
}

// mismatch extends the stack only when the adjacent cell is already a
// stack of depth >= 1 (H==0 meaning "still a straight stack, no branch
// yet"); two consecutive mismatches break the stack into a loop closure,
// priced by loopEnergy via the O/H/L/R topology.
func (e *Engine) mismatch(window []symbol.Symbol, i, j int, table [][]cell) (cell, bool) {
	if j < 2 {
		return cell{}, false
	}
	prev := table[i+1][j-2]
	if prev.valid && prev.H == 0 {
		// extend through the mismatch as a continued stack, no additional
		// energy term beyond what the inner cell already accounts for;
		// the terminal mismatch penalty is paid once when this eventually
		// closes via loopEnergy.
		out := prev
		out.valid = true
		return out, true
	}
	// break into a loop closure using the accumulated O/H/L/R topology.
	dg, ds := e.loopEnergy(prev)
	mismatchKey, ok := dimerKey(window[i+1], window[i+j-1])
	var tm thermo.Energy
	if ok {
		tm = thermo.TerminalMismatch[mismatchKey]
	}
	out := cell{valid: true}
	out.dH = prev.dH + tm.EnthalpyH
	out.dS = ds + prev.dS + tm.EntropyS
	out.H = prev.H
	out.O = prev.O + 2
	out.L, out.R = prev.L, prev.R
	out.dG = dg + thermo.DeltaG(tm, e.TxKelvin)
	return out, true
}

// loopEnergy dispatches to the hairpin/bulge/internal-loop/multiloop
// tables based on the topology recorded in c: H==0 is a hairpin, H==1
// with one of L/R zero is a bulge, H==1 with both
// nonzero is an internal loop, H>1 is a multiloop.
func (e *Engine) loopEnergy(c cell) (dg, ds float64) {
	switch {
	case c.H == 0:
		n := c.O + 2
		return thermo.LoopEnergyAt(thermo.HairpinLoop, n, e.TxKelvin), 0
	case c.H == 1 && (c.L == 0 || c.R == 0):
		n := c.L + c.R
		if n == 0 {
			n = 1
		}
		return thermo.LoopEnergyAt(thermo.BulgeLoop, n, e.TxKelvin), 0
	case c.H == 1:
		n := c.L + c.R
		dg = thermo.LoopEnergyAt(thermo.InternalLoop, n, e.TxKelvin)
		if c.L != c.R {
			dg += asymmetryPenalty
		}
		return dg, 0
	default:
		// multiloop: linear in helix count and unpaired bases, using fixed
		// per-branch coefficients since this does not fit coaxial-stacking
		// parameters.
		const perHelix = 0.4
		const perUnpaired = 0.0
		return float64(c.H)*perHelix + float64(c.O)*perUnpaired, 0
	}
}

const asymmetryPenalty = 0.3 // SantaLucia 2004 formula 12

func (e *Engine) hairpinClosure(window []symbol.Symbol, i, j int) (cell, bool) {
	if !symbol.IsWatsonCrickPair(window[i], window[i+j]) {
		return cell{}, false
	}
	n := j - 1
	dg := thermo.LoopEnergyAt(thermo.HairpinLoop, n, e.TxKelvin)
	return cell{valid: true, dG: dg, H: 0, O: n}, true
}

func dimerKey(a, b symbol.Symbol) (string, bool) {
	ab, ok1 := a.Byte()
	bb, ok2 := b.Byte()
	if !ok1 || !ok2 {
		return "", false
	}
	return string([]byte{ab, bb}), true
}

// FilterMelting implements the maxLen-truncation side effect: for every
// admissible start position in [offset, offset+len(region)) whose
// current maxLen is nonzero, it folds increasing windows until the
// salt-corrected Tm reaches txCelsius (the Engine's target), and
// truncates maxLen at the first length where the structure's
// salt-corrected Tm lies at or above the target temperature.
func (e *Engine) FilterMelting(region []symbol.Symbol, maxLen []int, offset int) {
	for i := 0; i < len(region); i++ {
		limit := maxLen[offset+i]
		if limit == 0 {
			continue
		}
		hi := i + limit
		if hi > len(region) {
			hi = len(region)
		}
		window := region[i:hi]
		table := e.computeTable(window)
		n := len(window)
		for j := minHairpin + 1; j < n; j++ {
			c := table[0][j]
			if !c.valid {
				continue
			}
			res := e.resultFromCell(c, j+1)
			if res.MeltingC+273.15 >= e.TxKelvin {
				if j+1 < maxLen[offset+i] {
					maxLen[offset+i] = j + 1
				}
				break
			}
		}
	}
}

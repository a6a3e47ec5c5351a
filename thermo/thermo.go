// Package thermo implements a nearest-neighbour thermodynamic model:
// enthalpy/entropy/free-energy tables (SantaLucia & Hicks 2004) and the
// salt-corrected melting-temperature function built from them.
package thermo

import "math"

// R is the gas constant in kcal·mol⁻¹·K⁻¹.
const R = 1.9872e-3

// T37C is body/standard reaction temperature in Kelvin.
const T37C = 310.15

// Energy holds a nearest-neighbour enthalpy/entropy pair.
type Energy struct {
	EnthalpyH float64 // kcal/mol
	EntropyS  float64 // cal/(mol*K)
}

// DeltaG returns the Gibbs free energy of e at temperature tempK.
func DeltaG(e Energy, tempK float64) float64 {
	return e.EnthalpyH - tempK*(e.EntropyS/1000)
}

// NearestNeighbor holds the 10 unique Watson-Crick dimer stacking
// energies (SantaLucia & Hicks 2004, Table 1, unified parameters), keyed
// by the two 5'->3' bases of the top strand, e.g. "AA" for 5'-AA-3'/3'-TT-5'.
var NearestNeighbor = map[string]Energy{
	"AA": {-7.9, -22.2}, "TT": {-7.9, -22.2},
	"AT": {-7.2, -20.4},
	"TA": {-7.2, -21.3},
	"CA": {-8.5, -22.7}, "TG": {-8.5, -22.7},
	"GT": {-8.4, -22.4}, "AC": {-8.4, -22.4},
	"CT": {-7.8, -21.0}, "AG": {-7.8, -21.0},
	"GA": {-8.2, -22.2}, "TC": {-8.2, -22.2},
	"CG": {-10.6, -27.2},
	"GC": {-9.8, -24.4},
	"GG": {-8.0, -19.9}, "CC": {-8.0, -19.9},
}

// Initiation is the duplex initiation penalty applied once per structure.
var Initiation = Energy{0.2, -5.7}

// TerminalATPenalty is the per-AT-terminus correction (SantaLucia 2004
// formula 8), applied once for each terminal A-T pair closing a structure.
var TerminalATPenalty = Energy{2.2, 6.9}

// HairpinLoop gives ΔG contributions by loop length, tabulated for
// lengths 3..10; longer loops use the Jacobson-Stockmayer extrapolation
// from the largest entry.
var HairpinLoop = map[int]Energy{
	3: {0, -11.3}, 4: {0, -11.3}, 5: {0, -10.6}, 6: {0, -12.9},
	7: {0, -13.3}, 8: {0, -13.9}, 9: {0, -14.3}, 10: {0, -14.6},
}

// BulgeLoop gives ΔG contributions by loop length.
var BulgeLoop = map[int]Energy{
	1: {0, -12.9}, 2: {0, -9.4}, 3: {0, -9.5}, 4: {0, -9.9},
	5: {0, -10.3}, 6: {0, -10.6},
}

// InternalLoop gives ΔG contributions by total loop length (both strands).
var InternalLoop = map[int]Energy{
	2: {0, -6.3}, 3: {0, -9.1}, 4: {0, -10.1}, 5: {0, -10.9},
	6: {0, -11.6},
}

// TerminalMismatch gives the energy of a terminal (closing) mismatch pair,
// keyed by the two unpaired bases as a 2-letter string. These values are
// unpublished, taken from DINAMelt, and are treated here as an external
// data dependency rather than re-derived.
var TerminalMismatch = map[string]Energy{
	"AA": {-0.8, -4.3}, "AC": {-1.0, -4.3}, "AG": {-0.7, -4.3}, "AT": {-1.0, -4.3},
	"CA": {-1.0, -4.3}, "CC": {-1.0, -4.3}, "CG": {-1.0, -4.3}, "CT": {-1.0, -4.3},
	"GA": {-0.7, -4.3}, "GC": {-1.0, -4.3}, "GG": {-1.0, -4.3}, "GT": {-1.0, -4.3},
	"TA": {-1.0, -4.3}, "TC": {-1.0, -4.3}, "TG": {-1.0, -4.3}, "TT": {-0.8, -4.3},
}

const maxTabulatedLoop = 30

// LoopEnergyAt returns the energy for a loop table at length n, applying
// the Jacobson-Stockmayer extrapolation from the largest tabulated entry
// when n exceeds it: ΔG(n) = ΔG(x) + 2.44*R*310.15*ln(n/x).
func LoopEnergyAt(table map[int]Energy, n int, tempK float64) float64 {
	if e, ok := table[n]; ok {
		return DeltaG(e, tempK)
	}
	x := 0
	var base Energy
	for k, e := range table {
		if k > x && k <= maxTabulatedLoop {
			x = k
			base = e
		}
	}
	if x == 0 {
		return 0
	}
	return DeltaG(base, tempK) + 2.44*R*T37C*math.Log(float64(n)/float64(x))
}

// Model holds the salt/strand-concentration context used to convert a
// structure's ΔH/ΔS into a salt-corrected melting temperature, via a
// precomputed rho/lambda pair.
type Model struct {
	SaltMolar       float64 // [Na+] in mol/L
	StrandConcNM    float64 // total strand concentration in nM
	rho             float64
	lambda          float64
}

// NewModel builds a Model from the salt molarity and total strand
// concentration (in nanomolar), matching the `--salt`/`--strand` CLI
// parameters.
func NewModel(saltMolar, strandConcNM float64) Model {
	cT := strandConcNM // nM
	x := 4.0           // self-complementary divisor, general (non-self-complementary) case
	rho := R * math.Log(cT/x/1e9)
	lambda := 0.184 * math.Log(saltMolar)
	return Model{SaltMolar: saltMolar, StrandConcNM: strandConcNM, rho: rho, lambda: lambda}
}

// PseudoT returns the pseudo-melting temperature Tp (milliKelvin) of a
// structure with enthalpy dh (kcal/mol) and entropy ds (cal/mol*K) at
// target temperature txKelvin: Tp = ΔG0/ρ.
func (m Model) PseudoT(dh, ds, txKelvin float64) float64 {
	dg0 := dh*1000 - txKelvin*ds
	tp := dg0 / m.rho
	return math.Round(tp * 1000)
}

// Tm computes the salt-corrected melting temperature:
//
//	Tm = Tx - (Tx - Tp_n) / (1 + alpha_n)
//	Tp_n = Tp/1000 - lambda*(n-1)
//	alpha_n = ds/(10*rho) + lambda*(n-1)
//
// tpMilliK is the PseudoT in milliKelvin, ds is entropy in cal/mol*K, n is
// the structure's base-pair span, txKelvin is the target temperature.
func (m Model) Tm(tpMilliK, ds float64, n int, txKelvin float64) float64 {
	lambdaTerm := m.lambda * float64(n-1)
	alphaN := ds/(10*m.rho) + lambdaTerm
	tpN := tpMilliK/1000 - lambdaTerm
	return txKelvin - (txKelvin-tpN)/(1+alphaN)
}

// DGSalt applies the salt correction directly to a ΔG value computed at
// this Model's strand/salt context, for loop-closure energies that are
// reported without going through PseudoT/Tm.
func (m Model) DGSalt(dg float64, n int) float64 {
	return dg + m.lambda*float64(n-1)*m.rho/1000
}

// DG2Tm converts a free energy and entropy directly to a melting
// temperature in Kelvin without routing through PseudoT, used by the fold
// engine's foldParameters query.
func (m Model) DG2Tm(dg, ds float64, n int, txKelvin float64) float64 {
	dh := DGDS2DH(dg, ds, txKelvin)
	tp := m.PseudoT(dh, ds, txKelvin)
	return m.Tm(tp, ds, n, txKelvin)
}

// DGDS2DH recovers ΔH from a ΔG/ΔS pair at temperature txKelvin:
// ΔG = ΔH - T*ΔS/1000  =>  ΔH = ΔG + T*ΔS/1000.
func DGDS2DH(dg, ds, txKelvin float64) float64 {
	return dg + txKelvin*(ds/1000)
}

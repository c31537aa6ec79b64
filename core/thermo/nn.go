// Package thermo implements nearest-neighbor DNA duplex thermodynamics
// (SantaLucia & Hicks 2004, unified parameter set). Units: ΔH in kcal/mol,
// ΔS in cal/(K·mol), temperatures in °C unless noted.
package thermo

import (
	"errors"
	"math"
	"strings"
)

// Rcal is the gas constant in cal/(K·mol).
const Rcal = 1.9872

// Watson–Crick propagation parameters at 1 M Na+, keyed by the top-strand
// dimer 5'→3'.
var nnDH = map[string]float64{
	"AA": -7.6, "TT": -7.6, "AT": -7.2, "TA": -7.2,
	"CA": -8.5, "TG": -8.5, "GT": -8.4, "AC": -8.4,
	"CT": -7.8, "AG": -7.8, "GA": -8.2, "TC": -8.2,
	"CG": -10.6, "GC": -9.8, "GG": -8.0, "CC": -8.0,
}

var nnDS = map[string]float64{
	"AA": -21.3, "TT": -21.3, "AT": -20.4, "TA": -21.3,
	"CA": -22.7, "TG": -22.7, "GT": -22.4, "AC": -22.4,
	"CT": -21.0, "AG": -21.0, "GA": -22.2, "TC": -22.2,
	"CG": -27.2, "GC": -24.4, "GG": -19.9, "CC": -19.9,
}

const (
	initDH   = 0.2
	initDS   = -5.7
	termATdH = 2.2
	termATdS = 6.9
	symmDS   = -1.4
)

// Salt holds the ionic conditions fed to the ΔS correction.
type Salt struct {
	Na float64 // monovalent cations, mol/L
	Mg float64 // magnesium, mol/L
}

// Effective returns the Na-equivalent concentration, folding Mg2+ in as
// Na_eff = Na + 3.8·√Mg (Owczarzy-style approximation).
func (s Salt) Effective() float64 {
	na := s.Na
	if s.Mg > 0 {
		na += 3.8 * math.Sqrt(s.Mg)
	}
	if na <= 0 {
		na = 1e-6
	}
	return na
}

// Result reports duplex thermodynamics: 1 M values, salt-corrected entropy,
// and the two-state melting temperature.
type Result struct {
	DH   float64 // kcal/mol
	DS   float64 // cal/(K·mol) at 1 M Na+
	DSNa float64 // salt-corrected ΔS
	TmC  float64
}

var errBadSequence = errors.New("thermo: sequence must be non-empty A/C/G/T")

// Duplex37 sums NN parameters for a perfectly matched duplex of seq (5'→3')
// with its complement. Terminal AT penalties and the self-complementary
// symmetry correction are included.
func Duplex37(seq string) (dH, dS float64, err error) {
	s := strings.ToUpper(strings.TrimSpace(seq))
	if len(s) < 2 {
		return 0, 0, errBadSequence
	}
	dH, dS = initDH, initDS
	for i := 0; i < len(s)-1; i++ {
		h, okH := nnDH[s[i:i+2]]
		e, okS := nnDS[s[i:i+2]]
		if !okH || !okS {
			return 0, 0, errBadSequence
		}
		dH += h
		dS += e
	}
	if s[0] == 'A' || s[0] == 'T' {
		dH += termATdH
		dS += termATdS
	}
	if last := s[len(s)-1]; last == 'A' || last == 'T' {
		dH += termATdH
		dS += termATdS
	}
	if isSelfComplementary(s) {
		dS += symmDS
	}
	return dH, dS, nil
}

// Tm computes the two-state melting temperature of seq against its perfect
// complement. ct is the total strand concentration in mol/L.
func Tm(seq string, ct float64, salt Salt) (Result, error) {
	var out Result
	dH, dS, err := Duplex37(seq)
	if err != nil {
		return out, err
	}
	if ct <= 0 {
		return out, errors.New("thermo: strand concentration must be > 0")
	}
	s := strings.ToUpper(strings.TrimSpace(seq))
	x := 4.0
	if isSelfComplementary(s) {
		x = 1.0
	}
	// ΔS(Na) = ΔS(1M) + 0.368·(N/2)·ln[Na+], N = 2n−2 phosphates.
	n := float64(len(s))
	dSNa := dS + 0.368*(n-1)*math.Log(salt.Effective())
	tmK := (dH * 1000.0) / (dSNa + Rcal*math.Log(ct/x))
	out.DH = dH
	out.DS = dS
	out.DSNa = dSNa
	out.TmC = tmK - 273.15
	return out, nil
}

// DeltaG returns ΔG at tempC in kcal/mol from ΔH (kcal/mol) and ΔS
// (cal/K·mol).
func DeltaG(dH, dS, tempC float64) float64 {
	return dH - (tempC+273.15)*dS/1000.0
}

func isSelfComplementary(s string) bool {
	n := len(s)
	for i := 0; i < n; i++ {
		if !wc(s[i], s[n-1-i]) {
			return false
		}
	}
	return true
}

func wc(a, b byte) bool {
	switch a {
	case 'A':
		return b == 'T'
	case 'T':
		return b == 'A'
	case 'C':
		return b == 'G'
	case 'G':
		return b == 'C'
	default:
		return false
	}
}

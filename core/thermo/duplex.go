package thermo

import (
	"errors"
	"math"
	"strings"
)

// Duplex models a primer annealed to a template site. Primer and Site are
// both 5'→3'; Site is the forward-strand text the primer footprint covers, so
// a matched position reads the same base in both.
type Duplex struct {
	Primer string
	Site   string

	DH       float64 // kcal/mol, mismatch-corrected
	DS       float64 // cal/(K·mol), 1 M Na+
	Mismatch []int   // primer positions (0-based, 5'→3') that mispair
}

// AnnealDuplex builds the duplex thermodynamics of primer on site. Mismatched
// positions keep the perfect-duplex stacking sum but pay a ΔΔG penalty folded
// into ΔH (entropy of a mispair is approximated as unchanged).
func AnnealDuplex(primerSeq, site string) (Duplex, error) {
	p := strings.ToUpper(strings.TrimSpace(primerSeq))
	s := strings.ToUpper(strings.TrimSpace(site))
	if len(p) == 0 || len(p) != len(s) {
		return Duplex{}, errors.New("thermo: primer and site must be equal-length and non-empty")
	}
	dH, dS, err := Duplex37(s)
	if err != nil {
		return Duplex{}, err
	}
	d := Duplex{Primer: p, Site: s, DH: dH, DS: dS}
	for i := 0; i < len(p); i++ {
		if p[i] == s[i] {
			continue
		}
		d.Mismatch = append(d.Mismatch, i)
		d.DH += MismatchDDG(p[i], s[i], i, len(p))
	}
	return d, nil
}

// Terminal3Mismatch reports a mispair at the primer's 3'-terminal base.
func (d Duplex) Terminal3Mismatch() bool {
	for _, i := range d.Mismatch {
		if i == len(d.Primer)-1 {
			return true
		}
	}
	return false
}

// DeltaG returns the duplex ΔG at tempC with the given salt correction, in
// kcal/mol.
func (d Duplex) DeltaG(tempC float64, salt Salt) float64 {
	n := float64(len(d.Primer))
	dSNa := d.DS + 0.368*(n-1)*math.Log(salt.Effective())
	return DeltaG(d.DH, dSNa, tempC)
}

// K returns the equilibrium association constant of the duplex at tempC.
func (d Duplex) K(tempC float64, salt Salt) float64 {
	dg := d.DeltaG(tempC, salt)
	return math.Exp(-dg * 1000.0 / (Rcal * (tempC + 273.15)))
}

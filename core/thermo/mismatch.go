package thermo

// Destabilization penalties ΔΔG (kcal/mol) for a single internal mismatch,
// keyed by (primer base, template base read as the base the primer should
// have paired with). Wobbles are mildest, transitions moderate, like-with-like
// transversions harshest; C·C leads the pack.
var mismatchDDG = map[[2]byte]float64{
	{'G', 'T'}: 0.60, {'T', 'G'}: 0.60,
	{'A', 'G'}: 0.85, {'G', 'A'}: 0.85,
	{'C', 'T'}: 0.85, {'T', 'C'}: 0.85,
	{'A', 'C'}: 1.10, {'C', 'A'}: 1.10,
	{'A', 'A'}: 1.40, {'T', 'T'}: 1.40, {'G', 'G'}: 1.30,
	{'C', 'C'}: 1.60,
	{'A', 'T'}: 1.20, {'T', 'A'}: 1.20,
	{'C', 'G'}: 1.20, {'G', 'C'}: 1.20,
}

// terminal3Factor scales penalties for mismatches in the last three 3' bases,
// where destabilization hits polymerase extension hardest.
const terminal3Factor = 2.0

// MismatchDDG returns the ΔΔG penalty for primer base p mispaired opposite
// template base t at primer position i of n (0-based, 5'→3').
func MismatchDDG(p, t byte, i, n int) float64 {
	dg, ok := mismatchDDG[[2]byte{p, t}]
	if !ok {
		dg = 1.0
	}
	if i >= n-3 {
		dg *= terminal3Factor
	}
	return dg
}

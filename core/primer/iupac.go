package primer

import "fmt"

// iupacMask encodes each IUPAC nucleotide code as a 4-bit set:
// bit0=A bit1=C bit2=G bit3=T.
var iupacMask [256]byte

func init() {
	set := func(c byte, bits byte) { iupacMask[c] = bits }
	set('A', 1)
	set('C', 2)
	set('G', 4)
	set('T', 8)
	set('R', 1|4)     // A/G
	set('Y', 2|8)     // C/T
	set('S', 2|4)     // C/G
	set('W', 1|8)     // A/T
	set('K', 4|8)     // G/T
	set('M', 1|2)     // A/C
	set('B', 2|4|8)   // C/G/T
	set('D', 1|4|8)   // A/G/T
	set('H', 1|2|8)   // A/C/T
	set('V', 1|2|4)   // A/C/G
	set('N', 1|2|4|8) // any (primer side only)
}

// BaseMatch reports whether primer base p can anneal to template base g.
// A template base outside A/C/G/T (e.g. N runs in assemblies) is a hard
// mismatch so that N-blocks cannot generate spurious annealing sites.
func BaseMatch(g, p byte) bool {
	if g != 'A' && g != 'C' && g != 'G' && g != 'T' {
		return false
	}
	return iupacMask[p]&iupacMask[g] != 0
}

// Degeneracy returns the number of unambiguous sequences encoded by s,
// or an error if s contains a non-IUPAC character.
func Degeneracy(s string) (int, error) {
	n := 1
	for i := 0; i < len(s); i++ {
		bits := iupacMask[s[i]]
		if bits == 0 {
			return 0, fmt.Errorf("invalid base %q at position %d", s[i], i+1)
		}
		n *= popcount4(bits)
	}
	return n, nil
}

func popcount4(b byte) int {
	n := 0
	for i := 0; i < 4; i++ {
		if b&(1<<i) != 0 {
			n++
		}
	}
	return n
}

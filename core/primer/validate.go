package primer

import (
	"fmt"
	"unicode"
)

// Normalize strips whitespace and quotes and uppercases bases.
func Normalize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '\'' || r == '"' {
			continue
		}
		out = append(out, unicode.ToUpper(r))
	}
	return string(out)
}

// Validate normalizes raw and rejects any non-IUPAC character.
func Validate(raw string) (string, error) {
	s := Normalize(raw)
	if s == "" {
		return "", fmt.Errorf("empty oligo")
	}
	for i := 0; i < len(s); i++ {
		if iupacMask[s[i]] == 0 {
			return "", fmt.Errorf("invalid base %q at %d; allowed: A C G T R Y S W K M B D H V N", s[i], i+1)
		}
	}
	return s, nil
}

// GC returns the fraction of G/C bases, counting S fully and other ambiguous
// codes by their G/C share.
func GC(seq string) float64 {
	if seq == "" {
		return 0
	}
	gc := 0.0
	for i := 0; i < len(seq); i++ {
		bits := iupacMask[seq[i]]
		if bits == 0 {
			continue
		}
		n := popcount4(bits)
		k := 0
		if bits&2 != 0 { // C
			k++
		}
		if bits&4 != 0 { // G
			k++
		}
		gc += float64(k) / float64(n)
	}
	return gc / float64(len(seq))
}

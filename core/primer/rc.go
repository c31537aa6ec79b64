package primer

var complement [256]byte

func init() {
	pairs := map[byte]byte{
		'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A',
		'R': 'Y', 'Y': 'R', 'S': 'S', 'W': 'W',
		'K': 'M', 'M': 'K', 'B': 'V', 'V': 'B',
		'D': 'H', 'H': 'D', 'N': 'N',
	}
	for b, c := range pairs {
		complement[b] = c
	}
}

// Complement returns the IUPAC complement of a single base ('N' if unknown).
func Complement(b byte) byte {
	if c := complement[b]; c != 0 {
		return c
	}
	return 'N'
}

// RevComp returns the reverse complement of an IUPAC sequence.
func RevComp(seq []byte) []byte {
	n := len(seq)
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = Complement(seq[n-1-i])
	}
	return out
}

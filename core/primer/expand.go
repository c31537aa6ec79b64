package primer

import "fmt"

// MaxComponents caps degenerate expansion; panels with more variants per
// primer than this are almost certainly data errors.
const MaxComponents = 512

var baseOrder = [4]byte{'A', 'C', 'G', 'T'}

// Expand enumerates the unambiguous component sequences of a degenerate
// primer in lexicographic base order. Unambiguous input yields itself.
func Expand(seq string) ([]string, error) {
	n, err := Degeneracy(seq)
	if err != nil {
		return nil, err
	}
	if n > MaxComponents {
		return nil, fmt.Errorf("primer expands to %d components (limit %d)", n, MaxComponents)
	}
	out := []string{""}
	for i := 0; i < len(seq); i++ {
		bits := iupacMask[seq[i]]
		var bases []byte
		for b, base := range baseOrder {
			if bits&(1<<b) != 0 {
				bases = append(bases, base)
			}
		}
		next := make([]string, 0, len(out)*len(bases))
		for _, prefix := range out {
			for _, b := range bases {
				next = append(next, prefix+string(b))
			}
		}
		out = next
	}
	return out, nil
}

// Components splits a degenerate oligo into its unambiguous variants, dividing
// the total concentration evenly among them.
func Components(o Oligo) ([]Oligo, error) {
	seqs, err := Expand(o.Seq)
	if err != nil {
		return nil, fmt.Errorf("primer %s: %w", o.ID, err)
	}
	conc := o.Concentration / float64(len(seqs))
	out := make([]Oligo, len(seqs))
	for i, s := range seqs {
		id := o.ID
		if len(seqs) > 1 {
			id = fmt.Sprintf("%s.%d", o.ID, i+1)
		}
		out[i] = Oligo{ID: id, Seq: s, Concentration: conc}
	}
	return out, nil
}

package thermo

import "math"

// HairpinPenalty scores the strongest hairpin stem a primer can fold into
// (minimum loop of 3 nt). Stems near the 3' end weigh more because they block
// extension. Zero means no stem of 3+ bp.
func HairpinPenalty(seq5to3 string) float64 {
	b := []byte(seq5to3)
	n := len(b)
	maxStem := 0
	max3Prox := 0
	for i := 0; i < n; i++ {
		for j := i + 3; j < n; j++ {
			k := 0
			for i+k < j-k && j+k < n && i-k >= 0 {
				if !wc(upper(b[i+k]), upper(b[j-k])) {
					break
				}
				k++
			}
			if k >= 3 {
				p := (n - 1) - (j - k)
				if k > maxStem || (k == maxStem && p > max3Prox) {
					maxStem = k
					if p > max3Prox {
						max3Prox = p
					}
				}
			}
		}
	}
	if maxStem == 0 {
		return 0
	}
	return float64(maxStem) * (1.0 + math.Min(float64(max3Prox)/8.0, 1.0))
}

// DimerPenalty scores 3'-end complementarity between two primers, the
// geometry that seeds primer-dimers. Runs under 3 bp score zero.
func DimerPenalty(primerA, primerB string) float64 {
	a := []byte(primerA)
	b := []byte(primerB)
	win := 8
	if len(a) < win || len(b) < win {
		win = len(a)
		if len(b) < win {
			win = len(b)
		}
	}
	if win < 3 {
		return 0
	}
	run := 0
	for i := 0; i < win; i++ {
		if wc(upper(a[len(a)-1-i]), upper(b[len(b)-1-i])) {
			run++
		} else {
			break
		}
	}
	if run < 3 {
		return 0
	}
	return float64(run*run) * 0.8
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

package blast

import "sort"

// Candidate is a plus/minus hit pair close enough to prime an amplicon.
// Coordinates are 1-based inclusive as blastn reports them.
type Candidate struct {
	Subject  string
	Start    int
	End      int
	FwdQuery string
	RevQuery string
	Length   int
}

// PairCandidates scans primer hits for convergent plus/minus pairs within
// the given product size bounds. blastn encodes strand by coordinate
// order: SubjectStart > SubjectEnd means the minus strand.
func PairCandidates(hits []Hit, minLen, maxLen int) []Candidate {
	bySubject := make(map[string][]Hit)
	for _, h := range hits {
		bySubject[h.SubjectID] = append(bySubject[h.SubjectID], h)
	}
	subjects := make([]string, 0, len(bySubject))
	for s := range bySubject {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)

	var out []Candidate
	for _, s := range subjects {
		var plus, minus []Hit
		for _, h := range bySubject[s] {
			if h.SubjectStart <= h.SubjectEnd {
				plus = append(plus, h)
			} else {
				minus = append(minus, h)
			}
		}
		for _, p := range plus {
			for _, m := range minus {
				// amplicon spans the plus 5' end to the minus 5' end
				if m.SubjectStart <= p.SubjectStart {
					continue
				}
				length := m.SubjectStart - p.SubjectStart + 1
				if length < minLen || (maxLen > 0 && length > maxLen) {
					continue
				}
				out = append(out, Candidate{
					Subject:  s,
					Start:    p.SubjectStart,
					End:      m.SubjectStart,
					FwdQuery: p.QueryID,
					RevQuery: m.QueryID,
					Length:   length,
				})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Subject != out[j].Subject {
			return out[i].Subject < out[j].Subject
		}
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].End < out[j].End
	})
	return out
}

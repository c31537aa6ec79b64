package output

import (
	"fmt"
	"strconv"
	"strings"

	"paneval-core/engine"
)

func IntsCSV(a []int) string {
	if len(a) == 0 {
		return ""
	}
	ss := make([]string, len(a))
	for i, v := range a {
		ss[i] = strconv.Itoa(v)
	}
	return strings.Join(ss, ",")
}

// FormatRowTSV returns the base columns of one product (no trailing newline).
func FormatRowTSV(p engine.Product) string {
	return fmt.Sprintf("%s\t%s\t%s\t%d\t%d\t%d\t%s\t%d\t%d\t%s\t%s\t%g\t%d",
		p.SourceFile, p.SequenceID, p.PairID,
		p.Start, p.End, p.Length, p.Type,
		p.FwdMM, p.RevMM,
		IntsCSV(p.FwdMismatchIdx), IntsCSV(p.RevMismatchIdx),
		p.Quantity, p.Cycles,
	)
}

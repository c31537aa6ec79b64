package sim

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"paneval-core/thermo"
)

const (
	gelWidth   = 50
	histWidth  = 40
	bandWindow = 0.05 // band width as a fraction of the longest product
)

// Histogram renders products sorted by quantity, longest bar first.
func Histogram(products []*Product) string {
	if len(products) == 0 {
		return "no products\n"
	}
	sorted := append([]*Product(nil), products...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Quantity != sorted[j].Quantity {
			return sorted[i].Quantity > sorted[j].Quantity
		}
		return sorted[i].Key < sorted[j].Key
	})
	maxQ := sorted[0].Quantity
	var b strings.Builder
	for _, p := range sorted {
		n := 0
		if maxQ > 0 {
			n = int(math.Round(float64(histWidth) * p.Quantity / maxQ))
		}
		fmt.Fprintf(&b, "%-24s %5d bp %10s |%s\n",
			p.Key, p.Length, thermo.FormatConc(p.Quantity), strings.Repeat("#", n))
	}
	return b.String()
}

// Electrophoresis renders a text gel lane. Products fall into
// logarithmically spaced length bins whose width is a fixed fraction of the
// longest product; band darkness follows quantity times length, the way
// intercalating stain intensity does.
func Electrophoresis(products []*Product) string {
	if len(products) == 0 {
		return "no products\n"
	}
	maxLen, minLen := 0, math.MaxInt32
	for _, p := range products {
		if p.Length > maxLen {
			maxLen = p.Length
		}
		if p.Length < minLen {
			minLen = p.Length
		}
	}
	window := float64(maxLen) * bandWindow
	if window < 1 {
		window = 1
	}
	logUpper := math.Log(float64(maxLen) + window)
	logLower := math.Log(math.Max(float64(minLen)-window, 1))
	span := logUpper - logLower
	bins := int(math.Ceil(span / math.Log1p(window/float64(maxLen))))
	if bins < 1 {
		bins = 1
	}

	type band struct {
		lo, hi    int // bp bounds
		intensity float64
	}
	bands := make([]band, bins)
	step := span / float64(bins)
	for i := range bands {
		hi := math.Exp(logUpper - float64(i)*step)
		lo := math.Exp(logUpper - float64(i+1)*step)
		bands[i] = band{lo: int(math.Round(lo)), hi: int(math.Round(hi))}
	}
	maxI := 0.0
	for _, p := range products {
		li := math.Log(float64(p.Length))
		i := int((logUpper - li) / step)
		if i < 0 {
			i = 0
		}
		if i >= bins {
			i = bins - 1
		}
		bands[i].intensity += p.Quantity * float64(p.Length)
		if bands[i].intensity > maxI {
			maxI = bands[i].intensity
		}
	}

	shades := []byte(" .:-=+*#%@")
	var b strings.Builder
	b.WriteString(strings.Repeat("-", gelWidth+12) + "\n")
	for _, bn := range bands {
		if bn.intensity == 0 {
			fmt.Fprintf(&b, "%9s |%s|\n", "", strings.Repeat(" ", gelWidth))
			continue
		}
		shade := shades[int(math.Min(bn.intensity/maxI, 1)*float64(len(shades)-1))]
		fmt.Fprintf(&b, "%6d bp |%s|\n", bn.hi, strings.Repeat(string(shade), gelWidth))
	}
	b.WriteString(strings.Repeat("-", gelWidth+12) + "\n")
	return b.String()
}

package thermo

import (
	"fmt"
	"strings"
)

// ParseConc parses wet-lab concentration notation ("3mM", "250nM", "0.2uM")
// into mol/L. A bare number is taken as mol/L.
func ParseConc(s string) (float64, error) {
	in := strings.TrimSpace(strings.ToLower(s))
	if in == "" {
		return 0, fmt.Errorf("empty concentration")
	}
	var val float64
	unit := ""
	if _, err := fmt.Sscanf(in, "%f%s", &val, &unit); err != nil {
		if _, err2 := fmt.Sscanf(in, "%f", &val); err2 != nil {
			return 0, fmt.Errorf("invalid concentration %q", s)
		}
	}
	if val < 0 {
		return 0, fmt.Errorf("negative concentration %q", s)
	}
	switch unit {
	case "", "m":
		return val, nil
	case "mm":
		return val * 1e-3, nil
	case "um", "μm":
		return val * 1e-6, nil
	case "nm":
		return val * 1e-9, nil
	case "pm":
		return val * 1e-12, nil
	default:
		return 0, fmt.Errorf("unknown unit %q in %q", unit, s)
	}
}

// FormatConc renders a molar concentration with a convenient SI prefix.
func FormatConc(molar float64) string {
	switch {
	case molar <= 0:
		return "0 M"
	case molar >= 1e-3:
		return fmt.Sprintf("%.2f mM", molar*1e3)
	case molar >= 1e-6:
		return fmt.Sprintf("%.2f uM", molar*1e6)
	case molar >= 1e-9:
		return fmt.Sprintf("%.2f nM", molar*1e9)
	default:
		return fmt.Sprintf("%.2f pM", molar*1e12)
	}
}

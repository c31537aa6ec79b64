package app

import (
	"fmt"
	"io"

	"paneval-core/primer"
	"paneval-core/thermo"
	"paneval/internal/config"
)

// TmReport writes per-primer melting temperatures and secondary-structure
// penalties. Degenerate primers report the Tm range over their components.
func TmReport(cfg config.Config, w io.Writer) error {
	if cfg.Primers == "" {
		return fmt.Errorf("no primer file configured")
	}
	pairs, err := primer.LoadTSV(cfg.Primers)
	if err != nil {
		return err
	}
	pconc, err := cfg.PrimerConc()
	if err != nil {
		return err
	}
	salt := thermo.Salt{}
	if salt.Na, err = thermo.ParseConc(cfg.Reaction.Na); err != nil {
		return err
	}
	if salt.Mg, err = thermo.ParseConc(cfg.Reaction.Mg); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w,
		"primer\tseq\tcomponents\tgc\ttm_min\ttm_max\thairpin\tself_dimer\tcross_dimer"); err != nil {
		return err
	}
	for _, p := range pairs {
		for _, side := range []struct{ id, seq, other string }{
			{p.ID + ".F", p.Forward, p.Reverse},
			{p.ID + ".R", p.Reverse, p.Forward},
		} {
			comps, err := primer.Expand(side.seq)
			if err != nil {
				return fmt.Errorf("%s: %w", side.id, err)
			}
			ct := pconc / float64(len(comps))
			tmMin, tmMax := 0.0, 0.0
			for i, c := range comps {
				res, err := thermo.Tm(c, ct, salt)
				if err != nil {
					return fmt.Errorf("%s: %w", side.id, err)
				}
				if i == 0 || res.TmC < tmMin {
					tmMin = res.TmC
				}
				if i == 0 || res.TmC > tmMax {
					tmMax = res.TmC
				}
			}
			if _, err := fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%.1f\t%.1f\t%.2f\t%.2f\t%.2f\n",
				side.id, side.seq, len(comps), primer.GC(side.seq), tmMin, tmMax,
				thermo.HairpinPenalty(side.seq),
				thermo.DimerPenalty(side.seq, side.seq),
				thermo.DimerPenalty(side.seq, side.other),
			); err != nil {
				return err
			}
		}
	}
	return nil
}

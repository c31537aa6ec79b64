package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"paneval/internal/app"
)

func (r *root) evaluateCmd() *cobra.Command {
	var (
		out        string
		format     string
		covPath    string
		minOverlap float64
		minReads   float64
	)
	c := &cobra.Command{
		Use:   "evaluate",
		Short: "Score predicted products against observed coverage",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := r.loadConfig()
			if err != nil {
				return err
			}
			if covPath != "" {
				cfg.Coverage = covPath
			}
			rep, err := app.Evaluate(cmd.Context(), cfg, app.EvaluateOptions{
				MinOverlap: minOverlap,
				MinReads:   minReads,
			}, r.log)
			if err != nil {
				return err
			}

			w, closeFn, err := openOutput(out)
			if err != nil {
				return err
			}
			defer closeFn()

			switch format {
			case "text":
				return rep.WriteText(w)
			case "tsv":
				return rep.WriteTSV(w)
			case "json":
				return rep.WriteJSON(w)
			default:
				return fmt.Errorf("unsupported report format %q", format)
			}
		},
	}
	f := c.Flags()
	f.StringVarP(&out, "output", "o", "", "output path ('-' for stdout)")
	f.StringVar(&format, "report", "text", "report format: text|tsv|json")
	f.StringVar(&covPath, "coverage", "", "observed coverage TSV (overrides config)")
	f.Float64Var(&minOverlap, "min-overlap", 0, "minimum reciprocal overlap fraction (0 = any overlap)")
	f.Float64Var(&minReads, "min-reads", 1, "reads at or above which a target counts as observed")
	return c
}

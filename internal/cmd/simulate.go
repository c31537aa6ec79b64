package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"paneval/internal/app"
	"paneval/internal/writers"
)

func (r *root) simulateCmd() *cobra.Command {
	var (
		out string
		gel bool
	)
	c := &cobra.Command{
		Use:   "simulate",
		Short: "Predict panel products and their final quantities",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := r.loadConfig()
			if err != nil {
				return err
			}
			res, err := app.Simulate(cmd.Context(), cfg, r.log)
			if err != nil {
				return err
			}

			w, closeFn, err := openOutput(out)
			if err != nil {
				return err
			}
			defer closeFn()

			ch, errCh := writers.StartProductWriter(w, cfg.Output.Format,
				cfg.Output.Sort, cfg.Output.Header, 64)
			for _, p := range res.Products {
				ch <- p
			}
			close(ch)
			if err := <-errCh; err != nil {
				return err
			}

			if gel {
				fmt.Fprint(os.Stderr, "\n")
				fmt.Fprint(os.Stderr, app.Gel(res))
			}
			if len(res.Products) == 0 {
				return ErrNoProducts
			}
			return nil
		},
	}
	f := c.Flags()
	f.StringVarP(&out, "output", "o", "", "output path ('-' for stdout)")
	f.BoolVar(&gel, "gel", false, "render a text electrophoresis lane and histogram to stderr")
	f.String("format", "tsv", "output format: tsv|json|jsonl|fasta")
	f.Bool("sort", false, "sort products before writing")
	f.Bool("header", true, "write a TSV header row")
	f.Int("threads", 0, "worker goroutines (0 = all CPUs)")
	f.Int("chunk-size", 0, "split references into windows of this many bases (0 = whole records)")
	f.Int("mismatches", 3, "max mismatches per primer")
	f.Int("hit-cap", 0, "max annealing sites kept per primer per template (0 = unlimited)")
	f.Int("cycles", 30, "PCR cycles")
	f.Float64("anneal", 55, "annealing temperature, °C")
	_ = r.v.BindPFlag("output.format", f.Lookup("format"))
	_ = r.v.BindPFlag("output.sort", f.Lookup("sort"))
	_ = r.v.BindPFlag("output.header", f.Lookup("header"))
	_ = r.v.BindPFlag("pcr.threads", f.Lookup("threads"))
	_ = r.v.BindPFlag("pcr.chunk_size", f.Lookup("chunk-size"))
	_ = r.v.BindPFlag("pcr.mismatches", f.Lookup("mismatches"))
	_ = r.v.BindPFlag("pcr.hit_cap", f.Lookup("hit-cap"))
	_ = r.v.BindPFlag("reaction.cycles", f.Lookup("cycles"))
	_ = r.v.BindPFlag("reaction.anneal_c", f.Lookup("anneal"))
	return c
}

package cmd

import (
	"github.com/spf13/cobra"

	"paneval/internal/app"
)

func (r *root) blastCmd() *cobra.Command {
	var out string
	c := &cobra.Command{
		Use:   "blast",
		Short: "Cross-check primers against the references with blastn",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := r.loadConfig()
			if err != nil {
				return err
			}
			w, closeFn, err := openOutput(out)
			if err != nil {
				return err
			}
			defer closeFn()

			n, err := app.Blast(cmd.Context(), cfg, w, r.log)
			if err != nil {
				return err
			}
			if n == 0 {
				return ErrNoProducts
			}
			return nil
		},
	}
	f := c.Flags()
	f.StringVarP(&out, "output", "o", "", "output path ('-' for stdout)")
	f.String("blastn", "", "blastn binary (default: found on PATH)")
	f.String("db", "", "preformatted blast database (default: align against the references)")
	f.Float64("evalue", 1000, "blastn expectation cutoff")
	f.Float64("perc-identity", 0, "minimum percent identity (0 disables)")
	_ = r.v.BindPFlag("blast.path", f.Lookup("blastn"))
	_ = r.v.BindPFlag("blast.db", f.Lookup("db"))
	_ = r.v.BindPFlag("blast.evalue", f.Lookup("evalue"))
	_ = r.v.BindPFlag("blast.perc_identity", f.Lookup("perc-identity"))
	return c
}

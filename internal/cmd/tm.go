package cmd

import (
	"github.com/spf13/cobra"

	"paneval/internal/app"
)

func (r *root) tmCmd() *cobra.Command {
	var out string
	c := &cobra.Command{
		Use:   "tm",
		Short: "Report primer melting temperatures and structure penalties",
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
			return app.TmReport(cfg, w)
		},
	}
	c.Flags().StringVarP(&out, "output", "o", "", "output path ('-' for stdout)")
	return c
}

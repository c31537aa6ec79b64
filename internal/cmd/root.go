// Package cmd defines the paneval command tree.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"paneval/internal/config"
	"paneval/internal/version"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitNoProducts = 1
	ExitUsage      = 2
	ExitIO         = 3
)

// ErrNoProducts marks a clean run that predicted nothing.
var ErrNoProducts = errors.New("no products predicted")

type root struct {
	v       *viper.Viper
	log     *zap.Logger
	cfgFile string
	verbose bool
}

// New builds the command tree.
func New() *cobra.Command {
	r := &root{v: config.New()}

	c := &cobra.Command{
		Use:   "paneval",
		Short: "Evaluate multiplex PCR panels against observed sequencing coverage",
		Long: `paneval predicts the products of a multiplex primer panel on reference
sequences with a thermodynamic reaction model, and scores the predictions
against observed per-target read coverage.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if r.verbose {
				r.log, err = zap.NewDevelopment()
			} else {
				cfg := zap.NewProductionConfig()
				cfg.DisableStacktrace = true
				r.log, err = cfg.Build()
			}
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if r.log != nil {
				_ = r.log.Sync()
			}
		},
	}
	pf := c.PersistentFlags()
	pf.StringVarP(&r.cfgFile, "config", "c", "", "YAML config file")
	pf.BoolVarP(&r.verbose, "verbose", "v", false, "debug logging")
	pf.StringSliceP("reference", "r", nil, "reference FASTA file (repeatable; .gz and '-' accepted)")
	pf.StringP("primers", "p", "", "primer panel TSV (id, forward, reverse, [min, max])")
	_ = r.v.BindPFlag("references", pf.Lookup("reference"))
	_ = r.v.BindPFlag("primers", pf.Lookup("primers"))

	c.AddCommand(
		r.simulateCmd(),
		r.evaluateCmd(),
		r.blastCmd(),
		r.tmCmd(),
	)
	return c
}

func (r *root) loadConfig() (config.Config, error) {
	return config.Load(r.v, r.cfgFile)
}

// openOutput returns stdout for "" or "-".
func openOutput(path string) (*os.File, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// Execute runs the command tree and maps errors to exit codes.
func Execute() int {
	cmd := New()
	err := cmd.Execute()
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrNoProducts):
		fmt.Fprintln(os.Stderr, "paneval:", err)
		return ExitNoProducts
	case errors.Is(err, os.ErrNotExist), errors.Is(err, os.ErrPermission):
		fmt.Fprintln(os.Stderr, "paneval:", err)
		return ExitIO
	default:
		fmt.Fprintln(os.Stderr, "paneval:", err)
		return ExitUsage
	}
}

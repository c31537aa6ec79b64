package app

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"paneval-core/primer"
	"paneval/internal/blast"
	"paneval/internal/config"
)

// Blast aligns every panel primer against the references with blastn and
// reports convergent hit pairs as potential amplicons, the independent
// cross-check on the annealing-site scan.
func Blast(ctx context.Context, cfg config.Config, w io.Writer, log *zap.Logger) (int, error) {
	if cfg.Primers == "" {
		return 0, fmt.Errorf("no primer file configured")
	}
	if cfg.Blast.DB == "" && len(cfg.References) == 0 {
		return 0, fmt.Errorf("no reference sequences or blast database configured")
	}
	if !blast.Available(cfg.Blast.Path) {
		return 0, fmt.Errorf("blastn not found on PATH; install NCBI BLAST+ or set blast.path")
	}
	pairs, err := primer.LoadTSV(cfg.Primers)
	if err != nil {
		return 0, err
	}
	seqs := make(map[string]string, len(pairs)*2)
	for _, p := range pairs {
		seqs[p.ID+".F"] = p.Forward
		seqs[p.ID+".R"] = p.Reverse
	}

	bcfg := blast.Config{
		Path:      cfg.Blast.Path,
		DB:        cfg.Blast.DB,
		EValue:    cfg.Blast.EValue,
		Perc:      cfg.Blast.Perc,
		ShortTask: true,
	}
	if _, err := fmt.Fprintln(w, "subject\tstart\tend\tlength\tfwd_query\trev_query\tsource_file"); err != nil {
		return 0, err
	}

	// one pass against the preformatted database, or one per reference FASTA
	passes := cfg.References
	if bcfg.DB != "" {
		passes = []string{bcfg.DB}
	}
	total := 0
	for _, ref := range passes {
		if bcfg.DB == "" {
			bcfg.Subject = ref
		}
		hits, err := blast.Query(ctx, bcfg, seqs)
		if err != nil {
			return total, fmt.Errorf("%s: %w", ref, err)
		}
		cands := blast.PairCandidates(hits, cfg.PCR.MinProduct, cfg.PCR.MaxProduct)
		log.Info("blast pass done",
			zap.String("reference", ref),
			zap.Int("hits", len(hits)),
			zap.Int("candidates", len(cands)))
		for _, c := range cands {
			if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%s\t%s\n",
				c.Subject, c.Start, c.End, c.Length, c.FwdQuery, c.RevQuery, ref); err != nil {
				return total, err
			}
		}
		total += len(cands)
	}
	return total, nil
}

// Package blast shells out to NCBI blastn to cross-check predicted
// amplicons against a reference, the external-aligner step of a panel
// evaluation. blastn must be on PATH; everything here treats it as a
// black box and only parses its tabular output.
package blast

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Hit is one row of blastn -outfmt 7.
type Hit struct {
	QueryID      string
	SubjectID    string
	Identity     float64 // percent
	AlignLen     int
	Mismatches   int
	GapOpens     int
	QueryStart   int
	QueryEnd     int
	SubjectStart int
	SubjectEnd   int
	EValue       float64
	BitScore     float64
}

// Config selects the blastn invocation. Exactly one of DB and Subject is
// aligned against; DB wins when both are set.
type Config struct {
	Path      string  // blastn binary; empty means look up "blastn" on PATH
	Subject   string  // reference FASTA to align against
	DB        string  // preformatted makeblastdb database
	EValue    float64 // expectation cutoff (default 1000, short queries need it high)
	Perc      float64 // -perc_identity (0 disables)
	ShortTask bool    // -task blastn-short, for primer-sized queries
}

func (c Config) args(query, out string) []string {
	ev := c.EValue
	if ev == 0 {
		ev = 1000
	}
	args := []string{"-query", query}
	if c.DB != "" {
		args = append(args, "-db", c.DB)
	} else {
		args = append(args, "-subject", c.Subject)
	}
	args = append(args,
		"-out", out,
		"-outfmt", "7",
		"-evalue", strconv.FormatFloat(ev, 'f', -1, 64),
	)
	if c.ShortTask {
		args = append(args, "-task", "blastn-short")
	}
	if c.Perc > 0 {
		args = append(args, "-perc_identity", strconv.FormatFloat(c.Perc, 'f', -1, 64))
	}
	return args
}

// Available reports whether the blastn binary can be found.
func Available(path string) bool {
	if path == "" {
		path = "blastn"
	}
	_, err := exec.LookPath(path)
	return err == nil
}

// Query writes the named sequences to a temporary FASTA and aligns them
// against the configured database or subject FASTA.
func Query(ctx context.Context, cfg Config, seqs map[string]string) ([]Hit, error) {
	if len(seqs) == 0 {
		return nil, nil
	}
	if cfg.DB == "" && cfg.Subject == "" {
		return nil, fmt.Errorf("no blast database or subject configured")
	}
	bin := cfg.Path
	if bin == "" {
		bin = "blastn"
	}
	if _, err := exec.LookPath(bin); err != nil {
		return nil, fmt.Errorf("blastn not found: %w", err)
	}

	dir, err := os.MkdirTemp("", "paneval-blast-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	query := filepath.Join(dir, "query.fa")
	var b strings.Builder
	for id, seq := range seqs {
		fmt.Fprintf(&b, ">%s\n%s\n", id, seq)
	}
	if err := os.WriteFile(query, []byte(b.String()), 0o644); err != nil {
		return nil, err
	}

	out := filepath.Join(dir, "hits.tsv")
	cmd := exec.CommandContext(ctx, bin, cfg.args(query, out)...)
	if stdout, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("blastn: %w: %s", err, string(stdout))
	}

	f, err := os.ReadFile(out)
	if err != nil {
		return nil, err
	}
	return ParseTabular(string(f))
}

// ParseTabular parses blastn -outfmt 7 output (comment lines start with '#').
func ParseTabular(s string) ([]Hit, error) {
	var hits []Hit
	for ln, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cols := strings.Fields(line)
		if len(cols) < 12 {
			return nil, fmt.Errorf("line %d: want 12 columns, got %d", ln+1, len(cols))
		}
		h := Hit{QueryID: cols[0], SubjectID: cols[1]}
		var err error
		if h.Identity, err = strconv.ParseFloat(cols[2], 64); err != nil {
			return nil, fmt.Errorf("line %d: identity: %w", ln+1, err)
		}
		ints := []*int{&h.AlignLen, &h.Mismatches, &h.GapOpens,
			&h.QueryStart, &h.QueryEnd, &h.SubjectStart, &h.SubjectEnd}
		for i, dst := range ints {
			if *dst, err = strconv.Atoi(cols[3+i]); err != nil {
				return nil, fmt.Errorf("line %d: column %d: %w", ln+1, 4+i, err)
			}
		}
		if h.EValue, err = strconv.ParseFloat(cols[10], 64); err != nil {
			return nil, fmt.Errorf("line %d: evalue: %w", ln+1, err)
		}
		if h.BitScore, err = strconv.ParseFloat(cols[11], 64); err != nil {
			return nil, fmt.Errorf("line %d: bit score: %w", ln+1, err)
		}
		hits = append(hits, h)
	}
	return hits, nil
}

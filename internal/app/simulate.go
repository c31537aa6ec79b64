// Package app wires the scanning pipeline, the thermodynamic model, and the
// reaction simulation into the operations the CLI exposes.
package app

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"paneval-core/engine"
	"paneval-core/primer"
	"paneval-core/sim"
	"paneval/internal/common"
	"paneval/internal/config"
	"paneval/internal/pipeline"
)

// SimulateResult carries the amplified products plus the reaction outcome
// for reporting.
type SimulateResult struct {
	Products []engine.Product
	Outcome  sim.Outcome
}

// Simulate scans the references for annealing sites, runs the reaction
// model over the admitted products, and returns those that amplify.
func Simulate(ctx context.Context, cfg config.Config, log *zap.Logger) (SimulateResult, error) {
	if len(cfg.References) == 0 {
		return SimulateResult{}, fmt.Errorf("no reference sequences configured")
	}
	cond, err := cfg.Conditions()
	if err != nil {
		return SimulateResult{}, err
	}
	pconc, err := cfg.PrimerConc()
	if err != nil {
		return SimulateResult{}, err
	}

	var (
		pairs  []primer.Pair
		oligos []primer.Oligo
	)
	if cfg.Primers != "" {
		pairs, err = primer.LoadTSV(cfg.Primers)
		if err != nil {
			return SimulateResult{}, err
		}
		for _, p := range pairs {
			oligos = append(oligos,
				primer.Oligo{ID: p.ID + ".F", Seq: p.Forward, Concentration: pconc},
				primer.Oligo{ID: p.ID + ".R", Seq: p.Reverse, Concentration: pconc})
		}
	}
	pf, pr, err := cfg.PoolOligos()
	if err != nil {
		return SimulateResult{}, err
	}
	pairs = append(pairs, primer.PoolPairs(pf, pr, 0, 0)...)
	oligos = append(oligos, pf...)
	oligos = append(oligos, pr...)
	if len(pairs) == 0 {
		return SimulateResult{}, fmt.Errorf("no primers configured: set a primer file or pools")
	}

	reaction := sim.New(cond)
	comps := make(map[string][]primer.Oligo) // degenerate seq → components
	for _, o := range oligos {
		if _, done := comps[o.Seq]; done {
			continue
		}
		cs, err := primer.Components(o)
		if err != nil {
			return SimulateResult{}, err
		}
		comps[o.Seq] = cs
		for _, c := range cs {
			reaction.AddPrimer(c)
		}
	}

	eng := engine.New(engine.Config{
		MaxMM:          cfg.PCR.Mismatches,
		TerminalWindow: cfg.PCR.TerminalWindow,
		MinLen:         cfg.PCR.MinProduct,
		MaxLen:         cfg.PCR.MaxProduct,
		HitCap:         cfg.PCR.HitCap,
		NeedSites:      true,
	})
	threads := cfg.PCR.Threads
	if threads < 1 {
		threads = runtime.GOMAXPROCS(0)
	}
	overlap := 0
	if cfg.PCR.ChunkSize > 0 {
		overlap = cfg.PCR.MaxProduct
	}

	var scanned []engine.Product
	err = pipeline.ForEachProduct(ctx,
		pipeline.Config{
			Threads:   threads,
			ChunkSize: cfg.PCR.ChunkSize,
			Overlap:   overlap,
			NeedSeq:   cfg.Output.Format == "fasta",
		},
		cfg.References, pairs, eng,
		func(p engine.Product) error {
			scanned = append(scanned, p)
			return nil
		})
	if err != nil {
		return SimulateResult{}, err
	}
	log.Info("annealing scan done",
		zap.Int("pairs", len(pairs)),
		zap.Int("candidate_products", len(scanned)))

	admitted := make(map[string]*engine.Product, len(scanned))
	for i := range scanned {
		p := &scanned[i]
		if p.FwdSite == "" || p.RevSite == "" {
			continue
		}
		base, off, ok := common.SplitChunkSuffix(p.SequenceID)
		if !ok {
			base, off = p.SequenceID, 0
		}
		key := fmt.Sprintf("%s|%s|%s:%d-%d|%s", p.SourceFile, p.PairID, base, p.Start+off, p.End+off, p.Type)

		fa := annealings(reaction, comps[p.FwdPrimer], p.FwdSite)
		ra := annealings(reaction, comps[p.RevPrimer], p.RevSite)
		if reaction.AddProduct(key, base, p.Start+off, p.End+off, fa, ra) {
			if _, dup := admitted[key]; !dup {
				admitted[key] = p
			}
		}
	}

	outcome := reaction.Run()
	if outcome.Saturated {
		log.Warn("reaction saturated within the first cycles; reduce input concentrations")
	}
	if len(outcome.DepletedPrimers) > 0 {
		log.Warn("primer variants depleted", zap.Int("count", len(outcome.DepletedPrimers)))
	}
	for _, r := range outcome.PolyShortage {
		log.Warn("polymerase throughput exceeded",
			zap.Int("from_cycle", r[0]), zap.Int("to_cycle", r[1]))
	}

	res := SimulateResult{Outcome: outcome}
	for _, sp := range outcome.Products {
		ep, ok := admitted[sp.Key]
		if !ok {
			continue
		}
		ep.Quantity = sp.Quantity
		ep.Cycles = sp.Cycles
		res.Products = append(res.Products, *ep)
	}
	return res, nil
}

// Gel renders the reaction report: concentration histogram plus a text
// electrophoresis lane.
func Gel(res SimulateResult) string {
	return sim.Histogram(res.Outcome.Products) + "\n" + sim.Electrophoresis(res.Outcome.Products)
}

// annealings computes a duplex per primer variant. Sites with ambiguous
// template bases have no defined stacking parameters and are skipped.
func annealings(r *sim.Reaction, variants []primer.Oligo, site string) []sim.Annealing {
	out := make([]sim.Annealing, 0, len(variants))
	for _, v := range variants {
		a, err := r.NewAnnealing(v, site)
		if err != nil {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Package pipeline runs the annealing-site scan concurrently over chunked
// reference sequences and deduplicates products that straddle chunk overlaps.
package pipeline

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"paneval-core/engine"
	"paneval-core/fasta"
	"paneval-core/primer"
	"paneval/internal/common"
)

// Config controls the scanning pipeline.
type Config struct {
	Threads   int // number of worker goroutines (>=1)
	ChunkSize int // FASTA chunking window; 0 disables chunking
	Overlap   int // overlap between chunks (>= MaxLen to catch straddlers)
	NeedSeq   bool
}

// Key identifies a product in reference-global coordinates so duplicates
// from overlapping chunks collapse to one.
type Key struct {
	Base, File string
	Start, End int
	Type, Pair string
}

// Simulator is the minimal capability the pipeline needs; fakes satisfy it
// in tests.
type Simulator interface {
	SimulateBatch(seqID string, seq []byte, pairs []primer.Pair) []engine.Product
}

// ForEachProduct streams deduplicated products to visit. Coordinates are
// normalized back to reference-global positions before deduplication; the
// visit callback still sees chunk-local products, matching what a caller
// needs to slice sequence out of the chunk.
func ForEachProduct(
	ctx context.Context,
	cfg Config,
	seqFiles []string,
	pairs []primer.Pair,
	sim Simulator,
	visit func(engine.Product) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}

	type job struct {
		rec        fasta.Record
		sourceFile string
	}
	jobs := make(chan job, cfg.Threads*2)
	results := make(chan []engine.Product, cfg.Threads*2)

	g, ctx := errgroup.WithContext(ctx)

	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		g.Go(func() error {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case j, ok := <-jobs:
					if !ok {
						return nil
					}
					hits := sim.SimulateBatch(j.rec.ID, j.rec.Seq, pairs)
					if cfg.NeedSeq {
						for i := range hits {
							hits[i].Seq = string(j.rec.Seq[hits[i].Start:hits[i].End])
						}
					}
					for i := range hits {
						hits[i].SourceFile = j.sourceFile
					}
					select {
					case results <- hits:
					case <-ctx.Done():
						return ctx.Err()
					}
				}
			}
		})
	}

	// Collector owns the dedup map; runs alone so no locking is needed.
	collectorDone := make(chan error, 1)
	go func() {
		seen := make(map[Key]struct{}, 1<<12)
		var cerr error
		for hs := range results {
			if cerr != nil {
				continue
			}
			for _, p := range hs {
				base, off, ok := common.SplitChunkSuffix(p.SequenceID)
				if !ok {
					base = p.SequenceID
					off = 0
				}
				k := Key{
					Base: base, File: p.SourceFile,
					Start: p.Start + off, End: p.End + off,
					Type: p.Type, Pair: p.PairID,
				}
				if _, dup := seen[k]; dup {
					continue
				}
				seen[k] = struct{}{}
				if err := visit(p); err != nil && cerr == nil {
					cerr = err
				}
			}
		}
		collectorDone <- cerr
	}()

	// Feed work.
	g.Go(func() error {
		defer close(jobs)
		for _, fa := range seqFiles {
			err := fasta.StreamChunksPathCtx(ctx, fa, cfg.ChunkSize, cfg.Overlap,
				func(rec fasta.Record) error {
					select {
					case <-ctx.Done():
						return ctx.Err()
					case jobs <- job{rec: rec, sourceFile: fa}:
						return nil
					}
				})
			if err != nil {
				return err
			}
		}
		return nil
	})

	err := g.Wait()
	wg.Wait()
	close(results)
	cerr := <-collectorDone
	if err != nil {
		return err
	}
	return cerr
}

package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"paneval/internal/config"
	"paneval/internal/coverage"
	"paneval/internal/evaluate"
)

// EvaluateOptions tune the prediction/coverage comparison.
type EvaluateOptions struct {
	MinOverlap float64
	MinReads   float64
}

// Evaluate runs the simulation and scores it against the observed coverage
// table from the config.
func Evaluate(ctx context.Context, cfg config.Config, opts EvaluateOptions, log *zap.Logger) (evaluate.Report, error) {
	if cfg.Coverage == "" {
		return evaluate.Report{}, fmt.Errorf("no coverage table configured")
	}
	targets, err := coverage.Load(cfg.Coverage)
	if err != nil {
		return evaluate.Report{}, err
	}
	res, err := Simulate(ctx, cfg, log)
	if err != nil {
		return evaluate.Report{}, err
	}

	preds := make([]evaluate.Prediction, 0, len(res.Products))
	for _, p := range res.Products {
		preds = append(preds, evaluate.FromProduct(p))
	}
	rep := evaluate.Evaluate(preds, targets, evaluate.Options{
		MinOverlap: opts.MinOverlap,
		MinReads:   opts.MinReads,
	})
	log.Info("evaluation done",
		zap.Int("targets", len(targets)),
		zap.Int("predictions", len(preds)),
		zap.Int("tp", rep.Confusion.TP),
		zap.Int("fn", rep.Confusion.FN))
	return rep, nil
}

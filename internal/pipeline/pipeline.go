// Package pipeline runs the cleanup stages in order over one store and
// collects their statistics.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"jobclean/internal/domain"
)

// Store is the listing view every stage works through. *store.Tx and
// *store.Memory both satisfy it.
type Store interface {
	Active(ctx context.Context) ([]domain.Listing, error)
	Update(ctx context.Context, id int64, c domain.Change) error
}

type Stage interface {
	Name() string
	Run(ctx context.Context, st Store, log *slog.Logger) (Result, error)
}

type Pipeline struct {
	stages []Stage
	log    *slog.Logger
	// OnStage, if set, is called after each stage completes.
	OnStage func(Result)
}

func New(log *slog.Logger, stages ...Stage) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{stages: stages, log: log}
}

// Run executes the stages in declaration order. Each stage sees the writes of
// the ones before it. The first error stops the run; the caller owns rollback.
func (p *Pipeline) Run(ctx context.Context, st Store) (Summary, error) {
	var sum Summary
	for _, s := range p.stages {
		if err := ctx.Err(); err != nil {
			return sum, fmt.Errorf("before %s: %w", s.Name(), err)
		}
		log := p.log.With("stage", s.Name())
		res, err := s.Run(ctx, st, log)
		if err != nil {
			return sum, fmt.Errorf("%s: %w", s.Name(), err)
		}
		res.Stage = s.Name()
		log.Info("stage done", "selected", res.Selected, "changed", res.Changed)
		sum.Results = append(sum.Results, res)
		if p.OnStage != nil {
			p.OnStage(res)
		}
	}
	return sum, nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"jobclean/internal/config"
	"jobclean/internal/pipeline"
	"jobclean/internal/report"
	"jobclean/internal/store"
)

// run performs one cleanup: every pass inside a single transaction, then
// commit (or rollback for a dry run) and the report on out.
func run(ctx context.Context, opts options, out io.Writer, log *slog.Logger) error {
	start := time.Now()

	rules, err := config.Load(opts.Rules)
	if err != nil {
		return err
	}

	if !store.IsPostgresDSN(opts.DB) {
		if _, err := os.Stat(opts.DB); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}

	unlock, err := store.Lock(opts.DB)
	if err != nil {
		return err
	}
	defer func() {
		if err := unlock(); err != nil {
			log.Warn("release lock", "err", err)
		}
	}()

	db, err := store.Open(ctx, opts.DB)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("connected", "db", store.Describe(opts.DB), "dialect", db.Dialect.Name, "dry_run", opts.DryRun)

	added, err := db.EnsureQualityScoreColumn(ctx)
	if err != nil {
		return err
	}
	if added {
		log.Info("added quality_score column")
	} else {
		log.Info("quality_score column already present")
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	p := pipeline.New(log, pipeline.Stages(rules)...)
	p.OnStage = func(r pipeline.Result) {
		if err := report.Progress(out, r); err != nil {
			log.Warn("progress", "err", err)
		}
	}
	sum, err := p.Run(ctx, tx)
	if err != nil {
		return fmt.Errorf("run pipeline: %w", err)
	}

	bySource, err := tx.CountBySource(ctx)
	if err != nil {
		return err
	}
	active, err := tx.CountActive(ctx)
	if err != nil {
		return err
	}

	rebuilt := false
	if opts.DryRun {
		if err := tx.Rollback(); err != nil {
			return err
		}
		log.Info("dry run, rolled back", "changes", sum.Changed())
	} else {
		if err := tx.Commit(); err != nil {
			return err
		}
		log.Info("committed", "changes", sum.Changed())

		rebuilt, err = db.RebuildSearchIndex(ctx)
		if err != nil {
			log.Warn("search index rebuild failed", "err", err)
			rebuilt = false
		}
	}

	return report.Write(out, report.Run{
		DB:           store.Describe(opts.DB),
		DryRun:       opts.DryRun,
		ColumnAdded:  added,
		Summary:      sum,
		BySource:     bySource,
		Active:       active,
		IndexRebuilt: rebuilt,
		Elapsed:      time.Since(start),
	})
}

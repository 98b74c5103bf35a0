package runner

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/docsentry/docsentry/internal/checker"
	"github.com/docsentry/docsentry/internal/docs"
	"github.com/docsentry/docsentry/internal/findings"
	"github.com/docsentry/docsentry/internal/report"
	"github.com/docsentry/docsentry/internal/toolchain"
	"github.com/docsentry/docsentry/pkg/shared/config"
)

// Options are the per-run settings resolved from flags and config.
type Options struct {
	Root          string
	Extensions    []string
	Languages     []string
	MaxParallel   int
	FailOnWarning bool
}

// Runner wires the loader, checker, and aggregator into one run. The
// toolchain handle is injected so tests can stub it and workers share one
// explicit instance.
type Runner struct {
	cfg    *config.Config
	opts   Options
	tc     toolchain.Toolchain
	chk    *checker.Checker
	logger hclog.Logger
}

// New builds a Runner. external may be nil to disable external link
// checking.
func New(cfg *config.Config, opts Options, tc toolchain.Toolchain, external *checker.ExternalLinkChecker, logger hclog.Logger) *Runner {
	return &Runner{
		cfg:    cfg,
		opts:   opts,
		tc:     tc,
		chk:    checker.New(cfg, opts.Languages, tc, external, logger),
		logger: logger,
	}
}

// Run executes one full validation pass and returns the aggregated report.
// Every document chain is independent; the run only aborts on a toolchain
// failure or cancellation.
func (r *Runner) Run(ctx context.Context) (*report.Report, error) {
	runID := uuid.New().String()
	r.logger.Info("validation run starting", "run_id", runID, "root", r.opts.Root, "workers", r.opts.MaxParallel)

	if err := r.tc.Probe(ctx); err != nil {
		return nil, err
	}

	loader := docs.NewLoader(r.opts.Root, r.opts.Extensions, r.logger)
	paths, skipped, err := loader.Walk()
	if err != nil {
		return nil, err
	}
	r.logger.Debug("documents discovered", "count", len(paths), "skipped", len(skipped))

	knownPaths := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		knownPaths[p] = struct{}{}
	}

	// findings funnel: workers write, one collector reads
	results := make(chan []findings.Finding)
	collected := make(chan []findings.Finding)
	go func() {
		var all []findings.Finding
		for batch := range results {
			all = append(all, batch...)
		}
		collected <- all
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workerLimit())

	stream := loader.Documents(gctx, paths)
	for res := range stream {
		res := res
		g.Go(func() error {
			batch, err := r.checkOne(gctx, res, knownPaths)
			if err != nil {
				return err
			}
			select {
			case results <- batch:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}

	err = g.Wait()
	close(results)
	all := <-collected

	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		// interrupted: never present a partial report as complete
		return nil, ctx.Err()
	}

	// walk-stage skips are recorded the same way as read failures
	for _, s := range skipped {
		all = append(all, findings.Finding{
			RuleID:   findings.RuleCompileError,
			Severity: findings.SeverityWarning,
			Message:  fmt.Sprintf("could not read: %v", s.Err),
			FilePath: s.Path,
			Line:     1,
		})
	}

	rep := report.Aggregate(runID, r.opts.Root, len(paths), all)
	r.logger.Info("validation run finished", "run_id", runID, "errors", rep.Errors, "warnings", rep.Warnings, "documents", rep.Documents)
	return rep, nil
}

// checkOne runs the per-document chain. Unreadable files become a warning
// finding rather than failing the run.
func (r *Runner) checkOne(ctx context.Context, res docs.Result, knownPaths map[string]struct{}) ([]findings.Finding, error) {
	if res.Err != nil {
		r.logger.Warn("skipping unreadable file", "path", res.Doc.Path, "error", res.Err)
		return []findings.Finding{{
			RuleID:   findings.RuleCompileError,
			Severity: findings.SeverityWarning,
			Message:  fmt.Sprintf("could not read file: %v", res.Err),
			FilePath: res.Doc.Path,
			Line:     1,
		}}, nil
	}
	return r.chk.CheckDocument(ctx, res.Doc, knownPaths)
}

func (r *Runner) workerLimit() int {
	if r.opts.MaxParallel > 0 {
		return r.opts.MaxParallel
	}
	return 1
}

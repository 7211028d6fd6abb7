package build

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/gkc/internal/stats"
	"github.com/roach88/gkc/internal/workspace"
)

// PackageResult is the outcome of compiling one package.
type PackageResult struct {
	Package workspace.Package
	Stats   []stats.Stat
}

// Report summarizes a finished run.
type Report struct {
	Wall     time.Duration // wall-clock time of the whole run
	Total    stats.Stats   // sum over every compiled file
	Packages []PackageResult
}

// Runner compiles a list of packages and aggregates their statistics.
type Runner struct {
	Packages *PackageCompiler
	Clock    stats.Clock
	Logger   *slog.Logger

	// Jobs bounds how many packages compile at once. Values below 2 mean
	// strictly sequential compilation in resolver order.
	Jobs int
}

// NewRunner creates a sequential Runner.
func NewRunner(pc *PackageCompiler, logger *slog.Logger) *Runner {
	return &Runner{Packages: pc, Clock: stats.SystemClock{}, Logger: logger, Jobs: 1}
}

// Run compiles every package into collector. It stops at the first error;
// nothing is reported for a failed run.
func (r *Runner) Run(ctx context.Context, pkgs []workspace.Package, collector *stats.Collector) (*Report, error) {
	start := r.Clock.Now()

	results := make([]PackageResult, len(pkgs))
	var err error
	if r.Jobs < 2 {
		err = r.runSequential(ctx, pkgs, collector, results)
	} else {
		err = r.runParallel(ctx, pkgs, collector, results)
	}
	if err != nil {
		return nil, err
	}

	return &Report{
		Wall:     r.Clock.Now().Sub(start),
		Total:    collector.Total(),
		Packages: results,
	}, nil
}

func (r *Runner) runSequential(ctx context.Context, pkgs []workspace.Package, collector *stats.Collector, results []PackageResult) error {
	for i, pkg := range pkgs {
		if err := r.compileOne(ctx, pkg, collector, &results[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runParallel(ctx context.Context, pkgs []workspace.Package, collector *stats.Collector, results []PackageResult) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Jobs)

	for i, pkg := range pkgs {
		i, pkg := i, pkg
		g.Go(func() error {
			return r.compileOne(gctx, pkg, collector, &results[i])
		})
	}
	return g.Wait()
}

func (r *Runner) compileOne(ctx context.Context, pkg workspace.Package, collector *stats.Collector, result *PackageResult) error {
	got, err := r.Packages.Compile(ctx, pkg)
	if err != nil {
		r.logger().Error("package failed", "package", pkg.PackageRoot, "error", err)
		return err
	}

	collector.Concat(got)
	*result = PackageResult{Package: pkg, Stats: got}

	sum := stats.Sum(got)
	r.logger().Info("compiled package", "package", pkg.PackageRoot, "files", sum.Files, "elapsed", sum.Elapsed)
	return nil
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

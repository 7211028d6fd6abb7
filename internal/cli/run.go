package cli

import (
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/gkc/internal/build"
	"github.com/roach88/gkc/internal/compiler"
	"github.com/roach88/gkc/internal/stats"
	"github.com/roach88/gkc/internal/workspace"
)

func runBuild(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	runID := newRunID()
	if opts.runID != nil {
		runID = opts.runID()
	}
	formatter.RunID = runID
	logger := newLogger(formatter, opts.Verbose).With("run_id", runID)

	clock := opts.clock
	if clock == nil {
		clock = stats.SystemClock{}
	}

	root := opts.Root
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return outputRunError(formatter, err)
		}
		root, err = FindRoot(cwd)
		if err != nil {
			return outputRunError(formatter, err)
		}
	}
	logger.Debug("workspace root", "root", root)

	resolver := &workspace.Resolver{Manifest: opts.Manifest, Logger: logger}
	pkgs, err := resolver.Resolve(root)
	if err != nil {
		return outputRunError(formatter, err)
	}
	logger.Info("resolved packages", "count", len(pkgs))

	transpiler, err := compiler.NewTranspiler(opts.Transpiler, compiler.TranspileOptions{
		ElideUnusedImports: opts.ElideUnusedImports,
	})
	if err != nil {
		return outputRunError(formatter, err)
	}

	pc := &build.PackageCompiler{
		Compiler: compiler.New(transpiler),
		Clock:    clock,
		Logger:   logger,
	}
	runner := &build.Runner{Packages: pc, Clock: clock, Logger: logger, Jobs: opts.Jobs}

	report, err := runner.Run(cmd.Context(), pkgs, stats.NewCollector())
	if err != nil {
		return outputRunError(formatter, err)
	}

	return formatter.Success(newRunReport(report))
}

// outputRunError reports a failed run. No statistics are printed.
func outputRunError(formatter *OutputFormatter, err error) error {
	code := ErrorCode(err)
	_ = formatter.Error(code, err.Error(), nil)
	return WrapExitError(ExitCommandError, code, err)
}

func newRunID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func newLogger(f *OutputFormatter, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(f.GetErrWriter(), &slog.HandlerOptions{Level: level}))
}

package build

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/roach88/gkc/internal/compiler"
	"github.com/roach88/gkc/internal/stats"
	"github.com/roach88/gkc/internal/workspace"
)

// SourcePattern selects the files compiled in each package.
const SourcePattern = "**/*.ts"

// ModuleCompiler compiles one source file to output bytes.
type ModuleCompiler interface {
	Compile(ctx context.Context, path string) ([]byte, error)
}

// PackageCompiler builds single packages.
type PackageCompiler struct {
	Compiler ModuleCompiler
	Clock    stats.Clock
	Logger   *slog.Logger
}

// NewPackageCompiler creates a PackageCompiler timing files with the
// system clock.
func NewPackageCompiler(c ModuleCompiler, logger *slog.Logger) *PackageCompiler {
	return &PackageCompiler{Compiler: c, Clock: stats.SystemClock{}, Logger: logger}
}

// Compile rebuilds pkg's dist directory and returns one Stat per compiled
// file, in enumeration order.
func (pc *PackageCompiler) Compile(ctx context.Context, pkg workspace.Package) ([]stats.Stat, error) {
	log := pc.logger().With("package", pkg.PackageRoot)

	if err := clean(pkg.OutputDir()); err != nil {
		return nil, err
	}

	sources, err := Sources(pkg.Dir())
	if err != nil {
		return nil, err
	}
	log.Debug("compiling package", "files", len(sources))

	result := make([]stats.Stat, 0, len(sources))
	for _, rel := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		src := filepath.Join(pkg.Dir(), filepath.FromSlash(rel))
		stat := stats.Start(pc.Clock, src)

		dst := filepath.Join(pkg.OutputDir(), filepath.FromSlash(OutputName(rel)))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return nil, &IOError{Op: "mkdir", Path: filepath.Dir(dst), Err: err}
		}

		out, err := pc.Compiler.Compile(ctx, src)
		if err != nil {
			if compiler.IsParseError(err) || errors.Is(err, context.Canceled) {
				return nil, err
			}
			return nil, &IOError{Op: "read", Path: src, Err: err}
		}

		if err := os.WriteFile(dst, out, 0o644); err != nil {
			return nil, &IOError{Op: "write", Path: dst, Err: err}
		}

		done := stat.Done()
		log.Debug("compiled file", "file", rel, "elapsed", done.Elapsed)
		result = append(result, done)
	}

	return result, nil
}

// clean removes a previous dist directory.
func clean(dir string) error {
	info, err := os.Lstat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &IOError{Op: "stat", Path: dir, Err: err}
	}
	if !info.IsDir() {
		return &ConfigError{Path: dir, Problem: "exists, but is not a directory"}
	}
	if err := os.RemoveAll(dir); err != nil {
		return &IOError{Op: "remove", Path: dir, Err: err}
	}
	return nil
}

// Sources lists the files under dir matching SourcePattern as sorted,
// slash-separated paths relative to dir.
func Sources(dir string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), SourcePattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, &IOError{Op: "scan", Path: dir, Err: err}
	}
	sort.Strings(matches)
	return matches, nil
}

// OutputName maps a source path to its output path by swapping the .ts
// extension for .js.
func OutputName(rel string) string {
	return strings.TrimSuffix(rel, path.Ext(rel)) + ".js"
}

func (pc *PackageCompiler) logger() *slog.Logger {
	if pc.Logger == nil {
		return slog.Default()
	}
	return pc.Logger
}

package workspace

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Package is one compilable unit: a directory under the workspace root.
// Two Packages with equal paths are interchangeable.
type Package struct {
	WorkspaceRoot string // absolute or cwd-relative workspace root
	PackageRoot   string // slash-separated, relative to WorkspaceRoot
}

// NewPackage creates a Package.
func NewPackage(workspaceRoot, packageRoot string) Package {
	return Package{WorkspaceRoot: workspaceRoot, PackageRoot: filepath.ToSlash(packageRoot)}
}

// Dir returns the package directory on disk.
func (p Package) Dir() string {
	return filepath.Join(p.WorkspaceRoot, filepath.FromSlash(p.PackageRoot))
}

// OutputRoot returns the package's output directory relative to the
// workspace root.
func (p Package) OutputRoot() string {
	return p.PackageRoot + "/dist"
}

// OutputDir returns the output directory on disk.
func (p Package) OutputDir() string {
	return filepath.Join(p.WorkspaceRoot, filepath.FromSlash(p.OutputRoot()))
}

func (p Package) String() string {
	return p.PackageRoot
}

// Resolver expands a workspace manifest into packages.
type Resolver struct {
	// Manifest is the manifest file name at the workspace root.
	Manifest string
	Logger   *slog.Logger
}

// NewResolver creates a Resolver for the default manifest name.
func NewResolver(logger *slog.Logger) *Resolver {
	return &Resolver{Manifest: DefaultManifest, Logger: logger}
}

// Resolve loads the manifest at root and returns one Package per matching
// directory, in manifest pattern order and then match order. A directory
// matched by several patterns is returned once.
func (r *Resolver) Resolve(root string) ([]Package, error) {
	name := r.Manifest
	if name == "" {
		name = DefaultManifest
	}

	m, err := LoadManifest(filepath.Join(root, name))
	if err != nil {
		return nil, err
	}

	var out []Package
	seen := make(map[string]bool)

	patterns := m.Patterns()
	if skipped := len(m.Packages) - len(patterns); skipped > 0 {
		r.logger().Debug("skipping patterns listed in skip-ts", "count", skipped)
	}

	for _, pattern := range patterns {
		dirs, err := Expand(root, pattern)
		if err != nil {
			return nil, err
		}
		for _, dir := range dirs {
			if seen[dir] {
				continue
			}
			seen[dir] = true
			out = append(out, NewPackage(root, dir))
		}
	}

	r.logger().Debug("resolved workspace", "root", root, "packages", len(out))
	return out, nil
}

// Expand matches pattern against the filesystem relative to root and
// returns the matching directories as slash-separated paths relative to
// root. Files that match are ignored. Only pattern is interpreted as a
// glob; root is taken literally. A pattern that reaches outside root is
// a PathError.
func Expand(root, pattern string) ([]string, error) {
	clean := path.Clean(filepath.ToSlash(pattern))
	if clean == ".." || strings.HasPrefix(clean, "../") || path.IsAbs(clean) || filepath.IsAbs(pattern) {
		return nil, &PathError{Root: root, Path: pattern}
	}

	fsys := os.DirFS(root)
	matches, err := doublestar.Glob(fsys, clean)
	if err != nil {
		return nil, fmt.Errorf("expanding %q: %w", pattern, err)
	}

	var dirs []string
	for _, match := range matches {
		info, err := fs.Stat(fsys, match)
		if err != nil || !info.IsDir() {
			continue
		}
		dirs = append(dirs, match)
	}
	return dirs, nil
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gkc/internal/compiler"
	"github.com/roach88/gkc/internal/stats"
	"github.com/roach88/gkc/internal/workspace"
)

// RootOptions holds the flags of the gkc command.
type RootOptions struct {
	Verbose            bool
	Format             string // "json" | "text"
	Root               string // workspace root; empty means search upward for .git
	Manifest           string
	Jobs               int
	Transpiler         string
	ElideUnusedImports bool

	// Overridable for deterministic tests.
	runID func() string
	clock stats.Clock
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the gkc command.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gkc",
		Short: "Compile workspace TypeScript packages to JavaScript",
		Long: `Compile every package listed in the workspace manifest.

For each package, dist/ is deleted and every **/*.ts file is compiled to
dist/<same path>.js with types stripped and relative import specifiers
given an explicit .js extension.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValid(opts.Format, ValidFormats) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if !isValid(opts.Transpiler, compiler.ValidTranspilers) {
				return fmt.Errorf("invalid transpiler %q: must be one of %v", opts.Transpiler, compiler.ValidTranspilers)
			}
			if opts.Jobs < 1 {
				return fmt.Errorf("invalid jobs %d: must be at least 1", opts.Jobs)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(opts, cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.Flags().StringVar(&opts.Root, "root", "", "workspace root (default: nearest ancestor containing .git)")
	cmd.Flags().StringVar(&opts.Manifest, "manifest", workspace.DefaultManifest, "workspace manifest file name")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 1, "packages to compile concurrently")
	cmd.Flags().StringVar(&opts.Transpiler, "transpiler", compiler.TranspilerEsbuild, "type stripper (esbuild|tsc)")
	cmd.Flags().BoolVar(&opts.ElideUnusedImports, "elide-unused-imports", false, "drop imports that are unused after type stripping")

	return cmd
}

// isValid checks if value is one of the allowed values.
func isValid(value string, allowed []string) bool {
	for _, a := range allowed {
		if a == value {
			return true
		}
	}
	return false
}

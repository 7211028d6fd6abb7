package cli

import (
	"errors"

	"github.com/roach88/gkc/internal/build"
	"github.com/roach88/gkc/internal/compiler"
	"github.com/roach88/gkc/internal/workspace"
)

// Error codes reported by the build command.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeNoRoot       = "E005" // No workspace root found
	ErrCodeManifest     = "E201" // Manifest missing, malformed, or mis-shaped
	ErrCodePath         = "E202" // Package path outside the workspace root
	ErrCodeIO           = "E203" // Filesystem failure
	ErrCodeParse        = "E204" // Source file failed to parse
	ErrCodeOutputConfig = "E205" // dist exists but is not a directory
)

// ErrNoRoot is returned when no ancestor of the working directory holds a
// .git directory.
var ErrNoRoot = errors.New("no git root found")

// ErrorCode maps an error from a run to its error code.
func ErrorCode(err error) string {
	var (
		manifestErr *workspace.ManifestError
		pathErr     *workspace.PathError
		parseErr    *compiler.ParseError
		ioErr       *build.IOError
		configErr   *build.ConfigError
	)
	switch {
	case errors.Is(err, ErrNoRoot):
		return ErrCodeNoRoot
	case errors.As(err, &manifestErr):
		return ErrCodeManifest
	case errors.As(err, &pathErr):
		return ErrCodePath
	case errors.As(err, &parseErr):
		return ErrCodeParse
	case errors.As(err, &configErr):
		return ErrCodeOutputConfig
	case errors.As(err, &ioErr):
		return ErrCodeIO
	default:
		return ErrCodeGeneric
	}
}

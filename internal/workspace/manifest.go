package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"
)

// DefaultManifest is the manifest file name looked up at the root.
const DefaultManifest = "pnpm-workspace.yaml"

// manifestSchema constrains the keys this tool reads. The struct is open:
// package managers keep other settings in the same file.
const manifestSchema = `
packages:   [...string]
"skip-ts"?: [...string]
`

// Manifest is the part of the workspace manifest used for compilation.
type Manifest struct {
	Packages []string `yaml:"packages"`
	SkipTS   []string `yaml:"skip-ts"`
}

// Skipped reports whether pattern is listed verbatim under skip-ts.
func (m *Manifest) Skipped(pattern string) bool {
	for _, s := range m.SkipTS {
		if s == pattern {
			return true
		}
	}
	return false
}

// Patterns returns the package patterns that are not skipped, in
// manifest order.
func (m *Manifest) Patterns() []string {
	var out []string
	for _, p := range m.Packages {
		if !m.Skipped(p) {
			out = append(out, p)
		}
	}
	return out
}

// LoadManifest reads and validates the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	name := filepath.Base(path)

	data, err := os.ReadFile(path)
	if err != nil {
		problem := fmt.Sprintf("reading manifest: %v", err)
		if errors.Is(err, os.ErrNotExist) {
			problem = "manifest not found"
		}
		return nil, &ManifestError{File: name, Problem: problem, Err: err}
	}

	return ParseManifest(name, data)
}

// ParseManifest validates data against the manifest schema and decodes it.
// name is used in error messages.
func ParseManifest(name string, data []byte) (*Manifest, error) {
	if err := validateManifest(name, data); err != nil {
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &ManifestError{File: name, Problem: fmt.Sprintf("decoding yaml: %v", err), Err: err}
	}
	return &m, nil
}

func validateManifest(name string, data []byte) error {
	file, err := cueyaml.Extract(name, data)
	if err != nil {
		return &ManifestError{File: name, Problem: fmt.Sprintf("malformed yaml: %v", err), Err: err}
	}

	ctx := cuecontext.New()
	value := ctx.BuildFile(file)
	if err := value.Err(); err != nil {
		return &ManifestError{File: name, Problem: fmt.Sprintf("malformed yaml: %v", err), Err: err}
	}

	if value.IncompleteKind() != cue.StructKind {
		return &ManifestError{File: name, Problem: "top level must be a mapping"}
	}
	if !value.LookupPath(cue.ParsePath("packages")).Exists() {
		return &ManifestError{File: name, Key: "packages", Problem: "couldn't find packages"}
	}

	schema := ctx.CompileString(manifestSchema)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling manifest schema: %w", err)
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return shapeError(name, err)
	}
	return nil
}

// shapeError converts the first CUE validation error into a ManifestError
// naming the offending key.
func shapeError(name string, err error) *ManifestError {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &ManifestError{File: name, Problem: err.Error(), Err: err}
	}

	first := errs[0]
	path := first.Path()
	for i, sel := range path {
		path[i] = strings.Trim(sel, `"`)
	}
	key := strings.Join(path, ".")
	format, args := first.Msg()
	problem := fmt.Sprintf(format, args...)

	switch {
	case strings.HasPrefix(key, "packages."):
		problem = "item in `packages` key wasn't a string: " + problem
	case strings.HasPrefix(key, "skip-ts."):
		problem = "item in `skip-ts` key wasn't a string: " + problem
	case key == "packages" || key == "skip-ts":
		problem = fmt.Sprintf("`%s` must be a sequence of strings: %s", key, problem)
	}

	return &ManifestError{File: name, Key: key, Problem: problem, Err: err}
}

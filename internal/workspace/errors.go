package workspace

import "fmt"

// ManifestError reports a missing, malformed, or wrongly shaped manifest.
type ManifestError struct {
	File    string
	Key     string // offending key path, empty if the whole file is at fault
	Problem string
	Err     error
}

func (e *ManifestError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("manifest error in %s: %s: %s", e.File, e.Key, e.Problem)
	}
	return fmt.Sprintf("manifest error in %s: %s", e.File, e.Problem)
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

// PathError reports a glob match that is not nested under the workspace
// root.
type PathError struct {
	Root string
	Path string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s wasn't nested in %s", e.Path, e.Root)
}

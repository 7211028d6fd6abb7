package build

import "fmt"

// IOError reports a filesystem failure while building a package.
type IOError struct {
	Op   string // "read", "remove", "mkdir", "write", "scan"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ConfigError reports an output location that cannot be used, such as a
// dist path that exists but is not a directory.
type ConfigError struct {
	Path    string
	Problem string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s %s", e.Path, e.Problem)
}

package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/roach88/gkc/internal/build"
)

// RunReport is the success payload of a run.
type RunReport struct {
	WallMillis    int64           `json:"wall_elapsed_ms"`
	Files         int             `json:"files"`
	ElapsedMillis int64           `json:"elapsed_ms"`
	Packages      []PackageReport `json:"packages"`

	wall    time.Duration
	elapsed time.Duration
}

// PackageReport is the per-package part of a RunReport.
type PackageReport struct {
	Root  string `json:"root"`
	Files int    `json:"files"`
}

func newRunReport(r *build.Report) *RunReport {
	out := &RunReport{
		WallMillis:    r.Wall.Milliseconds(),
		Files:         r.Total.Files,
		ElapsedMillis: r.Total.Elapsed.Milliseconds(),
		Packages:      make([]PackageReport, 0, len(r.Packages)),
		wall:          r.Wall,
		elapsed:       r.Total.Elapsed,
	}
	for _, p := range r.Packages {
		out.Packages = append(out.Packages, PackageReport{Root: p.Package.PackageRoot, Files: len(p.Stats)})
	}
	return out
}

// String renders the text report.
func (r *RunReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "total    : %s seconds\n", seconds(r.wall))
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "compiled : %d files\n", r.Files)
	fmt.Fprintf(&b, "elapsed  : %s seconds\n", seconds(r.elapsed))
	return b.String()
}

// seconds formats d as whole seconds and milliseconds.
func seconds(d time.Duration) string {
	return fmt.Sprintf("%d.%03d", int64(d/time.Second), int64(d%time.Second/time.Millisecond))
}

// Package stats records how long each source file took to compile.
//
// A compilation pass opens a StatStart immediately before a file is
// compiled and finalizes it into a Stat once the output is written. The
// run owns a single Collector; packages hand their Stat slices to it in
// bulk and the run reduces the collector into Stats for the final report.
//
// Collector is safe for concurrent use so that packages may be compiled
// in parallel without further synchronization.
package stats

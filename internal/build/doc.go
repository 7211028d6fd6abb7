// Package build compiles workspace packages into their dist directories.
//
// Every run is a full rebuild. A package's dist directory is deleted
// before any of its sources are compiled, so outputs whose source was
// renamed or removed never survive. Each *.ts file under the package
// root is compiled to the same relative path under dist with a .js
// extension.
//
// Packages own disjoint dist trees, which is what lets Runner compile
// several packages at once with nothing shared but the stats collector.
// There is no partial success: the first failing file aborts its
// package, and the first failing package aborts the run.
package build

// Package sample deterministically prunes a directory tree down to a small
// fixture by deleting files beyond a retention budget.
//
// A full dataset download is often far too large for fast, low-storage test
// runs. Prune walks the extracted tree and keeps only the first N files in
// traversal order, deleting the rest in place.
//
// # Usage
//
//	// Keep at most 20 files across the whole tree.
//	res, err := sample.Prune(dir, 20, sample.ModeGlobal)
//
//	// Keep at most 3 files in each directory (one budget per class dir).
//	res, err := sample.Prune(dir, 3, sample.ModePerDir)
//
// # Determinism
//
// Directories are read in lexical order, so for a given tree the surviving
// set is the same on every platform. Pruning is destructive and not
// reversible, but re-running with the same budget is a no-op: the counters
// never exceed the budget on an already-pruned tree.
package sample

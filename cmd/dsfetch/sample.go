package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/geez0219/dsfetch/internal/sample"
)

// runSample prunes an existing directory tree in place, without any
// download step. Useful for turning a full local copy of a dataset
// into a fixture.
func runSample(args []string) int {
	fs := flag.NewFlagSet("sample", flag.ExitOnError)

	root := fs.String("root", "", "Directory tree to prune (required)")
	budget := fs.Int("budget", 0, "Number of files to retain (required)")
	mode := fs.String("mode", "global", "Budget scope: global or per-dir")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: dsfetch sample -root <dir> -budget <n> [options]

Walk a directory tree in lexicographic order and delete every file past
the budget. Directories are never removed. The walk is deterministic, so
running it twice keeps the same files.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	if *root == "" {
		fmt.Fprintln(os.Stderr, "Error: -root is required")
		fs.Usage()
		return ExitInvalidArgs
	}
	if *budget <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -budget must be positive")
		fs.Usage()
		return ExitInvalidArgs
	}

	m, err := sample.ParseMode(*mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	res, err := sample.Prune(*root, *budget, m)
	if err != nil {
		return fail(err)
	}

	fmt.Fprintf(os.Stderr, "[dsfetch] Pruned %s: kept %d files, removed %d\n", *root, res.Kept, res.Removed)
	return ExitSuccess
}

package sample

import (
	"fmt"
	"os"
	"path/filepath"
)

// Mode selects how the retention budget is scoped.
type Mode string

const (
	// ModeGlobal shares one budget across the entire tree.
	ModeGlobal Mode = "global"

	// ModePerDir gives each directory its own budget.
	ModePerDir Mode = "per-dir"
)

// ParseMode parses a mode string as accepted on the command line.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeGlobal:
		return ModeGlobal, nil
	case ModePerDir:
		return ModePerDir, nil
	}
	return "", fmt.Errorf("sample: unknown mode %q (want %q or %q)", s, ModeGlobal, ModePerDir)
}

// Result reports what a Prune pass did.
type Result struct {
	Kept    int
	Removed int
}

// pruner holds the counter state for a single Prune call.
type pruner struct {
	budget int
	mode   Mode
	kept   int
	res    Result
}

// Prune walks root depth-first and deletes every file beyond the retention
// budget. Directories are read in lexical order so the surviving set is
// deterministic across platforms: the first budget files in traversal order
// are kept, the rest are removed.
//
// In ModeGlobal one counter spans the whole tree; in ModePerDir the counter
// resets at the start of each directory. Only regular files are deleted,
// directories are left in place even when emptied.
//
// Prune fails fast: the first deletion or read error aborts the walk with
// an error naming the offending path. Running Prune again on an
// already-pruned tree is a no-op.
func Prune(root string, budget int, mode Mode) (Result, error) {
	if budget <= 0 {
		return Result{}, fmt.Errorf("sample: budget must be positive, got %d", budget)
	}
	switch mode {
	case ModeGlobal, ModePerDir:
	default:
		return Result{}, fmt.Errorf("sample: unknown mode %q", mode)
	}

	info, err := os.Stat(root)
	if err != nil {
		return Result{}, fmt.Errorf("sample: stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return Result{}, fmt.Errorf("sample: %s is not a directory", root)
	}

	p := &pruner{budget: budget, mode: mode}
	if err := p.walk(root); err != nil {
		return p.res, err
	}
	return p.res, nil
}

// walk processes one directory: files first, then subdirectories, matching
// a top-down traversal.
func (p *pruner) walk(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("sample: read %s: %w", dir, err)
	}

	if p.mode == ModePerDir {
		p.kept = 0
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if p.kept < p.budget {
			p.kept++
			p.res.Kept++
			continue
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("sample: remove %s: %w", path, err)
		}
		p.res.Removed++
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if err := p.walk(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}

	return nil
}

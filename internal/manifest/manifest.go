package manifest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Derived describes a manifest column computed from the primary path by
// replacing one path segment. New may span several segments
// ("ManualMask/leftMask").
type Derived struct {
	Name string
	Old  string
	New  string
}

// Spec describes one manifest file.
type Spec struct {
	// Path is where the CSV is written.
	Path string

	// Root is the directory manifest paths are relative to.
	Root string

	// Glob selects the primary files (e.g. ".../CXR_png/*.png").
	Glob string

	// Primary is the header name of the primary column.
	Primary string

	// Derived lists additional columns.
	Derived []Derived
}

// WriteIfAbsent writes the manifest described by spec unless spec.Path
// already exists. It returns true when a manifest was actually written.
//
// Primary files are globbed in sorted order; each row holds the primary
// path relative to spec.Root plus one derived path per derived column. The
// derived paths are not checked for existence: a missing mask simply
// surfaces downstream.
func WriteIfAbsent(spec Spec) (bool, error) {
	if _, err := os.Stat(spec.Path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("manifest: stat %s: %w", spec.Path, err)
	}

	if err := write(spec); err != nil {
		return false, err
	}
	return true, nil
}

// write globs the primary files and writes the CSV.
func write(spec Spec) error {
	matches, err := filepath.Glob(spec.Glob)
	if err != nil {
		return fmt.Errorf("manifest: glob %s: %w", spec.Glob, err)
	}

	f, err := os.Create(spec.Path)
	if err != nil {
		return fmt.Errorf("manifest: create %s: %w", spec.Path, err)
	}

	w := csv.NewWriter(f)

	header := make([]string, 0, 1+len(spec.Derived))
	header = append(header, spec.Primary)
	for _, d := range spec.Derived {
		header = append(header, d.Name)
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("manifest: write header: %w", err)
	}

	for _, m := range matches {
		rel, err := filepath.Rel(spec.Root, m)
		if err != nil {
			f.Close()
			return fmt.Errorf("manifest: relativize %s: %w", m, err)
		}

		row := make([]string, 0, len(header))
		row = append(row, rel)
		for _, d := range spec.Derived {
			row = append(row, strings.Replace(rel, d.Old, filepath.FromSlash(d.New), 1))
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("manifest: write row for %s: %w", m, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("manifest: flush: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("manifest: close %s: %w", spec.Path, err)
	}

	return nil
}

package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// CSVDataset is a loader handle backed by a manifest file. Rows reference
// files relative to Root.
type CSVDataset struct {
	// Path is the manifest file location.
	Path string

	// Root is the directory manifest paths are relative to.
	Root string

	// Columns is the manifest header.
	Columns []string

	rows [][]string
}

// OpenCSV reads a manifest file into a CSVDataset.
func OpenCSV(path, root string) (*CSVDataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open manifest %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset: parse manifest %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset: manifest %s has no header", path)
	}

	return &CSVDataset{
		Path:    path,
		Root:    root,
		Columns: records[0],
		rows:    records[1:],
	}, nil
}

// Len returns the number of rows in the manifest.
func (d *CSVDataset) Len() int {
	return len(d.rows)
}

// Row returns row i as a column-name map of paths relative to Root.
func (d *CSVDataset) Row(i int) map[string]string {
	row := make(map[string]string, len(d.Columns))
	for j, col := range d.Columns {
		if j < len(d.rows[i]) {
			row[col] = d.rows[i][j]
		}
	}
	return row
}

// DirDataset is a loader handle backed by a directory tree where each leaf
// directory holding files is one class (the Omniglot layout:
// alphabet/character/sample.png).
type DirDataset struct {
	// Root is the dataset directory.
	Root string

	classes []string
	files   map[string][]string
}

// OpenDir scans root and builds a DirDataset. Class names are leaf
// directory paths relative to root, sorted.
func OpenDir(root string) (*DirDataset, error) {
	d := &DirDataset{
		Root:  root,
		files: make(map[string][]string),
	}

	err := filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		class, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			return err
		}
		if _, seen := d.files[class]; !seen {
			d.classes = append(d.classes, class)
		}
		d.files[class] = append(d.files[class], path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("dataset: scan %s: %w", root, err)
	}

	sort.Strings(d.classes)
	return d, nil
}

// Classes returns the sorted class names.
func (d *DirDataset) Classes() []string {
	return d.classes
}

// Files returns the file paths belonging to class, in traversal order.
func (d *DirDataset) Files(class string) []string {
	return d.files[class]
}

// Len returns the total number of files across all classes.
func (d *DirDataset) Len() int {
	n := 0
	for _, fs := range d.files {
		n += len(fs)
	}
	return n
}

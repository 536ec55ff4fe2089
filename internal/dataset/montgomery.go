package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/geez0219/dsfetch/internal/archive"
	"github.com/geez0219/dsfetch/internal/fetch"
	"github.com/geez0219/dsfetch/internal/manifest"
	"github.com/geez0219/dsfetch/internal/sample"
)

// MontgomeryURL is the upstream location of the NLM Montgomery chest X-ray
// collection.
const MontgomeryURL = "http://openi.nlm.nih.gov/imgs/collections/NLM-MontgomeryCXRSet.zip"

// MontgomeryBudget is the default number of X-ray images retained by the
// sampling pass, shared across the whole image directory.
const MontgomeryBudget = 20

// MontgomeryOptions configures LoadMontgomery. The zero value fetches the
// upstream archive into ~/dsfetch_data with the default budget.
type MontgomeryOptions struct {
	// RootDir overrides the storage root. The dataset lands in
	// RootDir/Montgomery.
	RootDir string

	// URL overrides the archive location (tests point this at a local
	// server).
	URL string

	// Budget overrides MontgomeryBudget.
	Budget int

	// Fetch configures the download (progress callback, retry policy).
	Fetch fetch.Options
}

// LoadMontgomery ensures the Montgomery dataset is downloaded, extracted,
// sampled, and indexed, then returns a loader handle over the manifest.
// Each step is skipped when its output already exists.
func LoadMontgomery(ctx context.Context, opts MontgomeryOptions) (*CSVDataset, error) {
	root, err := datasetRoot(opts.RootDir, "Montgomery")
	if err != nil {
		return nil, err
	}

	url := opts.URL
	if url == "" {
		url = MontgomeryURL
	}
	budget := opts.Budget
	if budget == 0 {
		budget = MontgomeryBudget
	}

	zipPath := filepath.Join(root, "NLM-MontgomeryCXRSet.zip")
	extractDir := filepath.Join(root, "MontgomerySet")
	csvPath := filepath.Join(root, "montgomery.csv")

	// Fetch and extract only while the extracted tree is missing; once it
	// exists the archive may have been deleted to save space.
	if _, err := os.Stat(extractDir); os.IsNotExist(err) {
		if _, err := fetch.FetchIfAbsent(ctx, url, zipPath, opts.Fetch); err != nil {
			return nil, err
		}
		// The upstream zip carries macOS junk outside MontgomerySet/.
		if _, err := archive.ExtractIfAbsent(zipPath, root, extractDir, archive.Options{Prefix: "MontgomerySet/"}); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("dataset: stat %s: %w", extractDir, err)
	}

	if _, err := sample.Prune(filepath.Join(extractDir, "CXR_png"), budget, sample.ModeGlobal); err != nil {
		return nil, err
	}

	_, err = manifest.WriteIfAbsent(manifest.Spec{
		Path:    csvPath,
		Root:    root,
		Glob:    filepath.Join(extractDir, "CXR_png", "*.png"),
		Primary: "image",
		Derived: []manifest.Derived{
			{Name: "mask_left", Old: "CXR_png", New: "ManualMask/leftMask"},
			{Name: "mask_right", Old: "CXR_png", New: "ManualMask/rightMask"},
		},
	})
	if err != nil {
		return nil, err
	}

	return OpenCSV(csvPath, root)
}

// datasetRoot resolves the per-dataset storage directory and creates it.
func datasetRoot(override, name string) (string, error) {
	var root string
	if override == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("dataset: resolve home directory: %w", err)
		}
		root = filepath.Join(home, "dsfetch_data", name)
	} else {
		abs, err := filepath.Abs(override)
		if err != nil {
			return "", fmt.Errorf("dataset: resolve root %s: %w", override, err)
		}
		root = filepath.Join(abs, name)
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return "", fmt.Errorf("dataset: create root %s: %w", root, err)
	}
	return root, nil
}

package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/geez0219/dsfetch/internal/archive"
	"github.com/geez0219/dsfetch/internal/fetch"
	"github.com/geez0219/dsfetch/internal/sample"
)

// Omniglot archive locations.
const (
	OmniglotBackgroundURL = "https://github.com/brendenlake/omniglot/raw/master/python/images_background.zip"
	OmniglotEvaluationURL = "https://github.com/brendenlake/omniglot/raw/master/python/images_evaluation.zip"
)

// OmniglotBudget is the default number of samples retained per character
// directory.
const OmniglotBudget = 3

// OmniglotOptions configures LoadOmniglot.
type OmniglotOptions struct {
	// RootDir overrides the storage root. The dataset lands in
	// RootDir/Omniglot.
	RootDir string

	// BackgroundURL and EvaluationURL override the archive locations.
	BackgroundURL string
	EvaluationURL string

	// Budget overrides OmniglotBudget.
	Budget int

	// Fetch configures the downloads.
	Fetch fetch.Options
}

// LoadOmniglot ensures both Omniglot splits are downloaded, extracted, and
// sampled, then returns loader handles for the train (background) and eval
// (evaluation) trees.
func LoadOmniglot(ctx context.Context, opts OmniglotOptions) (train, eval *DirDataset, err error) {
	root, err := datasetRoot(opts.RootDir, "Omniglot")
	if err != nil {
		return nil, nil, err
	}

	budget := opts.Budget
	if budget == 0 {
		budget = OmniglotBudget
	}

	splits := []struct {
		url string
		dir string
	}{
		{urlOrDefault(opts.BackgroundURL, OmniglotBackgroundURL), filepath.Join(root, "images_background")},
		{urlOrDefault(opts.EvaluationURL, OmniglotEvaluationURL), filepath.Join(root, "images_evaluation")},
	}

	for _, split := range splits {
		zipPath := split.dir + ".zip"

		if _, err := os.Stat(split.dir); os.IsNotExist(err) {
			if _, err := fetch.FetchIfAbsent(ctx, split.url, zipPath, opts.Fetch); err != nil {
				return nil, nil, err
			}
			if _, err := archive.ExtractIfAbsent(zipPath, root, split.dir, archive.Options{}); err != nil {
				return nil, nil, err
			}
		} else if err != nil {
			return nil, nil, fmt.Errorf("dataset: stat %s: %w", split.dir, err)
		}

		// One budget per character directory keeps a few samples of every
		// class instead of a few classes.
		if _, err := sample.Prune(split.dir, budget, sample.ModePerDir); err != nil {
			return nil, nil, err
		}
	}

	train, err = OpenDir(splits[0].dir)
	if err != nil {
		return nil, nil, err
	}
	eval, err = OpenDir(splits[1].dir)
	if err != nil {
		return nil, nil, err
	}
	return train, eval, nil
}

func urlOrDefault(url, fallback string) string {
	if strings.TrimSpace(url) == "" {
		return fallback
	}
	return url
}

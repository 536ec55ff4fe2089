package main

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/geez0219/dsfetch/internal/archive"
	"github.com/geez0219/dsfetch/internal/config"
	"github.com/geez0219/dsfetch/internal/fetch"
	dshttp "github.com/geez0219/dsfetch/internal/http"
)

// loadConfig builds the effective configuration: defaults, then the config
// file (if given), then environment variables.
func loadConfig(configPath string) (config.Config, error) {
	cfg := config.Default()

	if configPath != "" {
		fileCfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = fileCfg
	}

	if err := cfg.LoadFromEnv(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

// fetchOptions maps the retry configuration onto fetch options.
func fetchOptions(cfg config.Config) fetch.Options {
	var opts fetch.Options
	opts.HTTP.RetryAttempts = cfg.Retry.Attempts
	opts.HTTP.RetryBackoff = cfg.Retry.Backoff
	opts.HTTP.RetryMaxBackoff = cfg.Retry.MaxBackoff
	return opts
}

// probeSize asks the server for the combined size of the downloads so the
// progress bar can show a percentage. Returns -1 when any size is unknown.
func probeSize(ctx context.Context, cfg config.Config, urls ...string) int64 {
	client := dshttp.NewClient(fetchOptions(cfg).HTTP)
	var total int64
	for _, url := range urls {
		info, err := client.Head(ctx, url)
		if err != nil || info.Size <= 0 {
			return -1
		}
		total += info.Size
	}
	return total
}

// exitCodeFor maps pipeline errors to exit codes.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, dshttp.ErrNotFound),
		errors.Is(err, dshttp.ErrForbidden),
		errors.Is(err, dshttp.ErrUnauthorized),
		errors.Is(err, dshttp.ErrServerError):
		return ExitSourceNotAccess
	case errors.Is(err, zip.ErrFormat),
		errors.Is(err, zip.ErrChecksum),
		errors.Is(err, archive.ErrUnsafePath):
		return ExitExtractError
	default:
		return ExitGeneralError
	}
}

// fail prints the error and returns its exit code.
func fail(err error) int {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return exitCodeFor(err)
}

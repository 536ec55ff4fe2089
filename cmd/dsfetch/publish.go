package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"

	"github.com/geez0219/dsfetch/internal/config"
	"github.com/geez0219/dsfetch/internal/progress"
	"github.com/geez0219/dsfetch/internal/publish"
)

// runPublish uploads a pruned fixture tree to a bucket so CI jobs can
// pull it instead of hitting the upstream mirrors.
func runPublish(args []string) int {
	fs := flag.NewFlagSet("publish", flag.ExitOnError)

	root := fs.String("root", "", "Fixture tree to upload (required)")
	bucket := fs.String("bucket", "", "Bucket URL, e.g. s3://my-bucket?region=us-east-1 (required)")
	prefix := fs.String("prefix", "", "Key prefix inside the bucket")
	force := fs.Bool("force", false, "Overwrite objects that already exist")
	configPath := fs.String("config", "", "Path to YAML config file")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: dsfetch publish -root <dir> -bucket <url> [options]

Upload a fixture tree to blob storage. Objects that already exist under
the prefix are skipped unless -force is given.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return ExitInvalidArgs
	}
	cfg = cfg.Merge(config.Config{
		Bucket: *bucket,
		Prefix: *prefix,
	})

	if *root == "" {
		fmt.Fprintln(os.Stderr, "Error: -root is required")
		fs.Usage()
		return ExitInvalidArgs
	}
	if cfg.Bucket == "" {
		fmt.Fprintln(os.Stderr, "Error: -bucket is required")
		fs.Usage()
		return ExitInvalidArgs
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\n[dsfetch] Received interrupt, shutting down...")
		cancel()
	}()

	bkt, err := blob.OpenBucket(ctx, cfg.Bucket)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening bucket: %v\n", err)
		return ExitStorageError
	}
	defer bkt.Close()

	res, err := publish.Tree(ctx, bkt, *root, publish.Options{
		Prefix: cfg.Prefix,
		Force:  *force,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitStorageError
	}

	fmt.Fprintf(os.Stderr, "[dsfetch] Published %s: %d uploaded, %d skipped, %s\n",
		*root, res.Uploaded, res.Skipped, progress.FormatBytes(res.Bytes))
	return ExitSuccess
}

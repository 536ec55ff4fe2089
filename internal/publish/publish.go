package publish

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"gocloud.dev/blob"
)

// Options configures a publish.
type Options struct {
	// Prefix is prepended to every object key.
	Prefix string

	// Force overwrites objects that already exist in the bucket.
	Force bool
}

// Result reports what a publish did.
type Result struct {
	Uploaded int
	Skipped  int
	Bytes    int64
}

// Tree uploads every file under root to the bucket, keyed by the file's
// slash-separated path relative to root (under opts.Prefix). Keys that
// already exist are skipped unless opts.Force is set, so re-publishing an
// unchanged fixture does no writes.
func Tree(ctx context.Context, bucket *blob.Bucket, root string, opts Options) (Result, error) {
	var res Result

	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		key := path.Join(opts.Prefix, filepath.ToSlash(rel))

		if !opts.Force {
			exists, err := bucket.Exists(ctx, key)
			if err != nil {
				return fmt.Errorf("check %s: %w", key, err)
			}
			if exists {
				res.Skipped++
				return nil
			}
		}

		n, err := uploadFile(ctx, bucket, key, p)
		if err != nil {
			return err
		}
		res.Uploaded++
		res.Bytes += n
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("publish: %w", err)
	}

	return res, nil
}

// uploadFile streams one local file into the bucket.
func uploadFile(ctx context.Context, bucket *blob.Bucket, key, path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	w, err := bucket.NewWriter(ctx, key, nil)
	if err != nil {
		return 0, fmt.Errorf("create writer for %s: %w", key, err)
	}

	n, err := io.Copy(w, f)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, fmt.Errorf("upload %s: %w", key, err)
	}

	return n, nil
}

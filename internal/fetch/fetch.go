package fetch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	dshttp "github.com/geez0219/dsfetch/internal/http"
)

// ProgressFunc receives download progress. total is -1 when the server does
// not advertise a content length.
type ProgressFunc func(downloaded, total int64)

// Options configures a fetch.
type Options struct {
	// HTTP configures the underlying HTTP client.
	HTTP dshttp.Options

	// Progress is an optional progress callback, invoked as bytes arrive.
	Progress ProgressFunc
}

// FetchIfAbsent downloads url to dest unless dest already exists. It
// returns true when a download actually happened and false when dest was
// already present (in which case no network request is made).
//
// The body is streamed to dest+".partial" and renamed into place once
// complete, so an interrupted download never satisfies a later existence
// check.
func FetchIfAbsent(ctx context.Context, url, dest string, opts Options) (bool, error) {
	if _, err := os.Stat(dest); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("fetch: stat %s: %w", dest, err)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return false, fmt.Errorf("fetch: create directory: %w", err)
	}

	client := dshttp.NewClient(opts.HTTP)
	resp, err := client.Get(ctx, url)
	if err != nil {
		return false, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	partial := dest + ".partial"
	if err := writeBody(partial, resp, opts.Progress); err != nil {
		os.Remove(partial)
		return false, fmt.Errorf("fetch %s: %w", url, err)
	}

	if err := os.Rename(partial, dest); err != nil {
		os.Remove(partial)
		return false, fmt.Errorf("fetch: rename %s: %w", partial, err)
	}

	return true, nil
}

// writeBody streams the response body to path, reporting progress.
func writeBody(path string, resp *dshttp.Response, progress ProgressFunc) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := io.Writer(f)
	if progress != nil {
		w = io.MultiWriter(f, &progressWriter{total: resp.ContentLength, fn: progress})
	}

	n, err := io.Copy(w, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	if resp.ContentLength >= 0 && n != resp.ContentLength {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", resp.ContentLength, n)
	}

	return nil
}

// progressWriter invokes the progress callback as bytes pass through.
type progressWriter struct {
	total   int64
	fn      ProgressFunc
	written int64
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.written += int64(len(p))
	w.fn(w.written, w.total)
	return len(p), nil
}

package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsafePath is returned when an archive entry would escape the
// destination directory.
var ErrUnsafePath = errors.New("archive: entry path escapes destination")

// Options configures extraction.
type Options struct {
	// Prefix keeps only entries whose names start with Prefix. Empty keeps
	// everything. Some upstream archives carry junk outside the dataset
	// directory (macOS resource forks and the like).
	Prefix string
}

// ExtractIfAbsent unpacks a zip archive into dest unless marker already
// exists. marker is the directory whose presence means a previous
// extraction completed (typically the archive's top-level directory under
// dest). It returns true when an extraction actually happened.
func ExtractIfAbsent(archive, dest, marker string, opts Options) (bool, error) {
	if _, err := os.Stat(marker); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("archive: stat %s: %w", marker, err)
	}

	if err := Extract(archive, dest, opts); err != nil {
		return false, err
	}
	return true, nil
}

// Extract unpacks a zip archive into dest, applying the options' prefix
// filter. Entry paths are validated so a crafted archive cannot write
// outside dest.
func Extract(archive, dest string, opts Options) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("archive: open %s: %w", archive, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if opts.Prefix != "" && !strings.HasPrefix(f.Name, opts.Prefix) {
			continue
		}
		if err := extractEntry(f, dest); err != nil {
			return err
		}
	}

	return nil
}

// extractEntry writes a single zip entry under dest.
func extractEntry(f *zip.File, dest string) error {
	path, err := safeJoin(dest, f.Name)
	if err != nil {
		return err
	}

	if f.FileInfo().IsDir() {
		if err := os.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("archive: create %s: %w", path, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("archive: create %s: %w", filepath.Dir(path), err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("archive: open entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	w, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode().Perm()|0200)
	if err != nil {
		return fmt.Errorf("archive: create %s: %w", path, err)
	}

	_, err = io.Copy(w, rc)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("archive: write %s: %w", path, err)
	}

	return nil
}

// safeJoin joins an entry name onto dest, rejecting paths that escape it.
func safeJoin(dest, name string) (string, error) {
	path := filepath.Join(dest, filepath.FromSlash(name))
	if path != dest && !strings.HasPrefix(path, dest+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	return path, nil
}

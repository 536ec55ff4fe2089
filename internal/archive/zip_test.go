package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeZip builds a zip archive at path from name->content pairs. Names
// ending in "/" become directory entries.
func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		if name[len(name)-1] == '/' {
			if _, err := zw.Create(name); err != nil {
				t.Fatalf("create dir entry %s: %v", name, err)
			}
			continue
		}
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write zip file: %v", err)
	}
}

func TestExtract(t *testing.T) {
	tmp := t.TempDir()
	archive := filepath.Join(tmp, "data.zip")
	writeZip(t, archive, map[string]string{
		"DataSet/":             "",
		"DataSet/a.png":        "aaa",
		"DataSet/nested/b.png": "bbb",
		"DataSet/nested/c.png": "ccc",
	})

	dest := filepath.Join(tmp, "out")
	if err := Extract(archive, dest, Options{}); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	for name, want := range map[string]string{
		"DataSet/a.png":        "aaa",
		"DataSet/nested/b.png": "bbb",
		"DataSet/nested/c.png": "ccc",
	} {
		got, err := os.ReadFile(filepath.Join(dest, filepath.FromSlash(name)))
		if err != nil {
			t.Errorf("read %s: %v", name, err)
			continue
		}
		if string(got) != want {
			t.Errorf("%s: expected %q, got %q", name, want, got)
		}
	}
}

func TestExtractPrefixFilter(t *testing.T) {
	tmp := t.TempDir()
	archive := filepath.Join(tmp, "data.zip")
	writeZip(t, archive, map[string]string{
		"DataSet/a.png":    "aaa",
		"__MACOSX/._a.png": "junk",
		"garbage.txt":      "junk",
	})

	dest := filepath.Join(tmp, "out")
	if err := Extract(archive, dest, Options{Prefix: "DataSet/"}); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dest, "DataSet", "a.png")); err != nil {
		t.Errorf("expected DataSet/a.png extracted: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "__MACOSX")); !os.IsNotExist(err) {
		t.Error("expected __MACOSX filtered out")
	}
	if _, err := os.Stat(filepath.Join(dest, "garbage.txt")); !os.IsNotExist(err) {
		t.Error("expected garbage.txt filtered out")
	}
}

func TestExtractIfAbsent(t *testing.T) {
	tmp := t.TempDir()
	archive := filepath.Join(tmp, "data.zip")
	writeZip(t, archive, map[string]string{"DataSet/a.png": "aaa"})

	dest := filepath.Join(tmp, "out")
	marker := filepath.Join(dest, "DataSet")

	extracted, err := ExtractIfAbsent(archive, dest, marker, Options{})
	if err != nil {
		t.Fatalf("ExtractIfAbsent: %v", err)
	}
	if !extracted {
		t.Error("expected first call to extract")
	}

	// Mutate the tree, then verify the second call leaves it alone.
	mutated := filepath.Join(marker, "a.png")
	if err := os.WriteFile(mutated, []byte("changed"), 0644); err != nil {
		t.Fatalf("mutate: %v", err)
	}

	extracted, err = ExtractIfAbsent(archive, dest, marker, Options{})
	if err != nil {
		t.Fatalf("second ExtractIfAbsent: %v", err)
	}
	if extracted {
		t.Error("expected no-op when marker exists")
	}

	got, _ := os.ReadFile(mutated)
	if string(got) != "changed" {
		t.Errorf("no-op extraction touched the tree: %q", got)
	}
}

func TestExtractRejectsUnsafePaths(t *testing.T) {
	tmp := t.TempDir()
	archive := filepath.Join(tmp, "evil.zip")
	writeZip(t, archive, map[string]string{"../escape.txt": "evil"})

	dest := filepath.Join(tmp, "out")
	err := Extract(archive, dest, Options{})
	if !errors.Is(err, ErrUnsafePath) {
		t.Fatalf("expected ErrUnsafePath, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(tmp, "escape.txt")); !os.IsNotExist(statErr) {
		t.Error("entry escaped the destination directory")
	}
}

func TestExtractCorruptArchive(t *testing.T) {
	tmp := t.TempDir()
	archive := filepath.Join(tmp, "corrupt.zip")
	if err := os.WriteFile(archive, []byte("this is not a zip"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := Extract(archive, filepath.Join(tmp, "out"), Options{}); err == nil {
		t.Fatal("expected error for corrupt archive")
	}
}

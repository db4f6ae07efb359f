package download

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveWritesFile(t *testing.T) {
	dir := t.TempDir()

	path, err := Save(dir, "paper.pdf", []byte("content"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if path != filepath.Join(dir, "paper.pdf") {
		t.Fatalf("path = %q, want paper.pdf in dir", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "content" {
		t.Fatalf("data = %q, want %q", data, "content")
	}
}

func TestSaveAvoidsCollisions(t *testing.T) {
	dir := t.TempDir()

	var paths []string
	for range 3 {
		path, err := Save(dir, "paper.pdf", []byte("x"))
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		paths = append(paths, filepath.Base(path))
	}

	want := []string{"paper.pdf", "paper (1).pdf", "paper (2).pdf"}
	for i, name := range want {
		if paths[i] != name {
			t.Fatalf("download %d saved as %q, want %q", i, paths[i], name)
		}
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports", "nested")

	if _, err := Save(dir, "paper.docx", []byte("x")); err != nil {
		t.Fatalf("save into missing directory: %v", err)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	if _, err := Save(dir, "paper.pdf", []byte("x")); err != nil {
		t.Fatalf("save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "paper.pdf" {
		t.Fatalf("dir contents = %v, want only paper.pdf", entries)
	}
}

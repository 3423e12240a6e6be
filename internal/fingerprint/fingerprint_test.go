package fingerprint

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileMatchesForIdenticalContent(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	for _, path := range []string{a, b} {
		if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	fpA, err := File(a)
	if err != nil {
		t.Fatalf("File(a): %v", err)
	}
	fpB, err := File(b)
	if err != nil {
		t.Fatalf("File(b): %v", err)
	}
	if fpA != fpB {
		t.Fatalf("fingerprints differ for identical content: %s vs %s", fpA.Hex(), fpB.Hex())
	}
	if fpA.Size != 5 {
		t.Fatalf("size = %d, want 5", fpA.Size)
	}
}

func TestFileDiffersForDifferentContent(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(a, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("world"), 0o644); err != nil {
		t.Fatal(err)
	}

	fpA, err := File(a)
	if err != nil {
		t.Fatal(err)
	}
	fpB, err := File(b)
	if err != nil {
		t.Fatal(err)
	}
	if fpA == fpB {
		t.Fatal("fingerprints equal for different content")
	}
}

func TestFileMissing(t *testing.T) {
	if _, err := File(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestHexLength(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	fp, err := File(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(fp.Hex()) != 64 {
		t.Fatalf("hex length = %d, want 64", len(fp.Hex()))
	}
}

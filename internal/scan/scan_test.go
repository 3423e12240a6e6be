package scan

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestListSeparatesFilesFromSubdirs(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "b.txt"), []byte("b"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("aa"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}

	listing, err := List(dir, Options{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listing.Files) != 2 {
		t.Fatalf("files = %d, want 2", len(listing.Files))
	}
	if listing.Files[0].Name != "a.txt" || listing.Files[1].Name != "b.txt" {
		t.Fatalf("unexpected order: %q, %q", listing.Files[0].Name, listing.Files[1].Name)
	}
	if listing.Files[0].Size != 2 {
		t.Fatalf("size = %d, want 2", listing.Files[0].Size)
	}
	if listing.Files[0].Extension != ".txt" {
		t.Fatalf("extension = %q, want .txt", listing.Files[0].Extension)
	}
	if len(listing.Subdirs) != 1 || filepath.Base(listing.Subdirs[0]) != "nested" {
		t.Fatalf("subdirs = %v", listing.Subdirs)
	}
}

func TestListSkipsHiddenFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".hidden"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "shown"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	listing, err := List(dir, Options{SkipHidden: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(listing.Files) != 1 || listing.Files[0].Name != "shown" {
		t.Fatalf("files = %+v, want only shown", listing.Files)
	}

	listing, err = List(dir, Options{SkipHidden: false})
	if err != nil {
		t.Fatal(err)
	}
	if len(listing.Files) != 2 {
		t.Fatalf("files = %d, want 2 without skip", len(listing.Files))
	}
}

func TestListMissingSource(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "absent"), Options{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListSourceIsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := List(path, Options{})
	if !errors.Is(err, ErrNotDirectory) {
		t.Fatalf("err = %v, want ErrNotDirectory", err)
	}
}

func TestListIgnoresSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(target, filepath.Join(dir, "link.txt")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	listing, err := List(dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(listing.Files) != 1 || listing.Files[0].Name != "target.txt" {
		t.Fatalf("files = %+v, want only target.txt", listing.Files)
	}
}

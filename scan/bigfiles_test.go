package scan

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dkovari/spacescan/ignore"
)

func Test_LargestFiles_OrderedBySize(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "small.bin"), 10)
	writeFile(t, filepath.Join(root, "big.bin"), 1000)
	writeFile(t, filepath.Join(root, "sub", "medium.bin"), 100)

	files, err := LargestFiles(context.Background(), root, 20, 0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %d", len(files))
	}
	order := []string{"big.bin", "medium.bin", "small.bin"}
	for i, name := range order {
		if filepath.Base(files[i].Path) != name {
			t.Errorf("file %d = %s, want %s", i, files[i].Path, name)
		}
	}
}

func Test_LargestFiles_MinSizeFilters(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "small.bin"), 10)
	writeFile(t, filepath.Join(root, "big.bin"), 2048)

	files, err := LargestFiles(context.Background(), root, 20, 1024, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0].Path) != "big.bin" {
		t.Errorf("expected only big.bin, got %+v", files)
	}
}

func Test_LargestFiles_TopNTruncates(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.bin"), 100)
	writeFile(t, filepath.Join(root, "b.bin"), 200)
	writeFile(t, filepath.Join(root, "c.bin"), 300)

	files, err := LargestFiles(context.Background(), root, 2, 0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].SizeBytes != 300 || files[1].SizeBytes != 200 {
		t.Errorf("expected sizes 300,200, got %d,%d", files[0].SizeBytes, files[1].SizeBytes)
	}
}

func Test_LargestFiles_TopNZeroYieldsEmpty(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.bin"), 100)

	files, err := LargestFiles(context.Background(), root, 0, 0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected empty result, got %d files", len(files))
	}
}

func Test_LargestFiles_MatcherExcludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep.bin"), 100)
	writeFile(t, filepath.Join(root, "skip.iso"), 5000)
	writeFile(t, filepath.Join(root, "excluded", "inner.bin"), 5000)

	matcher := ignore.NewMatcher(ignore.Options{
		Root:     root,
		Patterns: []string{"*.iso", "excluded"},
	})

	files, err := LargestFiles(context.Background(), root, 20, 0, matcher)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0].Path) != "keep.bin" {
		t.Errorf("expected only keep.bin, got %+v", files)
	}
}

func Test_LargestFiles_MissingRootIsScanError(t *testing.T) {
	_, err := LargestFiles(context.Background(), "/definitely/not/a/real/path", 20, 0, nil)
	var scanErr *ScanError
	if !errors.As(err, &scanErr) {
		t.Fatalf("expected *ScanError, got %v", err)
	}
}

func Test_LargestFiles_FileRootIsScanError(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "plain.txt")
	writeFile(t, file, 10)

	_, err := LargestFiles(context.Background(), file, 20, 0, nil)
	var scanErr *ScanError
	if !errors.As(err, &scanErr) {
		t.Fatalf("expected *ScanError for non-directory root, got %v", err)
	}
}

func Test_LargestFiles_EmptyRoot(t *testing.T) {
	files, err := LargestFiles(context.Background(), t.TempDir(), 20, 0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected no files, got %d", len(files))
	}
}

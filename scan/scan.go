package scan

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
)

// ScanError reports a scan root that does not exist or cannot be traversed
// at all. Partial inaccessibility inside the tree never produces one.
type ScanError struct {
	Path string
	Err  error
}

func (e *ScanError) Error() string { return fmt.Sprintf("scanning %s: %v", e.Path, e.Err) }

func (e *ScanError) Unwrap() error { return e.Err }

// probeDir verifies the root can be opened and read as a directory without
// listing it in full; the walk reads the entries anyway.
func probeDir(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Readdirnames(1); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// DirSize returns the best-effort total size of all regular files under path.
// Unreadable files and subdirectories encountered mid-walk are skipped and
// their siblings still counted. Only an unreadable root yields a *ScanError.
func DirSize(ctx context.Context, path string) (int64, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return 0, &ScanError{Path: path, Err: err}
	}
	if !info.IsDir() {
		return 0, &ScanError{Path: path, Err: fmt.Errorf("not a directory")}
	}
	if err := probeDir(path); err != nil {
		return 0, &ScanError{Path: path, Err: err}
	}

	var total atomic.Int64

	conf := &fastwalk.Config{Follow: false}
	walkErr := fastwalk.Walk(conf, path, func(p string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return fs.SkipAll
		}
		if err != nil {
			return nil // skip unreadable entries, keep walking
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return nil
		}
		total.Add(fi.Size())
		return nil
	})

	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if walkErr != nil {
		return 0, &ScanError{Path: path, Err: walkErr}
	}
	return total.Load(), nil
}

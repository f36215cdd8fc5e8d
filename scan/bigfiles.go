package scan

import (
	"context"
	"io/fs"
	"sort"
	"sync"

	"github.com/charlievieth/fastwalk"

	"github.com/dkovari/spacescan/ignore"
)

// FileEntry is one ranked file produced by LargestFiles.
type FileEntry struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
}

// LargestFiles walks root and returns the topN largest regular files with
// size >= minSize, ordered by size descending and path ascending on ties.
// Entries the matcher excludes are skipped; a nil matcher excludes nothing.
// Per-entry errors are absorbed the same way DirSize absorbs them.
func LargestFiles(ctx context.Context, root string, topN int, minSize int64, matcher *ignore.Matcher) ([]FileEntry, error) {
	if err := probeDir(root); err != nil {
		return nil, &ScanError{Path: root, Err: err}
	}
	if topN <= 0 {
		return nil, nil
	}

	var (
		mu    sync.Mutex
		files []FileEntry
	)

	conf := &fastwalk.Config{Follow: false}
	fastwalk.Walk(conf, root, func(p string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return fs.SkipAll
		}
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != root && matcher.SkipDir(p) {
				return fastwalk.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if matcher.Skip(p) {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return nil
		}
		if fi.Size() < minSize {
			return nil
		}
		mu.Lock()
		files = append(files, FileEntry{Path: p, SizeBytes: fi.Size()})
		mu.Unlock()
		return nil
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].SizeBytes != files[j].SizeBytes {
			return files[i].SizeBytes > files[j].SizeBytes
		}
		return files[i].Path < files[j].Path
	})
	if len(files) > topN {
		files = files[:topN]
	}
	return files, nil
}

// Package rank implements the index-backed ranking engine: it decides per
// child directory whether the cached size measurement is still trustworthy
// or a rescan is due, merges both, and produces a deterministic top-N.
package rank

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dkovari/spacescan/index"
	"github.com/dkovari/spacescan/scan"
)

// DefaultWorkers bounds the number of concurrent child scans. Parallelism
// here is purely a throughput measure; the final sort normalizes ordering.
const DefaultWorkers = 4

// Options threads query configuration into ranking calls.
type Options struct {
	// TopN limits the result length. Zero or negative yields an empty result.
	TopN int
	// UseIndex enables cached measurements. When false every child is scanned.
	UseIndex bool
	// ForceReindex rescans every child regardless of freshness and prunes
	// dead paths from the store first.
	ForceReindex bool
	// TTLHours is the maximum trusted age of a cached measurement.
	// Zero or negative means always stale.
	TTLHours int
	// Workers caps concurrent scans; <= 0 means DefaultWorkers.
	Workers int
	// Logger receives non-fatal warnings (index save failures). Nil discards.
	Logger *slog.Logger
}

// Entry is one ranked path (or application identity) with its total size.
type Entry struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
}

// Result is the outcome of one ranking query.
type Result struct {
	// Entries is sorted by size descending, path ascending on ties.
	Entries []Entry
	// Skipped lists children whose scan failed entirely. Their omission is
	// non-fatal: the query still returns the remaining results.
	Skipped []string
	// Rescanned counts children that required a fresh scan.
	Rescanned int
}

// hiddenAllowList contains hidden directory names that legitimately consume
// significant space and therefore participate in ranking.
var hiddenAllowList = map[string]bool{
	".Trash":     true,
	".localized": true,
}

// Directories ranks the immediate child directories of root by total size.
// Cached measurements are reused per child when fresh; stale or missing
// entries are rescanned and written back, and the store is persisted before
// returning so partial progress survives the next invocation.
func Directories(ctx context.Context, root string, store *index.Store, opts Options) (Result, error) {
	children, err := listChildren(root)
	if err != nil {
		return Result{}, err
	}

	if opts.ForceReindex {
		store.Prune(pathExists)
	}

	sized, result, err := sizeAll(ctx, children, store, opts)
	if err != nil {
		// Children already measured are valid; flush them so the work done
		// before the interruption is not repeated next time.
		saveStore(store, opts.Logger)
		return Result{}, err
	}

	sortEntries(sized)
	result.Entries = truncate(sized, opts.TopN)
	sort.Strings(result.Skipped)

	saveStore(store, opts.Logger)
	return result, nil
}

// sizeAll resolves a size for every path, from the cache where allowed and
// via the scanner otherwise. Scans run on a bounded errgroup; a child whose
// scan fails entirely is dropped from the store and recorded as skipped.
func sizeAll(ctx context.Context, paths []string, store *index.Store, opts Options) ([]Entry, Result, error) {
	var (
		mu     sync.Mutex
		sized  []Entry
		result Result
	)

	group, groupCtx := errgroup.WithContext(ctx)
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	group.SetLimit(workers)

	for _, path := range paths {
		if entry, ok := cachedEntry(store, path, opts); ok {
			mu.Lock()
			sized = append(sized, Entry{Path: path, SizeBytes: entry.SizeBytes})
			mu.Unlock()
			continue
		}

		group.Go(func() error {
			size, err := scan.DirSize(groupCtx, path)
			if err != nil {
				if groupCtx.Err() != nil {
					return groupCtx.Err()
				}
				// Total failure: drop rather than corrupt a previous
				// valid measurement with a truncated one.
				store.Drop(path)
				mu.Lock()
				result.Skipped = append(result.Skipped, path)
				mu.Unlock()
				return nil
			}

			store.Put(path, size)
			mu.Lock()
			sized = append(sized, Entry{Path: path, SizeBytes: size})
			result.Rescanned++
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, Result{}, err
	}
	return sized, result, nil
}

// cachedEntry returns the cached measurement for path when the query is
// allowed to trust it.
func cachedEntry(store *index.Store, path string, opts Options) (index.Entry, bool) {
	if !opts.UseIndex || opts.ForceReindex {
		return index.Entry{}, false
	}
	entry, ok := store.Get(path)
	if !ok || !index.IsFresh(entry, opts.TTLHours) {
		return index.Entry{}, false
	}
	return entry, true
}

// listChildren enumerates the immediate child directories of root,
// excluding hidden entries except the allow-list.
func listChildren(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}

	var children []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") && !hiddenAllowList[name] {
			continue
		}
		children = append(children, filepath.Join(root, name))
	}
	return children, nil
}

// sortEntries orders by size descending, path ascending on ties, so the
// ranking is deterministic for a given filesystem state.
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].SizeBytes != entries[j].SizeBytes {
			return entries[i].SizeBytes > entries[j].SizeBytes
		}
		return entries[i].Path < entries[j].Path
	})
}

func truncate(entries []Entry, topN int) []Entry {
	if topN <= 0 {
		return []Entry{}
	}
	if len(entries) > topN {
		return entries[:topN]
	}
	return entries
}

// saveStore flushes the index. A failed flush costs the next invocation a
// rescan but must not void a correct answer, so it only warns.
func saveStore(store *index.Store, logger *slog.Logger) {
	if err := store.Save(); err != nil {
		discardable(logger).Warn("saving index", "file", store.File(), "error", err)
	}
}

func pathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func discardable(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

package rank

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dkovari/spacescan/index"
)

// DefaultAppRoots returns the application-related roots that participate in
// application analysis: the system and per-user installed-application
// directories plus the per-user support, cache and container trees.
// Roots that do not exist on this machine are skipped during aggregation.
func DefaultAppRoots() []string {
	roots := []string{"/Applications"}
	home, err := os.UserHomeDir()
	if err != nil {
		return roots
	}
	return append(roots,
		filepath.Join(home, "Applications"),
		filepath.Join(home, "Library", "Application Support"),
		filepath.Join(home, "Library", "Caches"),
		filepath.Join(home, "Library", "Containers"),
	)
}

// Identity derives the canonical application name for an entry under an
// application root: the entry's base name with a trailing ".app" stripped.
// The bundle and its support/cache/container directories share that display
// name on disk, which is what makes cross-root aggregation work.
func Identity(name string) string {
	return strings.TrimSuffix(name, ".app")
}

// Applications ranks applications by their aggregate footprint across the
// given roots. It shares the caching mechanics of Directories but folds all
// paths with the same identity into one total before sorting/truncating.
// Callers pass a store distinct from the directory-ranking one so the two
// domains cannot collide on the same path under different semantics.
func Applications(ctx context.Context, roots []string, store *index.Store, opts Options) (Result, error) {
	identityByPath := make(map[string]string)
	var paths []string

	for _, root := range roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			continue // absent or unreadable root, not fatal
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			name := entry.Name()
			if strings.HasPrefix(name, ".") {
				continue
			}
			path := filepath.Join(root, name)
			identityByPath[path] = Identity(name)
			paths = append(paths, path)
		}
	}

	if opts.ForceReindex {
		store.Prune(pathExists)
	}

	sized, result, err := sizeAll(ctx, paths, store, opts)
	if err != nil {
		// Paths already measured are valid; flush them so the work done
		// before the interruption is not repeated next time.
		saveStore(store, opts.Logger)
		return Result{}, err
	}

	totals := make(map[string]int64)
	for _, entry := range sized {
		totals[identityByPath[entry.Path]] += entry.SizeBytes
	}

	aggregated := make([]Entry, 0, len(totals))
	for identity, size := range totals {
		aggregated = append(aggregated, Entry{Path: identity, SizeBytes: size})
	}

	sortEntries(aggregated)
	result.Entries = truncate(aggregated, opts.TopN)
	sort.Strings(result.Skipped)

	saveStore(store, opts.Logger)
	return result, nil
}

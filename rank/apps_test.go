package rank

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dkovari/spacescan/index"
)

func Test_Identity(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Bundle", "Visual Studio Code.app", "Visual Studio Code"},
		{"PlainFolder", "Google Chrome", "Google Chrome"},
		{"NoDoubleStrip", "app.app", "app"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Identity(tt.input); got != tt.expected {
				t.Errorf("Identity(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func Test_Applications_AggregatesAcrossRoots(t *testing.T) {
	applications := t.TempDir()
	caches := t.TempDir()
	writeTree(t, applications, map[string]int{"Foo.app": 1000, "Bar.app": 300})
	writeTree(t, caches, map[string]int{"Foo": 500})

	result, err := Applications(context.Background(), []string{applications, caches}, newTestStore(t), defaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Entries) != 2 {
		t.Fatalf("expected 2 identities, got %d", len(result.Entries))
	}
	if result.Entries[0].Path != "Foo" || result.Entries[0].SizeBytes != 1500 {
		t.Errorf("expected Foo with 1500 bytes first, got %+v", result.Entries[0])
	}
	if result.Entries[1].Path != "Bar" || result.Entries[1].SizeBytes != 300 {
		t.Errorf("expected Bar with 300 bytes second, got %+v", result.Entries[1])
	}
	if result.Rescanned != 3 {
		t.Errorf("expected 3 rescans on cold cache, got %d", result.Rescanned)
	}
}

func Test_Applications_SecondCallHitsCache(t *testing.T) {
	applications := t.TempDir()
	writeTree(t, applications, map[string]int{"Foo.app": 1000})
	store := newTestStore(t)
	roots := []string{applications}

	if _, err := Applications(context.Background(), roots, store, defaultOptions()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := Applications(context.Background(), roots, store, defaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Rescanned != 0 {
		t.Errorf("expected 0 rescans on warm cache, got %d", result.Rescanned)
	}
	if result.Entries[0].SizeBytes != 1000 {
		t.Errorf("expected cached size 1000, got %d", result.Entries[0].SizeBytes)
	}
}

func Test_Applications_MissingRootsAreSkipped(t *testing.T) {
	applications := t.TempDir()
	writeTree(t, applications, map[string]int{"Foo.app": 100})
	roots := []string{applications, "/definitely/not/a/real/root"}

	result, err := Applications(context.Background(), roots, newTestStore(t), defaultOptions())
	if err != nil {
		t.Fatalf("expected missing root to be non-fatal, got %v", err)
	}
	if len(result.Entries) != 1 {
		t.Errorf("expected 1 identity, got %d", len(result.Entries))
	}
}

func Test_Applications_TopNZeroYieldsEmpty(t *testing.T) {
	applications := t.TempDir()
	writeTree(t, applications, map[string]int{"Foo.app": 100})

	opts := defaultOptions()
	opts.TopN = 0
	result, err := Applications(context.Background(), []string{applications}, newTestStore(t), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Entries) != 0 {
		t.Errorf("expected empty result for topN=0, got %d entries", len(result.Entries))
	}
}

func Test_Applications_CancellationPersistsCompletedScans(t *testing.T) {
	applications := t.TempDir()
	writeTree(t, applications, map[string]int{"Aaa.app": 100})
	writeWideTree(t, filepath.Join(applications, "Bbb.app"), 40, 80)

	file := filepath.Join(t.TempDir(), "apps.json")
	store := index.Open(file)
	first := filepath.Join(applications, "Aaa.app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cancelWhenCached(store, first, cancel)

	opts := defaultOptions()
	opts.Workers = 1
	if _, err := Applications(ctx, []string{applications}, store, opts); err == nil {
		t.Fatal("expected cancellation error")
	}

	reloaded := index.Open(file)
	entry, ok := reloaded.Get(first)
	if !ok {
		t.Fatal("expected the completed measurement to survive cancellation")
	}
	if entry.SizeBytes != 100 {
		t.Errorf("expected persisted size 100, got %d", entry.SizeBytes)
	}
}

func Test_Applications_HiddenEntriesExcluded(t *testing.T) {
	applications := t.TempDir()
	writeTree(t, applications, map[string]int{"Foo.app": 100, ".DS_Store_dir": 50})

	result, err := Applications(context.Background(), []string{applications}, newTestStore(t), defaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, entry := range result.Entries {
		if entry.Path == ".DS_Store_dir" {
			t.Error("expected hidden entries to be excluded from app analysis")
		}
	}
}

package ignore

import (
	"os"
	"path/filepath"
	"testing"
)

func Test_Matcher_NilSkipsNothing(t *testing.T) {
	var m *Matcher
	if m.Skip("/tmp/anything") {
		t.Error("nil matcher should not skip files")
	}
	if m.SkipDir("/tmp/anything") {
		t.Error("nil matcher should not skip directories")
	}
}

func Test_Matcher_DefaultSystemDirs(t *testing.T) {
	m := NewMatcher(Options{Root: "/"})

	skipDirs := []string{"/proc", "/sys", "/dev", "/run", "/Volumes/x/.Spotlight-V100", "/mnt/data/lost+found"}
	for _, dir := range skipDirs {
		if !m.SkipDir(dir) {
			t.Errorf("expected %s to be skipped", dir)
		}
	}

	if m.SkipDir("/home/user/projects") {
		t.Error("expected /home/user/projects not to be skipped")
	}
	// Only exact pseudo-fs roots are skipped, not directories sharing the name
	if m.SkipDir("/home/user/dev") {
		t.Error("expected /home/user/dev not to be skipped")
	}
}

func Test_Matcher_CustomPatterns(t *testing.T) {
	m := NewMatcher(Options{
		Root:     "/data",
		Patterns: []string{"*.iso", "backups/**"},
	})

	if !m.Skip("/data/image.iso") {
		t.Error("expected *.iso to match by base name")
	}
	if !m.Skip("/data/backups/old/dump.sql") {
		t.Error("expected backups/** to match by relative path")
	}
	if m.Skip("/data/notes.txt") {
		t.Error("expected notes.txt not to be skipped")
	}
}

func Test_Matcher_IgnoreFile(t *testing.T) {
	dir := t.TempDir()
	ignorePath := filepath.Join(dir, "ignore")
	if err := os.WriteFile(ignorePath, []byte("node_modules/\n*.tmp\n"), 0o644); err != nil {
		t.Fatalf("writing ignore file: %v", err)
	}

	root := t.TempDir()
	m := NewMatcher(Options{Root: root, IgnoreFile: ignorePath})

	if !m.SkipDir(filepath.Join(root, "web", "node_modules")) {
		t.Error("expected node_modules/ to be skipped via ignore file")
	}
	if !m.Skip(filepath.Join(root, "scratch", "a.tmp")) {
		t.Error("expected *.tmp to be skipped via ignore file")
	}
	if m.Skip(filepath.Join(root, "scratch", "a.txt")) {
		t.Error("expected a.txt not to be skipped")
	}
}

func Test_Matcher_MissingIgnoreFileIsNotFatal(t *testing.T) {
	m := NewMatcher(Options{Root: "/", IgnoreFile: "/no/such/ignore/file"})
	if m.Skip("/tmp/file") {
		t.Error("matcher with missing ignore file should not skip arbitrary files")
	}
}

func Test_ValidatePatterns(t *testing.T) {
	invalid := ValidatePatterns([]string{"*.iso", "[bad", "ok/**"})
	if len(invalid) != 1 || invalid[0] != "[bad" {
		t.Errorf("expected exactly [bad to be invalid, got %v", invalid)
	}
}

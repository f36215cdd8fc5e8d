package ignore

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"
)

// Matcher decides which entries the largest-files walk skips. It combines
// built-in system directory patterns, an optional user ignore file in
// gitignore syntax, and custom glob patterns from the CLI or tool call.
// A nil *Matcher skips nothing.
//
// The matcher is deliberately not applied to directory size totals:
// rankings must reflect real disk usage, so DirSize counts everything.
type Matcher struct {
	root       string
	ignoreFile gitignore.GitIgnore
	patterns   []string
}

// Options configures a Matcher.
type Options struct {
	// Root is the scan root; ignore-file rules match paths relative to it.
	Root string
	// IgnoreFile is an optional gitignore-syntax file, typically
	// ~/.config/spacescan/ignore. A missing file is not an error.
	IgnoreFile string
	// Patterns are doublestar globs matched against the path relative to
	// Root and against the entry's base name.
	Patterns []string
}

// NewMatcher creates a matcher for one scan.
func NewMatcher(options Options) *Matcher {
	return &Matcher{
		root:       options.Root,
		ignoreFile: loadIgnoreFile(options.IgnoreFile, options.Root),
		patterns:   options.Patterns,
	}
}

// Skip returns true if the given file should be excluded from file ranking.
func (m *Matcher) Skip(absolutePath string) bool {
	if m == nil {
		return false
	}
	return m.matches(absolutePath, false)
}

// SkipDir returns true if a directory subtree should not be descended into.
func (m *Matcher) SkipDir(absolutePath string) bool {
	if m == nil {
		return false
	}
	if defaultSkipPaths[absolutePath] {
		return true
	}
	if defaultSkipNames[filepath.Base(absolutePath)] {
		return true
	}
	return m.matches(absolutePath, true)
}

func (m *Matcher) matches(absolutePath string, isDir bool) bool {
	relativePath, err := filepath.Rel(m.root, absolutePath)
	if err != nil {
		relativePath = absolutePath
	}
	relativePath = filepath.ToSlash(relativePath)

	if m.ignoreFile != nil {
		if match := m.ignoreFile.Relative(relativePath, isDir); match != nil && match.Ignore() {
			return true
		}
	}

	baseName := filepath.Base(absolutePath)
	for _, pattern := range m.patterns {
		if matched, err := doublestar.Match(pattern, relativePath); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, baseName); err == nil && matched {
			return true
		}
	}
	return false
}

// ValidatePatterns reports which of the given glob patterns are malformed,
// so bad input is rejected once up front instead of failing silently on
// every walk entry.
func ValidatePatterns(patterns []string) (invalid []string) {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			invalid = append(invalid, pattern)
		}
	}
	return invalid
}

// DefaultIgnoreFile returns the path of the user-level ignore file.
func DefaultIgnoreFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "spacescan", "ignore")
}

// loadIgnoreFile reads an ignore file and creates a GitIgnore matcher from it.
// Uses an io.Reader so the file handle is closed promptly.
func loadIgnoreFile(filePath string, baseDir string) gitignore.GitIgnore {
	if filePath == "" {
		return nil
	}
	f, err := os.Open(filePath)
	if err != nil {
		return nil
	}
	defer f.Close()

	return gitignore.New(f, baseDir, nil)
}

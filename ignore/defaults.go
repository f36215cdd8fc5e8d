package ignore

// defaultSkipPaths are pseudo-filesystems and volatile system trees whose
// contents are meaningless for storage accounting.
var defaultSkipPaths = map[string]bool{
	"/proc": true,
	"/sys":  true,
	"/dev":  true,
	"/run":  true,
}

// defaultSkipNames are metadata directories that appear anywhere on a
// volume and never hold user-cleanable data.
var defaultSkipNames = map[string]bool{
	".Spotlight-V100":         true,
	".fseventsd":              true,
	".DocumentRevisions-V100": true,
	".TemporaryItems":         true,
	".vol":                    true,
	"lost+found":              true,
}

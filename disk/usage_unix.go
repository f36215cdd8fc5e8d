//go:build !windows

package disk

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Usage returns capacity information for the filesystem containing path.
// An unreadable or nonexistent path is an error; callers treat it as fatal
// for the query.
func Usage(path string) (UsageInfo, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return UsageInfo{}, fmt.Errorf("statfs %s: %w", path, err)
	}

	total := int64(stat.Blocks) * int64(stat.Bsize)
	free := int64(stat.Bavail) * int64(stat.Bsize)
	used := total - free

	var percent float64
	if total > 0 {
		percent = float64(used) / float64(total) * 100
	}

	return UsageInfo{
		Path:        path,
		TotalBytes:  total,
		UsedBytes:   used,
		FreeBytes:   free,
		UsedPercent: percent,
	}, nil
}

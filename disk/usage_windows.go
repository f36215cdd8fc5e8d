//go:build windows

package disk

import "errors"

// Usage is not implemented on Windows.
func Usage(path string) (UsageInfo, error) {
	return UsageInfo{}, errors.New("disk usage query is not supported on windows")
}

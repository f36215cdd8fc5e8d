package tools

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/dkovari/spacescan/disk"
	"github.com/dkovari/spacescan/rank"
	"github.com/dkovari/spacescan/scan"
)

// FormatUsage renders a disk usage summary with its health classification.
func FormatUsage(usage disk.UsageInfo, health disk.Health) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Disk health for %s\n\n", usage.Path))
	builder.WriteString(fmt.Sprintf("Total:  %s\n", formatSize(usage.TotalBytes)))
	builder.WriteString(fmt.Sprintf("Used:   %s (%.1f%%)\n", formatSize(usage.UsedBytes), usage.UsedPercent))
	builder.WriteString(fmt.Sprintf("Free:   %s\n", formatSize(usage.FreeBytes)))
	builder.WriteString(fmt.Sprintf("Status: %s\n", health.Status))
	builder.WriteString(fmt.Sprintf("Advice: %s\n", health.Message))

	return builder.String()
}

// FormatRanked renders ranked entries with humanized sizes, followed by any
// paths that had to be skipped because their scan failed entirely.
func FormatRanked(header string, entries []rank.Entry, skipped []string) string {
	var builder strings.Builder
	builder.WriteString(header)
	builder.WriteString("\n\n")

	if len(entries) == 0 {
		builder.WriteString("Nothing to report.\n")
	}
	for i, entry := range entries {
		builder.WriteString(fmt.Sprintf("%2d. %s  %s (%d bytes)\n",
			i+1, entry.Path, formatSize(entry.SizeBytes), entry.SizeBytes))
	}

	if len(skipped) > 0 {
		builder.WriteString("\nSkipped (unreadable):\n")
		for _, path := range skipped {
			builder.WriteString(fmt.Sprintf("  %s\n", path))
		}
	}
	return builder.String()
}

// FormatFiles renders a ranked file list.
func FormatFiles(header string, files []scan.FileEntry) string {
	var builder strings.Builder
	builder.WriteString(header)
	builder.WriteString("\n\n")

	if len(files) == 0 {
		builder.WriteString("No matching files.\n")
	}
	for i, file := range files {
		builder.WriteString(fmt.Sprintf("%2d. %s  %s (%d bytes)\n",
			i+1, file.Path, formatSize(file.SizeBytes), file.SizeBytes))
	}
	return builder.String()
}

// formatSize converts bytes to a human-readable string.
func formatSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.IBytes(uint64(bytes))
}

// Package report renders analysis results for terminal output and exports
// them as JSON for downstream tooling.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dkovari/spacescan/disk"
	"github.com/dkovari/spacescan/rank"
	"github.com/dkovari/spacescan/scan"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// PrintSystem outputs host identification for report context.
func PrintSystem(writer io.Writer) error {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	_, err = fmt.Fprintf(writer, "Host: %s (%s/%s)\n", hostname, runtime.GOOS, runtime.GOARCH)
	return err
}

// PrintHealth outputs the disk capacity summary and health classification.
func PrintHealth(writer io.Writer, usage disk.UsageInfo, health disk.Health) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintf(w, "\nDisk health for %s\t\t\n", usage.Path)
	fmt.Fprintf(w, "  Total:\t%s\n", humanize.IBytes(uint64(usage.TotalBytes)))
	fmt.Fprintf(w, "  Used:\t%s (%.1f%%)\n", humanize.IBytes(uint64(usage.UsedBytes)), usage.UsedPercent)
	fmt.Fprintf(w, "  Free:\t%s\n", humanize.IBytes(uint64(usage.FreeBytes)))
	fmt.Fprintf(w, "  Status:\t%s\n", health.Status)
	fmt.Fprintf(w, "  Advice:\t%s\n", health.Message)

	return w.Flush()
}

// PrintRanked outputs ranked entries with each entry's share of the disk
// total. A zero totalBytes suppresses the percentage column.
func PrintRanked(writer io.Writer, header string, entries []rank.Entry, totalBytes int64) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintf(w, "\n%s\t\t\n", header)
	if len(entries) == 0 {
		fmt.Fprintln(w, "  (nothing to report)")
	}
	for i, entry := range entries {
		if totalBytes > 0 {
			pct := 100.0 * float64(entry.SizeBytes) / float64(totalBytes)
			fmt.Fprintf(w, "  %d) %s\t%s (%.1f%%)\n",
				i+1, entry.Path, humanize.IBytes(uint64(entry.SizeBytes)), pct)
		} else {
			fmt.Fprintf(w, "  %d) %s\t%s\n",
				i+1, entry.Path, humanize.IBytes(uint64(entry.SizeBytes)))
		}
	}

	return w.Flush()
}

// PrintFiles outputs a ranked file list.
func PrintFiles(writer io.Writer, header string, files []scan.FileEntry) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintf(w, "\n%s\t\t\n", header)
	if len(files) == 0 {
		fmt.Fprintln(w, "  (no matching files)")
	}
	for i, file := range files {
		fmt.Fprintf(w, "  %d) %s\t%s\n",
			i+1, file.Path, humanize.IBytes(uint64(file.SizeBytes)))
	}

	return w.Flush()
}

// PrintSkipped lists paths whose scans failed entirely. A nil or empty list
// prints nothing.
func PrintSkipped(writer io.Writer, skipped []string) error {
	if len(skipped) == 0 {
		return nil
	}

	fmt.Fprintln(writer, "\nSkipped (unreadable):")
	for _, path := range skipped {
		fmt.Fprintf(writer, "  %s\n", path)
	}
	return nil
}

// SystemInfo identifies the machine a report was generated on.
type SystemInfo struct {
	Hostname string `json:"hostname"`
	OS       string `json:"os"`
	Arch     string `json:"arch"`
}

// RankedEntry is one directory or application in an exported report.
type RankedEntry struct {
	Path          string `json:"path"`
	SizeBytes     int64  `json:"size_bytes"`
	SizeFormatted string `json:"size_formatted"`
}

// Report is the JSON export document for a full analysis run.
type Report struct {
	Timestamp          time.Time      `json:"timestamp"`
	SystemInfo         SystemInfo     `json:"system_info"`
	DiskUsage          disk.UsageInfo `json:"disk_usage"`
	HealthStatus       disk.Status    `json:"health_status"`
	LargestDirectories []RankedEntry  `json:"largest_directories"`
	Skipped            []string       `json:"skipped,omitempty"`
}

// NewReport assembles an export document from analysis results.
func NewReport(usage disk.UsageInfo, health disk.Health, ranked *rank.Result) *Report {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	dirs := make([]RankedEntry, 0, len(ranked.Entries))
	for _, entry := range ranked.Entries {
		dirs = append(dirs, RankedEntry{
			Path:          entry.Path,
			SizeBytes:     entry.SizeBytes,
			SizeFormatted: humanize.IBytes(uint64(entry.SizeBytes)),
		})
	}

	return &Report{
		Timestamp: time.Now(),
		SystemInfo: SystemInfo{
			Hostname: hostname,
			OS:       runtime.GOOS,
			Arch:     runtime.GOARCH,
		},
		DiskUsage:          usage,
		HealthStatus:       health.Status,
		LargestDirectories: dirs,
		Skipped:            ranked.Skipped,
	}
}

// WriteJSON serializes the report to a file with indented JSON.
func WriteJSON(report *Report, file string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(file, data, 0o644); err != nil {
		return fmt.Errorf("writing report to %s: %w", file, err)
	}
	return nil
}

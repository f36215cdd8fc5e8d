package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/dkovari/spacescan/disk"
	"github.com/dkovari/spacescan/ignore"
	"github.com/dkovari/spacescan/index"
	"github.com/dkovari/spacescan/rank"
	"github.com/dkovari/spacescan/register"
	"github.com/dkovari/spacescan/report"
	"github.com/dkovari/spacescan/scan"
)

const version = "1.1.0"

// options holds all parsed CLI flags.
type options struct {
	Path     string
	TopN     int
	MinSize  string
	Excludes []string

	HealthOnly      bool
	DirectoriesOnly bool
	Apps            bool
	Files           bool

	NoIndex  bool
	Reindex  bool
	IndexTTL int

	Export string

	MCP      bool
	LogLevel string
	LogFile  string
	Version  bool
}

func help() {
	fmt.Println(heredoc.Doc(`
		spacescan analyzes disk usage: volume health, largest directories,
		application footprints and big files. Directory and application sizes
		are cached in a persistent index under ~/.cache/spacescan so repeated
		runs only rescan stale entries.

		Usage:

			spacescan [flags]
			spacescan register project [directory]   # register as MCP server in <directory>/.mcp.json
			spacescan register user                  # register as MCP server in ~/.claude.json

		With no mode flags, spacescan reports disk health plus the largest
		directories under --path. Use --mcp to serve the same analysis as MCP
		tools over stdio instead.

		Ignore patterns from ~/.config/spacescan/ignore (gitignore syntax) and
		--exclude globs apply to file ranking only; directory totals always
		reflect real usage.

		Flags:
	`))
	pflag.PrintDefaults()
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "register" {
		register.Run("spacescan", os.Args[2:])
		return
	}

	var opts options

	pflag.StringVarP(&opts.Path, "path", "p", "/", "Directory to analyze")
	pflag.IntVarP(&opts.TopN, "top-n", "n", 20, "Number of entries to report")
	pflag.StringVar(&opts.MinSize, "min-size", "0", "Minimum file size for --files (e.g. 500M; K/M/G/T are powers of 1024)")
	pflag.StringSliceVarP(&opts.Excludes, "exclude", "e", nil, "Glob patterns to exclude from file ranking (repeatable)")
	pflag.BoolVar(&opts.HealthOnly, "health-only", false, "Report disk health only")
	pflag.BoolVar(&opts.DirectoriesOnly, "directories-only", false, "Report largest directories only")
	pflag.BoolVar(&opts.Apps, "apps", false, "Report largest applications by aggregate footprint")
	pflag.BoolVar(&opts.Files, "files", false, "Report largest individual files")
	pflag.BoolVar(&opts.NoIndex, "no-index", false, "Ignore cached sizes and always rescan")
	pflag.BoolVar(&opts.Reindex, "reindex", false, "Force a full rescan and refresh the index")
	pflag.IntVar(&opts.IndexTTL, "index-ttl", 24, "Hours a cached size stays trusted")
	pflag.StringVar(&opts.Export, "export", "", "Write a JSON report to the given file")
	pflag.BoolVar(&opts.MCP, "mcp", false, "Run as an MCP server on stdio")
	pflag.StringVar(&opts.LogLevel, "log-level", "info", "Log level: debug|info|warn|error")
	pflag.StringVar(&opts.LogFile, "log-file", "", "Log file path (default: stderr; MCP mode logs under the cache directory)")
	pflag.BoolVarP(&opts.Version, "version", "v", false, "Show version and exit")

	pflag.CommandLine.SortFlags = false
	pflag.Usage = help
	pflag.Parse()

	if opts.Version {
		fmt.Println(version)
		return
	}

	if invalid := ignore.ValidatePatterns(opts.Excludes); len(invalid) > 0 {
		fmt.Fprintf(os.Stderr, "Error: invalid exclude patterns: %s\n", strings.Join(invalid, ", "))
		os.Exit(1)
	}

	if opts.MCP {
		if err := runServe(opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runCLI(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCLI(opts options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := setupLogger(opts.LogLevel, opts.LogFile)

	path, err := filepath.Abs(opts.Path)
	if err != nil {
		return fmt.Errorf("resolving path %s: %w", opts.Path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("invalid path %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("invalid path %s: not a directory", path)
	}

	wantHealth := !opts.DirectoriesOnly && !opts.Apps && !opts.Files
	wantDirs := !opts.HealthOnly && !opts.Apps && !opts.Files

	rankOpts := rank.Options{
		TopN:         opts.TopN,
		UseIndex:     !opts.NoIndex,
		ForceReindex: opts.Reindex,
		TTLHours:     opts.IndexTTL,
		Logger:       logger,
	}

	usage, usageErr := disk.Usage(path)
	if usageErr != nil && wantHealth {
		return fmt.Errorf("querying disk usage: %w", usageErr)
	}

	if wantHealth {
		if err := report.PrintSystem(os.Stdout); err != nil {
			return err
		}
		health := disk.Classify(usage.UsedPercent)
		if err := report.PrintHealth(os.Stdout, usage, health); err != nil {
			return err
		}
	}

	if isatty.IsTerminal(os.Stderr.Fd()) && (wantDirs || opts.Apps || opts.Files) {
		fmt.Fprintf(os.Stderr, "Scanning %s ...\n", path)
	}

	var dirsResult *rank.Result

	if wantDirs {
		store := openStore(logger, "dirs.json")
		result, err := rank.Directories(ctx, path, store, rankOpts)
		if err != nil {
			return fmt.Errorf("ranking directories: %w", err)
		}
		dirsResult = &result

		header := fmt.Sprintf("Largest directories under %s:", path)
		if err := report.PrintRanked(os.Stdout, header, result.Entries, usage.TotalBytes); err != nil {
			return err
		}
		if err := report.PrintSkipped(os.Stdout, result.Skipped); err != nil {
			return err
		}
	}

	if opts.Apps {
		store := openStore(logger, "apps.json")
		result, err := rank.Applications(ctx, rank.DefaultAppRoots(), store, rankOpts)
		if err != nil {
			return fmt.Errorf("ranking applications: %w", err)
		}

		if err := report.PrintRanked(os.Stdout, "Largest applications by disk footprint:", result.Entries, usage.TotalBytes); err != nil {
			return err
		}
		if err := report.PrintSkipped(os.Stdout, result.Skipped); err != nil {
			return err
		}
	}

	if opts.Files {
		matcher := ignore.NewMatcher(ignore.Options{
			Root:       path,
			IgnoreFile: ignore.DefaultIgnoreFile(),
			Patterns:   opts.Excludes,
		})
		minBytes := scan.ParseSize(opts.MinSize)
		files, err := scan.LargestFiles(ctx, path, opts.TopN, minBytes, matcher)
		if err != nil {
			return fmt.Errorf("ranking files: %w", err)
		}

		header := fmt.Sprintf("Largest files under %s:", path)
		if err := report.PrintFiles(os.Stdout, header, files); err != nil {
			return err
		}
	}

	if opts.Export != "" {
		if usageErr != nil {
			return fmt.Errorf("querying disk usage for export: %w", usageErr)
		}
		if dirsResult == nil {
			store := openStore(logger, "dirs.json")
			result, err := rank.Directories(ctx, path, store, rankOpts)
			if err != nil {
				return fmt.Errorf("ranking directories for export: %w", err)
			}
			dirsResult = &result
		}

		rep := report.NewReport(usage, disk.Classify(usage.UsedPercent), dirsResult)
		if err := report.WriteJSON(rep, opts.Export); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", opts.Export)
	}

	return nil
}

// openStore opens a named index under the cache directory, falling back to a
// throwaway location when the cache directory cannot be resolved.
func openStore(logger *slog.Logger, name string) *index.Store {
	dir, err := index.DefaultDir()
	if err != nil {
		logger.Warn("cache directory unavailable, index will not persist", "error", err)
		dir = filepath.Join(os.TempDir(), "spacescan")
	}
	return index.Open(filepath.Join(dir, name))
}

// setupLogger creates an slog.Logger writing to stderr or a file. It never
// writes to stdout, which carries report output (or the MCP stdio stream).
func setupLogger(level string, logFile string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var writer *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot open log file %s: %v, falling back to stderr\n", logFile, err)
			writer = os.Stderr
		} else {
			writer = f
		}
	} else {
		writer = os.Stderr
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler)
}

package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dkovari/spacescan/disk"
	"github.com/dkovari/spacescan/ignore"
	"github.com/dkovari/spacescan/rank"
	"github.com/dkovari/spacescan/server"
	"github.com/dkovari/spacescan/tools"
)

// runServe runs the MCP server on stdio until the client disconnects or the
// process is interrupted.
func runServe(opts options) error {
	// In MCP mode stdout belongs to the stdio transport, so logs default to
	// a file under the cache directory rather than cluttering stderr.
	logFile := opts.LogFile
	if logFile == "" {
		if dir, err := os.UserCacheDir(); err == nil {
			cacheDir := filepath.Join(dir, "spacescan")
			if err := os.MkdirAll(cacheDir, 0o755); err == nil {
				logFile = filepath.Join(cacheDir, "spacescan.log")
			}
		}
	}
	logger := setupLogger(opts.LogLevel, logFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	healthHandler := &tools.HealthHandler{
		GetUsage: disk.Usage,
		Logger:   logger,
	}
	dirsHandler := &tools.DirsHandler{
		Store:  openStore(logger, "dirs.json"),
		Logger: logger,
	}
	appsHandler := &tools.AppsHandler{
		Store:  openStore(logger, "apps.json"),
		Roots:  rank.DefaultAppRoots(),
		Logger: logger,
	}
	bigFilesHandler := &tools.BigFilesHandler{
		Matcher: ignore.NewMatcher(ignore.Options{
			Root:       "/",
			IgnoreFile: ignore.DefaultIgnoreFile(),
			Patterns:   opts.Excludes,
		}),
		Logger: logger,
	}

	mcpServer := server.Setup(healthHandler, dirsHandler, appsHandler, bigFilesHandler)

	logger.Info("MCP server starting on stdio", "version", version)
	if err := mcpServer.Run(ctx, &mcp.StdioTransport{}); err != nil {
		logger.Error("MCP server error", "error", err)
		return err
	}
	return nil
}

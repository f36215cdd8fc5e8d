package server

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dkovari/spacescan/tools"
)

// Setup creates and configures the MCP server with all tool registrations.
func Setup(
	healthHandler *tools.HealthHandler,
	dirsHandler *tools.DirsHandler,
	appsHandler *tools.AppsHandler,
	bigFilesHandler *tools.BigFilesHandler,
) *mcp.Server {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "spacescan",
			Version: "1.1.0",
		},
		&mcp.ServerOptions{
			Instructions: `This server analyzes disk-space usage. Directory and application rankings are backed by a persistent size index, so repeated queries are fast: only stale or unknown entries get rescanned.

Guidance:
- Use disk_health first to see whether the volume needs attention at all
- largest_directories and app_analysis accept use_index/reindex/index_ttl to control cache behavior; pass reindex=true only when sizes look outdated
- big_files finds individual large files; combine with min_size (e.g. "500M") to cut noise`,
		},
	)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "disk_health",
		Description: `Report disk capacity, usage and a health classification for the volume containing a path.

Status thresholds: warning at 80% used, critical at 90% used.`,
	}, healthHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "largest_directories",
		Description: `Rank the immediate child directories of a path by total size, largest first.

Sizes come from a persistent index when fresh (per index_ttl hours); stale or unknown directories are rescanned and written back. Unreadable subtrees are skipped and listed, never fatal.`,
	}, dirsHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "app_analysis",
		Description: `Rank installed applications by their aggregate disk footprint across the application, support, cache and container directories.

Uses the same caching behavior as largest_directories with a separate index.`,
	}, appsHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "big_files",
		Description: `Find the largest individual files under a path.

min_size accepts K/M/G/T suffixes (powers of 1024, e.g. "500M"); unparseable input means no minimum.`,
	}, bigFilesHandler.Handle)

	return mcpServer
}

package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dkovari/spacescan/index"
	"github.com/dkovari/spacescan/rank"
)

// DirsArgs defines the input parameters for the largest_directories tool.
type DirsArgs struct {
	Path     string `json:"path,omitempty" jsonschema:"Root directory to rank (default: /)"`
	TopN     *int   `json:"top_n,omitempty" jsonschema:"Number of entries to return (default: 20)"`
	UseIndex *bool  `json:"use_index,omitempty" jsonschema:"Reuse cached sizes when fresh (default: true)"`
	Reindex  bool   `json:"reindex,omitempty" jsonschema:"Force a full rescan and refresh the index"`
	IndexTTL *int   `json:"index_ttl,omitempty" jsonschema:"Hours a cached size stays trusted (default: 24)"`
}

// DirsHandler holds the dependencies for the largest_directories tool.
type DirsHandler struct {
	Store  *index.Store
	Logger *slog.Logger
}

// Handle processes a largest_directories request.
func (h *DirsHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args DirsArgs) (*mcp.CallToolResult, any, error) {
	path := args.Path
	if path == "" {
		path = "/"
	}
	opts := rankOptions(args.TopN, args.UseIndex, args.Reindex, args.IndexTTL, h.Logger)

	start := time.Now()
	result, err := rank.Directories(ctx, path, h.Store, opts)
	if err != nil {
		h.Logger.Error("largest_directories failed", "path", path, "error", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Directory ranking error: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	h.Logger.Info("largest_directories",
		"path", path,
		"entries", len(result.Entries),
		"rescanned", result.Rescanned,
		"skipped", len(result.Skipped),
		"elapsed", time.Since(start),
	)

	output := FormatRanked(fmt.Sprintf("Largest directories under %s:", path), result.Entries, result.Skipped)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: output}},
	}, nil, nil
}

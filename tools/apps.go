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

// AppsArgs defines the input parameters for the app_analysis tool.
type AppsArgs struct {
	TopN     *int  `json:"top_n,omitempty" jsonschema:"Number of applications to return (default: 20)"`
	UseIndex *bool `json:"use_index,omitempty" jsonschema:"Reuse cached sizes when fresh (default: true)"`
	Reindex  bool  `json:"reindex,omitempty" jsonschema:"Force a full rescan and refresh the index"`
	IndexTTL *int  `json:"index_ttl,omitempty" jsonschema:"Hours a cached size stays trusted (default: 24)"`
}

// AppsHandler holds the dependencies for the app_analysis tool. It owns a
// store distinct from the directory-ranking one so the two caches cannot
// collide on the same path under different semantics.
type AppsHandler struct {
	Store  *index.Store
	Roots  []string
	Logger *slog.Logger
}

// Handle processes an app_analysis request.
func (h *AppsHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args AppsArgs) (*mcp.CallToolResult, any, error) {
	opts := rankOptions(args.TopN, args.UseIndex, args.Reindex, args.IndexTTL, h.Logger)

	start := time.Now()
	result, err := rank.Applications(ctx, h.Roots, h.Store, opts)
	if err != nil {
		h.Logger.Error("app_analysis failed", "error", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("App analysis error: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	h.Logger.Info("app_analysis",
		"apps", len(result.Entries),
		"rescanned", result.Rescanned,
		"skipped", len(result.Skipped),
		"elapsed", time.Since(start),
	)

	output := FormatRanked("Largest applications by disk footprint:", result.Entries, result.Skipped)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: output}},
	}, nil, nil
}

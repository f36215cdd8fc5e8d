package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dkovari/spacescan/ignore"
	"github.com/dkovari/spacescan/scan"
)

// BigFilesArgs defines the input parameters for the big_files tool.
type BigFilesArgs struct {
	Path    string `json:"path,omitempty" jsonschema:"Root directory to search (default: /)"`
	TopN    *int   `json:"top_n,omitempty" jsonschema:"Number of files to return (default: 20)"`
	MinSize string `json:"min_size,omitempty" jsonschema:"Minimum file size with K/M/G/T suffix (e.g. 100M); unparseable input means no minimum"`
}

// BigFilesHandler holds the dependencies for the big_files tool.
type BigFilesHandler struct {
	Matcher *ignore.Matcher
	Logger  *slog.Logger
}

// Handle processes a big_files request.
func (h *BigFilesHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args BigFilesArgs) (*mcp.CallToolResult, any, error) {
	path := args.Path
	if path == "" {
		path = "/"
	}
	topN := defaultTopN
	if args.TopN != nil {
		topN = *args.TopN
	}
	minBytes := scan.ParseSize(args.MinSize)

	start := time.Now()
	files, err := scan.LargestFiles(ctx, path, topN, minBytes, h.Matcher)
	if err != nil {
		h.Logger.Error("big_files failed", "path", path, "error", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("File ranking error: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	h.Logger.Info("big_files",
		"path", path,
		"minBytes", minBytes,
		"files", len(files),
		"elapsed", time.Since(start),
	)

	output := FormatFiles(fmt.Sprintf("Largest files under %s (min %s):", path, formatSize(minBytes)), files)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: output}},
	}, nil, nil
}

package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dkovari/spacescan/disk"
)

// HealthArgs defines the input parameters for the disk_health tool.
type HealthArgs struct {
	Path string `json:"path,omitempty" jsonschema:"Filesystem path to check (default: /)"`
}

// HealthHandler holds the dependencies for the disk_health tool.
// GetUsage is injected so the capacity query can be faked in tests.
type HealthHandler struct {
	GetUsage func(path string) (disk.UsageInfo, error)
	Logger   *slog.Logger
}

// Handle processes a disk_health request.
func (h *HealthHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args HealthArgs) (*mcp.CallToolResult, any, error) {
	path := args.Path
	if path == "" {
		path = "/"
	}

	usage, err := h.GetUsage(path)
	if err != nil {
		h.Logger.Error("disk_health failed", "path", path, "error", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Disk health error: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	health := disk.Classify(usage.UsedPercent)

	h.Logger.Info("disk_health",
		"path", path,
		"usedPercent", usage.UsedPercent,
		"status", health.Status,
	)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: FormatUsage(usage, health)}},
	}, nil, nil
}

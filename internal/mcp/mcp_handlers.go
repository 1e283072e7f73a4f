package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/gitbloat/core"
	"github.com/huangsam/gitbloat/core/algo"
	"github.com/huangsam/gitbloat/internal/contract"
	"github.com/huangsam/gitbloat/internal/outwriter"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	client  contract.GitClient
	mgr     contract.HistoryManager
}

func (h *toolHandler) handleGetLargestObjects(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		root, err := h.client.GetRepoRoot(ctx, p)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid repo_path: %v", err)), nil
		}
		cfg.RepoPath = root
	}
	if _, ok := request.GetArguments()["limit"]; ok {
		l := request.GetInt("limit", 0)
		if err := contract.ValidateResultLimit(l); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid limit: %v", err)), nil
		}
		cfg.ResultLimit = l
	}

	start := time.Now()
	result, err := core.GetLargestObjectsResults(core.WithSuppressHeader(ctx), cfg, h.client, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}

	summary := outwriter.BuildScanSummary(result, time.Since(start))
	jsonData, _ := json.MarshalIndent(summary, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleFormatSize(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	size, err := request.RequireFloat("bytes")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if size < 0 {
		return mcp.NewToolResultError(fmt.Sprintf("bytes cannot be negative (received %v)", size)), nil
	}
	return mcp.NewToolResultText(algo.HumanSize(int64(size))), nil
}

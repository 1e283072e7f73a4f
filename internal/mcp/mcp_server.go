// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/gitbloat/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the gitbloat MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, client contract.GitClient, mgr contract.HistoryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"gitbloat Object Size Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		client:  client,
		mgr:     mgr,
	}

	s.AddTool(mcp.NewTool("get_largest_objects",
		mcp.WithDescription("List the largest objects stored anywhere in a Git repository's history, largest first."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to the server's repository if not specified).")),
		mcp.WithNumber("limit", mcp.Description("Number of objects to return. Defaults to 20.")),
	), h.handleGetLargestObjects)

	s.AddTool(mcp.NewTool("format_size",
		mcp.WithDescription("Render a byte count the way gitbloat reports it (B, KB, MB, GB in base 1024)."),
		mcp.WithNumber("bytes", mcp.Description("Size in bytes."), mcp.Required()),
	), h.handleFormatSize)

	return s
}

// StartMCPServer starts the gitbloat MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, client contract.GitClient, mgr contract.HistoryManager) error {
	s := NewMCPServer(baseCfg, client, mgr)
	return server.ServeStdio(s)
}

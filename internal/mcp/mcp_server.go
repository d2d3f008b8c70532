// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/quantfold/keydriver/internal/contract"
)

// NewMCPServer initializes and configures the Keydriver MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Keydriver Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: run_driver_analysis ---
	s.AddTool(mcp.NewTool("run_driver_analysis",
		mcp.WithDescription("Decompose how much each driver column contributes to explaining an outcome column. Returns Shapley, relative weight, beta weight and correlation importance per driver."),
		mcp.WithString("data_file", mcp.Description("Path to the observation file (CSV or parquet)."), mcp.Required()),
		mcp.WithString("outcome", mcp.Description("Name of the numeric outcome column."), mcp.Required()),
		mcp.WithString("drivers", mcp.Description("Comma-separated driver column names (max 15)."), mcp.Required()),
		mcp.WithString("weight", mcp.Description("Optional observation weight column.")),
		mcp.WithString("format", mcp.Description("Input format. Defaults to 'auto' (by file extension)."), mcp.Enum("auto", "csv", "parquet")),
	), h.handleRunDriverAnalysis)

	// --- 2. Tool: get_method_definitions ---
	s.AddTool(mcp.NewTool("get_method_definitions",
		mcp.WithDescription("Describe the importance methods keydriver computes, their statistical basis and their caveats."),
	), h.handleGetMethodDefinitions)

	// --- 3. Tool: get_store_status ---
	s.AddTool(mcp.NewTool("get_store_status",
		mcp.WithDescription("Report the run store backend and how many analysis runs it has recorded."),
	), h.handleGetStoreStatus)

	return s
}

// StartMCPServer starts the Keydriver MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}

// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/nutriscope/nutriscope/internal/contract"
	"github.com/nutriscope/nutriscope/internal/telemetry"
)

// NewMCPServer initializes and configures the Nutriscope MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, client contract.APIClient, mgr contract.StoreManager, sink *telemetry.Sink) *server.MCPServer {
	s := server.NewMCPServer(
		"Nutriscope Data Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		client:  client,
		mgr:     mgr,
		sink:    sink,
	}

	// --- 1. Tool: get_dashboard ---
	s.AddTool(mcp.NewTool("get_dashboard",
		mcp.WithDescription("Fetch the premium dashboard: health score, calories, macros and the daily trend. Falls back to cached or placeholder data when the service is unreachable."),
		mcp.WithString("user", mcp.Description("User ID to fetch data for (defaults to the configured user).")),
		mcp.WithBoolean("refresh", mcp.Description("Bypass the cache and force a network fetch.")),
	), h.handleGetDashboard)

	// --- 2. Tool: get_charts ---
	s.AddTool(mcp.NewTool("get_charts",
		mcp.WithDescription("Fetch the data visualization bundle: metric series, aggregate summaries and pairwise correlations."),
		mcp.WithString("user", mcp.Description("User ID to fetch data for.")),
		mcp.WithBoolean("refresh", mcp.Description("Bypass the cache and force a network fetch.")),
	), h.handleGetCharts)

	// --- 3. Tool: get_care ---
	s.AddTool(mcp.NewTool("get_care",
		mcp.WithDescription("Fetch the healthcare integration bundle: connected providers, synced health records and upcoming appointments."),
		mcp.WithString("user", mcp.Description("User ID to fetch data for.")),
		mcp.WithBoolean("refresh", mcp.Description("Bypass the cache and force a network fetch.")),
	), h.handleGetCare)

	// --- 4. Tool: cache_status ---
	s.AddTool(mcp.NewTool("cache_status",
		mcp.WithDescription("Report the local cache backend status: entry counts, hydration state and storage size."),
	), h.handleCacheStatus)

	return s
}

// StartMCPServer starts the Nutriscope MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, client contract.APIClient, mgr contract.StoreManager, sink *telemetry.Sink) error {
	s := NewMCPServer(baseCfg, client, mgr, sink)
	return server.ServeStdio(s)
}

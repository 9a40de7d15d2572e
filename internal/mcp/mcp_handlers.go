package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nutriscope/nutriscope/core"
	"github.com/nutriscope/nutriscope/internal/contract"
	"github.com/nutriscope/nutriscope/internal/telemetry"
	"github.com/nutriscope/nutriscope/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	client  contract.APIClient
	mgr     contract.StoreManager
	sink    *telemetry.Sink
}

// toolEnvelope mirrors the JSON output mode of the CLI so MCP clients can
// tell degraded data apart from fresh data.
type toolEnvelope struct {
	Source  string `json:"source"`
	Stale   bool   `json:"stale"`
	Warning string `json:"warning,omitempty"`
	Data    any    `json:"data"`
}

// fetchConfig applies per-request overrides on top of the base config.
func (h *toolHandler) fetchConfig(request mcp.CallToolRequest) *contract.Config {
	cfg := h.baseCfg.Clone()
	if u := request.GetString("user", ""); u != "" {
		cfg.UserID = u
	}
	cfg.Refresh = request.GetBool("refresh", false)
	return cfg
}

func marshalResult[T any](domain schema.Domain, result *core.Result[T]) (*mcp.CallToolResult, error) {
	envelope := toolEnvelope{
		Source:  string(result.Meta.Source),
		Stale:   result.Meta.Stale,
		Warning: result.Meta.Warning,
		Data:    result.Data,
	}
	jsonData, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s encoding failed: %v", domain, err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetDashboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.fetchConfig(request)

	result, err := core.FetchDomain(ctx, h.mgr.GetCacheStore(), h.sink, core.NewDashboardPipeline(cfg, h.client))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("dashboard fetch failed: %v", err)), nil
	}
	h.sink.TrackPageView(schema.DashboardDomain, result.Meta.Source)

	return marshalResult(schema.DashboardDomain, result)
}

func (h *toolHandler) handleGetCharts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.fetchConfig(request)

	result, err := core.FetchDomain(ctx, h.mgr.GetCacheStore(), h.sink, core.NewChartsPipeline(cfg, h.client))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("charts fetch failed: %v", err)), nil
	}
	h.sink.TrackPageView(schema.ChartsDomain, result.Meta.Source)

	return marshalResult(schema.ChartsDomain, result)
}

func (h *toolHandler) handleGetCare(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.fetchConfig(request)

	result, err := core.FetchDomain(ctx, h.mgr.GetCacheStore(), h.sink, core.NewCarePipeline(cfg, h.client))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("care fetch failed: %v", err)), nil
	}
	h.sink.TrackPageView(schema.CareDomain, result.Meta.Source)

	return marshalResult(schema.CareDomain, result)
}

func (h *toolHandler) handleCacheStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store := h.mgr.GetCacheStore()
	if store == nil {
		return mcp.NewToolResultError("cache is disabled"), nil
	}

	status, err := store.GetStatus()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cache status failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(status, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

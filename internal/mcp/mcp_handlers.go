package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/viratco/klord/core"
	"github.com/viratco/klord/internal/contract"
	"github.com/viratco/klord/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	src     contract.RecordSource
	mgr     contract.CacheManager
}

// requestConfig applies the shared mode and window arguments on a copy of the base config.
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if m := request.GetString("mode", ""); m != "" {
		mode := schema.TimeFrame(m)
		if _, ok := schema.ValidTimeFrames[mode]; !ok {
			return nil, fmt.Errorf("invalid mode '%s'. must be monthly, yearly, weekly", m)
		}
		cfg.Mode = mode
	}
	if w := request.GetInt("window", 0); w != 0 {
		if w < 1 || w > contract.MaxWindow {
			return nil, fmt.Errorf("window must be between 1 and %d (received %d)", contract.MaxWindow, w)
		}
		cfg.Window = w
	}
	return cfg, nil
}

func jsonResult(data any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetSeries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid series parameters: %v", err)), nil
	}

	result, err := core.GetSeriesResult(core.WithSuppressHeader(ctx), cfg, h.src, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("aggregation failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleGetChart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid chart parameters: %v", err)), nil
	}

	kind := schema.ChartKind(request.GetString("kind", ""))
	if _, ok := schema.ValidChartKinds[kind]; kind != "" && !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid chart parameters: unknown kind '%s'", kind)), nil
	}
	series := schema.SeriesName(request.GetString("series", ""))
	if _, ok := schema.ValidSeriesNames[series]; series != "" && !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid chart parameters: unknown series '%s'", series)), nil
	}
	width := request.GetFloat("width", 0)
	height := request.GetFloat("height", 0)
	if width < 0 || height < 0 || width > contract.MaxChartDimension || height > contract.MaxChartDimension {
		return mcp.NewToolResultError(fmt.Sprintf("invalid chart parameters: dimensions must be between 1 and %d", contract.MaxChartDimension)), nil
	}

	cfg = cfg.CloneWithQuery("", kind, series, width, height)
	if err := contract.ValidateKindForMode(cfg.Kind, cfg.Mode); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid chart parameters: %v", err)), nil
	}

	result, err := core.GetChartResult(core.WithSuppressHeader(ctx), cfg, h.src, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("chart build failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleGetRecords(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid record parameters: %v", err)), nil
	}

	rows, err := core.GetRecordRows(core.WithSuppressHeader(ctx), cfg, h.src)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("record listing failed: %v", err)), nil
	}
	return jsonResult(rows)
}

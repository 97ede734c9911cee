// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/viratco/klord/internal/contract"
)

// NewMCPServer initializes and configures the klord MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, src contract.RecordSource, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Klord Dashboard Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		src:     src,
		mgr:     mgr,
	}

	// --- 1. Tool: get_series ---
	s.AddTool(mcp.NewTool("get_series",
		mcp.WithDescription("Aggregate booking records into calendar buckets (average completed steps, completed bookings, leads)."),
		mcp.WithString("mode", mcp.Description("Time frame (monthly, yearly, weekly). Defaults to the configured mode."), mcp.Enum("monthly", "yearly", "weekly")),
		mcp.WithNumber("window", mcp.Description("Rolling average window in buckets (1 disables smoothing).")),
	), h.handleGetSeries)

	// --- 2. Tool: get_chart ---
	s.AddTool(mcp.NewTool("get_chart",
		mcp.WithDescription("Build chart geometry (screen points, smoothed path, ticks or bars) for one aggregated series."),
		mcp.WithString("mode", mcp.Description("Time frame (monthly, yearly, weekly)."), mcp.Enum("monthly", "yearly", "weekly")),
		mcp.WithString("kind", mcp.Description("Chart variant. 'compact' requires monthly mode."), mcp.Enum("line", "progress", "bar", "compact")),
		mcp.WithString("series", mcp.Description("Series to chart."), mcp.Enum("steps", "completed", "leads")),
		mcp.WithNumber("width", mcp.Description("Chart width in pixels.")),
		mcp.WithNumber("height", mcp.Description("Chart height in pixels.")),
	), h.handleGetChart)

	// --- 3. Tool: get_records ---
	s.AddTool(mcp.NewTool("get_records",
		mcp.WithDescription("List the booking records of the current window with their completion percentage."),
		mcp.WithString("mode", mcp.Description("Time frame (monthly, yearly, weekly)."), mcp.Enum("monthly", "yearly", "weekly")),
	), h.handleGetRecords)

	return s
}

// StartMCPServer starts the klord MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, src contract.RecordSource, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, src, mgr)
	return server.ServeStdio(s)
}

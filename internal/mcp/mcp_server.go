// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dkrylov/shiftline/internal/contract"
)

// NewMCPServer initializes and configures the Shiftline MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.HistoryStore) *server.MCPServer {
	s := server.NewMCPServer(
		"Shiftline Downtime Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
	}

	// --- 1. Tool: ingest_downtime ---
	s.AddTool(mcp.NewTool("ingest_downtime",
		mcp.WithDescription("Extract downtime events and plan/fact totals from production line workbooks for one shift date."),
		mcp.WithString("files", mcp.Description("Comma-separated paths to the line workbooks."), mcp.Required()),
		mcp.WithNumber("day", mcp.Description("Day of month of the shift (defaults to yesterday's).")),
		mcp.WithString("month", mcp.Description("Month number or name (defaults to yesterday's).")),
		mcp.WithNumber("year", mcp.Description("Four-digit year (defaults to yesterday's).")),
		mcp.WithNumber("min_downtime", mcp.Description("Minimum event duration in minutes (defaults to 10).")),
		mcp.WithString("exclude", mcp.Description("Comma-separated category terms to exclude.")),
	), h.handleIngestDowntime)

	// --- 2. Tool: get_month_downtime ---
	s.AddTool(mcp.NewTool("get_month_downtime",
		mcp.WithDescription("Get total downtime minutes per day for one month from the history store. Days without saved data are absent."),
		mcp.WithNumber("month", mcp.Description("Month number (1-12)."), mcp.Required()),
		mcp.WithNumber("year", mcp.Description("Four-digit year."), mcp.Required()),
	), h.handleGetMonthDowntime)

	// --- 3. Tool: get_day_downtime ---
	s.AddTool(mcp.NewTool("get_day_downtime",
		mcp.WithDescription("Get all saved downtime events for one shift date, longest first."),
		mcp.WithNumber("day", mcp.Description("Day of month."), mcp.Required()),
		mcp.WithNumber("month", mcp.Description("Month number (1-12)."), mcp.Required()),
		mcp.WithNumber("year", mcp.Description("Four-digit year."), mcp.Required()),
	), h.handleGetDayDowntime)

	// --- 4. Tool: get_store_status ---
	s.AddTool(mcp.NewTool("get_store_status",
		mcp.WithDescription("Get backend, row counts and last save time of the downtime history store."),
	), h.handleGetStoreStatus)

	return s
}

// StartMCPServer starts the Shiftline MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.HistoryStore) error {
	s := NewMCPServer(baseCfg, store)
	return server.ServeStdio(s)
}

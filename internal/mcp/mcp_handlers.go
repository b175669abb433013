package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dkrylov/shiftline/core"
	"github.com/dkrylov/shiftline/internal/contract"
	"github.com/dkrylov/shiftline/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   contract.HistoryStore
}

func (h *toolHandler) handleIngestDowntime(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	files := strings.Split(request.GetString("files", ""), ",")
	paths := make([]string, 0, len(files))
	for _, f := range files {
		if f = strings.TrimSpace(f); f != "" {
			paths = append(paths, f)
		}
	}
	if len(paths) == 0 {
		return mcp.NewToolResultError("no workbook paths given"), nil
	}
	if len(paths) > schema.MaxLineFiles {
		return mcp.NewToolResultError(fmt.Sprintf("too many workbooks: at most %d lines supported", schema.MaxLineFiles)), nil
	}
	cfg.FilePaths = paths

	if d := request.GetInt("day", 0); d > 0 {
		cfg.Date.Day = d
	}
	if m := request.GetString("month", ""); m != "" {
		parsed, err := contract.ParseMonth(m)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		cfg.Date.Month = parsed
	}
	if y := request.GetInt("year", 0); y > 0 {
		cfg.Date.Year = y
	}
	if !cfg.Date.Valid() {
		return mcp.NewToolResultError(fmt.Sprintf("invalid shift date %s", cfg.Date.ISO())), nil
	}
	if md := request.GetFloat("min_downtime", -1); md >= 0 {
		cfg.MinDowntime = md
	}
	if ex := request.GetString("exclude", ""); ex != "" {
		cfg.ExcludedCategories = contract.ParseExcludeList(ex)
	}

	// Stdout belongs to the protocol, so the run is silent.
	records := core.NewIngestion(cfg, contract.NopReporter{}).Run(ctx)
	schema.SortRecordsByLine(records)

	jsonData, _ := json.MarshalIndent(records, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetMonthDowntime(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	month := request.GetInt("month", 0)
	year := request.GetInt("year", 0)
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return mcp.NewToolResultError(fmt.Sprintf("invalid month/year: %d/%d", month, year)), nil
	}

	stats, err := h.store.MonthStats(month, year)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history query failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(stats, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetDayDowntime(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date := schema.ShiftDate{
		Day:   request.GetInt("day", 0),
		Month: request.GetInt("month", 0),
		Year:  request.GetInt("year", 0),
	}
	if !date.Valid() {
		return mcp.NewToolResultError(fmt.Sprintf("invalid shift date %s", date.ISO())), nil
	}

	rows, err := h.store.DayDetails(date)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history query failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(rows, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetStoreStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := h.store.GetStatus()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("status query failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(status, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

package mcp

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jmonzo/atril/internal/config"
	"github.com/jmonzo/atril/internal/errors"
	"github.com/jmonzo/atril/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db  *sql.DB
	cfg *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config) *Handlers {
	return &Handlers{db: db, cfg: cfg}
}

// Request types for each tool

// LoadRequest represents the arguments for solution_load.
type LoadRequest struct {
	Dir      string            `json:"dir,omitempty"`
	Payloads map[string]string `json:"payloads,omitempty"`
	Label    *string           `json:"label,omitempty"`
	Source   *string           `json:"source,omitempty"`
	Mode     string            `json:"mode,omitempty"`
}

// FetchRequest represents the arguments for solution_fetch.
type FetchRequest struct {
	ID              string `json:"id,omitempty"`
	Label           string `json:"label,omitempty"`
	IncludeDeleted  bool   `json:"include_deleted,omitempty"`
	IncludePayloads *bool  `json:"include_payloads,omitempty"`
}

// ListRequest represents the arguments for solution_list.
type ListRequest struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// DeleteRequest represents the arguments for solution_delete.
type DeleteRequest struct {
	ID    string `json:"id,omitempty"`
	Label string `json:"label,omitempty"`
}

// PurgeRequest represents the arguments for solution_purge.
type PurgeRequest struct {
	OlderThanDays *int `json:"older_than_days,omitempty"`
}

// ExportRequest represents the arguments for solution_export.
type ExportRequest struct {
	Path           string `json:"path,omitempty"`
	IncludeDeleted bool   `json:"include_deleted,omitempty"`
}

// ImportRequest represents the arguments for solution_import.
type ImportRequest struct {
	Path string `json:"path"`
	Mode string `json:"mode,omitempty"`
}

// ScheduleRequest represents the arguments for schedule_get.
type ScheduleRequest struct {
	ID        string `json:"id,omitempty"`
	Label     string `json:"label,omitempty"`
	Dimension string `json:"dimension,omitempty"`
	Selection string `json:"selection,omitempty"`
}

// InsightsRequest represents the arguments for insights_get.
type InsightsRequest struct {
	ID    string `json:"id,omitempty"`
	Label string `json:"label,omitempty"`
}

// CongestionRequest represents the arguments for congestion_get.
type CongestionRequest struct {
	ID    string `json:"id,omitempty"`
	Label string `json:"label,omitempty"`
}

// NamesRequest represents the arguments for names_resolve.
type NamesRequest struct {
	ID    string   `json:"id,omitempty"`
	Label string   `json:"label,omitempty"`
	Kind  string   `json:"kind"`
	IDs   []string `json:"ids,omitempty"`
}

// SlotRequest represents the arguments for slot_convert.
type SlotRequest struct {
	Slot int `json:"slot"`
}

// Handler implementations

// HandleLoad handles the solution_load tool call.
func (h *Handlers) HandleLoad(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[LoadRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Load(h.db, h.cfg, ops.LoadInput{
		Dir:      input.Dir,
		Payloads: input.Payloads,
		Label:    input.Label,
		Source:   input.Source,
		Mode:     ops.LoadMode(input.Mode),
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleFetch handles the solution_fetch tool call.
func (h *Handlers) HandleFetch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FetchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Fetch(h.db, ops.FetchInput{
		ID:              input.ID,
		Label:           input.Label,
		IncludeDeleted:  input.IncludeDeleted,
		IncludePayloads: input.IncludePayloads,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleList handles the solution_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.List(h.db, ops.ListInput{
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleLatest handles the solution_latest tool call.
func (h *Handlers) HandleLatest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Latest(h.db)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDelete handles the solution_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Delete(h.db, ops.DeleteInput{
		ID:    input.ID,
		Label: input.Label,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandlePurge handles the solution_purge tool call.
func (h *Handlers) HandlePurge(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PurgeRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Purge(h.db, ops.PurgeInput{
		OlderThanDays: input.OlderThanDays,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleExport handles the solution_export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Export(h.db, h.cfg, ops.ExportInput{
		Path:           input.Path,
		IncludeDeleted: input.IncludeDeleted,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleImport handles the solution_import tool call.
func (h *Handlers) HandleImport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ImportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Import(h.db, h.cfg, ops.ImportInput{
		Path: input.Path,
		Mode: ops.ImportMode(input.Mode),
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSchedule handles the schedule_get tool call.
func (h *Handlers) HandleSchedule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ScheduleRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Schedule(h.db, h.cfg, ops.ScheduleInput{
		ID:        input.ID,
		Label:     input.Label,
		Dimension: input.Dimension,
		Selection: input.Selection,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleInsights handles the insights_get tool call.
func (h *Handlers) HandleInsights(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[InsightsRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Insights(h.db, ops.InsightsInput{
		ID:    input.ID,
		Label: input.Label,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleCongestion handles the congestion_get tool call.
func (h *Handlers) HandleCongestion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CongestionRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Congestion(h.db, ops.CongestionInput{
		ID:    input.ID,
		Label: input.Label,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleNames handles the names_resolve tool call.
func (h *Handlers) HandleNames(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[NamesRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ResolveNames(h.db, ops.ResolveNamesInput{
		ID:    input.ID,
		Label: input.Label,
		Kind:  input.Kind,
		IDs:   input.IDs,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSlot handles the slot_convert tool call.
func (h *Handlers) HandleSlot(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SlotRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ConvertSlot(input.Slot)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if atrilErr, ok := err.(*errors.AtrilError); ok {
		errorObj := map[string]any{
			"code":    atrilErr.Code,
			"message": atrilErr.Message,
			"status":  atrilErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if atrilErr.Code != errors.ErrInternal && atrilErr.Details != nil {
			errorObj["details"] = atrilErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}

package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool definitions. Addressing is shared across most tools: exactly one
// of id or label selects a stored solution.

var loadToolDef = mcp.NewTool("solution_load",
	mcp.WithDescription("Load a solver export into the archive. Provide either dir (a directory holding the solver's CSV files) or payloads (CSV text keyed by payload name). The export is verified before anything is stored."),
	mcp.WithString("dir",
		mcp.Description("Directory containing the solver export (solution.csv, insights.csv, ...)"),
	),
	mcp.WithObject("payloads",
		mcp.Description("Inline payloads: payload name to CSV text. Overrides dir."),
	),
	mcp.WithString("label",
		mcp.Description("Save name for the solution. Must be unique among live solutions."),
	),
	mcp.WithString("source",
		mcp.Description("Free-form origin note, e.g. the solver run that produced the export"),
	),
	mcp.WithString("mode",
		mcp.Description("Label collision behavior: error (default) or replace"),
		mcp.Enum("error", "replace"),
	),
)

var fetchToolDef = mcp.NewTool("solution_fetch",
	mcp.WithDescription("Fetch a stored solution by id or label, including its CSV payloads unless include_payloads is false."),
	mcp.WithString("id", mcp.Description("Solution ID (ULID)")),
	mcp.WithString("label", mcp.Description("Solution label")),
	mcp.WithBoolean("include_deleted", mcp.Description("Allow fetching a soft-deleted solution")),
	mcp.WithBoolean("include_payloads", mcp.Description("Include CSV payload text (default true)")),
)

var listToolDef = mcp.NewTool("solution_list",
	mcp.WithDescription("List stored solutions, newest first."),
	mcp.WithNumber("limit", mcp.Description("Page size (default 20, max 100)")),
	mcp.WithNumber("offset", mcp.Description("Pagination offset")),
)

var latestToolDef = mcp.NewTool("solution_latest",
	mcp.WithDescription("Return the most recently updated solution, or null for an empty archive."),
)

var deleteToolDef = mcp.NewTool("solution_delete",
	mcp.WithDescription("Soft-delete a solution by id or label. Deleted solutions are recoverable until purged."),
	mcp.WithString("id", mcp.Description("Solution ID (ULID)")),
	mcp.WithString("label", mcp.Description("Solution label")),
)

var purgeToolDef = mcp.NewTool("solution_purge",
	mcp.WithDescription("Permanently remove soft-deleted solutions."),
	mcp.WithNumber("older_than_days",
		mcp.Description("Only purge solutions deleted more than this many days ago. Omit to purge all."),
	),
)

var exportToolDef = mcp.NewTool("solution_export",
	mcp.WithDescription("Export the archive to a JSONL file."),
	mcp.WithString("path",
		mcp.Description("Destination .jsonl path. Defaults to a timestamped file in the exports directory."),
	),
	mcp.WithBoolean("include_deleted", mcp.Description("Include soft-deleted solutions")),
)

var importToolDef = mcp.NewTool("solution_import",
	mcp.WithDescription("Import solutions from a JSONL export file."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Source .jsonl path"),
	),
	mcp.WithString("mode",
		mcp.Description("Collision behavior: error (default, atomic), replace, or rename"),
		mcp.Enum("error", "replace", "rename"),
	),
)

var scheduleToolDef = mcp.NewTool("schedule_get",
	mcp.WithDescription("Project a solution's timetable along one dimension. Returns the filter options for the dimension, the active selection, and the aggregated events with resolved names and wall-clock times."),
	mcp.WithString("id", mcp.Description("Solution ID (ULID)")),
	mcp.WithString("label", mcp.Description("Solution label")),
	mcp.WithString("dimension",
		mcp.Description("Projection dimension: room, teacher, or student. Defaults to the configured dimension."),
		mcp.Enum("room", "teacher", "student"),
	),
	mcp.WithString("selection",
		mcp.Description("Entity id to filter on. Defaults to the first available option."),
	),
)

var insightsToolDef = mcp.NewTool("insights_get",
	mcp.WithDescription("Return quality metrics for a solution: gauges, penalty distributions, per-entity outliers, and unassigned students, all with resolved names."),
	mcp.WithString("id", mcp.Description("Solution ID (ULID)")),
	mcp.WithString("label", mcp.Description("Solution label")),
)

var congestionToolDef = mcp.NewTool("congestion_get",
	mcp.WithDescription("Return the week's student-presence heat map for a solution: per-slot head counts colored relative to the busiest slot."),
	mcp.WithString("id", mcp.Description("Solution ID (ULID)")),
	mcp.WithString("label", mcp.Description("Solution label")),
)

var namesToolDef = mcp.NewTool("names_resolve",
	mcp.WithDescription("Resolve solver entity ids to display names using one of a solution's name tables."),
	mcp.WithString("id", mcp.Description("Solution ID (ULID)")),
	mcp.WithString("label", mcp.Description("Solution label")),
	mcp.WithString("kind",
		mcp.Required(),
		mcp.Description("Name table to resolve against"),
		mcp.Enum("student", "teacher", "room", "course", "instrument"),
	),
	mcp.WithArray("ids",
		mcp.Description("Entity ids to resolve. Omit to list the whole table."),
		mcp.Items(map[string]any{"type": "string"}),
	),
)

var slotToolDef = mcp.NewTool("slot_convert",
	mcp.WithDescription("Convert a solver slot number (0-99) to its weekday and wall-clock times."),
	mcp.WithNumber("slot",
		mcp.Required(),
		mcp.Description("Slot number, 0-99"),
	),
)

package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/jmonzo/atril/internal/config"
	"github.com/jmonzo/atril/internal/errors"
	"github.com/jmonzo/atril/internal/ops"
	"github.com/jmonzo/atril/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "atril",
		Usage:   "Timetable solution archive and viewer",
		Version: Version,
		Commands: []*cli.Command{
			loadCmd(db, cfg),
			fetchCmd(db),
			scheduleCmd(db, cfg),
			insightsCmd(db),
			congestionCmd(db),
			namesCmd(db),
			slotCmd(),
			listCmd(db),
			latestCmd(db),
			deleteCmd(db),
			exportCmd(db, cfg),
			importCmd(db, cfg),
			purgeCmd(db),
			webCmd(db, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// loadCmd creates the load command.
func loadCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "load",
		Usage:     "Load a solver export directory into the archive",
		ArgsUsage: "<dir>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "label", Aliases: []string{"l"}, Usage: "Save name for the solution"},
			&cli.StringFlag{Name: "source", Usage: "Origin note (e.g. the solver run)"},
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: "error", Usage: "Label collision mode: error|replace"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return outputError(errors.NewInvalidRequest("export directory is required"))
			}

			input := ops.LoadInput{
				Dir:  c.Args().First(),
				Mode: ops.LoadMode(c.String("mode")),
			}
			if label := c.String("label"); label != "" {
				input.Label = &label
			}
			if source := c.String("source"); source != "" {
				input.Source = &source
			}

			output, err := ops.Load(db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// fetchCmd creates the fetch command.
func fetchCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Fetch a solution by ID or label",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "label", Aliases: []string{"l"}, Usage: "Solution label"},
			&cli.BoolFlag{Name: "include-deleted", Usage: "Include soft-deleted solutions"},
			&cli.BoolFlag{Name: "no-payloads", Usage: "Exclude CSV payloads from output"},
		},
		Action: func(c *cli.Context) error {
			input := ops.FetchInput{
				IncludeDeleted: c.Bool("include-deleted"),
			}
			input.ID, input.Label = addressArgs(c)

			if c.Bool("no-payloads") {
				includePayloads := false
				input.IncludePayloads = &includePayloads
			}

			output, err := ops.Fetch(db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// scheduleCmd creates the schedule command.
func scheduleCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "schedule",
		Usage:     "Show a solution's timetable along one dimension",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "label", Aliases: []string{"l"}, Usage: "Solution label"},
			&cli.StringFlag{Name: "dimension", Aliases: []string{"d"}, Usage: "Projection: room|teacher|student"},
			&cli.StringFlag{Name: "selection", Aliases: []string{"s"}, Usage: "Entity id to filter on"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ScheduleInput{
				Dimension: c.String("dimension"),
				Selection: c.String("selection"),
			}
			input.ID, input.Label = addressArgs(c)

			output, err := ops.Schedule(db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// insightsCmd creates the insights command.
func insightsCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "insights",
		Usage:     "Show quality metrics for a solution",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "label", Aliases: []string{"l"}, Usage: "Solution label"},
		},
		Action: func(c *cli.Context) error {
			input := ops.InsightsInput{}
			input.ID, input.Label = addressArgs(c)

			output, err := ops.Insights(db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// congestionCmd creates the congestion command.
func congestionCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "congestion",
		Usage:     "Show the weekly student-presence heat map for a solution",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "label", Aliases: []string{"l"}, Usage: "Solution label"},
		},
		Action: func(c *cli.Context) error {
			input := ops.CongestionInput{}
			input.ID, input.Label = addressArgs(c)

			output, err := ops.Congestion(db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// namesCmd creates the names command.
func namesCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "names",
		Usage:     "Resolve entity ids against a solution's name tables",
		ArgsUsage: "[entity-id...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Usage: "Solution ID"},
			&cli.StringFlag{Name: "label", Aliases: []string{"l"}, Usage: "Solution label"},
			&cli.StringFlag{Name: "kind", Aliases: []string{"k"}, Required: true, Usage: "Table: student|teacher|room|course|instrument"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ResolveNamesInput{
				ID:    c.String("id"),
				Label: c.String("label"),
				Kind:  c.String("kind"),
				IDs:   c.Args().Slice(),
			}

			output, err := ops.ResolveNames(db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// slotCmd creates the slot command.
func slotCmd() *cli.Command {
	return &cli.Command{
		Name:      "slot",
		Usage:     "Convert a solver slot number (0-99) to weekday and times",
		ArgsUsage: "<slot>",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return outputError(errors.NewInvalidRequest("slot number is required"))
			}
			slot, err := strconv.Atoi(c.Args().First())
			if err != nil {
				return outputError(errors.NewInvalidRequest("slot must be an integer"))
			}

			output, err := ops.ConvertSlot(slot)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List archived solutions, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: 20, Usage: "Maximum items to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Items to skip"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ListInput{
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			}

			output, err := ops.List(db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// latestCmd creates the latest command.
func latestCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "latest",
		Usage: "Show the most recently updated solution",
		Action: func(c *cli.Context) error {
			output, err := ops.Latest(db)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Soft-delete a solution",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "label", Aliases: []string{"l"}, Usage: "Solution label"},
		},
		Action: func(c *cli.Context) error {
			input := ops.DeleteInput{}
			input.ID, input.Label = addressArgs(c)

			output, err := ops.Delete(db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the archive to a JSONL file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Export file path (default: ~/.atril/exports/archive-<timestamp>.jsonl)"},
			&cli.BoolFlag{Name: "include-deleted", Usage: "Include soft-deleted solutions"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ExportInput{
				Path:           c.String("path"),
				IncludeDeleted: c.Bool("include-deleted"),
			}

			output, err := ops.Export(db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// importCmd creates the import command.
func importCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import solutions from a JSONL file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Required: true, Usage: "Import file path"},
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: "error", Usage: "Collision mode: error|replace|rename"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ImportInput{
				Path: c.String("path"),
				Mode: ops.ImportMode(c.String("mode")),
			}

			output, err := ops.Import(db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// purgeCmd creates the purge command.
func purgeCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "purge",
		Usage: "Permanently delete soft-deleted solutions",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "older-than", Usage: "Only purge if deleted more than N days ago (e.g., 7d)"},
		},
		Action: func(c *cli.Context) error {
			input := ops.PurgeInput{}

			if olderThan := c.String("older-than"); olderThan != "" {
				days, err := parseDuration(olderThan)
				if err != nil {
					return outputError(errors.NewInvalidRequest(err.Error()))
				}
				input.OlderThanDays = &days
			}

			output, err := ops.Purge(db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// webCmd creates the web command.
func webCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Start the web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 8765, Usage: "Listen port"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(db, cfg, Version, c.String("bind"), c.Int("port"))
			return web.Run(srv)
		},
	}
}

// Helper functions

// addressArgs extracts solution addressing from a command invocation:
// a positional argument is the ID, otherwise the --label flag applies.
func addressArgs(c *cli.Context) (id, label string) {
	if c.NArg() > 0 {
		return c.Args().First(), ""
	}
	return "", c.String("label")
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if atrilErr, ok := err.(*errors.AtrilError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", atrilErr.Code, atrilErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// parseDuration parses "7d" format to days.
func parseDuration(s string) (int, error) {
	if numStr, ok := strings.CutSuffix(s, "d"); ok {
		days, err := strconv.Atoi(numStr)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		if days < 0 {
			return 0, fmt.Errorf("duration must be non-negative")
		}
		return days, nil
	}
	return 0, fmt.Errorf("duration must end with 'd' (days), e.g., 7d")
}

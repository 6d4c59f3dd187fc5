package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"plotsort/internal/application"
	"plotsort/internal/application/commands"
	"plotsort/internal/domain"
)

// RegisterReadTools adds the tools that never touch the filesystem.
func RegisterReadTools(s *server.MCPServer, svc Services) {
	s.AddTool(planTool(), planHandler(svc))
	s.AddTool(historyTool(), historyHandler(svc))
	s.AddTool(showRunTool(), showRunHandler(svc))
}

// --- plan ---

func planTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Dry run: show which files would move into which prefix folder and which folders each spreadsheet row would claim. Nothing is moved."),
		mcp.WithReadOnlyHintAnnotation(true),
		withSourceDir(),
	}
	opts = append(opts, withSpreadsheet(false)...)
	return mcp.NewTool("plan", opts...)
}

func planHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		root, err := application.ValidateSourceDir(sourceDir(svc, req))
		if err != nil {
			return toolError(err)
		}

		sheet, cleanup, err := spreadsheetPath(req)
		if err != nil {
			return toolError(err)
		}
		defer cleanup()

		result, err := commands.NewPlanCommand(svc.NewWorkspace(root), svc.Reader, sheet).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(formatPlan(result)), nil
	}
}

func formatPlan(result *commands.PlanResult) string {
	var sb strings.Builder

	sb.WriteString("Files:\n")
	for _, f := range result.Files {
		if f.Prefix == "" {
			fmt.Fprintf(&sb, "  %s  (skipped, no valid prefix)\n", f.Name)
			continue
		}
		fmt.Fprintf(&sb, "  %s  →  %s/\n", f.Name, f.Prefix)
	}

	if result.Grouped {
		sb.WriteString("Rows:\n")
		for _, row := range result.Rows {
			if row.Skipped {
				fmt.Fprintf(&sb, "  row %d: skipped\n", row.Number)
				continue
			}
			fmt.Fprintf(&sb, "  row %d: %s\n", row.Number, row.Comment)
			for _, t := range row.Targets {
				switch {
				case t.Found:
					fmt.Fprintf(&sb, "    %s  moves\n", t.Name)
				case t.ClaimedBy > 0:
					fmt.Fprintf(&sb, "    %s  already claimed by row %d\n", t.Name, t.ClaimedBy)
				default:
					fmt.Fprintf(&sb, "    %s  not found\n", t.Name)
				}
			}
		}
		formatList(&sb, "Would not be moved", result.Remaining)
	}

	sb.WriteString(result.Message)
	return sb.String()
}

// --- history ---

func historyTool() mcp.Tool {
	return mcp.NewTool("history",
		mcp.WithDescription("List recent runs, newest first."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of runs to list (default 20)"),
		),
	)
}

func historyHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		runs, err := commands.NewListRunsCommand(svc.History, req.GetInt("limit", 0)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(runs) == 0 {
			return mcp.NewToolResultText("No runs recorded."), nil
		}

		var sb strings.Builder
		for _, run := range runs {
			sb.WriteString(formatRun(run))
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- show_run ---

func showRunTool() mcp.Tool {
	return mcp.NewTool("show_run",
		mcp.WithDescription("Show one recorded run and every move it made."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("run_id",
			mcp.Description("Run ID as listed by the history tool"),
			mcp.Required(),
		),
	)
}

func showRunHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewShowRunCommand(svc.History, req.GetString("run_id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		sb.WriteString(formatRun(*result.Run))
		sb.WriteByte('\n')
		if result.Run.Error != "" {
			fmt.Fprintf(&sb, "error: %s\n", result.Run.Error)
		}
		for _, m := range result.Moves {
			fmt.Fprintf(&sb, "  [%s] %s → %s\n", m.Phase, m.Name, m.Destination)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func formatRun(run domain.RunRecord) string {
	return fmt.Sprintf("%s  %s  %-9s  %s  files=%d skipped=%d folders=%d not_found=%d remaining=%d",
		run.ID, run.StartedAt.Format(time.RFC3339), run.Status, run.SourceDir,
		run.FilesMoved, run.FilesSkipped, run.FoldersMoved, run.FoldersNotFound, run.Remaining)
}

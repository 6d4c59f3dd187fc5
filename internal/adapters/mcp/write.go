package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"plotsort/internal/adapters/notice"
	"plotsort/internal/application"
	"plotsort/internal/application/commands"
)

// RegisterWriteTools adds the tools that move files and folders.
func RegisterWriteTools(s *server.MCPServer, svc Services) {
	s.AddTool(organizeTool(), organizeHandler(svc))
	s.AddTool(groupTool(), groupHandler(svc))
	s.AddTool(runTool(), runHandler(svc))
}

// --- organize ---

func organizeTool() mcp.Tool {
	return mcp.NewTool("organize",
		mcp.WithDescription("Move every top-level file into a folder named after its prefix (the text before the first -, _, @ or •)."),
		mcp.WithDestructiveHintAnnotation(true),
		withSourceDir(),
	)
}

func organizeHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		root, err := application.ValidateSourceDir(sourceDir(svc, req))
		if err != nil {
			return toolError(err)
		}

		unlock, err := lockSource(svc, root)
		if err != nil {
			return toolError(err)
		}
		defer unlock()

		collector := notice.NewCollector()
		result, err := commands.NewOrganizeCommand(svc.NewWorkspace(root), notice.Multi(collector, notice.NewLogger(svc.Logger))).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		formatNotices(&sb, collector.Notices())
		sb.WriteString(result.Message)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- group ---

func groupTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Move top-level folders into a folder named after the Comments cell of the spreadsheet row that lists them."),
		mcp.WithDestructiveHintAnnotation(true),
		withSourceDir(),
	}
	opts = append(opts, withSpreadsheet(true)...)
	return mcp.NewTool("group", opts...)
}

func groupHandler(svc Services) server.ToolHandlerFunc {
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

		unlock, err := lockSource(svc, root)
		if err != nil {
			return toolError(err)
		}
		defer unlock()

		collector := notice.NewCollector()
		cmd := commands.NewGroupCommand(svc.NewWorkspace(root), svc.Reader, notice.Multi(collector, notice.NewLogger(svc.Logger)), sheet)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		formatNotices(&sb, collector.Notices())
		formatList(&sb, "Not moved", result.RemainingFolders)
		sb.WriteString(result.Message)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- run ---

func runTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Organize files by prefix, then group the resulting folders by spreadsheet comment. The run is recorded in the history."),
		mcp.WithDestructiveHintAnnotation(true),
		withSourceDir(),
	}
	opts = append(opts, withSpreadsheet(true)...)
	return mcp.NewTool("run", opts...)
}

func runHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sheet, cleanup, err := spreadsheetPath(req)
		if err != nil {
			return toolError(err)
		}
		defer cleanup()

		opts := []commands.RunOption{commands.WithLogger(svc.Logger)}
		if svc.Locker != nil {
			opts = append(opts, commands.WithLocker(svc.Locker))
		}
		if svc.History != nil {
			opts = append(opts, commands.WithHistory(svc.History))
		}

		collector := notice.NewCollector()
		cmd := commands.NewRunCommand(svc.NewWorkspace, svc.Reader, notice.Multi(collector, notice.NewLogger(svc.Logger)), sourceDir(svc, req), sheet, opts...)
		result, err := cmd.Execute(ctx)

		var sb strings.Builder
		formatNotices(&sb, collector.Notices())
		if err != nil {
			if result != nil {
				fmt.Fprintf(&sb, "run %s stopped: %v\n", result.RunID, err)
				return mcp.NewToolResultError(sb.String()), nil
			}
			return toolError(err)
		}

		formatList(&sb, "Not moved", result.Group.RemainingFolders)
		fmt.Fprintf(&sb, "run %s: %s", result.RunID, result.Message)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// lockSource holds the run lock for root until the returned func is called
func lockSource(svc Services, root string) (func(), error) {
	if svc.Locker == nil {
		return func() {}, nil
	}

	ok, err := svc.Locker.TryLock(root)
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", root, application.ErrRunInProgress)
	}
	return func() {
		if err := svc.Locker.Unlock(root); err != nil {
			svc.Logger.Warn().Err(err).Str("dir", root).Msg("failed to release run lock")
		}
	}, nil
}

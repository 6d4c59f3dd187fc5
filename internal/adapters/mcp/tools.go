package mcp

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"plotsort/internal/application"
	"plotsort/internal/application/commands"
	"plotsort/internal/domain"
	"plotsort/internal/ports"
)

// Services are the collaborators the tools run against
type Services struct {
	NewWorkspace  commands.WorkspaceFactory
	Reader        ports.SheetReader
	Locker        ports.RunLocker  // Optional
	History       ports.RunHistory // Optional
	DefaultSource string           // Used when a call omits source_dir
	Logger        zerolog.Logger
}

// RegisterTools adds every plotsort tool to the MCP server.
func RegisterTools(s *server.MCPServer, svc Services) {
	RegisterReadTools(s, svc)
	RegisterWriteTools(s, svc)
}

// --- shared arguments ---

func withSourceDir() mcp.ToolOption {
	return mcp.WithString("source_dir",
		mcp.Description("Folder to organize. Defaults to the server's configured folder."),
	)
}

func withSpreadsheet(required bool) []mcp.ToolOption {
	pathOpts := []mcp.PropertyOption{
		mcp.Description("Path to the .xlsx or .csv spreadsheet with the 4G Nomenclature B28/B01/B41 and Comments columns."),
	}
	desc := "Either spreadsheet or spreadsheet_base64 is required."
	if !required {
		desc = "Optional; without a spreadsheet only the prefix pass is considered."
	}
	return []mcp.ToolOption{
		mcp.WithString("spreadsheet", pathOpts...),
		mcp.WithString("spreadsheet_base64",
			mcp.Description("Spreadsheet file content, base64 encoded. "+desc),
		),
		mcp.WithString("spreadsheet_name",
			mcp.Description("Original file name of spreadsheet_base64, used to pick the format (e.g. sites.xlsx)."),
		),
	}
}

func sourceDir(svc Services, req mcp.CallToolRequest) string {
	return req.GetString("source_dir", svc.DefaultSource)
}

// spreadsheetPath resolves the spreadsheet argument, staging inline content in
// the OS temp directory. The returned cleanup is never nil.
func spreadsheetPath(req mcp.CallToolRequest) (string, func(), error) {
	noop := func() {}

	if path := req.GetString("spreadsheet", ""); path != "" {
		return application.ExpandHome(path), noop, nil
	}

	encoded := req.GetString("spreadsheet_base64", "")
	if encoded == "" {
		return "", noop, nil
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", noop, fmt.Errorf("spreadsheet_base64: %w", err)
	}
	name := req.GetString("spreadsheet_name", "upload.xlsx")

	path, cleanup, err := commands.StageSpreadsheet(bytes.NewReader(data), name)
	if err != nil {
		return "", noop, err
	}
	return path, cleanup, nil
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatNotices(sb *strings.Builder, notices []domain.Notice) {
	for _, n := range notices {
		sb.WriteString(n.String())
		sb.WriteByte('\n')
	}
}

func formatList(sb *strings.Builder, title string, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s:\n", title)
	for _, name := range names {
		fmt.Fprintf(sb, "- %s\n", name)
	}
}

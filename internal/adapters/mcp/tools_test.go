package mcp

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plotsort/internal/adapters/filesystem"
	"plotsort/internal/adapters/lock"
	"plotsort/internal/adapters/spreadsheet"
	"plotsort/internal/adapters/sqlite"
	"plotsort/internal/ports"
)

const sitesCSV = "4G Nomenclature B28,4G Nomenclature B01,4G Nomenclature B41,Comments\n" +
	"\"f1, f2\",,,Group1\n" +
	",f3,,Group2\n"

func testServices(t *testing.T) (Services, string) {
	t.Helper()

	root := t.TempDir()
	for _, f := range []string{"f1-a.txt", "f2_b.txt", "f3@c.txt", "f4-d.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, f), []byte("x"), 0644))
	}

	history := sqlite.NewHistory()
	require.NoError(t, history.Open(filepath.Join(t.TempDir(), "history.db")))
	t.Cleanup(func() { history.Close() })

	return Services{
		NewWorkspace:  func(root string) ports.Workspace { return filesystem.NewWorkspace(root) },
		Reader:        spreadsheet.NewReader(),
		Locker:        lock.NewDirLocker(t.TempDir()),
		History:       history,
		DefaultSource: root,
		Logger:        zerolog.Nop(),
	}, root
}

func callTool(t *testing.T, handler server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text, res.IsError
}

func TestRunTool_InlineSpreadsheet(t *testing.T) {
	svc, root := testServices(t)

	text, isErr := callTool(t, runHandler(svc), map[string]any{
		"spreadsheet_base64": base64.StdEncoding.EncodeToString([]byte(sitesCSV)),
		"spreadsheet_name":   "sites.csv",
	})
	require.False(t, isErr, text)

	assert.Contains(t, text, "[info] Step 1: Organizing files into folders by prefix...")
	assert.Contains(t, text, "Not moved:\n- f4\n")
	assert.DirExists(t, filepath.Join(root, "Group1", "f2"))
	assert.FileExists(t, filepath.Join(root, "Group2", "f3", "f3@c.txt"))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), "plotsort-upload", "staged spreadsheet leaked into the source folder")
	}

	history, isErr := callTool(t, historyHandler(svc), map[string]any{})
	require.False(t, isErr, history)
	assert.Contains(t, history, "completed")
	assert.Contains(t, history, root)

	runID := strings.Fields(history)[0]
	detail, isErr := callTool(t, showRunHandler(svc), map[string]any{"run_id": runID})
	require.False(t, isErr, detail)
	assert.Contains(t, detail, "[prefix] f1-a.txt → f1")
	assert.Contains(t, detail, "[group] f3 → Group2")
}

func TestRunTool_MissingSpreadsheet(t *testing.T) {
	svc, root := testServices(t)

	text, isErr := callTool(t, runHandler(svc), map[string]any{})
	assert.True(t, isErr)
	assert.Contains(t, text, "please provide a spreadsheet file")
	assert.FileExists(t, filepath.Join(root, "f1-a.txt"))
}

func TestOrganizeTool(t *testing.T) {
	svc, root := testServices(t)

	text, isErr := callTool(t, organizeHandler(svc), map[string]any{"source_dir": root})
	require.False(t, isErr, text)

	assert.Contains(t, text, "[success] Moved: f1-a.txt")
	assert.Contains(t, text, "Moved 4 file(s) into 4 prefix folder(s), skipped 0")
	assert.FileExists(t, filepath.Join(root, "f4", "f4-d.txt"))
}

func TestOrganizeTool_LockHeld(t *testing.T) {
	svc, root := testServices(t)

	ok, err := svc.Locker.TryLock(root)
	require.NoError(t, err)
	require.True(t, ok)
	defer svc.Locker.Unlock(root)

	text, isErr := callTool(t, organizeHandler(svc), map[string]any{})
	assert.True(t, isErr)
	assert.Contains(t, text, "run already in progress")
}

func TestGroupTool_MissingColumns(t *testing.T) {
	svc, root := testServices(t)
	sheet := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(sheet, []byte("comments\nGroup1\n"), 0644))

	text, isErr := callTool(t, groupHandler(svc), map[string]any{"spreadsheet": sheet})
	assert.True(t, isErr)
	assert.Contains(t, text, "4g nomenclature b28")

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestPlanTool(t *testing.T) {
	svc, root := testServices(t)

	text, isErr := callTool(t, planHandler(svc), map[string]any{
		"spreadsheet_base64": base64.StdEncoding.EncodeToString([]byte(sitesCSV)),
		"spreadsheet_name":   "sites.csv",
	})
	require.False(t, isErr, text)

	assert.Contains(t, text, "f1-a.txt  →  f1/")
	assert.Contains(t, text, "row 2: Group1")
	assert.Contains(t, text, "Would not be moved:\n- f4\n")
	assert.FileExists(t, filepath.Join(root, "f1-a.txt"), "plan must not move anything")
}

func TestPlanTool_BadBase64(t *testing.T) {
	svc, _ := testServices(t)

	text, isErr := callTool(t, planHandler(svc), map[string]any{"spreadsheet_base64": "%%%"})
	assert.True(t, isErr)
	assert.Contains(t, text, "spreadsheet_base64")
}

func TestHistoryTool_Disabled(t *testing.T) {
	svc, _ := testServices(t)
	svc.History = nil

	text, isErr := callTool(t, historyHandler(svc), map[string]any{})
	assert.True(t, isErr)
	assert.Contains(t, text, "disabled")
}

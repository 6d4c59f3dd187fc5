package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plotsort/internal/domain"
)

func TestOrganizeCommand_Execute(t *testing.T) {
	ws, root := setupSource(t,
		[]string{"abc-def_ghi.txt", "abc_2.txt", "f2@c.txt", "x•y.jpg", "-leadingdash.txt"},
		[]string{"docs"},
	)
	sink := &recordingSink{}

	result, err := NewOrganizeCommand(ws, sink).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"abc", "f2", "x"}, result.Prefixes)
	assert.Equal(t, []string{"-leadingdash.txt"}, result.Skipped)
	assert.Len(t, result.Moved, 4)
	assert.Empty(t, result.Failures)

	assert.Equal(t, []string{
		"-leadingdash.txt",
		"abc",
		"abc/abc-def_ghi.txt",
		"abc/abc_2.txt",
		"docs",
		"f2",
		"f2/f2@c.txt",
		"x",
		"x/x•y.jpg",
	}, listTree(t, root))

	assert.Contains(t, sink.texts(), "Skipped: -leadingdash.txt (No valid prefix found)")
	assert.Contains(t, sink.texts(), "Moved: f2@c.txt → "+filepath.Join(root, "f2"))
	assert.Equal(t, 4, sink.count(domain.LevelSuccess))
	assert.Equal(t, 1, sink.count(domain.LevelWarning))
}

func TestOrganizeCommand_NoDelimiterFile(t *testing.T) {
	ws, root := setupSource(t, []string{"report.txt"}, nil)

	result, err := NewOrganizeCommand(ws, nil).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"report.txt"}, result.Prefixes)
	assert.Equal(t, []string{"report.txt", "report.txt/report.txt"}, listTree(t, root))
	require.Len(t, result.Moves, 1)
	assert.Equal(t, domain.MoveRecord{Phase: domain.PhasePrefix, Name: "report.txt", Destination: "report.txt"}, result.Moves[0])
}

func TestOrganizeCommand_SecondRunIsNoOp(t *testing.T) {
	ws, root := setupSource(t, []string{"f1-a.txt", "f1-b.txt", "f2_c.txt"}, nil)

	_, err := NewOrganizeCommand(ws, nil).Execute(context.Background())
	require.NoError(t, err)
	before := listTree(t, root)

	sink := &recordingSink{}
	result, err := NewOrganizeCommand(ws, sink).Execute(context.Background())
	require.NoError(t, err)

	assert.Empty(t, result.Moved)
	assert.Empty(t, result.Skipped)
	assert.Empty(t, result.Failures)
	assert.Zero(t, sink.count(domain.LevelError))
	assert.Equal(t, before, listTree(t, root))
}

func TestOrganizeCommand_ReusesExistingFolder(t *testing.T) {
	ws, root := setupSource(t, []string{"f1-new.txt"}, []string{"f1"})
	require.NoError(t, os.WriteFile(filepath.Join(root, "f1", "old.txt"), []byte("x"), 0644))

	result, err := NewOrganizeCommand(ws, nil).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"f1-new.txt"}, result.Moved)
	assert.Equal(t, []string{"f1", "f1/f1-new.txt", "f1/old.txt"}, listTree(t, root))
}

func TestOrganizeCommand_PerFileFailureIsReported(t *testing.T) {
	// f1 already holds a file of the same name
	ws, root := setupSource(t, []string{"f1-a.txt", "f2-b.txt"}, []string{"f1"})
	require.NoError(t, os.WriteFile(filepath.Join(root, "f1", "f1-a.txt"), []byte("old"), 0644))
	sink := &recordingSink{}

	result, err := NewOrganizeCommand(ws, sink).Execute(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, "f1-a.txt", result.Failures[0].Name)
	assert.Equal(t, []string{"f2-b.txt"}, result.Moved)
	assert.Equal(t, 1, sink.count(domain.LevelError))
	assert.FileExists(t, filepath.Join(root, "f1-a.txt"))
}

func TestOrganizeCommand_Cancelled(t *testing.T) {
	ws, root := setupSource(t, []string{"f1-a.txt"}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewOrganizeCommand(ws, nil).Execute(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"f1-a.txt"}, listTree(t, root))
}

func TestOrganizeCommand_MissingSource(t *testing.T) {
	ws, root := setupSource(t, nil, nil)
	require.NoError(t, os.Remove(root))

	_, err := NewOrganizeCommand(ws, nil).Execute(context.Background())
	assert.Error(t, err)
}

func TestOrganizeCommand_KeepLeavesFilesInPlace(t *testing.T) {
	ws, root := setupSource(t, []string{"f1-a.txt", "sites_2024.csv"}, nil)

	organize := NewOrganizeCommand(ws, nil)
	organize.Keep = []string{"sites_2024.csv"}
	result, err := organize.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"f1-a.txt"}, result.Moved)
	assert.Equal(t, []string{"f1", "f1/f1-a.txt", "sites_2024.csv"}, listTree(t, root))
}

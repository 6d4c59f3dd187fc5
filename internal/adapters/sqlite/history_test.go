package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"plotsort/internal/domain"
)

func setupTestHistory(t *testing.T) *History {
	t.Helper()

	h := NewHistory()
	if err := h.Open(filepath.Join(t.TempDir(), "data", "history.db")); err != nil {
		t.Fatalf("failed to open history: %v", err)
	}
	t.Cleanup(func() { h.Close() })
	return h
}

func TestHistory_RunLifecycle(t *testing.T) {
	h := setupTestHistory(t)
	started := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	run := &domain.RunRecord{
		ID:          "run-1",
		SourceDir:   "/srv/plots",
		Spreadsheet: "sites.xlsx",
		StartedAt:   started,
		Status:      domain.RunStatusRunning,
	}
	if err := h.StartRun(run); err != nil {
		t.Fatalf("StartRun failed: %v", err)
	}

	got, err := h.GetRun("run-1")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got.Status != domain.RunStatusRunning || !got.FinishedAt.IsZero() {
		t.Errorf("unexpected running record: %+v", got)
	}
	if !got.StartedAt.Equal(started) {
		t.Errorf("expected start %v, got %v", started, got.StartedAt)
	}

	run.Status = domain.RunStatusCompleted
	run.FinishedAt = started.Add(2 * time.Second)
	run.FilesMoved = 4
	run.FoldersMoved = 3
	run.Remaining = 1
	if err := h.FinishRun(run); err != nil {
		t.Fatalf("FinishRun failed: %v", err)
	}

	got, err = h.GetRun("run-1")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got.Status != domain.RunStatusCompleted || got.FilesMoved != 4 || got.FoldersMoved != 3 || got.Remaining != 1 {
		t.Errorf("unexpected finished record: %+v", got)
	}
	if !got.FinishedAt.Equal(run.FinishedAt) {
		t.Errorf("expected finish %v, got %v", run.FinishedAt, got.FinishedAt)
	}
}

func TestHistory_Moves(t *testing.T) {
	h := setupTestHistory(t)
	if err := h.StartRun(&domain.RunRecord{ID: "run-1", SourceDir: "/srv", StartedAt: time.Now(), Status: domain.RunStatusRunning}); err != nil {
		t.Fatalf("StartRun failed: %v", err)
	}

	moves := []domain.MoveRecord{
		{RunID: "run-1", Phase: domain.PhasePrefix, Name: "f1-a.txt", Destination: "f1"},
		{RunID: "run-1", Phase: domain.PhaseGroup, Name: "f1", Destination: "Group1"},
	}
	if err := h.RecordMoves(moves); err != nil {
		t.Fatalf("RecordMoves failed: %v", err)
	}
	if err := h.RecordMoves(nil); err != nil {
		t.Errorf("recording no moves should succeed: %v", err)
	}

	got, err := h.ListMoves("run-1")
	if err != nil {
		t.Fatalf("ListMoves failed: %v", err)
	}
	if len(got) != 2 || got[0] != moves[0] || got[1] != moves[1] {
		t.Errorf("unexpected moves: %+v", got)
	}
}

func TestHistory_RecordMovesUnknownRun(t *testing.T) {
	h := setupTestHistory(t)

	err := h.RecordMoves([]domain.MoveRecord{{RunID: "ghost", Phase: domain.PhasePrefix, Name: "a", Destination: "b"}})
	if err == nil {
		t.Fatal("expected foreign key violation")
	}

	got, err := h.ListMoves("ghost")
	if err != nil {
		t.Fatalf("ListMoves failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("failed batch should be rolled back, got %+v", got)
	}
}

func TestHistory_ListRunsNewestFirst(t *testing.T) {
	h := setupTestHistory(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "middle", "new"} {
		run := &domain.RunRecord{ID: id, SourceDir: "/srv", StartedAt: base.Add(time.Duration(i) * time.Hour), Status: domain.RunStatusRunning}
		if err := h.StartRun(run); err != nil {
			t.Fatalf("StartRun failed: %v", err)
		}
	}

	runs, err := h.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "new" || runs[1].ID != "middle" {
		t.Errorf("unexpected runs: %+v", runs)
	}
}

func TestHistory_NotFound(t *testing.T) {
	h := setupTestHistory(t)

	if _, err := h.GetRun("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if err := h.FinishRun(&domain.RunRecord{ID: "missing", Status: domain.RunStatusFailed}); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestHistory_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	h := NewHistory()
	if err := h.Open(path); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := h.StartRun(&domain.RunRecord{ID: "run-1", SourceDir: "/srv", StartedAt: time.Now(), Status: domain.RunStatusRunning}); err != nil {
		t.Fatalf("StartRun failed: %v", err)
	}
	h.Close()

	h2 := NewHistory()
	if err := h2.Open(path); err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer h2.Close()

	if _, err := h2.GetRun("run-1"); err != nil {
		t.Errorf("run lost after reopen: %v", err)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	if got := DefaultPath(); got != "/tmp/xdg-data/plotsort/history.db" {
		t.Errorf("unexpected default path %s", got)
	}
}

func TestHistory_OpenExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	h := NewHistory()
	if err := h.Open("~/journal/history.db"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer h.Close()

	if want := filepath.Join(home, "journal", "history.db"); h.Path() != want {
		t.Errorf("expected %s, got %s", want, h.Path())
	}
}

func TestHistory_OpenKeepsTildeUserPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	h := NewHistory()
	if err := h.Open("~other/history.db"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer h.Close()

	if h.Path() != "~other/history.db" {
		t.Errorf("expected ~other path left as is, got %s", h.Path())
	}
}

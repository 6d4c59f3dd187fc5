package views

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"plotsort/internal/application/commands"
	"plotsort/internal/domain"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestFormModel_SubmitRequiresInputs(t *testing.T) {
	m := NewFormModel("")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("expected no command without a source folder")
	}
	if !m.MessageErr || !strings.Contains(m.Message, "folder path") {
		t.Errorf("unexpected message %q", m.Message)
	}

	m.SetSourceDir("/srv/plots")
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("expected no command without a spreadsheet")
	}
	if !strings.Contains(m.Message, "spreadsheet") {
		t.Errorf("unexpected message %q", m.Message)
	}
}

func TestFormModel_Submit(t *testing.T) {
	m := NewFormModel("/srv/plots")

	// Focus starts on the spreadsheet field when a source is prefilled
	for _, r := range "sites.xlsx" {
		m.Update(runeKey(string(r)))
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a run request")
	}
	msg, ok := cmd().(RunRequestMsg)
	if !ok {
		t.Fatalf("expected RunRequestMsg, got %T", cmd())
	}
	if msg.SourceDir != "/srv/plots" || msg.Spreadsheet != "sites.xlsx" || msg.DryRun {
		t.Errorf("unexpected request %+v", msg)
	}
}

func TestFormModel_DryRunWithoutSpreadsheet(t *testing.T) {
	m := NewFormModel("/srv/plots")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	if cmd == nil {
		t.Fatal("expected a dry run request")
	}
	msg := cmd().(RunRequestMsg)
	if !msg.DryRun || msg.Spreadsheet != "" {
		t.Errorf("unexpected request %+v", msg)
	}
}

func TestFormModel_IgnoresSubmitWhileRunning(t *testing.T) {
	m := NewFormModel("/srv/plots")
	m.SetRunning(true)

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlP}); cmd != nil {
		t.Error("expected submissions to be ignored while running")
	}
}

func TestResultsModel_ShowRun(t *testing.T) {
	m := NewResultsModel()
	var copied string
	m.copyText = func(s string) error {
		copied = s
		return nil
	}

	m.ShowRun(RunFinishedMsg{
		Result: &commands.RunResult{
			Stats: domain.RunStats{FilesMoved: 3, FoldersMoved: 2},
			Group: &commands.GroupResult{RemainingFolders: []string{"f4", "f5"}},
		},
		Notices: []domain.Notice{
			{Level: domain.LevelSuccess, Text: "Moved: f1-a.txt → /srv/f1"},
			{Level: domain.LevelWarning, Text: "The following folders were not moved:"},
		},
	})

	view := m.View()
	for _, want := range []string{"Run complete", "Moved: f1-a.txt", "3 file(s) moved", "Not moved (2)", "- f5"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m.Update(runeKey("c"))
	if copied != "f4\nf5" {
		t.Errorf("unexpected clipboard text %q", copied)
	}
	if m.MessageErr {
		t.Errorf("unexpected error message %q", m.Message)
	}
}

func TestResultsModel_ShowRunError(t *testing.T) {
	m := NewResultsModel()
	m.ShowRun(RunFinishedMsg{Err: errors.New("please provide a spreadsheet file")})

	if !m.MessageErr || !strings.Contains(m.View(), "Run failed") {
		t.Error("expected failure to be shown")
	}

	m.Update(runeKey("c"))
	if m.Message != "Nothing to copy" {
		t.Errorf("unexpected message %q", m.Message)
	}
}

func TestResultsModel_ShowPlan(t *testing.T) {
	m := NewResultsModel()
	m.ShowPlan(PlanFinishedMsg{Result: &commands.PlanResult{
		Files: []commands.PlannedFile{{Name: "f1-a.txt", Prefix: "f1"}, {Name: "-x.txt"}},
		Rows: []commands.PlannedRow{
			{Number: 2, Comment: "Group1", Targets: []commands.PlannedTarget{{Name: "f1", Found: true}}},
			{Number: 3, Comment: "Group2", Targets: []commands.PlannedTarget{{Name: "f1", ClaimedBy: 2}}},
			{Number: 4, Skipped: true},
		},
		Remaining: []string{"-x.txt"},
	}})

	view := m.View()
	for _, want := range []string{"Dry run", "f1-a.txt → f1/", "-x.txt stays", "f1 → Group1/ (row 2)", "already claimed by row 2", "row 4 skipped"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if got := m.Remaining(); len(got) != 1 || got[0] != "-x.txt" {
		t.Errorf("unexpected remaining %v", got)
	}
}

func TestResultsModel_BackToForm(t *testing.T) {
	m := NewResultsModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(SwitchToFormMsg); !ok {
		t.Errorf("expected SwitchToFormMsg, got %T", cmd())
	}
}

func TestHistoryModel_ReuseSource(t *testing.T) {
	m := NewHistoryModel()
	m.SetRuns(HistoryLoadedMsg{Runs: []domain.RunRecord{
		{ID: "b", SourceDir: "/srv/new", Status: domain.RunStatusCompleted},
		{ID: "a", SourceDir: "/srv/old", Status: domain.RunStatusFailed},
	}})

	m.Update(runeKey("j"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(UseSourceMsg)
	if !ok || msg.SourceDir != "/srv/old" {
		t.Errorf("unexpected message %+v", cmd())
	}

	if !strings.Contains(m.View(), "/srv/new") {
		t.Error("view should list runs")
	}
}

func TestHistoryModel_Empty(t *testing.T) {
	m := NewHistoryModel()
	m.SetRuns(HistoryLoadedMsg{})

	if m.Message != "No runs recorded yet" {
		t.Errorf("unexpected message %q", m.Message)
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("expected no command without runs")
	}
}

func TestPaginator(t *testing.T) {
	p := NewPaginator(2)
	p.SetTotal(5)

	p.CursorDown()
	p.CursorDown()
	if start, end := p.VisibleRange(); start != 2 || end != 4 {
		t.Errorf("unexpected range %d-%d", start, end)
	}
	if p.CurrentPage() != 2 || p.TotalPages() != 3 {
		t.Errorf("unexpected page %d/%d", p.CurrentPage(), p.TotalPages())
	}

	p.NextPage()
	if start, end := p.VisibleRange(); start != 4 || end != 5 {
		t.Errorf("unexpected range %d-%d", start, end)
	}
	if p.NextPage() {
		t.Error("expected no page past the end")
	}
}

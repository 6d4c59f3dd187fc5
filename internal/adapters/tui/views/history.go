package views

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"plotsort/internal/adapters/tui/styles"
	"plotsort/internal/domain"
)

// HistoryKeyMap defines key bindings for the history view
type HistoryKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Use  key.Binding
	Back key.Binding
}

var HistoryKeys = HistoryKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Use: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "reuse folder"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc", "back"),
	),
}

// UseSourceMsg asks the form to prefill a source folder
type UseSourceMsg struct {
	SourceDir string
}

// HistoryModel lists recorded runs
type HistoryModel struct {
	ViewState
	runs      []domain.RunRecord
	paginator *Paginator
}

// NewHistoryModel creates an empty history view
func NewHistoryModel() *HistoryModel {
	return &HistoryModel{paginator: NewPaginator(15)}
}

// Init initializes the history view
func (m *HistoryModel) Init() tea.Cmd {
	return nil
}

// SetRuns replaces the listed runs
func (m *HistoryModel) SetRuns(msg HistoryLoadedMsg) {
	m.ClearMessage()
	m.runs = msg.Runs
	m.paginator.Reset()
	m.paginator.SetTotal(len(m.runs))
	if msg.Err != nil {
		m.SetMessage(msg.Err.Error(), true)
	} else if len(m.runs) == 0 {
		m.SetMessage("No runs recorded yet", false)
	}
}

// Update handles messages for the history view
func (m *HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, HistoryKeys.Back):
		return m, func() tea.Msg { return SwitchToFormMsg{} }
	case key.Matches(keyMsg, HistoryKeys.Up):
		m.paginator.CursorUp()
	case key.Matches(keyMsg, HistoryKeys.Down):
		m.paginator.CursorDown()
	case key.Matches(keyMsg, HistoryKeys.Use):
		if len(m.runs) == 0 {
			return m, nil
		}
		source := m.runs[m.paginator.Cursor()].SourceDir
		return m, func() tea.Msg { return UseSourceMsg{SourceDir: source} }
	}
	return m, nil
}

// View renders the history view
func (m *HistoryModel) View() string {
	v := NewViewBuilder().Title("Recent runs")

	start, end := m.paginator.VisibleRange()
	for i := start; i < end; i++ {
		line := formatRun(m.runs[i])
		if i == m.paginator.Cursor() {
			line = styles.HelpKey.Render("> ") + line
		} else {
			line = "  " + line
		}
		v.Line(line)
	}
	v.BlankLine()

	v.Message(m.Message, m.MessageErr)
	v.Help(HistoryKeys.Up, HistoryKeys.Down, HistoryKeys.Use, HistoryKeys.Back)
	return v.String()
}

func formatRun(run domain.RunRecord) string {
	status := string(run.Status)
	switch run.Status {
	case domain.RunStatusCompleted:
		status = styles.Success.Render(status)
	case domain.RunStatusFailed:
		status = styles.ErrorMsg.Render(status)
	default:
		status = styles.WarningMsg.Render(status)
	}

	return fmt.Sprintf("%s  %s  %s  %d file(s), %d folder(s), %d left",
		styles.MutedText.Render(run.StartedAt.Format(time.DateTime)),
		status,
		run.SourceDir,
		run.FilesMoved, run.FoldersMoved, run.Remaining,
	)
}

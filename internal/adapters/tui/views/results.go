package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"plotsort/internal/adapters/tui/styles"
	"plotsort/internal/application"
)

// ResultsKeyMap defines key bindings for the results view
type ResultsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Copy     key.Binding
	Back     key.Binding
	Quit     key.Binding
}

var ResultsKeys = ResultsKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("pgdown", "l", "right"),
		key.WithHelp("pgdn", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("pgup", "h", "left"),
		key.WithHelp("pgup", "prev page"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy remaining"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ResultsModel shows the notice log and summary of a run or dry run
type ResultsModel struct {
	ViewState
	title     string
	summary   string
	lines     []string
	remaining []string
	paginator *Paginator
	copyText  func(string) error
}

// NewResultsModel creates an empty results view
func NewResultsModel() *ResultsModel {
	return &ResultsModel{
		paginator: NewPaginator(15),
		copyText:  clipboard.WriteAll,
	}
}

// Init initializes the results view
func (m *ResultsModel) Init() tea.Cmd {
	return nil
}

// SetSize updates the view dimensions and page size
func (m *ResultsModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	cursor := m.paginator.Cursor()
	m.paginator = NewPaginator(m.listHeight(14, 5))
	m.paginator.SetTotal(len(m.lines))
	m.paginator.SetCursor(cursor)
}

// ShowRun fills the view from a finished run
func (m *ResultsModel) ShowRun(msg RunFinishedMsg) {
	m.reset("Run complete")

	for _, n := range msg.Notices {
		m.lines = append(m.lines, RenderNotice(n))
	}

	if msg.Err != nil {
		m.title = "Run failed"
		m.SetMessage(msg.Err.Error(), true)
	}
	if r := msg.Result; r != nil {
		s := r.Stats
		m.summary = fmt.Sprintf("%d file(s) moved, %d skipped • %d folder(s) grouped, %d not found • %d failure(s)",
			s.FilesMoved, s.FilesSkipped, s.FoldersMoved, s.FoldersNotFound, s.Failures)
		if r.Group != nil {
			m.remaining = r.Group.RemainingFolders
		}
	}
	m.paginator.SetTotal(len(m.lines))
}

// ShowPlan fills the view from a dry run
func (m *ResultsModel) ShowPlan(msg PlanFinishedMsg) {
	m.reset("Dry run")

	if msg.Err != nil {
		m.SetMessage(msg.Err.Error(), true)
		m.paginator.SetTotal(0)
		return
	}

	plan := msg.Result
	for _, f := range plan.Files {
		if f.Prefix == "" {
			m.lines = append(m.lines, RenderNotice(application.Notice{Level: application.LevelWarning, Text: fmt.Sprintf("%s stays (no valid prefix)", f.Name)}))
			continue
		}
		m.lines = append(m.lines, RenderNotice(application.Notice{Level: application.LevelInfo, Text: fmt.Sprintf("%s → %s/", f.Name, f.Prefix)}))
	}
	for _, row := range plan.Rows {
		if row.Skipped {
			m.lines = append(m.lines, RenderNotice(application.Notice{Level: application.LevelWarning, Text: fmt.Sprintf("row %d skipped", row.Number)}))
			continue
		}
		for _, t := range row.Targets {
			switch {
			case t.Found:
				m.lines = append(m.lines, RenderNotice(application.Notice{Level: application.LevelSuccess, Text: fmt.Sprintf("%s → %s/ (row %d)", t.Name, row.Comment, row.Number)}))
			case t.ClaimedBy > 0:
				m.lines = append(m.lines, RenderNotice(application.Notice{Level: application.LevelError, Text: fmt.Sprintf("%s already claimed by row %d (row %d)", t.Name, t.ClaimedBy, row.Number)}))
			default:
				m.lines = append(m.lines, RenderNotice(application.Notice{Level: application.LevelError, Text: fmt.Sprintf("%s not found (row %d)", t.Name, row.Number)}))
			}
		}
	}

	m.summary = plan.Message
	m.remaining = plan.Remaining
	m.paginator.SetTotal(len(m.lines))
}

func (m *ResultsModel) reset(title string) {
	m.title = title
	m.summary = ""
	m.lines = nil
	m.remaining = nil
	m.ClearMessage()
	m.paginator.Reset()
}

// Remaining returns the folders left unmoved by the last run
func (m *ResultsModel) Remaining() []string {
	return m.remaining
}

// Update handles messages for the results view
func (m *ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, ResultsKeys.Quit):
		return m, tea.Quit
	case key.Matches(keyMsg, ResultsKeys.Back):
		return m, func() tea.Msg { return SwitchToFormMsg{} }
	case key.Matches(keyMsg, ResultsKeys.Up):
		m.paginator.CursorUp()
	case key.Matches(keyMsg, ResultsKeys.Down):
		m.paginator.CursorDown()
	case key.Matches(keyMsg, ResultsKeys.NextPage):
		m.paginator.NextPage()
	case key.Matches(keyMsg, ResultsKeys.PrevPage):
		m.paginator.PrevPage()
	case key.Matches(keyMsg, ResultsKeys.Copy):
		m.copyRemaining()
	}
	return m, nil
}

func (m *ResultsModel) copyRemaining() {
	if len(m.remaining) == 0 {
		m.SetMessage("Nothing to copy", false)
		return
	}
	if err := m.copyText(strings.Join(m.remaining, "\n")); err != nil {
		m.SetMessage("Copy failed: "+err.Error(), true)
		return
	}
	m.SetMessage(fmt.Sprintf("Copied %d folder name(s)", len(m.remaining)), false)
}

// View renders the results view
func (m *ResultsModel) View() string {
	v := NewViewBuilder().Title(m.title)
	if m.summary != "" {
		v.Subtitle(m.summary)
	}

	start, end := m.paginator.VisibleRange()
	for i := start; i < end; i++ {
		prefix := "  "
		if i == m.paginator.Cursor() {
			prefix = styles.HelpKey.Render("> ")
		}
		v.Line(prefix + m.lines[i])
	}
	if m.paginator.TotalPages() > 1 {
		v.Muted(fmt.Sprintf("page %d/%d", m.paginator.CurrentPage(), m.paginator.TotalPages()))
	}
	v.BlankLine()

	if len(m.remaining) > 0 {
		var b strings.Builder
		b.WriteString(styles.WarningMsg.Render(fmt.Sprintf("Not moved (%d)", len(m.remaining))))
		for _, name := range m.remaining {
			b.WriteString("\n- " + name)
		}
		v.Line(styles.Panel.Render(b.String())).BlankLine()
	}

	v.Message(m.Message, m.MessageErr)
	v.Help(ResultsKeys.Up, ResultsKeys.Down, ResultsKeys.NextPage, ResultsKeys.Copy, ResultsKeys.Back, ResultsKeys.Quit)
	return v.String()
}

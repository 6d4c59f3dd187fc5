package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"plotsort/internal/adapters/tui/styles"
)

// FormKeyMap defines key bindings for the form view
type FormKeyMap struct {
	Run     key.Binding
	Plan    key.Binding
	Next    key.Binding
	History key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var FormKeys = FormKeyMap{
	Run: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "organize"),
	),
	Plan: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("ctrl+p", "dry run"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "next field"),
	),
	History: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "history"),
	),
	Help: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}

const (
	fieldSource = iota
	fieldSpreadsheet
)

// FormModel collects the source folder and spreadsheet for a run
type FormModel struct {
	ViewState
	form    *InputForm
	running bool
}

// NewFormModel creates a form prefilled with the given source folder
func NewFormModel(sourceDir string) *FormModel {
	form := NewInputForm(
		NewInputField("Source folder", "~/Survey/plots", 0),
		NewInputField("Spreadsheet (.xlsx, .csv)", "~/Survey/sites.xlsx", 0),
	)
	form.SetValue(fieldSource, sourceDir)
	if sourceDir != "" {
		form.SetFocus(fieldSpreadsheet)
	}
	return &FormModel{form: form}
}

// Init initializes the form view
func (m *FormModel) Init() tea.Cmd {
	return m.form.Init()
}

// SetRunning marks a run as in flight so the form ignores new submissions
func (m *FormModel) SetRunning(running bool) {
	m.running = running
	if running {
		m.SetMessage("Organizing...", false)
	}
}

// SourceDir returns the current source folder input
func (m *FormModel) SourceDir() string {
	return m.form.Value(fieldSource)
}

// Spreadsheet returns the current spreadsheet input
func (m *FormModel) Spreadsheet() string {
	return m.form.Value(fieldSpreadsheet)
}

// Update handles messages for the form view
func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, FormKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, FormKeys.Help):
			return m, func() tea.Msg { return SwitchToHelpMsg{} }
		case key.Matches(msg, FormKeys.History):
			return m, func() tea.Msg { return SwitchToHistoryMsg{} }
		case key.Matches(msg, FormKeys.Next):
			m.form.NextField()
			return m, nil
		case key.Matches(msg, FormKeys.Run):
			return m, m.submit(false)
		case key.Matches(msg, FormKeys.Plan):
			return m, m.submit(true)
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *FormModel) submit(dryRun bool) tea.Cmd {
	if m.running {
		return nil
	}

	source := m.SourceDir()
	sheet := m.Spreadsheet()
	if source == "" {
		m.SetMessage("Invalid folder path. Please enter a valid path.", true)
		m.form.SetFocus(fieldSource)
		return nil
	}
	if sheet == "" && !dryRun {
		m.SetMessage("Please provide a valid spreadsheet file.", true)
		m.form.SetFocus(fieldSpreadsheet)
		return nil
	}

	m.ClearMessage()
	return func() tea.Msg {
		return RunRequestMsg{SourceDir: source, Spreadsheet: sheet, DryRun: dryRun}
	}
}

// View renders the form view
func (m *FormModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("plotsort"))
	b.WriteString("\n\n")
	b.WriteString(styles.Subtitle.Render("Group files by prefix, then group folders by spreadsheet comment."))
	b.WriteString("\n\n")

	for i := range m.form.Fields {
		b.WriteString(m.form.RenderField(i))
		b.WriteString("\n\n")
	}

	if m.Message != "" {
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n\n")
	}

	b.WriteString(RenderHelpLine(FormKeys.Next, FormKeys.Run, FormKeys.Plan, FormKeys.History, FormKeys.Help, FormKeys.Quit))

	return styles.App.Render(b.String())
}

// SetSourceDir replaces the source folder and moves focus to the spreadsheet
func (m *FormModel) SetSourceDir(dir string) {
	m.form.SetValue(fieldSource, dir)
	m.form.SetFocus(fieldSpreadsheet)
}

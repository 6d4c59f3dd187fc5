package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"plotsort/internal/adapters/tui/styles"
	"plotsort/internal/domain"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "f1"),
		key.WithHelp("esc/q/f1", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	width  int
	height int
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToFormMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("plotsort Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("Plot folder organizer"))
	b.WriteString("\n\n")

	// Form section
	b.WriteString(styles.InputLabel.Render("Form"))
	b.WriteString("\n")
	b.WriteString(helpLine("tab", "Switch field"))
	b.WriteString(helpLine("enter", "Organize the folder"))
	b.WriteString(helpLine("ctrl+p", "Dry run, nothing is moved"))
	b.WriteString(helpLine("ctrl+r", "Recent runs"))
	b.WriteString("\n")

	// Results section
	b.WriteString(styles.InputLabel.Render("Results"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Scroll the log"))
	b.WriteString(helpLine("pgup / pgdn", "Previous / next page"))
	b.WriteString(helpLine("c", "Copy the folders that were not moved"))
	b.WriteString(helpLine("esc", "Back to the form"))
	b.WriteString("\n")

	// General section
	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("f1", "Toggle help"))
	b.WriteString(helpLine("esc / Ctrl+C", "Quit from the form"))
	b.WriteString("\n\n")

	// How a run works
	b.WriteString(styles.InputLabel.Render("How it works"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  1. Files move into a folder named after their prefix,"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("     the text before the first of " + strings.Join(domain.PrefixDelimiters, " ")))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  2. Folders listed in the 4G Nomenclature B28/B01/B41 columns"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("     move into a folder named after the row's Comments cell"))
	b.WriteString("\n\n")

	// Close hint
	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("f1"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// SetSize updates the view dimensions
func (m *HelpModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

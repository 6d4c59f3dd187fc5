package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"plotsort/internal/adapters/notice"
	"plotsort/internal/adapters/tui/views"
	"plotsort/internal/application"
	"plotsort/internal/application/commands"
	"plotsort/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewForm ViewState = iota
	ViewResults
	ViewHistory
	ViewHelp
)

// Services are the collaborators a run needs
type Services struct {
	NewWorkspace commands.WorkspaceFactory
	Reader       ports.SheetReader
	Locker       ports.RunLocker  // Optional
	History      ports.RunHistory // Optional
	HistoryLimit int
	Logger       zerolog.Logger
}

// App is the main TUI application model
type App struct {
	svc Services

	state   ViewState
	form    *views.FormModel
	results *views.ResultsModel
	history *views.HistoryModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(svc Services, sourceDir string) *App {
	return &App{
		svc:     svc,
		state:   ViewForm,
		form:    views.NewFormModel(sourceDir),
		results: views.NewResultsModel(),
		history: views.NewHistoryModel(),
		help:    views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.form.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.form.SetSize(msg.Width, msg.Height)
		a.results.SetSize(msg.Width, msg.Height)
		a.history.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToFormMsg:
		a.state = ViewForm
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToHistoryMsg:
		a.state = ViewHistory
		return a, a.loadHistory

	case views.UseSourceMsg:
		a.form.SetSourceDir(msg.SourceDir)
		a.state = ViewForm
		return a, nil

	// Run messages
	case views.RunRequestMsg:
		a.form.SetRunning(true)
		if msg.DryRun {
			return a, a.plan(msg)
		}
		return a, a.run(msg)

	case views.RunFinishedMsg:
		a.form.SetRunning(false)
		a.form.ClearMessage()
		a.results.ShowRun(msg)
		a.state = ViewResults
		return a, nil

	case views.PlanFinishedMsg:
		a.form.SetRunning(false)
		a.form.ClearMessage()
		a.results.ShowPlan(msg)
		a.state = ViewResults
		return a, nil

	case views.HistoryLoadedMsg:
		a.history.SetRuns(msg)
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewForm:
		_, cmd = a.form.Update(msg)
	case ViewResults:
		_, cmd = a.results.Update(msg)
	case ViewHistory:
		_, cmd = a.history.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

func (a *App) run(req views.RunRequestMsg) tea.Cmd {
	return func() tea.Msg {
		collector := notice.NewCollector()
		opts := []commands.RunOption{commands.WithLogger(a.svc.Logger)}
		if a.svc.Locker != nil {
			opts = append(opts, commands.WithLocker(a.svc.Locker))
		}
		if a.svc.History != nil {
			opts = append(opts, commands.WithHistory(a.svc.History))
		}

		cmd := commands.NewRunCommand(a.svc.NewWorkspace, a.svc.Reader, collector, req.SourceDir, req.Spreadsheet, opts...)
		result, err := cmd.Execute(context.Background())
		return views.RunFinishedMsg{Result: result, Notices: collector.Notices(), Err: err}
	}
}

func (a *App) plan(req views.RunRequestMsg) tea.Cmd {
	return func() tea.Msg {
		root, err := application.ValidateSourceDir(req.SourceDir)
		if err != nil {
			return views.PlanFinishedMsg{Err: err}
		}

		cmd := commands.NewPlanCommand(a.svc.NewWorkspace(root), a.svc.Reader, req.Spreadsheet)
		result, err := cmd.Execute(context.Background())
		return views.PlanFinishedMsg{Result: result, Err: err}
	}
}

func (a *App) loadHistory() tea.Msg {
	runs, err := commands.NewListRunsCommand(a.svc.History, a.svc.HistoryLimit).Execute(context.Background())
	return views.HistoryLoadedMsg{Runs: runs, Err: err}
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewResults:
		return a.results.View()
	case ViewHistory:
		return a.history.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.form.View()
	}
}

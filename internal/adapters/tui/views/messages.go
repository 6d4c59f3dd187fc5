package views

import (
	"plotsort/internal/application"
	"plotsort/internal/application/commands"
)

// SwitchToFormMsg returns to the input form
type SwitchToFormMsg struct{}

// SwitchToHelpMsg opens the help view
type SwitchToHelpMsg struct{}

// SwitchToHistoryMsg opens the run history view
type SwitchToHistoryMsg struct{}

// RunRequestMsg asks the app to organize a folder
type RunRequestMsg struct {
	SourceDir   string
	Spreadsheet string
	DryRun      bool
}

// RunFinishedMsg carries the outcome of a run
type RunFinishedMsg struct {
	Result  *commands.RunResult
	Notices []application.Notice
	Err     error
}

// PlanFinishedMsg carries the outcome of a dry run
type PlanFinishedMsg struct {
	Result *commands.PlanResult
	Err    error
}

// HistoryLoadedMsg carries recorded runs
type HistoryLoadedMsg struct {
	Runs []application.RunRecord
	Err  error
}

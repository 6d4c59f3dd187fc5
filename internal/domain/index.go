package domain

import "time"

// Phase identifies which pass of a run produced a move
type Phase string

const (
	PhasePrefix Phase = "prefix"
	PhaseGroup  Phase = "group"
)

// RunStatus is the final state of a recorded run
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// RunRecord is a persisted summary of one organize/group run
type RunRecord struct {
	ID              string
	SourceDir       string
	Spreadsheet     string // Base name of the uploaded spreadsheet
	StartedAt       time.Time
	FinishedAt      time.Time
	Status          RunStatus
	FilesMoved      int
	FilesSkipped    int
	FoldersMoved    int
	FoldersNotFound int
	Remaining       int
	Error           string
}

// MoveRecord is one entry relocated during a run
type MoveRecord struct {
	RunID       string
	Phase       Phase
	Name        string // Entry that was moved
	Destination string // Folder it was moved into, relative to the source dir
}

// RunStats summarizes the outcome of both phases
type RunStats struct {
	FilesMoved      int
	FilesSkipped    int
	FoldersMoved    int
	FoldersNotFound int
	Remaining       int
	Failures        int
	Duration        time.Duration
}

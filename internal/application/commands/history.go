package commands

import (
	"context"
	"errors"
	"fmt"

	"plotsort/internal/application"
	"plotsort/internal/domain"
	"plotsort/internal/ports"
)

// ErrHistoryDisabled is returned when no history store is configured
var ErrHistoryDisabled = errors.New("run history is disabled")

// ListRunsCommand lists recorded runs, newest first
type ListRunsCommand struct {
	history ports.RunHistory
	Limit   int
}

// NewListRunsCommand creates a new ListRunsCommand
func NewListRunsCommand(history ports.RunHistory, limit int) *ListRunsCommand {
	return &ListRunsCommand{history: history, Limit: limit}
}

// Execute runs the list runs command
func (c *ListRunsCommand) Execute(ctx context.Context) ([]domain.RunRecord, error) {
	if c.history == nil {
		return nil, ErrHistoryDisabled
	}
	limit := c.Limit
	if limit <= 0 {
		limit = 20
	}
	runs, err := c.history.ListRuns(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// ShowRunResult contains a run and the moves it performed
type ShowRunResult struct {
	Run   *domain.RunRecord
	Moves []domain.MoveRecord
}

// ShowRunCommand loads one run with its moves
type ShowRunCommand struct {
	history ports.RunHistory
	RunID   string
}

// NewShowRunCommand creates a new ShowRunCommand
func NewShowRunCommand(history ports.RunHistory, runID string) *ShowRunCommand {
	return &ShowRunCommand{history: history, RunID: runID}
}

// Validate checks that a run ID was given
func (c *ShowRunCommand) Validate() error {
	return application.ValidateRequired("runID", c.RunID)
}

// Execute runs the show run command
func (c *ShowRunCommand) Execute(ctx context.Context) (*ShowRunResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.history == nil {
		return nil, ErrHistoryDisabled
	}

	run, err := c.history.GetRun(c.RunID)
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", c.RunID, err)
	}
	moves, err := c.history.ListMoves(run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load moves for run %s: %w", c.RunID, err)
	}
	return &ShowRunResult{Run: run, Moves: moves}, nil
}

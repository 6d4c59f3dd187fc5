package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"plotsort/internal/application"
	"plotsort/internal/domain"
	"plotsort/internal/ports"
)

// WorkspaceFactory opens a workspace rooted at a validated directory
type WorkspaceFactory func(root string) ports.Workspace

// RunResult contains the result of a full two-phase run
type RunResult struct {
	RunID    string
	Organize *OrganizeResult
	Group    *GroupResult
	Stats    domain.RunStats
	Message  string
}

// RunCommand organizes a directory by prefix and then groups the prefix
// folders by spreadsheet comment
type RunCommand struct {
	newWorkspace    WorkspaceFactory
	reader          ports.SheetReader
	sink            ports.NoticeSink
	locker          ports.RunLocker
	history         ports.RunHistory
	logger          zerolog.Logger
	SourceDir       string
	SpreadsheetPath string
}

// RunOption configures a RunCommand
type RunOption func(*RunCommand)

// WithLocker guards the run with a per-directory lock
func WithLocker(locker ports.RunLocker) RunOption {
	return func(c *RunCommand) {
		c.locker = locker
	}
}

// WithHistory records the run and its moves
func WithHistory(history ports.RunHistory) RunOption {
	return func(c *RunCommand) {
		c.history = history
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger zerolog.Logger) RunOption {
	return func(c *RunCommand) {
		c.logger = logger
	}
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(newWorkspace WorkspaceFactory, reader ports.SheetReader, sink ports.NoticeSink, sourceDir, spreadsheetPath string, opts ...RunOption) *RunCommand {
	c := &RunCommand{
		newWorkspace:    newWorkspace,
		reader:          reader,
		sink:            sink,
		logger:          zerolog.Nop(),
		SourceDir:       sourceDir,
		SpreadsheetPath: spreadsheetPath,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate checks both inputs before anything is touched.
// Returns the absolute source directory.
func (c *RunCommand) Validate() (string, error) {
	root, err := application.ValidateSourceDir(c.SourceDir)
	if err != nil {
		return "", err
	}
	if err := application.ValidateSpreadsheet(c.SpreadsheetPath); err != nil {
		return "", err
	}
	return root, nil
}

// Execute runs both phases.
// A grouping failure is returned together with the partial result, since the
// prefix pass has already changed the directory.
func (c *RunCommand) Execute(ctx context.Context) (*RunResult, error) {
	root, err := c.Validate()
	if err != nil {
		return nil, err
	}

	if c.locker != nil {
		ok, err := c.locker.TryLock(root)
		if err != nil {
			return nil, fmt.Errorf("acquire run lock: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%s: %w", root, application.ErrRunInProgress)
		}
		defer func() {
			if err := c.locker.Unlock(root); err != nil {
				c.logger.Warn().Err(err).Str("dir", root).Msg("failed to release run lock")
			}
		}()
	}

	// A spreadsheet kept in the source folder is read from a copy, and the
	// original is left out of both passes
	sheetPath := c.SpreadsheetPath
	keepName, inside := spreadsheetEntry(root, sheetPath)
	if inside {
		staged, cleanup, err := stageFile(sheetPath)
		if err != nil {
			return nil, err
		}
		defer cleanup()
		sheetPath = staged
	}
	var keep []string
	if keepName != "" {
		keep = []string{keepName}
	}

	start := time.Now()
	result := &RunResult{RunID: uuid.NewString()}
	logger := c.logger.With().Str("run", result.RunID).Str("dir", root).Logger()

	record := &domain.RunRecord{
		ID:          result.RunID,
		SourceDir:   root,
		Spreadsheet: filepath.Base(c.SpreadsheetPath),
		StartedAt:   start,
		Status:      domain.RunStatusRunning,
	}
	c.startRecord(logger, record)

	notify := newNotifier(c.sink)
	ws := c.newWorkspace(root)

	notify.info("Step 1: Organizing files into folders by prefix...")
	if keepName != "" {
		notify.info("Leaving spreadsheet %s in place", keepName)
	}
	organize := NewOrganizeCommand(ws, c.sink)
	organize.Keep = keep
	result.Organize, err = organize.Execute(ctx)
	if result.Organize != nil {
		c.recordMoves(logger, result.RunID, result.Organize.Moves)
	}
	if err != nil {
		return result, c.fail(logger, record, result, start, err)
	}
	logger.Debug().Int("moved", len(result.Organize.Moved)).Msg("prefix pass done")

	notify.info("Step 2: Grouping folders by comments in the spreadsheet...")
	group := NewGroupCommand(ws, c.reader, c.sink, sheetPath)
	group.Keep = keep
	result.Group, err = group.Execute(ctx)
	if result.Group != nil {
		c.recordMoves(logger, result.RunID, result.Group.Moves)
	}
	if err != nil {
		return result, c.fail(logger, record, result, start, err)
	}

	result.Stats = collectStats(result, start)
	record.Status = domain.RunStatusCompleted
	c.finishRecord(logger, record, result.Stats)

	notify.success("Folder organization complete!")
	result.Message = fmt.Sprintf("%s; %s", result.Organize.Message, result.Group.Message)
	logger.Info().Dur("took", result.Stats.Duration).Msg("run completed")
	return result, nil
}

func (c *RunCommand) fail(logger zerolog.Logger, record *domain.RunRecord, result *RunResult, start time.Time, err error) error {
	result.Stats = collectStats(result, start)
	record.Status = domain.RunStatusFailed
	record.Error = err.Error()
	c.finishRecord(logger, record, result.Stats)

	var colErr *application.MissingColumnsError
	if errors.As(err, &colErr) {
		logger.Warn().Strs("missing", colErr.Missing).Msg("spreadsheet rejected")
	} else {
		logger.Error().Err(err).Msg("run failed")
	}
	return err
}

func (c *RunCommand) startRecord(logger zerolog.Logger, record *domain.RunRecord) {
	if c.history == nil {
		return
	}
	if err := c.history.StartRun(record); err != nil {
		logger.Warn().Err(err).Msg("failed to record run start")
	}
}

func (c *RunCommand) finishRecord(logger zerolog.Logger, record *domain.RunRecord, stats domain.RunStats) {
	if c.history == nil {
		return
	}
	record.FinishedAt = time.Now()
	record.FilesMoved = stats.FilesMoved
	record.FilesSkipped = stats.FilesSkipped
	record.FoldersMoved = stats.FoldersMoved
	record.FoldersNotFound = stats.FoldersNotFound
	record.Remaining = stats.Remaining
	if err := c.history.FinishRun(record); err != nil {
		logger.Warn().Err(err).Msg("failed to record run result")
	}
}

func (c *RunCommand) recordMoves(logger zerolog.Logger, runID string, moves []domain.MoveRecord) {
	if c.history == nil || len(moves) == 0 {
		return
	}
	records := make([]domain.MoveRecord, len(moves))
	for i, move := range moves {
		move.RunID = runID
		records[i] = move
	}
	if err := c.history.RecordMoves(records); err != nil {
		logger.Warn().Err(err).Int("moves", len(records)).Msg("failed to record moves")
	}
}

func collectStats(result *RunResult, start time.Time) domain.RunStats {
	stats := domain.RunStats{Duration: time.Since(start)}
	if o := result.Organize; o != nil {
		stats.FilesMoved = len(o.Moved)
		stats.FilesSkipped = len(o.Skipped)
		stats.Failures += len(o.Failures)
	}
	if g := result.Group; g != nil {
		stats.FoldersMoved = len(g.MovedFolders)
		stats.FoldersNotFound = len(g.NotFound)
		stats.Remaining = len(g.RemainingFolders)
		stats.Failures += len(g.Failures)
	}
	return stats
}

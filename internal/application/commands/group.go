package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"plotsort/internal/application"
	"plotsort/internal/domain"
	"plotsort/internal/ports"
)

// GroupResult contains the result of grouping folders by spreadsheet comment
type GroupResult struct {
	MovedFolders     []string // Sorted
	RemainingFolders []string // Present at start, never moved; sorted
	NotFound         []string // Tokens that did not resolve at move time, in order
	CommentFolders   []string // Comment folders created or reused, in first-use order
	SkippedRows      []int    // Spreadsheet row numbers without a comment
	Failures         []Failure
	Moves            []domain.MoveRecord
	Message          string
}

// GroupCommand relocates top-level folders into folders named after the
// comment of the spreadsheet row that lists them
type GroupCommand struct {
	ws              ports.Workspace
	reader          ports.SheetReader
	notify          notifier
	SpreadsheetPath string
	Keep            []string // Top-level entries that are never moved or reported
}

// NewGroupCommand creates a new GroupCommand
func NewGroupCommand(ws ports.Workspace, reader ports.SheetReader, sink ports.NoticeSink, spreadsheetPath string) *GroupCommand {
	return &GroupCommand{
		ws:              ws,
		reader:          reader,
		notify:          newNotifier(sink),
		SpreadsheetPath: spreadsheetPath,
	}
}

// Validate checks that a spreadsheet was supplied
func (c *GroupCommand) Validate() error {
	return application.ValidateSpreadsheet(c.SpreadsheetPath)
}

// Execute runs the group command.
// A spreadsheet without the required columns aborts before anything moves.
func (c *GroupCommand) Execute(ctx context.Context) (*GroupResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	table, err := c.reader.ReadTable(c.SpreadsheetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet: %w", err)
	}

	if missing := table.MissingColumns(); len(missing) > 0 {
		return nil, &application.MissingColumnsError{Missing: missing}
	}

	// Snapshot before any move in this phase
	entries, err := c.ws.ListEntries()
	if err != nil {
		return nil, fmt.Errorf("failed to list source folder: %w", err)
	}
	keep := make(map[string]bool)
	for _, name := range c.Keep {
		keep[name] = true
	}
	if name, _ := spreadsheetEntry(c.ws.Root(), c.SpreadsheetPath); name != "" {
		keep[name] = true
	}

	var allAtStart []string
	for _, name := range domain.EntryNames(entries) {
		if !keep[name] {
			allAtStart = append(allAtStart, name)
		}
	}

	result := &GroupResult{}
	moved := make(map[string]bool)
	comments := make(map[string]bool)

	for _, row := range table.SheetRows() {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if !row.HasComment() {
			c.notify.warn("Skipped row %d with no comment.", row.Number)
			result.SkippedRows = append(result.SkippedRows, row.Number)
			continue
		}

		comment := row.Comment.Value
		if !domain.IsPlainName(comment) {
			c.notify.fail("Row %d: comment %q cannot be used as a folder name", row.Number, comment)
			result.Failures = append(result.Failures, Failure{
				Name: comment,
				Err:  fmt.Errorf("invalid folder name %q", comment),
			})
			continue
		}

		if _, err := c.ws.EnsureFolder(comment); err != nil {
			c.notify.fail("Row %d: failed to create folder %s: %v", row.Number, comment, err)
			result.Failures = append(result.Failures, Failure{Name: comment, Err: err})
			continue
		}
		if !comments[comment] {
			comments[comment] = true
			result.CommentFolders = append(result.CommentFolders, comment)
		}

		for _, name := range row.Targets() {
			if keep[name] {
				c.notify.fail("Folder not found: %s", name)
				result.NotFound = append(result.NotFound, name)
				continue
			}
			c.moveFolder(name, comment, result, moved)
		}
	}

	for name := range moved {
		result.MovedFolders = append(result.MovedFolders, name)
	}
	slices.Sort(result.MovedFolders)

	result.RemainingFolders = domain.Remaining(allAtStart, moved)
	if len(result.RemainingFolders) > 0 {
		c.notify.warn("The following folders were not moved:")
		for _, name := range result.RemainingFolders {
			c.notify.info("- %s", name)
		}
	} else {
		c.notify.success("All folders have been successfully grouped!")
	}

	result.Message = fmt.Sprintf("Grouped %d folder(s) into %d comment folder(s), %d not moved",
		len(result.MovedFolders), len(result.CommentFolders), len(result.RemainingFolders))
	return result, nil
}

func (c *GroupCommand) moveFolder(name, comment string, result *GroupResult, moved map[string]bool) {
	if name == comment {
		c.notify.fail("Cannot move %s into itself", name)
		result.Failures = append(result.Failures, Failure{
			Name: name,
			Err:  fmt.Errorf("folder %q is its own comment folder", name),
		})
		return
	}

	if !domain.IsPlainName(name) || !c.ws.Exists(name) {
		c.notify.fail("Folder not found: %s", name)
		result.NotFound = append(result.NotFound, name)
		return
	}

	dst, err := c.ws.MoveInto(name, comment)
	if err != nil {
		c.notify.fail("Failed to move %s: %v", name, err)
		result.Failures = append(result.Failures, Failure{Name: name, Err: err})
		return
	}

	moved[name] = true
	result.Moves = append(result.Moves, domain.MoveRecord{
		Phase:       domain.PhaseGroup,
		Name:        name,
		Destination: comment,
	})
	c.notify.success("Moved: %s → %s", name, filepath.Dir(dst))
}

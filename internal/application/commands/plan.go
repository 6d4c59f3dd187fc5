package commands

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"plotsort/internal/application"
	"plotsort/internal/domain"
	"plotsort/internal/ports"
)

// PlannedFile describes what the prefix pass would do with one file
type PlannedFile struct {
	Name   string
	Prefix string // Empty when the file would be skipped
}

// PlannedTarget is one folder token of a spreadsheet row
type PlannedTarget struct {
	Name      string
	Found     bool
	ClaimedBy int // Row that already moved the folder away, 0 if none
}

// PlannedRow describes what the grouping pass would do with one row
type PlannedRow struct {
	Number  int
	Comment string
	Skipped bool
	Targets []PlannedTarget
}

// PlanResult is a dry-run projection of both passes
type PlanResult struct {
	Files     []PlannedFile
	Rows      []PlannedRow
	Remaining []string
	Grouped   bool // False when no spreadsheet was given
	Message   string
}

// PlanCommand projects the outcome of a run without touching the filesystem
type PlanCommand struct {
	ws              ports.Workspace
	reader          ports.SheetReader
	SpreadsheetPath string // Optional; the grouping projection is skipped when empty
}

// NewPlanCommand creates a new PlanCommand
func NewPlanCommand(ws ports.Workspace, reader ports.SheetReader, spreadsheetPath string) *PlanCommand {
	return &PlanCommand{
		ws:              ws,
		reader:          reader,
		SpreadsheetPath: spreadsheetPath,
	}
}

// Execute runs the plan command
func (c *PlanCommand) Execute(ctx context.Context) (*PlanResult, error) {
	entries, err := c.ws.ListEntries()
	if err != nil {
		return nil, fmt.Errorf("failed to list source folder: %w", err)
	}

	// A spreadsheet kept in the source folder is left out of both passes
	var kept string
	if c.SpreadsheetPath != "" {
		kept, _ = spreadsheetEntry(c.ws.Root(), c.SpreadsheetPath)
	}

	result := &PlanResult{}

	// Entries expected at the top level once the prefix pass is done
	present := make(map[string]bool)
	var projected []string
	addPresent := func(name string) {
		if !present[name] {
			present[name] = true
			projected = append(projected, name)
		}
	}

	for _, entry := range entries {
		if !entry.IsRegular && entry.Name != kept {
			addPresent(entry.Name)
		}
	}

	var files []string
	for _, entry := range domain.RegularFiles(entries) {
		if entry.Name != kept {
			files = append(files, entry.Name)
		}
	}
	groups, skipped := domain.GroupByPrefix(files)
	for _, group := range groups {
		addPresent(group.Key)
		for _, name := range group.Files {
			result.Files = append(result.Files, PlannedFile{Name: name, Prefix: group.Key})
		}
	}
	for _, name := range skipped {
		addPresent(name)
		result.Files = append(result.Files, PlannedFile{Name: name})
	}
	slices.SortFunc(result.Files, func(a, b PlannedFile) int {
		return strings.Compare(a.Name, b.Name)
	})

	if c.SpreadsheetPath == "" {
		result.Message = fmt.Sprintf("%d file(s) would be organized by prefix", len(result.Files))
		return result, nil
	}

	if err := application.ValidateSpreadsheet(c.SpreadsheetPath); err != nil {
		return nil, err
	}
	table, err := c.reader.ReadTable(c.SpreadsheetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet: %w", err)
	}
	if missing := table.MissingColumns(); len(missing) > 0 {
		return nil, &application.MissingColumnsError{Missing: missing}
	}

	result.Grouped = true
	snapshot := append([]string(nil), projected...)

	// exists tracks the top level as rows are applied in order: a moved folder
	// disappears and a comment folder appears, possibly re-creating a moved name
	exists := make(map[string]bool, len(projected))
	for _, name := range projected {
		exists[name] = true
	}
	movedBy := make(map[string]int)
	moved := make(map[string]bool)

	for _, row := range table.SheetRows() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		planned := PlannedRow{Number: row.Number, Comment: row.Comment.Value}
		if !row.HasComment() || !domain.IsPlainName(row.Comment.Value) {
			planned.Skipped = true
			result.Rows = append(result.Rows, planned)
			continue
		}
		comment := row.Comment.Value
		exists[comment] = true

		for _, name := range row.Targets() {
			target := PlannedTarget{Name: name}
			if name != comment && exists[name] && domain.IsPlainName(name) {
				target.Found = true
				exists[name] = false
				movedBy[name] = row.Number
				moved[name] = true
			} else {
				target.ClaimedBy = movedBy[name]
			}
			planned.Targets = append(planned.Targets, target)
		}
		result.Rows = append(result.Rows, planned)
	}

	result.Remaining = domain.Remaining(snapshot, moved)
	result.Message = fmt.Sprintf("%d file(s) would be organized, %d folder(s) grouped, %d left over",
		len(result.Files), len(moved), len(result.Remaining))
	return result, nil
}

package domain

import (
	"slices"
	"strings"
)

// Column names, matched after trimming and lower-casing the header row
const (
	ColumnB28      = "4g nomenclature b28"
	ColumnB01      = "4g nomenclature b01"
	ColumnB41      = "4g nomenclature b41"
	ColumnComments = "comments"
)

// RequiredColumns lists every column a grouping spreadsheet must carry
var RequiredColumns = []string{ColumnB28, ColumnB01, ColumnB41, ColumnComments}

// FolderListSeparator splits a folder-list cell into tokens
const FolderListSeparator = ", "

// Table is the raw content of a spreadsheet: one header row and data rows.
// Rows may be shorter than the header when trailing cells are empty.
type Table struct {
	Header []string
	Rows   [][]string
}

// Cell is a single spreadsheet value; an empty cell is not Present
type Cell struct {
	Value   string
	Present bool
}

// SheetRow is one data row of a grouping spreadsheet
type SheetRow struct {
	Number  int // 1-based spreadsheet row, header is row 1
	Comment Cell
	B28     Cell
	B01     Cell
	B41     Cell
}

// HasComment reports whether the row carries a usable comment
func (r SheetRow) HasComment() bool {
	return r.Comment.Present && strings.TrimSpace(r.Comment.Value) != ""
}

// Targets returns the de-duplicated union of the row's folder-list cells,
// in first-seen order across b28, b01, b41.
func (r SheetRow) Targets() []string {
	seen := make(map[string]bool)
	var targets []string
	for _, cell := range []Cell{r.B28, r.B01, r.B41} {
		for _, name := range ParseFolderList(cell) {
			if seen[name] {
				continue
			}
			seen[name] = true
			targets = append(targets, name)
		}
	}
	return targets
}

// ParseFolderList splits a folder-list cell on ", " and drops duplicates.
// A missing cell yields no tokens.
func ParseFolderList(c Cell) []string {
	if !c.Present {
		return nil
	}
	seen := make(map[string]bool)
	var names []string
	for _, name := range strings.Split(c.Value, FolderListSeparator) {
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// NormalizeHeader trims and lower-cases a header cell
func NormalizeHeader(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ColumnIndex maps normalized header names to their first position
func (t *Table) ColumnIndex() map[string]int {
	index := make(map[string]int, len(t.Header))
	for i, name := range t.Header {
		key := NormalizeHeader(name)
		if _, ok := index[key]; !ok {
			index[key] = i
		}
	}
	return index
}

// MissingColumns returns the required columns absent from the header
func (t *Table) MissingColumns() []string {
	index := t.ColumnIndex()
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

// SheetRows converts the table's data rows into SheetRows.
// Callers must check MissingColumns first; absent columns read as missing cells.
func (t *Table) SheetRows() []SheetRow {
	index := t.ColumnIndex()
	cell := func(row []string, col string) Cell {
		i, ok := index[col]
		if !ok || i >= len(row) || row[i] == "" {
			return Cell{}
		}
		return Cell{Value: row[i], Present: true}
	}

	rows := make([]SheetRow, 0, len(t.Rows))
	for n, row := range t.Rows {
		rows = append(rows, SheetRow{
			Number:  n + 2,
			Comment: cell(row, ColumnComments),
			B28:     cell(row, ColumnB28),
			B01:     cell(row, ColumnB01),
			B41:     cell(row, ColumnB41),
		})
	}
	return rows
}

// Remaining returns the names in all that were never moved, sorted
func Remaining(all []string, moved map[string]bool) []string {
	var remaining []string
	for _, name := range all {
		if !moved[name] {
			remaining = append(remaining, name)
		}
	}
	slices.Sort(remaining)
	return slices.Compact(remaining)
}

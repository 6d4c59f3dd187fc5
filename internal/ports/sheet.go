package ports

import "plotsort/internal/domain"

// SheetReader loads the first worksheet of a spreadsheet file
type SheetReader interface {
	// ReadTable returns the header row and data rows of the file at path
	ReadTable(path string) (*domain.Table, error)
}

package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"plotsort/internal/application"
	"plotsort/internal/domain"
)

const utf8BOM = "\ufeff"

// Reader loads the first worksheet of .xlsx/.xlsm workbooks and .csv files
type Reader struct{}

// NewReader creates a new spreadsheet reader
func NewReader() *Reader {
	return &Reader{}
}

// ReadTable returns the first row as the header and the rest as data rows
func (r *Reader) ReadTable(path string) (*domain.Table, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return readWorkbook(path)
	case ".csv":
		return readCSV(path)
	case ".xls":
		return nil, fmt.Errorf("%w: legacy .xls workbooks must be saved as .xlsx", application.ErrUnsupported)
	default:
		return nil, fmt.Errorf("%w: %q", application.ErrUnsupported, ext)
	}
}

func readWorkbook(path string) (*domain.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &domain.Table{}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return toTable(rows), nil
}

func readCSV(path string) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], utf8BOM)
	}
	return toTable(rows), nil
}

func toTable(rows [][]string) *domain.Table {
	if len(rows) == 0 {
		return &domain.Table{}
	}
	return &domain.Table{Header: rows[0], Rows: rows[1:]}
}

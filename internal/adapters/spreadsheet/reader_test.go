package spreadsheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"plotsort/internal/application"
	"plotsort/internal/domain"
)

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "sites.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadTable_Workbook(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{" 4G Nomenclature B28 ", "4G Nomenclature B01", "4G Nomenclature B41", "Comments"},
		{"f1, f2", "", "", "Group1"},
		{"", "f3", "", "Group2"},
		{"f4"},
	})

	table, err := NewReader().ReadTable(path)
	require.NoError(t, err)

	assert.Empty(t, table.MissingColumns())
	rows := table.SheetRows()
	require.Len(t, rows, 3)

	assert.Equal(t, 2, rows[0].Number)
	assert.Equal(t, []string{"f1", "f2"}, rows[0].Targets())
	assert.Equal(t, "Group1", rows[0].Comment.Value)

	assert.Equal(t, []string{"f3"}, rows[1].Targets())
	assert.False(t, rows[2].HasComment())
}

func TestReadTable_WorkbookNumericCells(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"4g nomenclature b28", "4g nomenclature b01", "4g nomenclature b41", "comments"},
		{1234, nil, nil, 42},
	})

	table, err := NewReader().ReadTable(path)
	require.NoError(t, err)

	rows := table.SheetRows()
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"1234"}, rows[0].Targets())
	assert.Equal(t, "42", rows[0].Comment.Value)
}

func TestReadTable_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sites.csv")
	content := "\ufeff4G Nomenclature B28,4G Nomenclature B01,4G Nomenclature B41,Comments\n" +
		"\"f1, f2\",,,Group1\n" +
		",f3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	table, err := NewReader().ReadTable(path)
	require.NoError(t, err)

	assert.Equal(t, "4G Nomenclature B28", table.Header[0])
	assert.Empty(t, table.MissingColumns())

	rows := table.SheetRows()
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"f1", "f2"}, rows[0].Targets())
	assert.Equal(t, domain.Cell{}, rows[1].Comment)
}

func TestReadTable_Unsupported(t *testing.T) {
	tests := []string{"sites.xls", "sites.ods", "sites"}

	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewReader().ReadTable(filepath.Join(t.TempDir(), name))
			assert.ErrorIs(t, err, application.ErrUnsupported)
		})
	}
}

func TestReadTable_EmptyCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	table, err := NewReader().ReadTable(path)
	require.NoError(t, err)
	assert.Len(t, table.MissingColumns(), len(domain.RequiredColumns))
}

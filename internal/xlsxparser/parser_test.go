package xlsxparser

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/highlinecommerce/packiyo-po-converter/internal/config"
	"github.com/highlinecommerce/packiyo-po-converter/internal/csvparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// workbook builds an in-memory workbook with one sheet per entry.
func workbook(t *testing.T, sheets map[string][][]interface{}, order ...string) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	return f
}

func TestIsWorkbook(t *testing.T) {
	assert.True(t, IsWorkbook("inventory.xlsx"))
	assert.True(t, IsWorkbook("INVENTORY.XLSX"))
	assert.True(t, IsWorkbook("inventory.xlsm"))
	assert.False(t, IsWorkbook("inventory.csv"))
	assert.False(t, IsWorkbook("inventory"))
}

func TestParseFirstSheet(t *testing.T) {
	f := workbook(t, map[string][][]interface{}{
		"Export": {
			{"SKU", "Location", "On hand (current)"},
			{"A1", "Main", 5},
			{"A2", "Outlet", "not stocked"},
		},
	}, "Export")
	defer f.Close()

	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)

	data, err := Parse(&buf, config.XLSXSettings{})
	require.NoError(t, err)

	assert.Equal(t, []string{"SKU", "Location", "On hand (current)"}, data.Headers)
	assert.Equal(t, 2, data.RowCount)
	assert.Equal(t, "5", data.Rows[0]["On hand (current)"])
	assert.Equal(t, "not stocked", data.Rows[1]["On hand (current)"])
}

func TestParseNamedSheet(t *testing.T) {
	f := workbook(t, map[string][][]interface{}{
		"Notes":     {{"ignore me"}},
		"Inventory": {{"SKU"}, {"B7"}},
	}, "Notes", "Inventory")
	defer f.Close()

	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)

	data, err := Parse(bytes.NewReader(buf.Bytes()), config.XLSXSettings{Sheet: "Inventory"})
	require.NoError(t, err)
	assert.Equal(t, "B7", data.Rows[0]["SKU"])

	_, err = Parse(bytes.NewReader(buf.Bytes()), config.XLSXSettings{Sheet: "Missing"})
	assert.ErrorIs(t, err, csvparser.ErrMalformedInput)
}

func TestParseFile(t *testing.T) {
	f := workbook(t, map[string][][]interface{}{
		"Sheet": {{"SKU", "Location"}, {"A1", "Main"}},
	}, "Sheet")
	path := filepath.Join(t.TempDir(), "inventory.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	data, err := ParseFile(path, config.XLSXSettings{})
	require.NoError(t, err)
	assert.Equal(t, path, data.SourceFile)
	assert.Equal(t, "Main", data.Rows[0]["Location"])
}

func TestParseRejectsNonWorkbook(t *testing.T) {
	_, err := Parse(bytes.NewReader([]byte("SKU,Location\n")), config.XLSXSettings{})
	assert.ErrorIs(t, err, csvparser.ErrMalformedInput)
}

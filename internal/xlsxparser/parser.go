// =============================================================================
// Packiyo PO Converter - XLSX Parser
// =============================================================================
//
// Shopify exports are CSV, but they are often opened and re-saved in Excel
// before they reach us. This module reads such a workbook and returns the
// same table shape the CSV parser produces, so the rest of the pipeline does
// not care which format arrived.
//
// SHEET SELECTION:
//   - The sheet named in xlsx_settings.sheet, if set
//   - Otherwise the first sheet in the workbook
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/highlinecommerce/packiyo-po-converter/internal/config"
	"github.com/highlinecommerce/packiyo-po-converter/internal/csvparser"
	"github.com/xuri/excelize/v2"
)

// IsWorkbook reports whether path looks like an Excel workbook.
func IsWorkbook(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	default:
		return false
	}
}

// ParseFile reads the inventory sheet of an XLSX file.
//
// PARAMETERS:
//   - filePath: The path to the workbook.
//   - settings: Sheet selection.
//
// RETURNS:
//   - The parsed data.
//   - An error wrapping csvparser.ErrMalformedInput if the workbook cannot be
//     opened or the sheet cannot be read.
func ParseFile(filePath string, settings config.XLSXSettings) (*csvparser.CSVData, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open workbook: %v", csvparser.ErrMalformedInput, err)
	}
	defer f.Close()

	data, err := parseWorkbook(f, settings)
	if err != nil {
		return nil, err
	}
	data.SourceFile = filePath
	return data, nil
}

// Parse reads the inventory sheet of an XLSX stream.
func Parse(r io.Reader, settings config.XLSXSettings) (*csvparser.CSVData, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open workbook: %v", csvparser.ErrMalformedInput, err)
	}
	defer f.Close()

	return parseWorkbook(f, settings)
}

// parseWorkbook picks the sheet and converts its rows.
func parseWorkbook(f *excelize.File, settings config.XLSXSettings) (*csvparser.CSVData, error) {
	sheetName := settings.Sheet
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	if sheetName == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", csvparser.ErrMalformedInput)
	}

	if index, err := f.GetSheetIndex(sheetName); err != nil || index < 0 {
		return nil, fmt.Errorf("%w: sheet %q not found", csvparser.ErrMalformedInput, sheetName)
	}

	// GetRows returns formatted cell text, which is what a CSV export of
	// the same sheet would contain.
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read rows: %v", csvparser.ErrMalformedInput, err)
	}

	// Trailing empty cells are dropped by excelize; the CSV builder pads
	// short rows, so only the header width matters here.
	return csvparser.FromRecords(rows)
}

// =============================================================================
// Packiyo PO Converter - Purchase Order Writer
// =============================================================================
//
// This module serializes purchase order lines for Packiyo's import.
//
// FORMATS:
//   - csv:  the import format Packiyo accepts. Header row first, "\n" line
//           endings, fields quoted only when needed.
//   - xlsx: the same rows on a "Purchase Order" sheet, for review in Excel.
//
// The writers are deterministic: the same lines always produce the same
// CSV bytes.
//
// =============================================================================

package powriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/highlinecommerce/packiyo-po-converter/internal/config"
	"github.com/highlinecommerce/packiyo-po-converter/internal/types"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet written by WriteXLSX.
const SheetName = "Purchase Order"

// Write serializes lines in the given format ("csv" or "xlsx").
func Write(w io.Writer, lines []types.PurchaseOrderLine, format string) error {
	switch format {
	case config.FormatCSV, "":
		return WriteCSV(w, lines)
	case config.FormatXLSX:
		return WriteXLSX(w, lines)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// Extension returns the file extension for a format, including the dot.
func Extension(format string) string {
	if format == config.FormatXLSX {
		return ".xlsx"
	}
	return ".csv"
}

// WriteCSV writes the header and one record per line.
func WriteCSV(w io.Writer, lines []types.PurchaseOrderLine) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(types.OutputHeaders); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, line := range lines {
		if err := writer.Write(line.Record()); err != nil {
			return fmt.Errorf("failed to write line %d: %w", i+1, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// WriteXLSX writes the same table as WriteCSV into a workbook. Quantities
// are stored as numbers; every other cell is text.
func WriteXLSX(w io.Writer, lines []types.PurchaseOrderLine) error {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(types.OutputHeaders))
	for i, h := range types.OutputHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, line := range lines {
		record := line.Record()
		row := make([]interface{}, len(record))
		for j, cell := range record {
			row[j] = cell
		}
		// quantity column
		row[6] = line.Quantity

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write line %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

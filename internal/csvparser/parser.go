// =============================================================================
// Packiyo PO Converter - CSV Parser Module
// =============================================================================
//
// This module parses Shopify inventory exports. It handles:
//   - Different delimiters (comma, semicolon, tab)
//   - UTF-8 byte order marks and legacy single-byte encodings
//   - Blank lines and short rows
//   - Duplicate or empty header cells
//
// The parser only shapes the file into a table. It does not check which
// columns are present; that is the validation module's job.
//
// =============================================================================

package csvparser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/highlinecommerce/packiyo-po-converter/internal/config"
	"github.com/highlinecommerce/packiyo-po-converter/internal/types"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrMalformedInput is returned when the file cannot be read as delimited
// data at all.
var ErrMalformedInput = errors.New("malformed input file")

// =============================================================================
// CSV DATA STRUCTURE
// =============================================================================

// CSVData represents a parsed inventory export.
type CSVData struct {
	// Headers contains the column headers, cleaned and de-duplicated.
	Headers []string

	// Rows contains the data rows as maps of header -> value.
	// Values are kept exactly as read.
	Rows []map[string]string

	// RowNumbers holds the 1-based source line of each entry in Rows.
	RowNumbers []int

	// SourceFile is the path to the source file, if any.
	SourceFile string

	// RowCount is the number of data rows (excluding the header).
	RowCount int

	// ColumnCount is the number of columns.
	ColumnCount int
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ParseFile opens a CSV file and parses it.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: Delimiter and encoding settings.
//
// RETURNS:
//   - The parsed data.
//   - An error if the file cannot be opened, or ErrMalformedInput (wrapped)
//     if it cannot be parsed.
func ParseFile(filePath string, settings config.CSVSettings) (*CSVData, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := Parse(file, settings)
	if err != nil {
		return nil, err
	}
	data.SourceFile = filePath
	return data, nil
}

// Parse reads CSV data from r.
//
// PARSING PROCESS:
//   1. Decode the byte stream (strip BOM, convert legacy encodings)
//   2. Configure the CSV reader with the delimiter
//   3. Read every record, remembering its source line
//   4. Build the header and row maps
func Parse(r io.Reader, settings config.CSVSettings) (*CSVData, error) {
	decoder, err := decoderFor(settings.Encoding)
	if err != nil {
		return nil, err
	}

	csvReader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(decoder.NewDecoder())))
	configureReader(csvReader, settings)

	var records [][]string
	var lines []int
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		line, _ := csvReader.FieldPos(0)
		records = append(records, record)
		lines = append(lines, line)
	}

	return build(records, lines)
}

// FromRecords builds CSVData from rows that were read by another source,
// such as a spreadsheet. The first record is the header; line numbers are
// the record positions.
func FromRecords(records [][]string) (*CSVData, error) {
	lines := make([]int, len(records))
	for i := range records {
		lines[i] = i + 1
	}
	return build(records, lines)
}

// decoderFor maps a configured encoding name to a text decoder.
func decoderFor(name string) (encoding.Encoding, error) {
	switch strings.ToUpper(strings.ReplaceAll(name, "_", "-")) {
	case "", "UTF-8", "UTF8":
		return unicode.UTF8, nil
	case "WINDOWS-1252", "CP1252":
		return charmap.Windows1252, nil
	case "ISO-8859-1", "LATIN1", "LATIN-1":
		return charmap.ISO8859_1, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	switch settings.Delimiter {
	case "\\t", "\t", "tab", "TAB":
		reader.Comma = '\t'
	case ";", "semicolon":
		reader.Comma = ';'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	default:
		if len(settings.Delimiter) > 0 {
			reader.Comma = rune(settings.Delimiter[0])
		} else {
			reader.Comma = ','
		}
	}

	// Short rows are padded in build; long rows are rejected there.
	reader.FieldsPerRecord = -1

	// Shopify exports occasionally carry stray quotes in titles.
	reader.LazyQuotes = true

	reader.ReuseRecord = false
}

// build turns raw records into CSVData.
func build(records [][]string, lines []int) (*CSVData, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no columns to parse from file", ErrMalformedInput)
	}

	headers := cleanHeaders(records[0])

	data := &CSVData{
		Headers:     headers,
		Rows:        make([]map[string]string, 0, len(records)-1),
		RowNumbers:  make([]int, 0, len(records)-1),
		ColumnCount: len(headers),
	}

	for i := 1; i < len(records); i++ {
		row := records[i]

		if isRowEmpty(row) {
			continue
		}

		if len(row) > len(headers) {
			return nil, fmt.Errorf("%w: line %d: expected %d fields, saw %d",
				ErrMalformedInput, lines[i], len(headers), len(row))
		}

		rowMap := make(map[string]string, len(headers))
		for colIndex, header := range headers {
			if colIndex < len(row) {
				rowMap[header] = row[colIndex]
			} else {
				rowMap[header] = ""
			}
		}

		data.Rows = append(data.Rows, rowMap)
		data.RowNumbers = append(data.RowNumbers, lines[i])
	}

	data.RowCount = len(data.Rows)
	return data, nil
}

// cleanHeaders keeps header cells as written (no trimming, so " SKU" is not
// "SKU"), names empty ones "Unnamed: N" (0-based) and suffixes repeats with ".1", ".2", ... so every column stays addressable
// and a duplicated column shows up as an unexpected one.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	seen := make(map[string]int, len(headers))

	for i, header := range headers {
		if header == "" {
			header = fmt.Sprintf("Unnamed: %d", i)
		}

		if n, dup := seen[header]; dup {
			seen[header] = n + 1
			header = fmt.Sprintf("%s.%d", header, n+1)
		} else {
			seen[header] = 0
		}

		cleaned[i] = header
	}

	return cleaned
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// InventoryRows projects the parsed table onto the columns the conversion
// reads. Headers must already have been validated.
func InventoryRows(data *CSVData) []types.InventoryRow {
	rows := make([]types.InventoryRow, len(data.Rows))
	for i, row := range data.Rows {
		rows[i] = types.InventoryRow{
			Location:      row[types.ColumnLocation],
			SKU:           row[types.ColumnSKU],
			OnHandCurrent: row[types.ColumnOnHandCurrent],
			RowNumber:     data.RowNumbers[i],
		}
	}
	return rows
}

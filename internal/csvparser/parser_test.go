package csvparser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/highlinecommerce/packiyo-po-converter/internal/config"
	"github.com/highlinecommerce/packiyo-po-converter/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultSettings = config.CSVSettings{Delimiter: ",", Encoding: "UTF-8"}

func TestParseBasic(t *testing.T) {
	input := "SKU,Location,On hand (current)\nA1,Main,5\nA2,Outlet,not stocked\n"

	data, err := Parse(strings.NewReader(input), defaultSettings)
	require.NoError(t, err)

	assert.Equal(t, []string{"SKU", "Location", "On hand (current)"}, data.Headers)
	assert.Equal(t, 2, data.RowCount)
	assert.Equal(t, 3, data.ColumnCount)
	assert.Equal(t, "A2", data.Rows[1]["SKU"])
	assert.Equal(t, "not stocked", data.Rows[1]["On hand (current)"])
	assert.Equal(t, []int{2, 3}, data.RowNumbers)
}

func TestParseStripsBOM(t *testing.T) {
	input := "\xEF\xBB\xBFSKU,Location\nA1,Main\n"

	data, err := Parse(strings.NewReader(input), defaultSettings)
	require.NoError(t, err)

	assert.Equal(t, "SKU", data.Headers[0])
}

func TestParseKeepsCellValuesRaw(t *testing.T) {
	input := "SKU,On hand (current)\n 007 , 3.50 \n"

	data, err := Parse(strings.NewReader(input), defaultSettings)
	require.NoError(t, err)

	assert.Equal(t, " 007 ", data.Rows[0]["SKU"])
	assert.Equal(t, " 3.50 ", data.Rows[0]["On hand (current)"])
}

func TestParseHeaderCleanup(t *testing.T) {
	input := "SKU,,SKU,SKU, SKU \na,b,c,d,e\n"

	data, err := Parse(strings.NewReader(input), defaultSettings)
	require.NoError(t, err)

	assert.Equal(t, []string{"SKU", "Unnamed: 1", "SKU.1", "SKU.2", " SKU "}, data.Headers)
	assert.Equal(t, "c", data.Rows[0]["SKU.1"])
	assert.Equal(t, "e", data.Rows[0][" SKU "])
}

func TestParseRowShapes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantRows int
		wantErr  bool
	}{
		{
			name:     "short rows are padded",
			input:    "a,b,c\n1\n",
			wantRows: 1,
		},
		{
			name:     "blank and all-empty rows are skipped",
			input:    "a,b\n\n,\n1,2\n",
			wantRows: 1,
		},
		{
			name:    "long rows are malformed",
			input:   "a,b\n1,2,3\n",
			wantErr: true,
		},
		{
			name:    "empty file is malformed",
			input:   "",
			wantErr: true,
		},
		{
			name:     "header only",
			input:    "a,b\n",
			wantRows: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Parse(strings.NewReader(tt.input), defaultSettings)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRows, data.RowCount)
		})
	}
}

func TestParseShortRowPaddedWithEmpty(t *testing.T) {
	data, err := Parse(strings.NewReader("a,b,c\n1\n"), defaultSettings)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"a": "1", "b": "", "c": ""}, data.Rows[0])
}

func TestParseDelimiters(t *testing.T) {
	tests := []struct {
		delimiter string
		input     string
	}{
		{";", "a;b\n1;2\n"},
		{"\\t", "a\tb\n1\t2\n"},
		{"tab", "a\tb\n1\t2\n"},
		{"|", "a|b\n1|2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.delimiter, func(t *testing.T) {
			data, err := Parse(strings.NewReader(tt.input), config.CSVSettings{Delimiter: tt.delimiter})
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, data.Headers)
			assert.Equal(t, "2", data.Rows[0]["b"])
		})
	}
}

func TestParseWindows1252(t *testing.T) {
	// "Café" with 0xE9 for é.
	input := "Location\nCaf\xE9\n"

	data, err := Parse(strings.NewReader(input), config.CSVSettings{Encoding: "Windows-1252"})
	require.NoError(t, err)

	assert.Equal(t, "Café", data.Rows[0]["Location"])
}

func TestParseUnsupportedEncoding(t *testing.T) {
	_, err := Parse(strings.NewReader("a\n1\n"), config.CSVSettings{Encoding: "EBCDIC"})
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.csv")
	require.NoError(t, os.WriteFile(path, []byte("SKU\nA1\n"), 0o644))

	data, err := ParseFile(path, defaultSettings)
	require.NoError(t, err)
	assert.Equal(t, path, data.SourceFile)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.csv"), defaultSettings)
	assert.Error(t, err)
}

func TestFromRecords(t *testing.T) {
	data, err := FromRecords([][]string{{"SKU", "Location"}, {"A1", "Main"}})
	require.NoError(t, err)

	assert.Equal(t, 1, data.RowCount)
	assert.Equal(t, []int{2}, data.RowNumbers)

	_, err = FromRecords(nil)
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestInventoryRows(t *testing.T) {
	input := "SKU,Location,On hand (current),Title\nA1,Main,5,Shirt\n,Outlet,,Hat\n"

	data, err := Parse(strings.NewReader(input), defaultSettings)
	require.NoError(t, err)

	rows := InventoryRows(data)
	assert.Equal(t, []types.InventoryRow{
		{Location: "Main", SKU: "A1", OnHandCurrent: "5", RowNumber: 2},
		{Location: "Outlet", SKU: "", OnHandCurrent: "", RowNumber: 3},
	}, rows)
}

package powriter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/highlinecommerce/packiyo-po-converter/internal/config"
	"github.com/highlinecommerce/packiyo-po-converter/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleLines() []types.PurchaseOrderLine {
	return []types.PurchaseOrderLine{
		{
			PurchaseOrderNumber: "PO1",
			Status:              types.StatusPending,
			Warehouse:           "Ohio Warehouse",
			Customer:            "Acme, Inc.",
			SKU:                 "X-1",
			Quantity:            12,
			ExpectedAt:          "03/05/2024 12:00:00",
		},
		{
			PurchaseOrderNumber: "PO1",
			Status:              types.StatusPending,
			Warehouse:           "Ohio Warehouse",
			Customer:            "Acme, Inc.",
			SKU:                 `Y "2"`,
			Quantity:            -1,
			ExpectedAt:          "03/05/2024 12:00:00",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleLines()))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(types.OutputHeaders, ","), lines[0])
	assert.Equal(t, `PO1,Pending,Ohio Warehouse,"Acme, Inc.",,X-1,12,,,03/05/2024 12:00:00,,`, lines[1])
	assert.Equal(t, `PO1,Pending,Ohio Warehouse,"Acme, Inc.",,"Y ""2""",-1,,,03/05/2024 12:00:00,,`, lines[2])
}

func TestWriteCSVHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	assert.Equal(t, strings.Join(types.OutputHeaders, ",")+"\n", buf.String())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleLines()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, types.OutputHeaders, rows[0])
	assert.Equal(t, "X-1", rows[1][5])
	assert.Equal(t, "12", rows[1][6])

	cellType, err := f.GetCellType(SheetName, "G2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, cellType)
}

func TestWriteDispatch(t *testing.T) {
	var csvBuf, xlsxBuf bytes.Buffer

	require.NoError(t, Write(&csvBuf, sampleLines(), config.FormatCSV))
	assert.True(t, strings.HasPrefix(csvBuf.String(), "purchase_order_number,"))

	require.NoError(t, Write(&xlsxBuf, sampleLines(), config.FormatXLSX))
	assert.True(t, bytes.HasPrefix(xlsxBuf.Bytes(), []byte("PK")))

	assert.Error(t, Write(&bytes.Buffer{}, sampleLines(), "json"))
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".csv", Extension(config.FormatCSV))
	assert.Equal(t, ".xlsx", Extension(config.FormatXLSX))
	assert.Equal(t, ".csv", Extension(""))
}

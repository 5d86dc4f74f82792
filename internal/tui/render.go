package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/highlinecommerce/packiyo-po-converter/internal/converter"
	"github.com/highlinecommerce/packiyo-po-converter/internal/types"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultPreviewRows is how many lines RenderPreview shows when no limit
// is given.
const DefaultPreviewRows = 20

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
	headerCellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF")).
			Padding(0, 1)
	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)
	numberCellStyle = cellStyle.
			Align(lipgloss.Right)
)

var printer = message.NewPrinter(language.English)

// FormatCount renders n with thousands separators, e.g. 1234567 -> "1,234,567".
func FormatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

// SummaryLine is the one-line conversion summary shown after a run.
func SummaryLine(stats converter.Stats, warehouse string) string {
	return fmt.Sprintf("%s unique SKUs · %s total units · Warehouse: %s",
		FormatCount(int64(stats.UniqueSKUs)), FormatCount(stats.TotalUnits), warehouse)
}

// RenderSummary draws SummaryLine in a box, with a note when some on-hand
// values were counted as zero.
func RenderSummary(stats converter.Stats, warehouse string) string {
	content := SummaryLine(stats, warehouse)
	if stats.NonNumeric > 0 {
		content += "\n" + hintStyle.Render(fmt.Sprintf(
			"%s row(s) had no numeric on-hand value and counted as 0",
			FormatCount(int64(stats.NonNumeric))))
	}
	return boxStyle.Render(content)
}

// previewColumns are the purchase order columns worth showing in a
// terminal; the rest repeat request values or are blank.
var previewColumns = []string{"purchase_order_number", "warehouse", "sku", "quantity", "expected_at"}

// RenderPreview draws the first limit lines of a purchase order as a table.
// A limit of zero or less means DefaultPreviewRows.
func RenderPreview(lines []types.PurchaseOrderLine, limit int) string {
	if limit <= 0 {
		limit = DefaultPreviewRows
	}

	shown := lines
	if len(shown) > limit {
		shown = shown[:limit]
	}

	rows := make([][]string, len(shown))
	for i, line := range shown {
		rows[i] = []string{
			line.PurchaseOrderNumber,
			line.Warehouse,
			line.SKU,
			FormatCount(line.Quantity),
			line.ExpectedAt,
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerCellStyle
			case previewColumns[col] == "quantity":
				return numberCellStyle
			default:
				return cellStyle
			}
		}).
		Headers(previewColumns...).
		Rows(rows...)

	out := t.Render()
	if rest := len(lines) - len(shown); rest > 0 {
		out += "\n" + hintStyle.Render(fmt.Sprintf("... and %s more line(s)", FormatCount(int64(rest))))
	}
	return out
}

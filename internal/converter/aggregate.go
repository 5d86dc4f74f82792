package converter

import (
	"errors"
	"fmt"

	"github.com/highlinecommerce/packiyo-po-converter/internal/types"
)

// ErrQuantityOutOfRange is returned when an on-hand value, or a per-SKU
// sum, does not fit in an int64.
var ErrQuantityOutOfRange = errors.New("on-hand quantity out of range")

// Stats summarizes one aggregation.
type Stats struct {
	// RowsLoaded is the number of data rows in the export.
	RowsLoaded int

	// FilteredRows is the number of rows at the selected locations.
	FilteredRows int

	// NonNumeric counts filtered rows whose on-hand value coerced to zero
	// without parsing.
	NonNumeric int

	// UniqueSKUs is the number of output lines.
	UniqueSKUs int

	// TotalUnits is the sum of all output quantities.
	TotalUnits int64
}

// Aggregate sums on-hand quantities per SKU across the selected locations.
//
// Rows at other locations are ignored; a location that matches nothing
// simply contributes nothing. Lines come out in the order each SKU first
// appears among the kept rows, which mirrors the export's own ordering.
// An empty selection result is an empty slice, not an error.
//
// RETURNS:
//   - The aggregated lines.
//   - ErrQuantityOutOfRange (wrapped, naming the row and SKU) if a selected
//     cell or a SKU total does not fit in an int64.
func Aggregate(rows []types.InventoryRow, locations []string) ([]types.AggregatedLine, error) {
	lines, _, err := aggregate(rows, locations)
	return lines, err
}

// aggregate does the work of Aggregate and also returns statistics.
func aggregate(rows []types.InventoryRow, locations []string) ([]types.AggregatedLine, Stats, error) {
	stats := Stats{RowsLoaded: len(rows)}

	selected := make(map[string]bool, len(locations))
	for _, loc := range locations {
		selected[loc] = true
	}

	// Group by SKU while remembering first appearance.
	totals := make(map[string]int64)
	skuOrder := []string{}

	for _, row := range rows {
		if !selected[row.Location] {
			continue
		}
		stats.FilteredRows++

		qty := CoerceQuantity(row.OnHandCurrent)
		if qty.Reason == types.ReasonOutOfRange {
			return nil, Stats{}, fmt.Errorf("%w: line %d, SKU %q: %q",
				ErrQuantityOutOfRange, row.RowNumber, row.SKU, row.OnHandCurrent)
		}
		if !qty.Parsed {
			stats.NonNumeric++
		}

		if _, exists := totals[row.SKU]; !exists {
			skuOrder = append(skuOrder, row.SKU)
		}
		sum, ok := addQuantity(totals[row.SKU], qty.Value)
		if !ok {
			return nil, Stats{}, fmt.Errorf("%w: line %d, SKU %q: total exceeds the int64 range",
				ErrQuantityOutOfRange, row.RowNumber, row.SKU)
		}
		totals[row.SKU] = sum
	}

	lines := make([]types.AggregatedLine, len(skuOrder))
	for i, sku := range skuOrder {
		lines[i] = types.AggregatedLine{SKU: sku, Quantity: totals[sku]}

		total, ok := addQuantity(stats.TotalUnits, totals[sku])
		if !ok {
			return nil, Stats{}, fmt.Errorf("%w: total units across all SKUs", ErrQuantityOutOfRange)
		}
		stats.TotalUnits = total
	}
	stats.UniqueSKUs = len(lines)

	return lines, stats, nil
}

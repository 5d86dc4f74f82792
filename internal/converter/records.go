package converter

import (
	"strings"
	"time"

	"github.com/highlinecommerce/packiyo-po-converter/internal/types"
)

// expectedAtLayout is MM/DD/YYYY; Packiyo expects a fixed noon time after it.
const expectedAtLayout = "01/02/2006"

// FormatExpectedDate renders a date as "MM/DD/YYYY 12:00:00". Only the
// calendar date of t is used.
func FormatExpectedDate(t time.Time) string {
	return t.Format(expectedAtLayout) + " 12:00:00"
}

// OutputFileName is the suggested name for the purchase order CSV.
func OutputFileName(poName string) string {
	return strings.TrimSpace(poName) + "_packiyo_po.csv"
}

// BuildRecords turns aggregated lines into Packiyo purchase order lines, in
// the same order. Request scalars are repeated on every line.
func BuildRecords(lines []types.AggregatedLine, req types.PurchaseOrderRequest) []types.PurchaseOrderLine {
	poName := strings.TrimSpace(req.POName)
	customer := strings.TrimSpace(req.Customer)
	trackingNumber := strings.TrimSpace(req.TrackingNumber)
	trackingURL := strings.TrimSpace(req.TrackingURL)
	expectedAt := FormatExpectedDate(req.ExpectedDate)

	records := make([]types.PurchaseOrderLine, len(lines))
	for i, line := range lines {
		records[i] = types.PurchaseOrderLine{
			PurchaseOrderNumber: poName,
			Status:              types.StatusPending,
			Warehouse:           req.Warehouse,
			Customer:            customer,
			SKU:                 line.SKU,
			Quantity:            line.Quantity,
			ExpectedAt:          expectedAt,
			TrackingNumber:      trackingNumber,
			TrackingURL:         trackingURL,
		}
	}
	return records
}

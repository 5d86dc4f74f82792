// =============================================================================
// Packiyo PO Converter - Shared Types
// =============================================================================
//
// This package contains the data model shared across the converter modules.
// Keeping it separate avoids import cycles between:
//   - csvparser / xlsxparser (produce rows)
//   - validation             (checks headers and requests)
//   - converter              (aggregates rows into purchase order lines)
//   - powriter               (serializes purchase order lines)
//
// =============================================================================

package types

import (
	"strconv"
	"time"
)

// =============================================================================
// INPUT SCHEMA
// =============================================================================

// Column names used by the core. These must match the Shopify export exactly.
const (
	ColumnSKU           = "SKU"
	ColumnLocation      = "Location"
	ColumnOnHandCurrent = "On hand (current)"
)

// ExpectedHeaders is the full column set of a Shopify multi-location
// inventory export. The set is compared order-insensitively.
var ExpectedHeaders = []string{
	"Handle", "Title", "Option1 Name", "Option1 Value",
	"Option2 Name", "Option2 Value", "Option3 Name", "Option3 Value",
	ColumnSKU, "HS Code", "COO", ColumnLocation, "Bin name",
	"Incoming (not editable)", "Unavailable (not editable)",
	"Committed (not editable)", "Available (not editable)",
	ColumnOnHandCurrent, "On hand (new)",
}

// InventoryRow is one record of the Shopify export, reduced to the columns
// the conversion reads.
type InventoryRow struct {
	// Location is the Shopify location name.
	Location string

	// SKU may repeat across locations.
	SKU string

	// OnHandCurrent is kept exactly as read. It can be numeric text or a
	// sentinel such as "not stocked".
	OnHandCurrent string

	// RowNumber is the 1-based line number in the source file.
	RowNumber int
}

// LocationCandidate is a location paired with whether any of its rows carry
// a numeric on-hand value.
type LocationCandidate struct {
	Name     string
	HasStock bool
}

// =============================================================================
// QUANTITY COERCION
// =============================================================================

// ZeroReason explains why a quantity coerced to zero without parsing.
type ZeroReason int

const (
	// ReasonNone means the value parsed as a number.
	ReasonNone ZeroReason = iota

	// ReasonEmpty means the cell was blank.
	ReasonEmpty

	// ReasonNotStocked means the cell held Shopify's "not stocked" sentinel.
	ReasonNotStocked

	// ReasonNotNumeric covers any other unparseable text.
	ReasonNotNumeric

	// ReasonOutOfRange means the cell held a number too large for an int64.
	ReasonOutOfRange
)

// String returns a short label for logs.
func (r ZeroReason) String() string {
	switch r {
	case ReasonNone:
		return "parsed"
	case ReasonEmpty:
		return "empty"
	case ReasonNotStocked:
		return "not stocked"
	case ReasonNotNumeric:
		return "not numeric"
	case ReasonOutOfRange:
		return "out of range"
	default:
		return "unknown"
	}
}

// Quantity is the typed result of coercing an on-hand cell.
type Quantity struct {
	// Value is the integer quantity. Zero when Parsed is false.
	Value int64

	// Parsed is true when the cell held a number.
	Parsed bool

	// Reason is ReasonNone when Parsed is true.
	Reason ZeroReason
}

// =============================================================================
// AGGREGATION OUTPUT
// =============================================================================

// AggregatedLine is the summed quantity of one SKU across the selected
// locations.
type AggregatedLine struct {
	SKU      string
	Quantity int64
}

// =============================================================================
// PURCHASE ORDER REQUEST
// =============================================================================

// Warehouses is the fixed set of Packiyo destination warehouses.
var Warehouses = []string{"Atlanta Warehouse", "Ohio Warehouse", "NYC Warehouse"}

// IsWarehouse reports whether name is one of Warehouses.
func IsWarehouse(name string) bool {
	for _, w := range Warehouses {
		if w == name {
			return true
		}
	}
	return false
}

// PurchaseOrderRequest holds the caller-supplied metadata for one conversion.
// It is treated as immutable once handed to the converter.
type PurchaseOrderRequest struct {
	// POName becomes purchase_order_number on every line and prefixes the
	// output file name.
	POName string

	// Warehouse must be one of Warehouses.
	Warehouse string

	// Customer must match the brand name configured in Packiyo.
	Customer string

	// Locations are the Shopify locations to pull inventory from.
	Locations []string

	// ExpectedDate is the expected arrival day. Only the calendar date is used.
	ExpectedDate time.Time

	TrackingNumber string
	TrackingURL    string
}

// =============================================================================
// OUTPUT SCHEMA
// =============================================================================

// StatusPending is the only status written to new purchase orders.
const StatusPending = "Pending"

// OutputHeaders is the Packiyo purchase order import header, in order.
var OutputHeaders = []string{
	"purchase_order_number", "status", "warehouse", "customer", "supplier",
	"sku", "quantity", "quantity_sell_ahead", "ordered_at", "expected_at",
	"tracking_number", "tracking_url",
}

// PurchaseOrderLine is one row of the Packiyo import.
type PurchaseOrderLine struct {
	PurchaseOrderNumber string
	Status              string
	Warehouse           string
	Customer            string
	Supplier            string
	SKU                 string
	Quantity            int64
	QuantitySellAhead   string
	OrderedAt           string
	ExpectedAt          string
	TrackingNumber      string
	TrackingURL         string
}

// Record renders the line as cells in OutputHeaders order.
func (l PurchaseOrderLine) Record() []string {
	return []string{
		l.PurchaseOrderNumber,
		l.Status,
		l.Warehouse,
		l.Customer,
		l.Supplier,
		l.SKU,
		strconv.FormatInt(l.Quantity, 10),
		l.QuantitySellAhead,
		l.OrderedAt,
		l.ExpectedAt,
		l.TrackingNumber,
		l.TrackingURL,
	}
}

// =============================================================================
// Packiyo PO Converter - Converter Module
// =============================================================================
//
// This module contains the core conversion logic. It turns a parsed Shopify
// inventory export plus purchase order details into Packiyo purchase order
// lines.
//
// CONVERSION PIPELINE:
//   1. Validate the export's column set
//   2. Discover locations that carry numeric stock
//   3. Validate the purchase order request
//   4. Aggregate on-hand quantities per SKU across the selected locations
//   5. Build the purchase order lines
//
// The pipeline is all-or-nothing: any failure returns an error and no lines.
// A Converter holds no per-conversion state, so one instance can serve many
// conversions, including concurrent ones.
//
// =============================================================================

package converter

import (
	"time"

	"github.com/google/uuid"
	"github.com/highlinecommerce/packiyo-po-converter/internal/csvparser"
	"github.com/highlinecommerce/packiyo-po-converter/internal/types"
	"github.com/highlinecommerce/packiyo-po-converter/internal/validation"
	"github.com/rs/zerolog"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result is the outcome of a successful conversion.
type Result struct {
	// RunID identifies the conversion in logs.
	RunID string

	// Lines is the purchase order, one line per SKU, in export order.
	Lines []types.PurchaseOrderLine

	// FileName is the suggested output file name.
	FileName string

	// Locations are the locations that qualified for selection.
	Locations []string

	// Stats describes the aggregation.
	Stats Stats

	// Elapsed is the time the conversion took.
	Elapsed time.Duration
}

// Inspection is what the caller needs before choosing locations.
type Inspection struct {
	// Rows are the export rows reduced to the columns the conversion reads.
	Rows []types.InventoryRow

	// Locations are the qualifying locations, sorted.
	Locations []string
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter runs conversions.
type Converter struct {
	logger zerolog.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// New creates a new Converter instance.
func New(opts ...Option) *Converter {
	c := &Converter{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// =============================================================================
// MAIN PROCESSING FUNCTIONS
// =============================================================================

// Inspect validates the export's headers and discovers its locations.
//
// RETURNS:
//   - The rows and qualifying locations.
//   - A *validation.SchemaError or ErrNoLocations on failure.
func (c *Converter) Inspect(data *csvparser.CSVData) (*Inspection, error) {
	if err := validation.ValidateHeaders(data.Headers); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("file", data.SourceFile).
		Int("rows", data.RowCount).
		Msg("headers validated")

	rows := csvparser.InventoryRows(data)
	locations, err := DiscoverLocations(rows)
	if err != nil {
		return nil, err
	}

	return &Inspection{Rows: rows, Locations: locations}, nil
}

// Convert runs the full pipeline.
//
// PARAMETERS:
//   - data: The parsed export. It is read, never modified.
//   - req: The purchase order details.
//
// RETURNS:
//   - The purchase order lines and statistics.
//   - An error from the first failing stage; no partial result is returned.
func (c *Converter) Convert(data *csvparser.CSVData, req types.PurchaseOrderRequest) (*Result, error) {
	startTime := time.Now()
	runID := uuid.New().String()
	logger := c.logger.With().Str("run_id", runID).Logger()

	// =========================================================================
	// STEPS 1-2: HEADERS AND LOCATIONS
	// =========================================================================

	inspection, err := c.Inspect(data)
	if err != nil {
		logger.Debug().Err(err).Msg("inspection failed")
		return nil, err
	}

	// =========================================================================
	// STEP 3: REQUEST
	// =========================================================================

	if err := validation.ValidateRequest(req); err != nil {
		logger.Debug().Err(err).Msg("request rejected")
		return nil, err
	}

	// =========================================================================
	// STEP 4: AGGREGATE
	// =========================================================================

	lines, stats, err := aggregate(inspection.Rows, req.Locations)
	if err != nil {
		logger.Debug().Err(err).Msg("aggregation failed")
		return nil, err
	}

	if stats.NonNumeric > 0 {
		logger.Debug().
			Int("rows", stats.NonNumeric).
			Msg("non-numeric on-hand values counted as zero")
	}

	// =========================================================================
	// STEP 5: BUILD RECORDS
	// =========================================================================

	records := BuildRecords(lines, req)

	result := &Result{
		RunID:     runID,
		Lines:     records,
		FileName:  OutputFileName(req.POName),
		Locations: inspection.Locations,
		Stats:     stats,
		Elapsed:   time.Since(startTime),
	}

	logger.Info().
		Strs("locations", req.Locations).
		Int("skus", stats.UniqueSKUs).
		Int64("units", stats.TotalUnits).
		Str("warehouse", req.Warehouse).
		Dur("elapsed", result.Elapsed).
		Msg("purchase order built")

	return result, nil
}

// =============================================================================
// Packiyo PO Converter - Convert Command
// =============================================================================
//
// This file defines the 'convert' command, the main command of the tool. It
// turns one Shopify inventory export into one Packiyo purchase order file.
//
// COMMAND USAGE:
//   packiyo-po convert --file FILE --po-name NAME --customer NAME [flags]
//
// PROCESSING PIPELINE:
//   1. Parse the export (CSV, or XLSX by extension)
//   2. Validate headers and discover locations
//   3. Resolve locations (flags, or the interactive picker)
//   4. Build the request and run the conversion
//   5. Print a preview (--dry-run) or write the output file
//   6. Archive the export if requested
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/highlinecommerce/packiyo-po-converter/internal/config"
	"github.com/highlinecommerce/packiyo-po-converter/internal/converter"
	"github.com/highlinecommerce/packiyo-po-converter/internal/powriter"
	"github.com/highlinecommerce/packiyo-po-converter/internal/tui"
	"github.com/highlinecommerce/packiyo-po-converter/internal/types"
	"github.com/highlinecommerce/packiyo-po-converter/pkg/utils"
	"github.com/spf13/cobra"
)

// expectedDateLayout is the --expected flag format.
const expectedDateLayout = "2006-01-02"

// stdoutPath as --output writes the purchase order to standard output.
const stdoutPath = "-"

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// convertOptions holds the flags of the convert command.
type convertOptions struct {
	File           string
	POName         string
	Customer       string
	Warehouse      string
	Locations      []string
	Expected       string
	TrackingNumber string
	TrackingURL    string
	Output         string
	Format         string
	DryRun         bool
	Interactive    bool
	Archive        bool
}

var convertOpts convertOptions

// =============================================================================
// CONVERT COMMAND DEFINITION
// =============================================================================

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a Shopify inventory export into a Packiyo purchase order",
	Long: `The convert command sums on-hand quantities per SKU across the chosen
Shopify locations and writes one purchase order line per SKU.

Locations are given with --location (repeatable). Without it, and when
running in a terminal, an interactive picker lists the locations that carry
stock.

On success:
  - The purchase order is written to the output directory (or stdout with
    --output -)
  - A summary is printed
  - The export is archived when --archive or archive_input is set

On error nothing is written.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return newApp(cmd).runConvert(convertOpts)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	flags := convertCmd.Flags()
	flags.StringVarP(&convertOpts.File, "file", "f", "", "Shopify inventory export (.csv or .xlsx)")
	flags.StringVar(&convertOpts.POName, "po-name", "", "Purchase order name, e.g. ABC_PO_0001")
	flags.StringVar(&convertOpts.Customer, "customer", "", "Customer (brand) name as configured in Packiyo")
	flags.StringVar(&convertOpts.Warehouse, "warehouse", "",
		fmt.Sprintf("Destination warehouse (%s); defaults to default_warehouse", strings.Join(types.Warehouses, ", ")))
	flags.StringArrayVarP(&convertOpts.Locations, "location", "l", nil, "Location to pull from (repeatable)")
	flags.StringVar(&convertOpts.Expected, "expected", "", "Expected arrival date, YYYY-MM-DD (default today)")
	flags.StringVar(&convertOpts.TrackingNumber, "tracking-number", "", "Tracking number")
	flags.StringVar(&convertOpts.TrackingURL, "tracking-url", "", "Tracking URL")
	flags.StringVarP(&convertOpts.Output, "output", "o", "", "Output path, or - for stdout (default from file_name_format)")
	flags.StringVar(&convertOpts.Format, "format", "", "Output format: csv or xlsx (default from output_format)")
	flags.BoolVar(&convertOpts.DryRun, "dry-run", false, "Show the summary and a preview without writing anything")
	flags.BoolVarP(&convertOpts.Interactive, "interactive", "i", false, "Pick locations interactively")
	flags.BoolVar(&convertOpts.Archive, "archive", false, "Move the export to the input archive after success")

	convertCmd.MarkFlagRequired("file")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runConvert runs the convert pipeline.
func (a *app) runConvert(opts convertOptions) error {
	// =========================================================================
	// STEP 1: OPTIONS THAT DO NOT NEED THE FILE
	// =========================================================================

	format := strings.ToLower(opts.Format)
	if format == "" {
		format = a.cfg.OutputFormat
	}
	if format != config.FormatCSV && format != config.FormatXLSX {
		return fmt.Errorf("unknown output format %q (want csv or xlsx)", opts.Format)
	}

	expected, err := parseExpectedDate(opts.Expected, time.Now())
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 2: PARSE AND INSPECT
	// =========================================================================

	data, err := a.loadInput(opts.File)
	if err != nil {
		return err
	}

	conv := converter.New(converter.WithLogger(a.logger))

	inspection, err := conv.Inspect(data)
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 3: LOCATIONS
	// =========================================================================

	locations, err := a.resolveLocations(opts, inspection.Locations)
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 4: CONVERT
	// =========================================================================

	req := types.PurchaseOrderRequest{
		POName:         opts.POName,
		Warehouse:      firstNonEmpty(opts.Warehouse, a.cfg.DefaultWarehouse),
		Customer:       opts.Customer,
		Locations:      locations,
		ExpectedDate:   expected,
		TrackingNumber: opts.TrackingNumber,
		TrackingURL:    opts.TrackingURL,
	}

	result, err := conv.Convert(data, req)
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 5: OUTPUT
	// =========================================================================

	if opts.DryRun {
		fmt.Fprintln(a.out, tui.RenderSummary(result.Stats, req.Warehouse))
		fmt.Fprintln(a.out, tui.RenderPreview(result.Lines, tui.DefaultPreviewRows))
		return nil
	}

	if opts.Output == stdoutPath {
		if err := powriter.Write(a.out, result.Lines, format); err != nil {
			return err
		}
		fmt.Fprintln(a.errOut, tui.SummaryLine(result.Stats, req.Warehouse))
		return nil
	}

	fm := utils.NewFileManager(a.cfg.OutputDir, a.cfg.InputArchiveDir)
	fileName := fm.GenerateOutputFileName(a.cfg.FileNameFormat, map[string]string{
		"po":        req.POName,
		"warehouse": req.Warehouse,
	}, powriter.Extension(format))
	if opts.Output != "" {
		fm.OutputDir, fileName = splitOutputPath(opts.Output)
	}

	outputPath, err := fm.WriteOutput(fileName, func(w io.Writer) error {
		return powriter.Write(w, result.Lines, format)
	})
	if err != nil {
		return fmt.Errorf("failed to write purchase order: %w", err)
	}

	a.logger.Info().
		Str("run_id", result.RunID).
		Str("output", outputPath).
		Msg("purchase order written")

	fmt.Fprintln(a.out, tui.RenderSummary(result.Stats, req.Warehouse))
	fmt.Fprintf(a.out, "Wrote %s\n", outputPath)

	// =========================================================================
	// STEP 6: ARCHIVE
	// =========================================================================

	if opts.Archive || a.cfg.ArchiveInput {
		fm.ArchiveOnSuccess = true
		archived, err := fm.ArchiveInputFile(opts.File)
		if err != nil {
			// The purchase order is already written; report but do not fail.
			a.logger.Warn().Err(err).Str("file", opts.File).Msg("failed to archive export")
		} else {
			a.logger.Info().Str("archive", archived).Msg("export archived")
		}
	}

	return nil
}

// errNoTerminal is returned when --interactive is passed without a terminal
// on stdin.
var errNoTerminal = errors.New("--interactive needs a terminal on stdin; pass --location instead")

// resolveLocations returns the flag locations, or runs the picker when
// none were given and prompting is possible. Unknown flag locations are
// kept; they contribute nothing but are worth a warning.
func (a *app) resolveLocations(opts convertOptions, available []string) ([]string, error) {
	if len(opts.Locations) > 0 {
		known := make(map[string]bool, len(available))
		for _, loc := range available {
			known[loc] = true
		}
		for _, loc := range opts.Locations {
			if !known[loc] {
				a.logger.Warn().
					Str("location", loc).
					Strs("available", available).
					Msg("location has no numeric inventory in this export")
			}
		}
		return opts.Locations, nil
	}

	if opts.Interactive && !a.interactive() {
		return nil, errNoTerminal
	}
	if !(opts.Interactive || a.cfg.Interactive) || !a.interactive() {
		return nil, nil
	}

	return tui.PickLocations(available, a.in, a.errOut)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// parseExpectedDate parses --expected, defaulting to today.
func parseExpectedDate(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return now, nil
	}
	t, err := time.Parse(expectedDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --expected date %q (want YYYY-MM-DD)", value)
	}
	return t, nil
}

// splitOutputPath splits --output into directory and file name.
func splitOutputPath(path string) (string, string) {
	return filepath.Dir(path), filepath.Base(path)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

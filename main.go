// =============================================================================
// Packiyo PO Converter - Main Entry Point
// =============================================================================
//
// USAGE:
//   packiyo-po convert    - Convert a Shopify inventory export to a Packiyo PO
//   packiyo-po locations  - List the locations an export can pull from
//   packiyo-po validate   - Check an export's columns without converting
//   packiyo-po version    - Display the application version
//
// ARCHITECTURE:
//   - cmd/      : CLI command definitions (Cobra)
//   - internal/ : Parsing, validation, aggregation, output and terminal UI
//   - pkg/      : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/highlinecommerce/packiyo-po-converter/cmd"
)

func main() {
	cmd.Execute()
}

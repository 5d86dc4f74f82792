package cmd

import (
	"fmt"

	"github.com/highlinecommerce/packiyo-po-converter/internal/converter"
	"github.com/highlinecommerce/packiyo-po-converter/internal/csvparser"
	"github.com/highlinecommerce/packiyo-po-converter/internal/validation"
	"github.com/spf13/cobra"
)

var locationsFile string

// locationsCmd lists the locations a purchase order can pull from.
var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "List the locations in an export that carry numeric inventory",
	Long: `The locations command prints, one per line and sorted, every location in
the export with at least one numeric on-hand value. These are the values
accepted by convert --location.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return newApp(cmd).runLocations(locationsFile)
	},
}

func init() {
	rootCmd.AddCommand(locationsCmd)

	locationsCmd.Flags().StringVarP(&locationsFile, "file", "f", "", "Shopify inventory export (.csv or .xlsx)")
	locationsCmd.MarkFlagRequired("file")
}

func (a *app) runLocations(path string) error {
	data, err := a.loadInput(path)
	if err != nil {
		return err
	}

	if err := validation.ValidateHeaders(data.Headers); err != nil {
		return err
	}

	candidates := converter.LocationCandidates(csvparser.InventoryRows(data))

	found := 0
	for _, c := range candidates {
		if !c.HasStock {
			a.logger.Debug().Str("location", c.Name).Msg("skipped: no numeric on-hand values")
			continue
		}
		fmt.Fprintln(a.out, c.Name)
		found++
	}

	if found == 0 {
		return converter.ErrNoLocations
	}
	return nil
}

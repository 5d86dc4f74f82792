package cmd

import (
	"fmt"

	"github.com/highlinecommerce/packiyo-po-converter/internal/validation"
	"github.com/spf13/cobra"
)

var validateFile string

// validateCmd checks an export's headers without converting anything.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that a file is a Shopify multi-location inventory export",
	Long: `The validate command parses the export and compares its columns with the
Shopify multi-location inventory format. Missing and unexpected columns are
listed on failure.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return newApp(cmd).runValidate(validateFile)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "", "Shopify inventory export (.csv or .xlsx)")
	validateCmd.MarkFlagRequired("file")
}

func (a *app) runValidate(path string) error {
	data, err := a.loadInput(path)
	if err != nil {
		return err
	}

	if err := validation.ValidateHeaders(data.Headers); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Headers validated. %d rows.\n", data.RowCount)
	return nil
}

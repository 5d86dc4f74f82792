// =============================================================================
// Packiyo PO Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Every other command
// is attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (packiyo-po)
//   ├── convertCmd   (packiyo-po convert)
//   ├── locationsCmd (packiyo-po locations)
//   ├── validateCmd  (packiyo-po validate)
//   └── versionCmd   (packiyo-po version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the configuration before any subcommand runs
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/highlinecommerce/packiyo-po-converter/internal/config"
	"github.com/highlinecommerce/packiyo-po-converter/internal/logging"
	"github.com/highlinecommerce/packiyo-po-converter/internal/validation"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// appConfig and appLogger are set by loadApp before a subcommand runs.
var (
	appConfig *config.MainConfig
	appLogger *logging.Logger
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "packiyo-po",
	Short: "Packiyo PO Converter - Turn Shopify inventory exports into Packiyo purchase orders",
	Long: `Packiyo PO Converter reads a Shopify multi-location inventory export and
produces a purchase order file for bulk import into Packiyo.

On-hand quantities are summed per SKU across the locations you choose, and
every line is stamped with the purchase order details you supply.

Example Usage:
  packiyo-po locations --file inventory.csv
  packiyo-po convert --file inventory.csv --po-name ABC_PO_0001 \
      --customer "Acme Brand" --location "Main Store" --location "Outlet"
  packiyo-po validate --file inventory.csv`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadApp()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return appLogger.Close()
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError closes the log file and prints err. PersistentPostRunE does
// not run after a failed command, so the file is closed here instead.
func reportError(w io.Writer, err error) {
	appLogger.Close()
	fmt.Fprintf(w, "Error: %s\n", strings.TrimRight(validation.FormatErrors(err), "\n"))
}

// loadApp loads the configuration and builds the logger.
func loadApp() error {
	cfg, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load main config: %w", err)
	}

	logger, err := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Verbose: verbose,
		File:    cfg.LogFile,
	})
	if err != nil {
		return err
	}

	appConfig = cfg
	appLogger = logger

	appLogger.Debug().
		Str("config", cfgFile).
		Str("output_dir", cfg.OutputDir).
		Str("format", cfg.OutputFormat).
		Msg("configuration loaded")

	return nil
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultConfigPath,
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// Packiyo PO Converter - Configuration Module
// =============================================================================
//
// This module loads the application configuration. Settings come from three
// layers, later layers winning:
//   1. Built-in defaults
//   2. The YAML config file (config.yaml by default)
//   3. Environment variables, optionally seeded from a .env file
//
// The config file is optional. When the default path does not exist the
// converter runs on defaults; an explicitly named file that is missing is an
// error.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/highlinecommerce/packiyo-po-converter/internal/types"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is used when --config is not given.
const DefaultConfigPath = "config.yaml"

// Environment variable names that override the config file.
const (
	EnvOutputDir        = "PACKIYO_OUTPUT_DIR"
	EnvLogLevel         = "PACKIYO_LOG_LEVEL"
	EnvDefaultWarehouse = "PACKIYO_DEFAULT_WAREHOUSE"
	EnvOutputFormat     = "PACKIYO_OUTPUT_FORMAT"
)

// Output formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// OutputDir is where generated purchase order files are written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir receives the source export after a successful
	// conversion when ArchiveInput is enabled.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// ArchiveInput moves the source export into InputArchiveDir after the
	// output file has been written.
	// Default: false
	ArchiveInput bool `yaml:"archive_input"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogFile, when set, receives JSON log lines in addition to the console.
	LogFile string `yaml:"log_file"`

	// LogLevel controls verbosity.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// FileNameFormat is the output file name without extension.
	// Placeholders:
	//   {po}        - Purchase order name
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - Current date (YYYYMMDD)
	//   {warehouse} - Destination warehouse
	// Default: "{po}_packiyo_po"
	FileNameFormat string `yaml:"file_name_format"`

	// OutputFormat is "csv" or "xlsx".
	// Default: "csv"
	OutputFormat string `yaml:"output_format"`

	// =========================================================================
	// PURCHASE ORDER DEFAULTS
	// =========================================================================

	// DefaultWarehouse is used when --warehouse is not given.
	// Default: the first entry of types.Warehouses
	DefaultWarehouse string `yaml:"default_warehouse"`

	// Interactive enables the location picker when no --location is passed
	// and stdin is a terminal.
	Interactive bool `yaml:"interactive"`

	// =========================================================================
	// INPUT SETTINGS
	// =========================================================================

	CSVSettings  CSVSettings  `yaml:"csv_settings"`
	XLSXSettings XLSXSettings `yaml:"xlsx_settings"`
}

// CSVSettings contains settings for parsing the Shopify export.
type CSVSettings struct {
	// Delimiter separates fields.
	// Common values: "," (comma), ";" (semicolon), "\t" (tab)
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// Encoding of the file. A UTF-8 byte order mark is always stripped.
	// Supported: "UTF-8", "Windows-1252", "ISO-8859-1"
	// Default: "UTF-8"
	Encoding string `yaml:"encoding"`
}

// XLSXSettings contains settings for reading an export saved from Excel.
type XLSXSettings struct {
	// Sheet is the worksheet holding the export. Empty means the first sheet.
	Sheet string `yaml:"sheet"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the main configuration.
//
// PARAMETERS:
//   - configPath: The path to the YAML configuration file.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read or parsed, or a value is invalid.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	var config MainConfig

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && configPath == DefaultConfigPath:
		// No config file in the working directory; run on defaults.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// A missing .env is not an error.
	_ = godotenv.Load()
	applyEnvOverrides(&config)

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyEnvOverrides copies set environment variables over file values.
func applyEnvOverrides(config *MainConfig) {
	if v := os.Getenv(EnvOutputDir); v != "" {
		config.OutputDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		config.LogLevel = v
	}
	if v := os.Getenv(EnvDefaultWarehouse); v != "" {
		config.DefaultWarehouse = v
	}
	if v := os.Getenv(EnvOutputFormat); v != "" {
		config.OutputFormat = v
	}
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.FileNameFormat == "" {
		config.FileNameFormat = "{po}_packiyo_po"
	}
	if config.OutputFormat == "" {
		config.OutputFormat = FormatCSV
	}
	if config.DefaultWarehouse == "" {
		config.DefaultWarehouse = types.Warehouses[0]
	}

	if config.CSVSettings.Delimiter == "" {
		config.CSVSettings.Delimiter = ","
	}
	if config.CSVSettings.Encoding == "" {
		config.CSVSettings.Encoding = "UTF-8"
	}

	config.LogLevel = strings.ToLower(config.LogLevel)
	config.OutputFormat = strings.ToLower(config.OutputFormat)
}

// validateMainConfig validates the main configuration. Directories are
// created lazily by the file manager, not here.
func validateMainConfig(config *MainConfig) error {
	switch config.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", config.LogLevel)
	}

	switch config.OutputFormat {
	case FormatCSV, FormatXLSX:
	default:
		return fmt.Errorf("unknown output_format %q (want csv or xlsx)", config.OutputFormat)
	}

	if !types.IsWarehouse(config.DefaultWarehouse) {
		return fmt.Errorf("default_warehouse %q is not one of: %s",
			config.DefaultWarehouse, strings.Join(types.Warehouses, ", "))
	}

	if !strings.Contains(config.FileNameFormat, "{po}") && !strings.Contains(config.FileNameFormat, "{uuid}") {
		return fmt.Errorf("file_name_format %q must contain {po} or {uuid}", config.FileNameFormat)
	}

	return nil
}

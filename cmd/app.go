package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/highlinecommerce/packiyo-po-converter/internal/config"
	"github.com/highlinecommerce/packiyo-po-converter/internal/csvparser"
	"github.com/highlinecommerce/packiyo-po-converter/internal/xlsxparser"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app bundles what a command needs at run time, so commands can be driven
// from tests without going through cobra's global state.
type app struct {
	cfg    *config.MainConfig
	logger zerolog.Logger

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	// interactive reports whether the user can answer prompts.
	interactive func() bool
}

// newApp builds an app from the loaded configuration and the command's
// streams.
func newApp(cmd *cobra.Command) *app {
	return &app{
		cfg:         appConfig,
		logger:      appLogger.Logger,
		in:          cmd.InOrStdin(),
		out:         cmd.OutOrStdout(),
		errOut:      cmd.ErrOrStderr(),
		interactive: stdinIsTerminal,
	}
}

// stdinIsTerminal reports whether both stdin and stdout are attached to a
// terminal.
func stdinIsTerminal() bool {
	in, out := os.Stdin.Fd(), os.Stdout.Fd()
	return (isatty.IsTerminal(in) || isatty.IsCygwinTerminal(in)) &&
		(isatty.IsTerminal(out) || isatty.IsCygwinTerminal(out))
}

// loadInput parses an inventory export, choosing the reader by extension.
func (a *app) loadInput(path string) (*csvparser.CSVData, error) {
	if path == "" {
		return nil, fmt.Errorf("--file is required")
	}

	var (
		data *csvparser.CSVData
		err  error
	)
	if xlsxparser.IsWorkbook(path) {
		data, err = xlsxparser.ParseFile(path, a.cfg.XLSXSettings)
	} else {
		data, err = csvparser.ParseFile(path, a.cfg.CSVSettings)
	}
	if err != nil {
		return nil, err
	}

	a.logger.Debug().
		Str("file", path).
		Int("rows", data.RowCount).
		Int("columns", data.ColumnCount).
		Msg("export loaded")

	return data, nil
}

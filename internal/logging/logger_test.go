package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want zerolog.Level
	}{
		{"default", Options{}, zerolog.InfoLevel},
		{"warn", Options{Level: "warn"}, zerolog.WarnLevel},
		{"garbage falls back", Options{Level: "loud"}, zerolog.InfoLevel},
		{"verbose wins", Options{Level: "error", Verbose: true}, zerolog.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Console = &bytes.Buffer{}
			l, err := New(tt.opts)
			require.NoError(t, err)
			defer l.Close()
			assert.Equal(t, tt.want, l.GetLevel())
		})
	}
}

func TestNewWritesConsoleAndFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "converter.log")

	l, err := New(Options{Level: "info", File: path, Console: &console})
	require.NoError(t, err)

	l.Info().Str("po", "PO-1").Msg("purchase order built")
	l.Debug().Msg("hidden")
	require.NoError(t, l.Close())

	assert.Contains(t, console.String(), "purchase order built")
	assert.NotContains(t, console.String(), "hidden")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"po":"PO-1"`)
	assert.Contains(t, string(data), `"message":"purchase order built"`)
}

func TestCloseWithoutFile(t *testing.T) {
	l, err := New(Options{Console: &bytes.Buffer{}})
	require.NoError(t, err)
	assert.NoError(t, l.Close())

	var nilLogger *Logger
	assert.NoError(t, nilLogger.Close())
}

func TestCloseTwice(t *testing.T) {
	l, err := New(Options{File: filepath.Join(t.TempDir(), "converter.log"), Console: &bytes.Buffer{}})
	require.NoError(t, err)

	require.NoError(t, l.Close())
	assert.NoError(t, l.Close())
}

package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/katalvlaran/duotape/internal/logging"
	"github.com/stretchr/testify/require"
)

func TestNewRewritesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(slog.LevelInfo, logging.FormatJSON, &buf)
	require.NoError(t, err)

	logger.Error("boom", "error", errors.New("bad"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "bad", rec["err"])
	require.NotContains(t, rec, "error")
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(slog.LevelWarn, logging.FormatText, &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	require.Zero(t, buf.Len())
	logger.Warn("shown")
	require.Contains(t, buf.String(), "msg=shown")
}

func TestNewUnknownFormat(t *testing.T) {
	_, err := logging.New(slog.LevelInfo, "xml", nil)
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	l, err := logging.ParseLevel("DEBUG")
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, l)

	_, err = logging.ParseLevel("loud")
	require.Error(t, err)
}

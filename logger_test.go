package ttgo

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_TableGeometryInLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	tt, err := New[searchResult](searchResultCodec{},
		WithCapacity(128),
		WithAssociativity(4),
		WithLogger(logger),
	)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "table created")
	assert.Contains(t, out, "capacity=128")
	assert.Contains(t, out, "associativity=4")

	// Later operations on the table carry the same geometry fields.
	buf.Reset()
	require.NoError(t, tt.Dump(io.Discard))

	out = buf.String()
	assert.Contains(t, out, "snapshot dumped")
	assert.Contains(t, out, "capacity=128")
	assert.Contains(t, out, "associativity=4")
}

func TestLogger_WithTable(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	logger.WithTable(1024, 8).Info("probe")

	out := buf.String()
	assert.Contains(t, out, "capacity=1024")
	assert.Contains(t, out, "associativity=8")
}

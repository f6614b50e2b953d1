package docgo

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogger_Helpers(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	l.LogLoad(ctx, "data.db", 3, 1, nil)
	l.LogCompaction(ctx, "data.db", 4, nil)
	l.LogAppend(ctx, "data.db", 2, errors.New("disk full"))

	out := buf.String()
	require.Contains(t, out, "load completed")
	require.Contains(t, out, `"corrupt_lines":1`)
	require.Contains(t, out, "compaction completed")
	require.Contains(t, out, "append failed")
	require.Contains(t, out, "disk full")
}

func TestNoopLogger_Discards(t *testing.T) {
	l := NoopLogger()
	require.NotNil(t, l)
	// Must not panic and must not write anywhere visible.
	l.LogLoad(context.Background(), "data.db", 0, 0, nil)
	l.WithFilename("data.db").Info("ignored")
}

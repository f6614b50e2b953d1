package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOSBackend_FileLifecycle(t *testing.T) {
	ctx := context.Background()
	b := OSBackend{}
	name := filepath.Join(t.TempDir(), "data.db")

	exists, err := b.Exists(ctx, name)
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, b.WriteAll(ctx, name, []byte("one\n")))
	require.NoError(t, b.Append(ctx, name, []byte("two\n")))

	data, err := b.ReadAll(ctx, name)
	require.NoError(t, err)
	require.Equal(t, "one\ntwo\n", string(data))

	exists, err = b.Exists(ctx, name)
	require.NoError(t, err)
	require.True(t, exists)

	renamed := name + ".new"
	require.NoError(t, b.Rename(ctx, name, renamed))

	exists, err = b.Exists(ctx, name)
	require.NoError(t, err)
	require.False(t, exists)

	data, err = b.ReadAll(ctx, renamed)
	require.NoError(t, err)
	require.Equal(t, "one\ntwo\n", string(data))

	require.NoError(t, b.Remove(ctx, renamed))
	exists, err = b.Exists(ctx, renamed)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestOSBackend_AppendCreatesFile(t *testing.T) {
	ctx := context.Background()
	b := OSBackend{}
	name := filepath.Join(t.TempDir(), "fresh.db")

	require.NoError(t, b.Append(ctx, name, []byte("line\n")))

	data, err := b.ReadAll(ctx, name)
	require.NoError(t, err)
	require.Equal(t, "line\n", string(data))
}

func TestOSBackend_MkdirAll(t *testing.T) {
	ctx := context.Background()
	b := OSBackend{}
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	require.NoError(t, b.MkdirAll(ctx, dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestOSBackend_FlushFileAndDirectory(t *testing.T) {
	ctx := context.Background()
	b := OSBackend{}
	dir := t.TempDir()
	name := filepath.Join(dir, "data.db")
	require.NoError(t, b.WriteAll(ctx, name, []byte("x")))

	require.NoError(t, b.Flush(ctx, name, false))
	// Directory flush must succeed (or be tolerated) on every platform.
	require.NoError(t, b.Flush(ctx, dir, true))
}

func TestOSBackend_ReadLines(t *testing.T) {
	ctx := context.Background()
	b := OSBackend{}
	dir := t.TempDir()

	collect := func(name string) []string {
		var lines []string
		err := b.ReadLines(ctx, name, func(line string) error {
			lines = append(lines, line)
			return nil
		})
		require.NoError(t, err)
		return lines
	}

	terminated := filepath.Join(dir, "terminated.db")
	require.NoError(t, b.WriteAll(ctx, terminated, []byte("a\nb\n")))
	require.Equal(t, []string{"a", "b", ""}, collect(terminated))

	unterminated := filepath.Join(dir, "unterminated.db")
	require.NoError(t, b.WriteAll(ctx, unterminated, []byte("a\nb")))
	require.Equal(t, []string{"a", "b"}, collect(unterminated))

	empty := filepath.Join(dir, "empty.db")
	require.NoError(t, b.WriteAll(ctx, empty, nil))
	require.Equal(t, []string{""}, collect(empty))
}

func TestOSBackend_ReadLinesCallbackError(t *testing.T) {
	ctx := context.Background()
	b := OSBackend{}
	name := filepath.Join(t.TempDir(), "data.db")
	require.NoError(t, b.WriteAll(ctx, name, []byte("a\nb\nc\n")))

	boom := os.ErrInvalid
	seen := 0
	err := b.ReadLines(ctx, name, func(string) error {
		seen++
		if seen == 2 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 2, seen)
}

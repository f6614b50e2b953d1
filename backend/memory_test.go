package backend

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestMemoryBackend_Lifecycle(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()

	exists, err := b.Exists(ctx, "data.db")
	require.NoError(t, err)
	require.False(t, exists)

	_, err = b.ReadAll(ctx, "data.db")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, b.WriteAll(ctx, "data.db", []byte("one\n")))
	require.NoError(t, b.Append(ctx, "data.db", []byte("two\n")))

	data, err := b.ReadAll(ctx, "data.db")
	require.NoError(t, err)
	require.Equal(t, "one\ntwo\n", string(data))

	require.NoError(t, b.Rename(ctx, "data.db", "renamed.db"))
	_, err = b.ReadAll(ctx, "data.db")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, b.Remove(ctx, "renamed.db"))
	exists, err = b.Exists(ctx, "renamed.db")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestMemoryBackend_RenameMissing(t *testing.T) {
	b := NewMemoryBackend()
	err := b.Rename(context.Background(), "missing", "target")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryBackend_ReadAllCopies(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	require.NoError(t, b.WriteAll(ctx, "data.db", []byte("abc")))

	data, err := b.ReadAll(ctx, "data.db")
	require.NoError(t, err)
	data[0] = 'X'

	again, err := b.ReadAll(ctx, "data.db")
	require.NoError(t, err)
	require.Equal(t, "abc", string(again))
}

func TestMemoryBackend_ReadLines(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	require.NoError(t, b.WriteAll(ctx, "data.db", []byte("a\nb\n")))

	var lines []string
	err := b.ReadLines(ctx, "data.db", func(line string) error {
		lines = append(lines, line)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", ""}, lines)
}

func TestMemoryBackend_Concurrent(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()

	var g errgroup.Group
	for i := 0; i < 32; i++ {
		name := fmt.Sprintf("file-%02d", i)
		g.Go(func() error {
			if err := b.WriteAll(ctx, name, []byte(name)); err != nil {
				return err
			}
			return b.Append(ctx, name, []byte("!"))
		})
	}
	require.NoError(t, g.Wait())

	for i := 0; i < 32; i++ {
		name := fmt.Sprintf("file-%02d", i)
		data, err := b.ReadAll(ctx, name)
		require.NoError(t, err)
		require.Equal(t, name+"!", string(data))
	}
}

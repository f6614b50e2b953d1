package persistence

import (
	"context"
	"testing"

	"github.com/hupe1980/docgo/backend"
	"github.com/stretchr/testify/require"
)

func TestCrashSafeWriteFile_ProtocolOrder(t *testing.T) {
	ctx := context.Background()
	f := backend.NewFaultyBackend(nil)
	require.NoError(t, f.WriteAll(ctx, "data.db", []byte("old\n")))

	// Reset journal after seeding.
	f = backend.NewFaultyBackend(f.Backend)

	require.NoError(t, crashSafeWriteFile(ctx, f, "data.db", []byte("new\n")))

	require.Equal(t, []string{
		"flush:.:dir=true",
		"exists:data.db",
		"flush:data.db:dir=false",
		"writeAll:data.db~",
		"flush:data.db~:dir=false",
		"rename:data.db~->data.db",
		"flush:.:dir=true",
	}, f.Ops())

	data, err := f.ReadAll(ctx, "data.db")
	require.NoError(t, err)
	require.Equal(t, "new\n", string(data))
}

func TestCrashSafeWriteFile_MissingTargetSkipsTargetFlush(t *testing.T) {
	ctx := context.Background()
	f := backend.NewFaultyBackend(nil)

	require.NoError(t, crashSafeWriteFile(ctx, f, "data.db", []byte("fresh\n")))

	require.NotContains(t, f.Ops(), "flush:data.db:dir=false")

	data, err := f.ReadAll(ctx, "data.db")
	require.NoError(t, err)
	require.Equal(t, "fresh\n", string(data))
}

func TestCrashSafeWriteFile_AbortedRenameKeepsTarget(t *testing.T) {
	ctx := context.Background()
	f := backend.NewFaultyBackend(nil)
	require.NoError(t, f.WriteAll(ctx, "data.db", []byte("old\n")))
	f.AddRule("data.db~", backend.Fault{FailRename: true})

	err := crashSafeWriteFile(ctx, f, "data.db", []byte("new\n"))
	require.Error(t, err)

	// The previous datafile content is still valid.
	data, err := f.ReadAll(ctx, "data.db")
	require.NoError(t, err)
	require.Equal(t, "old\n", string(data))

	// The fully written temp file is the only evidence of the attempt.
	temp, err := f.ReadAll(ctx, "data.db~")
	require.NoError(t, err)
	require.Equal(t, "new\n", string(temp))
}

func TestCrashSafeWriteFile_AbortedWriteKeepsTarget(t *testing.T) {
	ctx := context.Background()
	f := backend.NewFaultyBackend(nil)
	require.NoError(t, f.WriteAll(ctx, "data.db", []byte("old\n")))
	f.AddRule("data.db~", backend.Fault{FailWriteAll: true})

	err := crashSafeWriteFile(ctx, f, "data.db", []byte("new\n"))
	require.Error(t, err)

	data, err := f.ReadAll(ctx, "data.db")
	require.NoError(t, err)
	require.Equal(t, "old\n", string(data))
}

func TestEnsureDatafileIntegrity_TargetPresent(t *testing.T) {
	ctx := context.Background()
	b := backend.NewMemoryBackend()
	require.NoError(t, b.WriteAll(ctx, "data.db", []byte("kept\n")))
	require.NoError(t, b.WriteAll(ctx, "data.db~", []byte("stale\n")))

	require.NoError(t, ensureDatafileIntegrity(ctx, b, "data.db"))

	data, err := b.ReadAll(ctx, "data.db")
	require.NoError(t, err)
	require.Equal(t, "kept\n", string(data))
}

func TestEnsureDatafileIntegrity_PromotesTemp(t *testing.T) {
	ctx := context.Background()
	b := backend.NewMemoryBackend()
	require.NoError(t, b.WriteAll(ctx, "data.db~", []byte("rescued\n")))

	require.NoError(t, ensureDatafileIntegrity(ctx, b, "data.db"))

	data, err := b.ReadAll(ctx, "data.db")
	require.NoError(t, err)
	require.Equal(t, "rescued\n", string(data))

	exists, err := b.Exists(ctx, "data.db~")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestEnsureDatafileIntegrity_CreatesEmpty(t *testing.T) {
	ctx := context.Background()
	b := backend.NewMemoryBackend()

	require.NoError(t, ensureDatafileIntegrity(ctx, b, "data.db"))

	data, err := b.ReadAll(ctx, "data.db")
	require.NoError(t, err)
	require.Empty(t, data)
}

package minio

import (
	"context"
	"testing"

	"github.com/hupe1980/docgo/backend"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/require"
)

// TestStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestStore_Integration(t *testing.T) {
	endpoint := "localhost:9000"
	accessKey := "minioadmin"
	secretKey := "minioadmin"
	bucket := "test-docgo"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	// Check if MinIO is reachable
	if _, err = client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-prefix/")

	// WriteAll / Exists / ReadAll
	require.NoError(t, store.WriteAll(ctx, "data.db", []byte("one\n")))

	ok, err := store.Exists(ctx, "data.db")
	require.NoError(t, err)
	require.True(t, ok)

	data, err := store.ReadAll(ctx, "data.db")
	require.NoError(t, err)
	require.Equal(t, "one\n", string(data))

	// Append is read-concatenate-put
	require.NoError(t, store.Append(ctx, "data.db", []byte("two\n")))
	data, err = store.ReadAll(ctx, "data.db")
	require.NoError(t, err)
	require.Equal(t, "one\ntwo\n", string(data))

	// Append to a missing object behaves like filesystem append
	require.NoError(t, store.Remove(ctx, "fresh.db"))
	require.NoError(t, store.Append(ctx, "fresh.db", []byte("line\n")))
	data, err = store.ReadAll(ctx, "fresh.db")
	require.NoError(t, err)
	require.Equal(t, "line\n", string(data))

	// Rename is copy + delete
	require.NoError(t, store.Rename(ctx, "data.db", "renamed.db"))
	ok, err = store.Exists(ctx, "data.db")
	require.NoError(t, err)
	require.False(t, ok)

	data, err = store.ReadAll(ctx, "renamed.db")
	require.NoError(t, err)
	require.Equal(t, "one\ntwo\n", string(data))

	// Rename of a missing object maps to ErrNotFound
	err = store.Rename(ctx, "missing.db", "whatever.db")
	require.ErrorIs(t, err, backend.ErrNotFound)

	// ReadLines streams with strings.Split semantics
	var lines []string
	require.NoError(t, store.ReadLines(ctx, "renamed.db", func(line string) error {
		lines = append(lines, line)
		return nil
	}))
	require.Equal(t, []string{"one", "two", ""}, lines)

	// Flush is always a no-op success
	require.NoError(t, store.Flush(ctx, "renamed.db", false))

	require.NoError(t, store.Remove(ctx, "renamed.db"))
	require.NoError(t, store.Remove(ctx, "fresh.db"))
}

func TestStore_KeyPrefixing(t *testing.T) {
	s := NewStore(nil, "bucket", "collections/")
	require.Equal(t, "collections/orders.db", s.key("orders.db"))

	bare := NewStore(nil, "bucket", "")
	require.Equal(t, "orders.db", bare.key("orders.db"))
}

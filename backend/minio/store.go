package minio

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/hupe1980/docgo/backend"
	"github.com/minio/minio-go/v7"
)

// Store implements backend.Backend for MinIO and S3-compatible storage.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

var _ backend.Backend = (*Store)(nil)
var _ backend.LineStreamer = (*Store)(nil)

// NewStore creates a new MinIO backend.
// bucket is the MinIO bucket name.
// rootPrefix is prepended to all keys (e.g. "collections/").
func NewStore(client *minio.Client, bucket, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

func notFound(err error) bool {
	errResp := minio.ToErrorResponse(err)
	return errResp.Code == "NoSuchKey" || errResp.Code == "NotFound"
}

func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, s.key(name), minio.StatObjectOptions{})
	if err != nil {
		if notFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Rename is emulated with a server-side copy followed by a delete. The
// copy is atomic per object, which is the property the rewrite protocol
// relies on; the temp object lingering after a crash between copy and
// delete is cleaned up by the next rewrite.
func (s *Store) Rename(ctx context.Context, oldpath, newpath string) error {
	src := minio.CopySrcOptions{Bucket: s.bucket, Object: s.key(oldpath)}
	dst := minio.CopyDestOptions{Bucket: s.bucket, Object: s.key(newpath)}

	if _, err := s.client.CopyObject(ctx, dst, src); err != nil {
		if notFound(err) {
			return fmt.Errorf("rename %s: %w", oldpath, backend.ErrNotFound)
		}
		return err
	}
	return s.Remove(ctx, oldpath)
}

func (s *Store) WriteAll(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, s.key(name),
		bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	return err
}

// Append reads the current object, concatenates, and puts it back. A
// missing object is treated as empty, matching filesystem append
// semantics.
func (s *Store) Append(ctx context.Context, name string, data []byte) error {
	current, err := s.ReadAll(ctx, name)
	if err != nil && !errors.Is(err, backend.ErrNotFound) {
		return err
	}
	return s.WriteAll(ctx, name, append(current, data...))
}

func (s *Store) ReadAll(ctx context.Context, name string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("read %s: %w", name, backend.ErrNotFound)
		}
		return nil, err
	}
	return data, nil
}

func (s *Store) MkdirAll(_ context.Context, _ string) error {
	return nil // Flat keyspace
}

func (s *Store) Remove(ctx context.Context, name string) error {
	err := s.client.RemoveObject(ctx, s.bucket, s.key(name), minio.RemoveObjectOptions{})
	if err != nil && !notFound(err) {
		return err
	}
	return nil
}

// Flush is a no-op: the medium has no file-level fsync.
func (s *Store) Flush(_ context.Context, _ string, _ bool) error {
	return nil
}

// ReadLines streams the object line by line with strings.Split semantics,
// keeping memory bounded by a single line regardless of object size.
func (s *Store) ReadLines(ctx context.Context, name string, fn func(line string) error) error {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key(name), minio.GetObjectOptions{})
	if err != nil {
		return err
	}
	defer obj.Close()

	r := bufio.NewReader(obj)
	for {
		line, err := r.ReadString('\n')
		switch {
		case err == nil:
			if cbErr := fn(line[:len(line)-1]); cbErr != nil {
				return cbErr
			}
		case errors.Is(err, io.EOF):
			return fn(line)
		case notFound(err):
			return fmt.Errorf("read %s: %w", name, backend.ErrNotFound)
		default:
			return err
		}
	}
}

package backend

import (
	"context"
	"os"
)

// ErrNotFound is returned when a datafile does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Backend abstracts the storage medium holding a datafile.
type Backend interface {
	// Exists reports whether name exists on the medium.
	Exists(ctx context.Context, name string) (bool, error)

	// Rename atomically renames oldpath to newpath, replacing newpath if
	// it exists.
	Rename(ctx context.Context, oldpath, newpath string) error

	// WriteAll replaces the full content of name with data, creating it
	// if absent.
	WriteAll(ctx context.Context, name string, data []byte) error

	// Append appends data to name, creating it if absent.
	Append(ctx context.Context, name string, data []byte) error

	// ReadAll returns the full content of name.
	ReadAll(ctx context.Context, name string) ([]byte, error)

	// MkdirAll creates dir and any missing parents.
	MkdirAll(ctx context.Context, dir string) error

	// Remove deletes name.
	Remove(ctx context.Context, name string) error

	// Flush requests that previously written bytes of name become durable.
	// dir indicates that name refers to a directory. Media that cannot
	// flush the given object kind return nil.
	Flush(ctx context.Context, name string, dir bool) error
}

// LineStreamer is an optional interface for backends that can read a file
// incrementally, one line at a time.
//
// fn is invoked once per newline-delimited segment with the trailing
// newline stripped, including the final empty segment of a
// newline-terminated file. This matches splitting the whole content on
// "\n", so streaming and whole-file loads see identical line sequences.
// An error from fn aborts the stream and is returned unchanged.
type LineStreamer interface {
	ReadLines(ctx context.Context, name string, fn func(line string) error) error
}

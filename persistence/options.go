package persistence

import (
	"github.com/hupe1980/docgo"
	"github.com/hupe1980/docgo/backend"
	"github.com/hupe1980/docgo/codec"
	"github.com/hupe1980/docgo/transform"
)

// Options contains configuration for a Persistence coordinator.
type Options struct {
	// Filename is the datafile path. It must not end in the reserved temp
	// suffix "~".
	Filename string

	// InMemoryOnly disables the durable medium entirely. Load returns
	// empty state immediately and Compact/AppendChanges are no-ops.
	InMemoryOnly bool

	// Backend is the storage medium. Default is the local filesystem.
	Backend backend.Backend

	// Codec serializes individual lines. Default is codec.Default.
	Codec codec.Codec

	// Transform is an optional matched encode/decode pair applied per
	// line. It is probed for the inverse property at construction time.
	// Default is transform.Identity.
	Transform transform.Transform

	// CorruptAlertThreshold is the tolerated fraction of unparseable
	// lines during a load, within [0, 1]. Default is 0.1.
	CorruptAlertThreshold float64

	// Logger receives structured operation logs. Default discards.
	Logger *docgo.Logger

	// CompactExec, when set, runs timer-driven compactions. Owners that
	// serialize operations through a queue should submit the function to
	// that queue; when nil the timer goroutine runs compactions directly.
	CompactExec func(compact func())
}

// DefaultOptions holds the default coordinator options.
var DefaultOptions = Options{
	Filename:              "docgo.db",
	CorruptAlertThreshold: 0.1,
}

// WithFilename sets the datafile path.
func WithFilename(filename string) func(*Options) {
	return func(o *Options) {
		o.Filename = filename
	}
}

// WithInMemoryOnly disables durable storage.
func WithInMemoryOnly() func(*Options) {
	return func(o *Options) {
		o.InMemoryOnly = true
	}
}

// WithBackend sets the storage medium.
func WithBackend(b backend.Backend) func(*Options) {
	return func(o *Options) {
		o.Backend = b
	}
}

// WithCodec sets the line codec.
func WithCodec(c codec.Codec) func(*Options) {
	return func(o *Options) {
		o.Codec = c
	}
}

// WithTransform sets the matched line transform pair.
func WithTransform(t transform.Transform) func(*Options) {
	return func(o *Options) {
		o.Transform = t
	}
}

// WithCorruptAlertThreshold sets the tolerated corrupt-line fraction.
func WithCorruptAlertThreshold(threshold float64) func(*Options) {
	return func(o *Options) {
		o.CorruptAlertThreshold = threshold
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *docgo.Logger) func(*Options) {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithCompactExec routes timer-driven compactions through the owner's
// serialized operation queue.
func WithCompactExec(exec func(compact func())) func(*Options) {
	return func(o *Options) {
		o.CompactExec = exec
	}
}

// Package docgo provides the durable persistence core of an embedded
// document store.
//
// Docgo turns an in-memory set of documents into a crash-safe append-only
// log on disk and reconstructs that state from the log after any failure,
// including failures that interrupt a write in flight. It is the layer a
// collection API builds on top of; queries, indexes, and field matching
// live above it.
//
// # Architecture
//
//   - backend: capability interface over a storage medium, with filesystem,
//     in-memory, and S3-compatible key/value implementations
//   - codec: pluggable per-line serialization (go-json by default)
//   - transform: optional matched encode/decode line transforms
//     (compression, checksums); verified to be exact inverses at
//     construction time
//   - persistence: the coordinator driving load, append, and atomic
//     compaction over the log
//
// # Durability
//
// The datafile is never rewritten in place. Full rewrites go through a
// shadow temp file that is flushed and atomically renamed over the target,
// with parent-directory flushes on either side. A startup integrity check
// promotes a leftover temp file when a crash interrupted the final rename.
//
// # Concurrency
//
// The persistence coordinator performs no internal locking. The enclosing
// store must serialize Load, Compact, and AppendChanges through a single
// logical operation queue; see persistence.Options.CompactExec for funneling
// timer-driven compactions through that queue.
package docgo

// Package backend provides the storage abstraction for docgo's datafiles.
//
// Backend is the capability interface the persistence layer consumes:
// existence check, atomic rename, whole-file write, append, whole-file
// read, recursive directory creation, delete, and best-effort flush.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - OSBackend: local filesystem with full fsync durability
//   - MemoryBackend: in-memory map for tests and in-memory-only mode
//   - minio.Store: S3-compatible object storage (best-effort durability)
//   - FaultyBackend: fault-injection wrapper for crash-protocol tests
//
// # Flush Semantics
//
// Flush asks that previously written bytes become durable on the medium.
// Media that cannot flush a given object kind (a directory handle, or any
// object on a store without file-level fsync) must treat the request as a
// successful no-op rather than an error; refusing to operate over such a
// medium would be overly strict. Hard I/O failures are still surfaced.
package backend

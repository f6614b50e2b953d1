// Package persistence implements the crash-safe log layer of docgo.
//
// A collection's state lives in one append-only text datafile. Each line
// independently serializes a primary record, a deletion tombstone, or a
// secondary-index directive; later lines supersede earlier ones for the
// same key. Normal operation appends; compaction rewrites the whole file
// from the materialized state through an atomic temp-file-then-rename
// protocol, so the previous datafile stays valid until the rename lands.
//
// # Operations
//
//	p, err := persistence.New(persistence.WithFilename("orders.db"))
//	if err != nil { ... }
//	if err := p.Load(ctx); err != nil { ... }       // replay + self-healing compact
//	err = p.AppendChanges(ctx, changes)             // append-only mutation
//	err = p.Compact(ctx)                            // full rewrite, fires listeners
//
// # Sequencing contract
//
// The coordinator performs no internal locking. The enclosing store must
// serialize Load, Compact, and AppendChanges through a single logical
// operation queue; two compactions or an append racing a compaction can
// lose or interleave writes. The autocompaction timer is the only source
// of unsolicited work and can be funneled through that same queue via
// Options.CompactExec.
package persistence

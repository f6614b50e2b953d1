package persistence

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hupe1980/docgo/backend"
)

// crashSafeWriteFile atomically rewrites filename with content.
//
// The six-step protocol guarantees the previous datafile stays valid
// until the rename lands:
//
//  1. flush the parent directory (best effort on media that support it)
//  2. flush the existing target, if any
//  3. write the full new content to the temp file
//  4. flush the temp file
//  5. atomically rename the temp file over the target
//  6. flush the parent directory again
//
// Any hard failure aborts and is surfaced; no partial state is ever
// promoted to the target.
func crashSafeWriteFile(ctx context.Context, b backend.Backend, filename string, content []byte) error {
	tempFilename := filename + TempSuffix
	dir := filepath.Dir(filename)

	if err := b.Flush(ctx, dir, true); err != nil {
		return fmt.Errorf("flush parent directory: %w", err)
	}

	exists, err := b.Exists(ctx, filename)
	if err != nil {
		return fmt.Errorf("check datafile: %w", err)
	}
	if exists {
		if err := b.Flush(ctx, filename, false); err != nil {
			return fmt.Errorf("flush datafile: %w", err)
		}
	}

	if err := b.WriteAll(ctx, tempFilename, content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := b.Flush(ctx, tempFilename, false); err != nil {
		return fmt.Errorf("flush temp file: %w", err)
	}

	if err := b.Rename(ctx, tempFilename, filename); err != nil {
		return fmt.Errorf("promote temp file: %w", err)
	}

	if err := b.Flush(ctx, dir, true); err != nil {
		return fmt.Errorf("flush parent directory: %w", err)
	}
	return nil
}

// ensureDatafileIntegrity runs once at startup, before any load.
//
// Target present: the previous write fully succeeded (or a fresh file
// already exists) and the temp file, if any, is stale. Target missing but
// temp present: a prior rewrite completed its write and flush but crashed
// before the rename became visible, so the temp file is promoted. Neither
// present: first-ever use, create an empty target.
func ensureDatafileIntegrity(ctx context.Context, b backend.Backend, filename string) error {
	exists, err := b.Exists(ctx, filename)
	if err != nil {
		return fmt.Errorf("check datafile: %w", err)
	}
	if exists {
		return nil
	}

	tempFilename := filename + TempSuffix
	tempExists, err := b.Exists(ctx, tempFilename)
	if err != nil {
		return fmt.Errorf("check temp file: %w", err)
	}
	if tempExists {
		if err := b.Rename(ctx, tempFilename, filename); err != nil {
			return fmt.Errorf("promote temp file: %w", err)
		}
		return nil
	}

	if err := b.WriteAll(ctx, filename, nil); err != nil {
		return fmt.Errorf("create empty datafile: %w", err)
	}
	return nil
}

package backend

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MemoryBackend is an in-memory Backend implementation. It stores files in
// a map without any filesystem dependency and is safe for concurrent use.
//
// Flush is a documented no-op: the medium has no notion of durable storage,
// matching the best-effort contract for key/value-like media.
type MemoryBackend struct {
	mu    sync.RWMutex
	files map[string][]byte
}

var _ Backend = (*MemoryBackend)(nil)
var _ LineStreamer = (*MemoryBackend)(nil)

// NewMemoryBackend creates a new in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		files: make(map[string][]byte),
	}
}

func (m *MemoryBackend) Exists(_ context.Context, name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.files[name]
	return ok, nil
}

func (m *MemoryBackend) Rename(_ context.Context, oldpath, newpath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.files[oldpath]
	if !ok {
		return fmt.Errorf("rename %s: %w", oldpath, ErrNotFound)
	}
	m.files[newpath] = data
	delete(m.files, oldpath)
	return nil
}

func (m *MemoryBackend) WriteAll(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Copy to prevent external mutation
	copied := make([]byte, len(data))
	copy(copied, data)
	m.files[name] = copied
	return nil
}

func (m *MemoryBackend) Append(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[name] = append(m.files[name], data...)
	return nil
}

func (m *MemoryBackend) ReadAll(_ context.Context, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[name]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", name, ErrNotFound)
	}
	copied := make([]byte, len(data))
	copy(copied, data)
	return copied, nil
}

func (m *MemoryBackend) MkdirAll(_ context.Context, _ string) error {
	return nil // Flat namespace
}

func (m *MemoryBackend) Remove(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.files, name)
	return nil
}

func (m *MemoryBackend) Flush(_ context.Context, _ string, _ bool) error {
	return nil // No durable medium to flush to
}

// ReadLines streams name line by line with strings.Split semantics.
func (m *MemoryBackend) ReadLines(ctx context.Context, name string, fn func(line string) error) error {
	data, err := m.ReadAll(ctx, name)
	if err != nil {
		return err
	}
	for _, line := range strings.Split(string(data), "\n") {
		if err := fn(line); err != nil {
			return err
		}
	}
	return nil
}

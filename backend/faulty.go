package backend

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Fault defines specific failure behavior for matching paths.
type Fault struct {
	FailWriteAll bool
	FailAppend   bool
	FailRename   bool
	FailFlush    bool
	FailRemove   bool
	Err          error
}

// FaultyBackend is a Backend wrapper that can inject errors and records an
// operation journal. Tests use it to interrupt the rewrite protocol at a
// chosen step and to assert the order of backend calls.
type FaultyBackend struct {
	Backend Backend

	mu    sync.Mutex
	rules map[string]Fault // Path pattern -> Fault
	ops   []string
}

var _ Backend = (*FaultyBackend)(nil)

// NewFaultyBackend creates a new FaultyBackend wrapping the provided
// backend (or a fresh MemoryBackend if nil).
func NewFaultyBackend(b Backend) *FaultyBackend {
	if b == nil {
		b = NewMemoryBackend()
	}
	return &FaultyBackend{
		Backend: b,
		rules:   make(map[string]Fault),
	}
}

// AddRule adds a fault injection rule for paths containing pattern.
func (f *FaultyBackend) AddRule(pattern string, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules[pattern] = fault
}

// Ops returns the journal of backend operations performed so far.
func (f *FaultyBackend) Ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.ops))
	copy(out, f.ops)
	return out
}

func (f *FaultyBackend) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, op)
}

func (f *FaultyBackend) fault(name string) (Fault, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for pattern, rule := range f.rules {
		if strings.Contains(name, pattern) {
			return rule, true
		}
	}
	return Fault{}, false
}

func faultErr(fault Fault, op, name string) error {
	if fault.Err != nil {
		return fault.Err
	}
	return fmt.Errorf("injected %s fault on %s", op, name)
}

func (f *FaultyBackend) Exists(ctx context.Context, name string) (bool, error) {
	f.record("exists:" + name)
	return f.Backend.Exists(ctx, name)
}

func (f *FaultyBackend) Rename(ctx context.Context, oldpath, newpath string) error {
	f.record("rename:" + oldpath + "->" + newpath)
	if fault, ok := f.fault(oldpath); ok && fault.FailRename {
		return faultErr(fault, "rename", oldpath)
	}
	return f.Backend.Rename(ctx, oldpath, newpath)
}

func (f *FaultyBackend) WriteAll(ctx context.Context, name string, data []byte) error {
	f.record("writeAll:" + name)
	if fault, ok := f.fault(name); ok && fault.FailWriteAll {
		return faultErr(fault, "writeAll", name)
	}
	return f.Backend.WriteAll(ctx, name, data)
}

func (f *FaultyBackend) Append(ctx context.Context, name string, data []byte) error {
	f.record("append:" + name)
	if fault, ok := f.fault(name); ok && fault.FailAppend {
		return faultErr(fault, "append", name)
	}
	return f.Backend.Append(ctx, name, data)
}

func (f *FaultyBackend) ReadAll(ctx context.Context, name string) ([]byte, error) {
	f.record("readAll:" + name)
	return f.Backend.ReadAll(ctx, name)
}

func (f *FaultyBackend) MkdirAll(ctx context.Context, dir string) error {
	f.record("mkdirAll:" + dir)
	return f.Backend.MkdirAll(ctx, dir)
}

func (f *FaultyBackend) Remove(ctx context.Context, name string) error {
	f.record("remove:" + name)
	if fault, ok := f.fault(name); ok && fault.FailRemove {
		return faultErr(fault, "remove", name)
	}
	return f.Backend.Remove(ctx, name)
}

func (f *FaultyBackend) Flush(ctx context.Context, name string, dir bool) error {
	f.record(fmt.Sprintf("flush:%s:dir=%v", name, dir))
	if fault, ok := f.fault(name); ok && fault.FailFlush {
		return faultErr(fault, "flush", name)
	}
	return f.Backend.Flush(ctx, name, dir)
}

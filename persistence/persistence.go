package persistence

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hupe1980/docgo"
	"github.com/hupe1980/docgo/backend"
	"github.com/hupe1980/docgo/codec"
	"github.com/hupe1980/docgo/model"
	"github.com/hupe1980/docgo/transform"
)

// Status is the lifecycle state of a Persistence coordinator.
type Status int32

const (
	// StatusUninitialized is the state before the first Load.
	StatusUninitialized Status = iota
	// StatusLoading is the state while a Load is replaying the datafile.
	StatusLoading
	// StatusReady is the working state between operations.
	StatusReady
	// StatusCompacting is the state during a full rewrite.
	StatusCompacting
	// StatusAppending is the state during an append.
	StatusAppending
	// StatusFailed is terminal: a load hit an integrity or I/O error and
	// the coordinator must not continue with partial data.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusCompacting:
		return "compacting"
	case StatusAppending:
		return "appending"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int32(s))
	}
}

// Persistence coordinates load, append, and atomic compaction over a
// single datafile. It owns the materialized record set and the
// index-directive map between loads.
//
// Persistence performs no internal locking; see the package documentation
// for the sequencing contract.
type Persistence struct {
	opts   Options
	logger *docgo.Logger

	docs    map[string]model.Document
	indexes map[string]model.IndexOptions

	status   atomic.Int32
	notifier compactionNotifier
	ac       autocompactor
}

// New creates a Persistence coordinator. Configuration violations are
// fatal: a datafile name ending in the reserved temp suffix, a threshold
// outside [0, 1], or a transform pair that is not an exact inverse all
// refuse construction rather than risk silent corruption.
func New(optFns ...func(*Options)) (*Persistence, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Backend == nil {
		opts.Backend = backend.OSBackend{}
	}
	if opts.Codec == nil {
		opts.Codec = codec.Default
	}
	if opts.Transform == nil {
		opts.Transform = transform.Identity{}
	}
	if opts.Logger == nil {
		opts.Logger = docgo.NoopLogger()
	}

	if strings.HasSuffix(opts.Filename, TempSuffix) {
		return nil, fmt.Errorf("%w: %q", ErrReservedSuffix, opts.Filename)
	}
	if opts.CorruptAlertThreshold < 0 || opts.CorruptAlertThreshold > 1 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidThreshold, opts.CorruptAlertThreshold)
	}
	if err := verifyTransform(opts.Transform); err != nil {
		return nil, err
	}

	return &Persistence{
		opts:    opts,
		logger:  opts.Logger,
		docs:    make(map[string]model.Document),
		indexes: make(map[string]model.IndexOptions),
	}, nil
}

// verifyTransform probes the encode/decode pair with random strings of
// every length 1..29, several samples each. A pair that fails the
// round trip risks silent, undetectable data loss, so it is rejected
// outright.
func verifyTransform(tr transform.Transform) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for length := 1; length < 30; length++ {
		for sample := 0; sample < 10; sample++ {
			s := randomProbe(rng, length)
			enc, err := tr.Encode(s)
			if err != nil {
				return fmt.Errorf("%w: encode failed: %v", ErrBrokenTransform, err)
			}
			dec, err := tr.Decode(enc)
			if err != nil {
				return fmt.Errorf("%w: decode failed: %v", ErrBrokenTransform, err)
			}
			if dec != s {
				return fmt.Errorf("%w: round trip altered input of length %d", ErrBrokenTransform, length)
			}
		}
	}
	return nil
}

var probeAlphabet = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789{}\":,[]$_ äöüßæøπ")

func randomProbe(rng *rand.Rand, length int) string {
	runes := make([]rune, length)
	for i := range runes {
		runes[i] = probeAlphabet[rng.Intn(len(probeAlphabet))]
	}
	return string(runes)
}

// Status returns the current lifecycle state.
func (p *Persistence) Status() Status {
	return Status(p.status.Load())
}

func (p *Persistence) setStatus(s Status) {
	p.status.Store(int32(s))
}

// Filename returns the configured datafile path.
func (p *Persistence) Filename() string {
	return p.opts.Filename
}

// OnCompaction registers a listener fired after every successful full
// rewrite.
func (p *Persistence) OnCompaction(l CompactionListener) {
	p.notifier.subscribe(l)
}

// Documents returns a snapshot of the materialized record set.
func (p *Persistence) Documents() map[string]model.Document {
	out := make(map[string]model.Document, len(p.docs))
	for id, doc := range p.docs {
		out[id] = doc
	}
	return out
}

// Indexes returns a snapshot of the index-directive map.
func (p *Persistence) Indexes() map[string]model.IndexOptions {
	out := make(map[string]model.IndexOptions, len(p.indexes))
	for field, opts := range p.indexes {
		out[field] = opts
	}
	return out
}

// Load resets the in-memory state and rebuilds it from the datafile:
// startup integrity check, replay, then an unconditional self-healing
// compaction that normalizes a log grown through many small appends.
// Operations queued by the enclosing store must be held back until Load
// returns.
//
// An integrity or I/O failure is terminal: the coordinator transitions to
// StatusFailed and refuses further operations rather than continue with
// partial data.
func (p *Persistence) Load(ctx context.Context) error {
	if p.Status() == StatusFailed {
		return ErrFailedState
	}
	p.setStatus(StatusLoading)
	p.docs = make(map[string]model.Document)
	p.indexes = make(map[string]model.IndexOptions)

	if p.opts.InMemoryOnly {
		p.setStatus(StatusReady)
		return nil
	}

	corrupt, err := p.load(ctx)
	p.logger.LogLoad(ctx, p.opts.Filename, len(p.docs), corrupt, err)
	if err != nil {
		p.setStatus(StatusFailed)
		return err
	}
	p.setStatus(StatusReady)
	return nil
}

func (p *Persistence) load(ctx context.Context) (int, error) {
	b := p.opts.Backend

	if dir := filepath.Dir(p.opts.Filename); dir != "" && dir != "." {
		if err := b.MkdirAll(ctx, dir); err != nil {
			return 0, fmt.Errorf("create datafile directory: %w", err)
		}
	}
	if err := ensureDatafileIntegrity(ctx, b, p.opts.Filename); err != nil {
		return 0, err
	}

	var (
		state   *rawState
		corrupt int
		err     error
	)
	if ls, ok := b.(backend.LineStreamer); ok {
		state, corrupt, err = p.treatRawStream(ctx, ls)
	} else {
		var data []byte
		if data, err = b.ReadAll(ctx, p.opts.Filename); err != nil {
			return 0, fmt.Errorf("read datafile: %w", err)
		}
		state, corrupt, err = p.treatRawData(data)
	}
	if err != nil {
		return corrupt, err
	}

	p.docs = state.docs
	p.indexes = state.indexes

	return corrupt, p.compact(ctx)
}

// Compact serializes every materialized record plus every non-primary
// index directive, one per line, and atomically rewrites the datafile.
// On success all compaction listeners are notified. A failed compaction
// leaves the prior datafile untouched.
func (p *Persistence) Compact(ctx context.Context) error {
	if err := p.checkReady(); err != nil {
		return err
	}
	if p.opts.InMemoryOnly {
		return nil
	}
	p.setStatus(StatusCompacting)
	defer p.setStatus(StatusReady)
	return p.compact(ctx)
}

func (p *Persistence) compact(ctx context.Context) error {
	var sb strings.Builder

	ids := make([]string, 0, len(p.docs))
	for id := range p.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		line, err := p.encodeDoc(p.docs[id])
		if err != nil {
			return err
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	fields := make([]string, 0, len(p.indexes))
	for field := range p.indexes {
		if field == model.IDField {
			continue // The primary index is implicit, never logged
		}
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		line, err := p.encodeIndexCreated(p.indexes[field])
		if err != nil {
			return err
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	if err := crashSafeWriteFile(ctx, p.opts.Backend, p.opts.Filename, []byte(sb.String())); err != nil {
		p.logger.LogCompaction(ctx, p.opts.Filename, 0, err)
		return err
	}

	p.logger.LogCompaction(ctx, p.opts.Filename, len(ids)+len(fields), nil)
	p.notifier.notify()
	return nil
}

// AppendChanges serializes the given changes, tombstones included, and
// appends them to the datafile in one backend write without touching
// existing content. The same replay rule is applied to the in-memory set
// so a later Compact reflects the changes without a reload. No-op for
// empty input or in in-memory-only mode.
//
// A failed append may leave a partially written trailing line; the
// per-line corruption leniency of the next load tolerates it and the next
// successful compaction rewrites it away.
func (p *Persistence) AppendChanges(ctx context.Context, changes []model.Change) error {
	if err := p.checkReady(); err != nil {
		return err
	}
	if len(changes) == 0 || p.opts.InMemoryOnly {
		return nil
	}
	p.setStatus(StatusAppending)
	defer p.setStatus(StatusReady)

	var sb strings.Builder
	for _, c := range changes {
		id, ok := c.Doc.ID()
		if !ok {
			return ErrMissingID
		}
		var (
			line string
			err  error
		)
		if c.Deleted {
			line, err = p.encodeTombstone(id)
		} else {
			line, err = p.encodeDoc(c.Doc)
		}
		if err != nil {
			return err
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	if err := p.opts.Backend.Append(ctx, p.opts.Filename, []byte(sb.String())); err != nil {
		err = fmt.Errorf("append changes: %w", err)
		p.logger.LogAppend(ctx, p.opts.Filename, len(changes), err)
		return err
	}

	for _, c := range changes {
		id, _ := c.Doc.ID()
		if c.Deleted {
			delete(p.docs, id)
		} else {
			p.docs[id] = c.Doc
		}
	}

	p.logger.LogAppend(ctx, p.opts.Filename, len(changes), nil)
	return nil
}

// SetIndex records a secondary-index directive: the in-memory map is
// updated and the directive line is appended to the log. A later
// directive for the same field overwrites the earlier one on replay.
func (p *Persistence) SetIndex(ctx context.Context, opts model.IndexOptions) error {
	if err := p.checkReady(); err != nil {
		return err
	}
	if opts.FieldName == "" {
		return fmt.Errorf("index directive requires a field name")
	}

	if !p.opts.InMemoryOnly {
		p.setStatus(StatusAppending)
		defer p.setStatus(StatusReady)

		line, err := p.encodeIndexCreated(opts)
		if err != nil {
			return err
		}
		if err := p.opts.Backend.Append(ctx, p.opts.Filename, []byte(line+"\n")); err != nil {
			return fmt.Errorf("append index directive: %w", err)
		}
	}

	p.indexes[opts.FieldName] = opts
	return nil
}

// RemoveIndex records an index-removal directive and deletes the field's
// entry from the directive map.
func (p *Persistence) RemoveIndex(ctx context.Context, fieldName string) error {
	if err := p.checkReady(); err != nil {
		return err
	}

	if !p.opts.InMemoryOnly {
		p.setStatus(StatusAppending)
		defer p.setStatus(StatusReady)

		line, err := p.encodeIndexRemoved(fieldName)
		if err != nil {
			return err
		}
		if err := p.opts.Backend.Append(ctx, p.opts.Filename, []byte(line+"\n")); err != nil {
			return fmt.Errorf("append index directive: %w", err)
		}
	}

	delete(p.indexes, fieldName)
	return nil
}

// Close stops the autocompaction schedule. It does not flush or rewrite
// the datafile; pending durability was established by the last successful
// append or compaction.
func (p *Persistence) Close() error {
	p.StopAutocompaction()
	return nil
}

func (p *Persistence) checkReady() error {
	switch p.Status() {
	case StatusFailed:
		return ErrFailedState
	case StatusUninitialized, StatusLoading:
		return ErrNotReady
	default:
		return nil
	}
}

package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/docgo/backend"
	"github.com/hupe1980/docgo/model"
)

// rawState is the outcome of replaying a log: the materialized record set
// keyed by identifier and the index-directive map keyed by field name.
type rawState struct {
	docs    map[string]model.Document
	indexes map[string]model.IndexOptions
}

func newRawState() *rawState {
	return &rawState{
		docs:    make(map[string]model.Document),
		indexes: make(map[string]model.IndexOptions),
	}
}

// apply replays one entry under strict last-wins semantics: a record
// overwrites, a tombstone removes (even a record from the same load), an
// index directive overwrites, an index removal deletes.
func (s *rawState) apply(e lineEntry) {
	switch {
	case e.doc != nil:
		id, _ := e.doc.ID()
		s.docs[id] = e.doc
	case e.tombstoneID != "":
		delete(s.docs, e.tombstoneID)
	case e.indexCreated != nil:
		s.indexes[e.indexCreated.FieldName] = *e.indexCreated
	case e.indexRemoved != "":
		delete(s.indexes, e.indexRemoved)
	}
}

// replayer accumulates lines and enforces the corruption-ratio policy.
// Both the whole-blob and streaming loads funnel through it, so the two
// variants produce identical results for equivalent content.
type replayer struct {
	p       *Persistence
	state   *rawState
	corrupt int // starts at -1: the customary trailing blank line is free
	total   int
}

func (p *Persistence) newReplayer() *replayer {
	return &replayer{p: p, state: newRawState(), corrupt: -1}
}

func (r *replayer) addLine(line string) {
	r.total++
	entry, err := r.p.decodeLine(line)
	if err != nil {
		r.corrupt++
		return
	}
	r.state.apply(entry)
}

func (r *replayer) finish() (*rawState, int, error) {
	corrupt := r.corrupt
	if corrupt < 0 {
		corrupt = 0
	}
	if r.total > 0 && float64(corrupt)/float64(r.total) > r.p.opts.CorruptAlertThreshold {
		return nil, corrupt, fmt.Errorf(
			"%w: %d of %d lines unparseable (threshold %g)",
			ErrDataCorrupted, corrupt, r.total, r.p.opts.CorruptAlertThreshold,
		)
	}
	return r.state, corrupt, nil
}

// treatRawData replays a complete text blob.
func (p *Persistence) treatRawData(data []byte) (*rawState, int, error) {
	r := p.newReplayer()
	for _, line := range strings.Split(string(data), "\n") {
		r.addLine(line)
	}
	return r.finish()
}

// treatRawStream replays the datafile incrementally, with memory bounded
// by a single line.
func (p *Persistence) treatRawStream(ctx context.Context, ls backend.LineStreamer) (*rawState, int, error) {
	r := p.newReplayer()
	if err := ls.ReadLines(ctx, p.opts.Filename, func(line string) error {
		r.addLine(line)
		return nil
	}); err != nil {
		return nil, 0, fmt.Errorf("stream datafile: %w", err)
	}
	return r.finish()
}

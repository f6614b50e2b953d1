package persistence

import (
	"fmt"
	"strings"

	"github.com/hupe1980/docgo/model"
)

// TempSuffix is appended to the datafile name to form the shadow temp
// file used during an atomic rewrite. A configured datafile name must
// never end in it.
const TempSuffix = "~"

// Reserved wrapper keys of the line grammar.
const (
	deletedKey      = "$deleted"
	indexCreatedKey = "$indexCreated"
	indexRemovedKey = "$indexRemoved"
)

// lineEntry is one decoded log line. Exactly one of the fields is set.
type lineEntry struct {
	doc          model.Document
	tombstoneID  string
	indexCreated *model.IndexOptions
	indexRemoved string
}

// lineProbe classifies a raw line before full decoding.
type lineProbe struct {
	ID           string              `json:"_id"`
	Deleted      bool                `json:"$deleted"`
	IndexCreated *model.IndexOptions `json:"$indexCreated"`
	IndexRemoved string              `json:"$indexRemoved"`
}

// encodeLine serializes v with the configured codec and transform,
// rejecting payloads that would break the one-entry-per-line grammar.
func (p *Persistence) encodeLine(v any) (string, error) {
	raw, err := p.opts.Codec.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal line: %w", err)
	}
	if strings.ContainsRune(string(raw), '\n') {
		return "", fmt.Errorf("marshal line: payload contains a newline")
	}
	line, err := p.opts.Transform.Encode(string(raw))
	if err != nil {
		return "", fmt.Errorf("encode line: %w", err)
	}
	if strings.ContainsRune(line, '\n') {
		return "", fmt.Errorf("encode line: transform produced a newline")
	}
	return line, nil
}

func (p *Persistence) encodeDoc(doc model.Document) (string, error) {
	if _, ok := doc.ID(); !ok {
		return "", ErrMissingID
	}
	return p.encodeLine(doc)
}

func (p *Persistence) encodeTombstone(id string) (string, error) {
	return p.encodeLine(model.Document{model.IDField: id, deletedKey: true})
}

func (p *Persistence) encodeIndexCreated(opts model.IndexOptions) (string, error) {
	return p.encodeLine(map[string]any{indexCreatedKey: opts})
}

func (p *Persistence) encodeIndexRemoved(fieldName string) (string, error) {
	return p.encodeLine(map[string]any{indexRemovedKey: fieldName})
}

// decodeLine inverts encodeLine and classifies the entry. Any failure
// marks the line corrupt; per-line corruption is not fatal on its own.
func (p *Persistence) decodeLine(line string) (lineEntry, error) {
	raw, err := p.opts.Transform.Decode(line)
	if err != nil {
		return lineEntry{}, fmt.Errorf("decode line: %w", err)
	}

	var probe lineProbe
	if err := p.opts.Codec.Unmarshal([]byte(raw), &probe); err != nil {
		return lineEntry{}, fmt.Errorf("unmarshal line: %w", err)
	}

	switch {
	case probe.IndexCreated != nil:
		if probe.IndexCreated.FieldName == "" {
			return lineEntry{}, fmt.Errorf("index directive without field name")
		}
		return lineEntry{indexCreated: probe.IndexCreated}, nil
	case probe.IndexRemoved != "":
		return lineEntry{indexRemoved: probe.IndexRemoved}, nil
	case probe.Deleted:
		if probe.ID == "" {
			return lineEntry{}, fmt.Errorf("tombstone without identifier")
		}
		return lineEntry{tombstoneID: probe.ID}, nil
	}

	var doc model.Document
	if err := p.opts.Codec.Unmarshal([]byte(raw), &doc); err != nil {
		return lineEntry{}, fmt.Errorf("unmarshal document: %w", err)
	}
	if _, ok := doc.ID(); !ok {
		return lineEntry{}, ErrMissingID
	}
	return lineEntry{doc: doc}, nil
}

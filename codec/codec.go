// Package codec centralizes datafile line encoding.
//
// Docgo intentionally treats codec selection as a breaking-change boundary:
// if you change codecs, datafiles written by older codecs may no longer
// decode. The persistence layer additionally requires marshaled values to
// be single-line (no embedded newlines), which both built-in JSON codecs
// guarantee.
package codec

import "fmt"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
//
// This is used for self-describing configuration that records the codec
// name alongside the datafile.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// MustMarshal is a helper for internal tests.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}

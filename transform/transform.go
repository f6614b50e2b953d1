// Package transform provides matched per-line transform pairs applied to
// datafile lines after serialization and before deserialization.
//
// A transform's Encode and Decode must be exact inverses over arbitrary
// strings, and Encode must never produce an embedded newline (every
// encoded line stays a single log line). The persistence layer verifies
// the inverse property over randomized probe inputs at construction time
// and refuses to start on violation, because a broken pair risks silent,
// undetectable data loss.
package transform

import (
	"errors"
	"strings"
)

// ErrChecksumMismatch is returned when a checksummed line fails
// verification on decode.
var ErrChecksumMismatch = errors.New("line checksum mismatch")

// Transform is a matched pair of line transforms.
// Implementations must be safe for concurrent use.
type Transform interface {
	// Encode transforms a serialized line before it is written.
	Encode(line string) (string, error)
	// Decode inverts Encode on a line read back from the medium.
	Decode(line string) (string, error)
	// Name returns the unique name of the transform.
	Name() string
}

// Identity passes lines through unchanged. It is the default.
type Identity struct{}

func (Identity) Encode(line string) (string, error) { return line, nil }
func (Identity) Decode(line string) (string, error) { return line, nil }
func (Identity) Name() string                       { return "identity" }

// Chain composes transforms; Encode applies them in order, Decode applies
// the inverses in reverse order.
type Chain struct {
	transforms []Transform
}

// NewChain creates a Chain of the given transforms.
func NewChain(transforms ...Transform) *Chain {
	return &Chain{transforms: transforms}
}

func (c *Chain) Encode(line string) (string, error) {
	var err error
	for _, t := range c.transforms {
		if line, err = t.Encode(line); err != nil {
			return "", err
		}
	}
	return line, nil
}

func (c *Chain) Decode(line string) (string, error) {
	var err error
	for i := len(c.transforms) - 1; i >= 0; i-- {
		if line, err = c.transforms[i].Decode(line); err != nil {
			return "", err
		}
	}
	return line, nil
}

func (c *Chain) Name() string {
	names := make([]string, len(c.transforms))
	for i, t := range c.transforms {
		names[i] = t.Name()
	}
	return strings.Join(names, "+")
}

package transform

import (
	"encoding/base64"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Zstd compresses lines with zstd and wraps them in base64 so the result
// stays a single newline-free log line. EncodeAll/DecodeAll are
// concurrency-safe, so one encoder/decoder pair serves all lines.
type Zstd struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewZstd creates a Zstd transform at the given compression level.
func NewZstd(level zstd.EncoderLevel) (*Zstd, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &Zstd{enc: enc, dec: dec}, nil
}

func (z *Zstd) Encode(line string) (string, error) {
	compressed := z.enc.EncodeAll([]byte(line), nil)
	return base64.StdEncoding.EncodeToString(compressed), nil
}

func (z *Zstd) Decode(line string) (string, error) {
	compressed, err := base64.StdEncoding.DecodeString(line)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}
	raw, err := z.dec.DecodeAll(compressed, nil)
	if err != nil {
		return "", fmt.Errorf("decompress line: %w", err)
	}
	return string(raw), nil
}

func (z *Zstd) Name() string { return "zstd" }

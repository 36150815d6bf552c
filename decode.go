package mzf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Decode parses an MZF container held entirely in data.
//
// The decoding process:
//  1. Splits data into the 128-byte header and the body
//  2. Checks that the declared body size matches the bytes that follow the header
//  3. Strips the zero padding from the end of the body
//  4. Recomputes DataSize from the trimmed body
//
// Decode returns ErrInputTooShort if data cannot hold a header,
// ErrBodySizeMismatch if the declared size disagrees with the body, or
// ErrTrimInconsistency if trimming produced a body longer than declared.
// Undecodable bytes in the filename and comment are replaced, never reported.
func Decode(data []byte) (*Record, error) {
	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}
	body := data[HeaderSize:]
	if len(body) != int(h.DataSize) {
		return nil, fmt.Errorf("%w: header declares %d bytes, body has %d", ErrBodySizeMismatch, h.DataSize, len(body))
	}
	trimmed, err := trimBody(body, h.DataSize)
	if err != nil {
		return nil, err
	}
	return &Record{
		FileType:    h.FileType,
		Filename:    h.filename(),
		DataSize:    uint16(len(trimmed)),
		LoadAddress: h.LoadAddr,
		ExecAddress: h.ExecAddr,
		Comment:     h.comment(),
		Body:        bytes.Clone(trimmed),
	}, nil
}

// DecodeReader reads an MZF container from r and decodes it.
//
// The stream may be compressed with any supported [Compression]; the
// algorithm is detected from its magic number unless WithInputCompression
// is given. Reads are bounded by the configured [Limits].
func DecodeReader(r io.Reader, opts ...ReadOption) (*Record, error) {
	cfg := readConfig{limits: defaultLimits(), detect: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()

	stored, err := readAll(io.LimitReader(r, int64(cfg.limits.MaxStored)+1))
	if err != nil {
		return nil, err
	}
	if uint64(len(stored)) > cfg.limits.MaxStored {
		return nil, fmt.Errorf("%w: input larger than %d bytes", ErrLimitExceeded, cfg.limits.MaxStored)
	}
	comp := cfg.compression
	if cfg.detect {
		comp = DetectCompression(stored)
	}
	// A plain container is bounded by MaxStored only; Decode reports a
	// body that disagrees with its size field.
	if comp == CompNone {
		return Decode(stored)
	}
	data, err := Unwrap(comp, stored, cfg.limits)
	if err != nil {
		// A plain container whose first bytes happen to look like a magic
		// number is still a plain container.
		if !cfg.detect || !errors.Is(err, ErrInvalidPayload) {
			return nil, err
		}
		return Decode(stored)
	}
	return Decode(data)
}

// trimBody strips trailing zero bytes and checks the result against declared.
func trimBody(body []byte, declared uint16) ([]byte, error) {
	trimmed := bytes.TrimRight(body, "\x00")
	if len(trimmed) > int(declared) {
		return nil, fmt.Errorf("%w: %d > %d", ErrTrimInconsistency, len(trimmed), declared)
	}
	return trimmed, nil
}

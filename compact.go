package mzf

import (
	"bytes"
	"fmt"
)

// Compact returns a copy of an MZF container with the zero padding removed
// from the end of its body and the size field rewritten to match.
//
// Unlike Decode, Compact does not check the declared size against the
// body: it is meant for embedding whole containers, whatever they declare.
func Compact(data []byte) ([]byte, error) {
	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}
	body := bytes.TrimRight(data[HeaderSize:], "\x00")
	if len(body) > MaxBodySize {
		return nil, fmt.Errorf("%w: body of %d bytes", ErrLimitExceeded, len(body))
	}
	h.DataSize = uint16(len(body))
	hdr := h.marshal()

	out := make([]byte, 0, HeaderSize+len(body))
	out = append(out, hdr[:]...)
	return append(out, body...), nil
}

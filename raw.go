package mzf

import (
	"bytes"
	"fmt"
)

// FromRaw wraps a bare program image in a Record so it can be encoded like
// a decoded container. The body is taken as is, trailing zeros included.
func FromRaw(body []byte, load, exec uint16) (*Record, error) {
	if len(body) > MaxBodySize {
		return nil, fmt.Errorf("%w: program of %d bytes", ErrLimitExceeded, len(body))
	}
	return &Record{
		FileType:    FileTypeOBJ,
		DataSize:    uint16(len(body)),
		LoadAddress: load,
		ExecAddress: exec,
		Body:        bytes.Clone(body),
	}, nil
}

package mzf

import (
	"fmt"
	"io"
)

// NewLoaderHeader computes the loader header for body.
//
// dataSize is written as given; callers pass len(body), which Decode
// guarantees for a Record.
func NewLoaderHeader(body []byte, dataSize, load, exec uint16) LoaderHeader {
	h := LoaderHeader{
		DataSize:     dataSize,
		LoadAddress:  load,
		ExecAddress:  exec,
		BodyChecksum: BodyChecksum(body),
	}
	buf := h.marshal()
	h.HeaderChecksum = HeaderChecksum(buf[:LoaderHeaderSize-1])
	return h
}

// Bytes returns the 9-byte wire form of h.
func (h LoaderHeader) Bytes() [LoaderHeaderSize]byte {
	return h.marshal()
}

// EncodeHeader returns the 9-byte loader header for body.
func EncodeHeader(body []byte, dataSize, load, exec uint16) []byte {
	buf := NewLoaderHeader(body, dataSize, load, exec).Bytes()
	return buf[:]
}

// EncodeWithBody returns the loader header followed by body.
func EncodeWithBody(body []byte, dataSize, load, exec uint16) []byte {
	out := make([]byte, 0, LoaderHeaderSize+len(body))
	out = append(out, EncodeHeader(body, dataSize, load, exec)...)
	return append(out, body...)
}

// LoaderHeader returns the loader header for r.
func (r *Record) LoaderHeader() LoaderHeader {
	return NewLoaderHeader(r.Body, r.DataSize, r.LoadAddress, r.ExecAddress)
}

// LoaderImage returns the loader header of r followed by its body.
func (r *Record) LoaderImage() []byte {
	return EncodeWithBody(r.Body, r.DataSize, r.LoadAddress, r.ExecAddress)
}

// Encode writes the loader image of rec to w.
//
// The record is validated first: DataSize must equal len(Body) and the
// body must fit a 16-bit size field. By default the image is written
// uncompressed; use WithOutputCompression to pack it.
func Encode(w io.Writer, rec *Record, opts ...WriteOption) error {
	cfg := writeConfig{compression: CompNone}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validateRecord(rec); err != nil {
		return err
	}
	out, err := Pack(cfg.compression, rec.LoaderImage())
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// VerifyImage checks a loader image the way the boot loader does: the
// header checksum, the body length and the body checksum must all agree.
func VerifyImage(image []byte) (LoaderHeader, error) {
	h, err := ParseLoaderHeader(image)
	if err != nil {
		return LoaderHeader{}, err
	}
	if got := HeaderChecksum(image[:LoaderHeaderSize-1]); got != h.HeaderChecksum {
		return h, fmt.Errorf("%w: header checksum 0x%02X, computed 0x%02X", ErrChecksumMismatch, h.HeaderChecksum, got)
	}
	body := image[LoaderHeaderSize:]
	if len(body) != int(h.DataSize) {
		return h, fmt.Errorf("%w: header declares %d body bytes, image has %d", ErrInvalidImage, h.DataSize, len(body))
	}
	if got := BodyChecksum(body); got != h.BodyChecksum {
		return h, fmt.Errorf("%w: body checksum 0x%04X, computed 0x%04X", ErrChecksumMismatch, h.BodyChecksum, got)
	}
	return h, nil
}

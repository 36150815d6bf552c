package mzf

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	offFileType = 0x00
	offName     = 0x01
	offDataSize = 0x12
	offLoadAddr = 0x14
	offExecAddr = 0x16
	offReserved = 0x18
	offComment  = 0x24

	nameLen     = offDataSize - offName
	reservedLen = offComment - offReserved
	// The comment field is nominally 104 bytes but starts at 0x24, so only
	// the part that fits inside the header is ever read.
	commentLen = HeaderSize - offComment
)

// headerV1 is the fixed 128-byte MZF header.
type headerV1 struct {
	FileType FileType
	Name     [nameLen]byte
	DataSize uint16
	LoadAddr uint16
	ExecAddr uint16
	Reserved [reservedLen]byte
	Comment  [commentLen]byte
}

func parseHeader(buf []byte) (headerV1, error) {
	if len(buf) < HeaderSize {
		return headerV1{}, fmt.Errorf("%w: got %d bytes, need %d", ErrInputTooShort, len(buf), HeaderSize)
	}
	var h headerV1
	h.FileType = FileType(buf[offFileType])
	copy(h.Name[:], buf[offName:offDataSize])
	h.DataSize = binary.LittleEndian.Uint16(buf[offDataSize:offLoadAddr])
	h.LoadAddr = binary.LittleEndian.Uint16(buf[offLoadAddr:offExecAddr])
	h.ExecAddr = binary.LittleEndian.Uint16(buf[offExecAddr:offReserved])
	copy(h.Reserved[:], buf[offReserved:offComment])
	copy(h.Comment[:], buf[offComment:HeaderSize])
	return h, nil
}

func (h headerV1) marshal() [HeaderSize]byte {
	var buf [HeaderSize]byte
	buf[offFileType] = byte(h.FileType)
	copy(buf[offName:offDataSize], h.Name[:])
	binary.LittleEndian.PutUint16(buf[offDataSize:offLoadAddr], h.DataSize)
	binary.LittleEndian.PutUint16(buf[offLoadAddr:offExecAddr], h.LoadAddr)
	binary.LittleEndian.PutUint16(buf[offExecAddr:offReserved], h.ExecAddr)
	copy(buf[offReserved:offComment], h.Reserved[:])
	copy(buf[offComment:HeaderSize], h.Comment[:])
	return buf
}

// filename returns the name up to the first carriage return.
func (h headerV1) filename() string {
	name := h.Name[:]
	for i, b := range name {
		if b == 0x0D {
			name = name[:i]
			break
		}
	}
	return decodeText(name)
}

func (h headerV1) comment() string {
	return strings.TrimRight(decodeText(h.Comment[:]), "\x00")
}

// decodeText decodes ASCII, substituting U+FFFD for every byte outside it.
func decodeText(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		if c >= 0x80 {
			sb.WriteRune(utf8.RuneError)
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func (h LoaderHeader) marshal() [LoaderHeaderSize]byte {
	var buf [LoaderHeaderSize]byte
	binary.LittleEndian.PutUint16(buf[0:2], h.DataSize)
	binary.LittleEndian.PutUint16(buf[2:4], h.LoadAddress)
	binary.LittleEndian.PutUint16(buf[4:6], h.ExecAddress)
	binary.LittleEndian.PutUint16(buf[6:8], h.BodyChecksum)
	buf[8] = h.HeaderChecksum
	return buf
}

// ParseLoaderHeader reads a loader header from the first 9 bytes of b.
// The checksums are returned as stored; see VerifyImage.
func ParseLoaderHeader(b []byte) (LoaderHeader, error) {
	if len(b) < LoaderHeaderSize {
		return LoaderHeader{}, fmt.Errorf("%w: got %d bytes, need %d", ErrInvalidImage, len(b), LoaderHeaderSize)
	}
	return LoaderHeader{
		DataSize:       binary.LittleEndian.Uint16(b[0:2]),
		LoadAddress:    binary.LittleEndian.Uint16(b[2:4]),
		ExecAddress:    binary.LittleEndian.Uint16(b[4:6]),
		BodyChecksum:   binary.LittleEndian.Uint16(b[6:8]),
		HeaderChecksum: b[8],
	}, nil
}

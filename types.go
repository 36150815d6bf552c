package mzf

import "fmt"

const (
	// HeaderSize is the size of the MZF metadata header preceding the body.
	HeaderSize = 128

	// LoaderHeaderSize is the size of the header emitted in front of a loader image.
	LoaderHeaderSize = 9

	// MaxBodySize is the largest body a 16-bit size field can describe.
	MaxBodySize = 0xFFFF

	// DefaultLoadAddress is the load and exec address used for raw programs.
	DefaultLoadAddress uint16 = 0x1200
)

// FileType is the attribute byte at the start of an MZF header.
// It is carried through unmodified and never interpreted.
type FileType uint8

// File types found on Sharp MZ tapes.
const (
	FileTypeOBJ FileType = 0x01 // machine code program
	FileTypeBTX FileType = 0x02 // BASIC program text
	FileTypeBSD FileType = 0x03 // BASIC data file
)

func (t FileType) String() string {
	switch t {
	case FileTypeOBJ:
		return "OBJ"
	case FileTypeBTX:
		return "BTX"
	case FileTypeBSD:
		return "BSD"
	default:
		return fmt.Sprintf("0x%02X", uint8(t))
	}
}

// Record is a decoded MZF container.
//
// DataSize always equals len(Body): Decode recomputes it after stripping the
// zero padding from the end of the body.
type Record struct {
	FileType    FileType
	Filename    string
	DataSize    uint16
	LoadAddress uint16
	ExecAddress uint16
	Comment     string
	Body        []byte
}

// LoaderHeader is the 9-byte header consumed by the boot loader.
type LoaderHeader struct {
	DataSize       uint16
	LoadAddress    uint16
	ExecAddress    uint16
	BodyChecksum   uint16
	HeaderChecksum uint8
}

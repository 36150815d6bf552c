package mzf

import (
	"fmt"
	"io"

	"github.com/marcinbor85/gohex"
)

// IntelHexLineLength is the number of data bytes per Intel HEX record.
const IntelHexLineLength = 16

// WriteIntelHex writes data as Intel HEX, placed at base, with start as
// the start address record.
func WriteIntelHex(w io.Writer, data []byte, base, start uint32) error {
	mem := gohex.NewMemory()
	mem.SetStartAddress(start)
	if len(data) > 0 {
		if err := mem.AddBinary(base, data); err != nil {
			return fmt.Errorf("mzf: intel hex: %w", err)
		}
	}
	return mem.DumpIntelHex(w, IntelHexLineLength)
}

// WriteBodyIntelHex writes the body of rec at its load address, with the
// exec address as the start address.
func WriteBodyIntelHex(w io.Writer, rec *Record) error {
	if err := validateRecord(rec); err != nil {
		return err
	}
	return WriteIntelHex(w, rec.Body, uint32(rec.LoadAddress), uint32(rec.ExecAddress))
}

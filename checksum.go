package mzf

import "math/bits"

// popCount returns the number of set bits in b.
func popCount(b []byte) uint64 {
	var n uint64
	for _, c := range b {
		n += uint64(bits.OnesCount8(c))
	}
	return n
}

// BodyChecksum returns the number of set bits in body, truncated to 16 bits.
//
// A body can only exceed 65535 set bits when it is longer than 8191 bytes
// of 0xFF; the count then wraps modulo 65536, matching a 16-bit accumulator.
func BodyChecksum(body []byte) uint16 {
	return uint16(popCount(body))
}

// HeaderChecksum returns the number of set bits in hdr, truncated to 8 bits.
// For the 8-byte loader header prefix the count never exceeds 64.
func HeaderChecksum(hdr []byte) uint8 {
	return uint8(popCount(hdr))
}

// Package mzf converts Sharp MZ-series MZF containers into loader images
// for the MZ-800 Pico RAM-disk boot loader.
//
// # File Format Overview
//
// An MZF container consists of:
//   - A 128-byte header with the file type, a CR-terminated name, the body
//     size, load and exec addresses, and a comment
//   - The program body, often padded with zero bytes
//
// A loader image consists of:
//   - A 9-byte loader header: body size, load address, exec address and
//     body checksum (each 16-bit little-endian) followed by a header checksum
//   - The program body with its zero padding removed
//
// Both checksums are bit-population counts: the body checksum is the number
// of set bits in the body modulo 65536, the header checksum the number of
// set bits in the first eight header bytes.
//
// # Basic Usage
//
// To convert a container into a loader image:
//
//	data, _ := os.ReadFile("game.mzf")
//	rec, err := mzf.Decode(data)
//	if err != nil {
//		return err
//	}
//	image := rec.LoaderImage()
//
// To embed it into firmware source:
//
//	err := mzf.WriteLoaderLiteral(os.Stdout, "firmware", rec)
//
// Inputs read through [DecodeReader] may be compressed with ZIP, Zstandard,
// LZ4, gzip or Brotli; decompression is bounded by [Limits].
package mzf

package mzf

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

type Compression uint16

const (
	CompNone Compression = 0x0
	CompZIP  Compression = 0x1
	CompZSTD Compression = 0x2
	CompLZ4  Compression = 0x3
	CompBR   Compression = 0x4
	CompGZIP Compression = 0x5
)

func (c Compression) String() string {
	switch c {
	case CompNone:
		return "none"
	case CompZIP:
		return "zip"
	case CompZSTD:
		return "zstd"
	case CompLZ4:
		return "lz4"
	case CompBR:
		return "br"
	case CompGZIP:
		return "gzip"
	default:
		return fmt.Sprintf("compression(%d)", uint16(c))
	}
}

// ParseCompression maps a name as printed by Compression.String to its value.
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompNone, nil
	case "zip":
		return CompZIP, nil
	case "zstd", "zst":
		return CompZSTD, nil
	case "lz4":
		return CompLZ4, nil
	case "br", "brotli":
		return CompBR, nil
	case "gzip", "gz":
		return CompGZIP, nil
	default:
		return CompNone, fmt.Errorf("%w: unknown compression %q", ErrInvalidPayload, name)
	}
}

var (
	magicZIP  = []byte{'P', 'K', 0x03, 0x04}
	magicZSTD = []byte{0x28, 0xB5, 0x2F, 0xFD}
	magicLZ4  = []byte{0x04, 0x22, 0x4D, 0x18}
	magicGZIP = []byte{0x1F, 0x8B}
)

// DetectCompression identifies a compressed stream by its magic number.
// Brotli streams carry no magic and are reported as CompNone.
func DetectCompression(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, magicZIP):
		return CompZIP
	case bytes.HasPrefix(data, magicZSTD):
		return CompZSTD
	case bytes.HasPrefix(data, magicLZ4):
		return CompLZ4
	case bytes.HasPrefix(data, magicGZIP):
		return CompGZIP
	default:
		return CompNone
	}
}

// CompressionFromExt maps the outermost file extension of path to a Compression.
func CompressionFromExt(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return CompZIP
	case ".zst", ".zstd":
		return CompZSTD
	case ".lz4":
		return CompLZ4
	case ".br":
		return CompBR
	case ".gz":
		return CompGZIP
	default:
		return CompNone
	}
}

// Function variables for testing injection.
var (
	newZstdWriter = func() (*zstd.Encoder, error) { return zstd.NewWriter(nil) }
	newZstdReader = func() (*zstd.Decoder, error) { return zstd.NewReader(nil) }
	zipCreate     = func(zw *zip.Writer, name string) (io.Writer, error) { return zw.Create(name) }
	zipClose      = func(zw *zip.Writer) error { return zw.Close() }
	zipOpen       = func(zf *zip.File) (io.ReadCloser, error) { return zf.Open() }
	readAll       = io.ReadAll
	lz4Close      = func(w *lz4.Writer) error { return w.Close() }
	brotliClose   = func(w *brotli.Writer) error { return w.Close() }
	gzipClose     = func(w *gzip.Writer) error { return w.Close() }
)

// zipEntryName is the entry written by Pack(CompZIP, ...).
const zipEntryName = "image.bin"

// Pack compresses data with comp. CompNone returns data unchanged.
func Pack(comp Compression, data []byte) ([]byte, error) {
	switch comp {
	case CompNone:
		return data, nil
	case CompZIP:
		return zipCompress(data)
	case CompZSTD:
		return zstdCompress(data)
	case CompLZ4:
		return streamCompress(data, func(w io.Writer) (io.Writer, func() error) {
			zw := lz4.NewWriter(w)
			return zw, func() error { return lz4Close(zw) }
		})
	case CompBR:
		return streamCompress(data, func(w io.Writer) (io.Writer, func() error) {
			bw := brotli.NewWriter(w)
			return bw, func() error { return brotliClose(bw) }
		})
	case CompGZIP:
		return streamCompress(data, func(w io.Writer) (io.Writer, func() error) {
			gw := gzip.NewWriter(w)
			return gw, func() error { return gzipClose(gw) }
		})
	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrInvalidPayload, comp)
	}
}

// Unwrap decompresses data stored with comp, refusing to produce more than
// limits.MaxUncompressed bytes. CompNone checks the limit and returns data.
func Unwrap(comp Compression, data []byte, limits Limits) ([]byte, error) {
	limits = limits.withDefaults()
	limit := limits.MaxUncompressed

	var out []byte
	var err error
	switch comp {
	case CompNone:
		out = data
	case CompZIP:
		out, err = zipDecompress(data, limit)
	case CompZSTD:
		out, err = zstdDecompress(data, limit)
	case CompLZ4:
		out, err = limitedRead(lz4.NewReader(bytes.NewReader(data)), limit)
	case CompBR:
		out, err = limitedRead(brotli.NewReader(bytes.NewReader(data)), limit)
	case CompGZIP:
		var gr *gzip.Reader
		gr, err = gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: gzip: %v", ErrInvalidPayload, err)
		}
		defer gr.Close()
		out, err = limitedRead(gr, limit)
	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrInvalidPayload, comp)
	}
	if err != nil {
		return nil, err
	}
	if uint64(len(out)) > limit {
		return nil, fmt.Errorf("%w: %s payload expands beyond %d bytes", ErrLimitExceeded, comp, limit)
	}
	return out, nil
}

// streamCompress runs data through the writer returned by open.
func streamCompress(data []byte, open func(io.Writer) (io.Writer, func() error)) ([]byte, error) {
	var buf bytes.Buffer
	w, closeFn := open(&buf)
	if _, err := w.Write(data); err != nil {
		_ = closeFn()
		return nil, err
	}
	if err := closeFn(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// limitedRead reads at most limit+1 bytes so that an overrun is observable.
func limitedRead(r io.Reader, limit uint64) ([]byte, error) {
	b, err := readAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return b, nil
}

// zipCompress creates a ZIP archive holding data as a single entry.
func zipCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := zipCompressNamed(&buf, zipEntryName, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func zipCompressNamed(w io.Writer, name string, in []byte) error {
	zw := zip.NewWriter(w)
	entry, err := zipCreate(zw, name)
	if err != nil {
		_ = zipClose(zw)
		return err
	}
	if _, err := entry.Write(in); err != nil {
		_ = zipClose(zw)
		return err
	}
	return zipClose(zw)
}

// zipDecompress extracts the only file of a ZIP archive. The archive may
// carry directory entries but exactly one regular file.
func zipDecompress(zipBytes []byte, limit uint64) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		return nil, fmt.Errorf("%w: zip: %v", ErrInvalidPayload, err)
	}
	var file *zip.File
	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() {
			continue
		}
		if file != nil {
			return nil, fmt.Errorf("%w: zip must contain exactly one file", ErrInvalidPayload)
		}
		file = zf
	}
	if file == nil {
		return nil, fmt.Errorf("%w: zip contains no file", ErrInvalidPayload)
	}
	if file.UncompressedSize64 > limit {
		return nil, fmt.Errorf("%w: zip entry %q is %d bytes", ErrLimitExceeded, file.Name, file.UncompressedSize64)
	}
	rc, err := zipOpen(file)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return limitedRead(rc, limit)
}

func zstdCompress(in []byte) ([]byte, error) {
	enc, err := newZstdWriter()
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(in, nil), nil
}

func zstdDecompress(in []byte, limit uint64) ([]byte, error) {
	dec, err := newZstdReader()
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	if err := dec.Reset(bytes.NewReader(in)); err != nil {
		return nil, fmt.Errorf("%w: zstd: %v", ErrInvalidPayload, err)
	}
	return limitedRead(dec, limit)
}

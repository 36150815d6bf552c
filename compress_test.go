package mzf

import (
	"archive/zip"
	"bytes"
	"errors"
	"io/fs"
	"testing"
)

var allCompressions = []Compression{CompNone, CompZIP, CompZSTD, CompLZ4, CompBR, CompGZIP}

func TestPackUnwrapRoundTrip(t *testing.T) {
	data := sampleContainer()
	for _, comp := range allCompressions {
		t.Run("comp="+comp.String(), func(t *testing.T) {
			packed, err := Pack(comp, data)
			if err != nil {
				t.Fatalf("Pack: %v", err)
			}
			got, err := Unwrap(comp, packed, Limits{})
			if err != nil {
				t.Fatalf("Unwrap: %v", err)
			}
			if !bytes.Equal(got, data) {
				t.Fatalf("round trip mismatch")
			}
		})
	}
}

func TestDecodeReaderCompressed(t *testing.T) {
	want, err := Decode(sampleContainer())
	if err != nil {
		t.Fatal(err)
	}
	for _, comp := range allCompressions {
		t.Run("comp="+comp.String(), func(t *testing.T) {
			packed, err := Pack(comp, sampleContainer())
			if err != nil {
				t.Fatal(err)
			}
			var opts []ReadOption
			if comp == CompBR {
				opts = append(opts, WithInputCompression(CompBR))
			}
			got, err := DecodeReader(bytes.NewReader(packed), opts...)
			if err != nil {
				t.Fatalf("DecodeReader: %v", err)
			}
			if !bytes.Equal(got.Body, want.Body) || got.Filename != want.Filename {
				t.Fatalf("record mismatch: %#v", got)
			}
		})
	}
}

func TestDecodeReaderMagicLookalike(t *testing.T) {
	// File type 0x1F followed by a 0x8B name byte looks like gzip.
	data := buildContainer(FileType(0x1F), "\x8BX", 0x1200, 0x1200, "", []byte{1})
	if DetectCompression(data) != CompGZIP {
		t.Fatal("test input should look like gzip")
	}
	rec, err := DecodeReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeReader: %v", err)
	}
	if rec.FileType != 0x1F || rec.DataSize != 1 {
		t.Fatalf("unexpected record %#v", rec)
	}
}

func TestDecodeReaderOversizedPlainContainer(t *testing.T) {
	// 70000 bytes of body; the 16-bit size field wraps to 4464.
	data := buildContainer(FileTypeOBJ, "BIG", 0, 0, "", bytes.Repeat([]byte{0x55}, 70000))
	_, err := DecodeReader(bytes.NewReader(data))
	if !errors.Is(err, ErrBodySizeMismatch) {
		t.Fatalf("expected ErrBodySizeMismatch, got %v", err)
	}
	if !IsFormatError(err) {
		t.Fatal("expected a format error")
	}
}

func TestDecodeReaderForcedCompressionFails(t *testing.T) {
	_, err := DecodeReader(bytes.NewReader(sampleContainer()), WithInputCompression(CompZSTD))
	if !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
}

func TestDecodeReaderStoredLimit(t *testing.T) {
	data := sampleContainer()
	_, err := DecodeReader(bytes.NewReader(data), WithReadLimits(Limits{MaxStored: uint64(len(data) - 1)}))
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}
}

func TestUnwrapRejectsBombs(t *testing.T) {
	big := make([]byte, 4096)
	limits := Limits{MaxUncompressed: 1024}
	for _, comp := range allCompressions {
		t.Run("comp="+comp.String(), func(t *testing.T) {
			packed, err := Pack(comp, big)
			if err != nil {
				t.Fatal(err)
			}
			_, err = Unwrap(comp, packed, limits)
			if !errors.Is(err, ErrLimitExceeded) {
				t.Fatalf("expected ErrLimitExceeded, got %v", err)
			}
		})
	}
}

func TestUnwrapUnknownCompression(t *testing.T) {
	if _, err := Unwrap(Compression(99), nil, Limits{}); !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
	if _, err := Pack(Compression(99), nil); !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
}

func TestUnwrapCorruptPayloads(t *testing.T) {
	junk := []byte("definitely not compressed")
	for _, comp := range []Compression{CompZIP, CompZSTD, CompLZ4, CompGZIP} {
		if _, err := Unwrap(comp, junk, Limits{}); err == nil {
			t.Fatalf("%s: expected error", comp)
		}
	}
}

func TestZIPDecompressErrors(t *testing.T) {
	// Two files
	{
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		_, _ = zw.Create("a.mzf")
		_, _ = zw.Create("b.mzf")
		_ = zw.Close()
		if _, err := zipDecompress(buf.Bytes(), 1024); !errors.Is(err, ErrInvalidPayload) {
			t.Fatalf("expected ErrInvalidPayload, got %v", err)
		}
	}
	// Only a directory
	{
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		h := &zip.FileHeader{Name: "dir/"}
		h.SetMode(fs.ModeDir | 0o755)
		_, _ = zw.CreateHeader(h)
		_ = zw.Close()
		if _, err := zipDecompress(buf.Bytes(), 1024); !errors.Is(err, ErrInvalidPayload) {
			t.Fatalf("expected ErrInvalidPayload, got %v", err)
		}
	}
	// Directory plus one file is accepted
	{
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		h := &zip.FileHeader{Name: "games/"}
		h.SetMode(fs.ModeDir | 0o755)
		_, _ = zw.CreateHeader(h)
		w, _ := zw.Create("games/hello.mzf")
		_, _ = w.Write([]byte("abc"))
		_ = zw.Close()
		got, err := zipDecompress(buf.Bytes(), 1024)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "abc" {
			t.Fatalf("got %q", got)
		}
	}
}

func TestDetectCompression(t *testing.T) {
	for _, comp := range allCompressions {
		if comp == CompBR || comp == CompNone {
			continue
		}
		packed, err := Pack(comp, []byte("payload"))
		if err != nil {
			t.Fatal(err)
		}
		if got := DetectCompression(packed); got != comp {
			t.Fatalf("%s detected as %s", comp, got)
		}
	}
	if DetectCompression(nil) != CompNone {
		t.Fatal("empty input")
	}
}

func TestCompressionNames(t *testing.T) {
	for _, comp := range allCompressions {
		got, err := ParseCompression(comp.String())
		if err != nil || got != comp {
			t.Fatalf("%s: got %v, %v", comp, got, err)
		}
	}
	if _, err := ParseCompression("rar"); err == nil {
		t.Fatal("expected error")
	}
	exts := map[string]Compression{
		"game.mzf":     CompNone,
		"game.mzf.zip": CompZIP,
		"game.mzf.zst": CompZSTD,
		"game.mzf.LZ4": CompLZ4,
		"game.mzf.br":  CompBR,
		"game.mzf.gz":  CompGZIP,
	}
	for name, want := range exts {
		if got := CompressionFromExt(name); got != want {
			t.Fatalf("%s: got %s want %s", name, got, want)
		}
	}
}

func TestLimitsWithDefaults(t *testing.T) {
	l := Limits{}.withDefaults()
	if l != DefaultLimits() {
		t.Fatalf("zero limits: got %#v", l)
	}
	custom := Limits{MaxStored: 10}.withDefaults()
	if custom.MaxStored != 10 || custom.MaxUncompressed != DefaultLimits().MaxUncompressed {
		t.Fatalf("partial limits: got %#v", custom)
	}
}

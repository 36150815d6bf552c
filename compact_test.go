package mzf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestCompact(t *testing.T) {
	data := buildContainer(FileTypeOBJ, "C", 0x1200, 0x1200, "", []byte{1, 0, 2, 0, 0, 0})
	out, err := Compact(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != HeaderSize+3 {
		t.Fatalf("length %d", len(out))
	}
	if got := binary.LittleEndian.Uint16(out[offDataSize:]); got != 3 {
		t.Fatalf("size field %d", got)
	}
	if !bytes.Equal(out[:offDataSize], data[:offDataSize]) || !bytes.Equal(out[offLoadAddr:HeaderSize], data[offLoadAddr:HeaderSize]) {
		t.Fatal("header bytes other than the size field changed")
	}
	if _, err := Decode(out); err != nil {
		t.Fatalf("compacted container does not decode: %v", err)
	}

	again, err := Compact(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(again, out) {
		t.Fatal("Compact is not idempotent")
	}
}

func TestCompactIgnoresDeclaredSize(t *testing.T) {
	data := buildContainer(FileTypeOBJ, "C", 0, 0, "", []byte{7, 7, 0})
	binary.LittleEndian.PutUint16(data[offDataSize:], 999)
	out, err := Compact(data)
	if err != nil {
		t.Fatal(err)
	}
	if got := binary.LittleEndian.Uint16(out[offDataSize:]); got != 2 {
		t.Fatalf("size field %d", got)
	}
}

func TestCompactShort(t *testing.T) {
	if _, err := Compact(make([]byte, 10)); !errors.Is(err, ErrInputTooShort) {
		t.Fatalf("expected ErrInputTooShort, got %v", err)
	}
}

func TestFromRaw(t *testing.T) {
	body := []byte{0xC3, 0x00, 0x00}
	rec, err := FromRaw(body, DefaultLoadAddress, DefaultLoadAddress)
	if err != nil {
		t.Fatal(err)
	}
	if rec.DataSize != 3 || !bytes.Equal(rec.Body, body) {
		t.Fatalf("raw programs must not be trimmed: %#v", rec)
	}
	body[0] = 0
	if rec.Body[0] != 0xC3 {
		t.Fatal("record aliases caller buffer")
	}
	img := rec.LoaderImage()
	if _, err := VerifyImage(img); err != nil {
		t.Fatal(err)
	}

	if _, err := FromRaw(make([]byte, MaxBodySize+1), 0, 0); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}
}

func TestValidateRecord(t *testing.T) {
	tests := []struct {
		name string
		rec  *Record
		want error
	}{
		{"nil", nil, ErrInvalidRecord},
		{"size mismatch", &Record{DataSize: 1}, ErrInvalidRecord},
		{"too large", &Record{Body: make([]byte, MaxBodySize+1)}, ErrLimitExceeded},
		{"empty", &Record{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRecord(tt.rec)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

package mzf

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

const valuesPerLine = 8

type literalSpan struct {
	label   string
	data    []byte
	oneLine bool
}

// WriteLiteral writes data to w as a C array declaration named name:
//
//	const uint8_t name[N] = {
//	    0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
//	    0x09
//	};
//
// Values are printed as uppercase hex, eight per line, with no comma after
// the final value. WithRegions annotates a leading header region, which is
// printed on a single line. The bytes and their order are never altered.
func WriteLiteral(w io.Writer, name string, data []byte, opts ...LiteralOption) error {
	cfg := literalConfig{elemType: "uint8_t"}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !isIdentifier(name) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}

	bw := bufio.NewWriter(w)
	if cfg.pragmaOnce {
		bw.WriteString("#pragma once\n\n")
	}
	for _, c := range cfg.comments {
		fmt.Fprintf(bw, "// %s\n", commentText(c))
	}
	fmt.Fprintf(bw, "const %s %s[%d] = {\n", cfg.elemType, name, len(data))

	spans := []literalSpan{{data: data}}
	if cfg.headerLen > 0 {
		n := min(cfg.headerLen, len(data))
		spans = []literalSpan{
			{label: fmt.Sprintf("Header (%d bytes)", n), data: data[:n], oneLine: true},
			{label: fmt.Sprintf("Program Body (%d bytes)", len(data)-n), data: data[n:]},
		}
	}
	last := -1
	for i, s := range spans {
		if len(s.data) > 0 {
			last = i
		}
	}
	for i, s := range spans {
		if s.label != "" {
			fmt.Fprintf(bw, "    // --- %s ---\n", s.label)
		}
		per := valuesPerLine
		if s.oneLine {
			per = max(len(s.data), 1)
		}
		for off := 0; off < len(s.data); off += per {
			end := min(off+per, len(s.data))
			bw.WriteString("    ")
			writeHexValues(bw, s.data[off:end])
			if i != last || end != len(s.data) {
				bw.WriteByte(',')
			}
			bw.WriteByte('\n')
		}
	}
	bw.WriteString("};\n")
	return bw.Flush()
}

// commentText keeps s on a single // comment line: control characters and
// a trailing backslash become '.'.
func commentText(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7F {
			return '.'
		}
		return r
	}, s)
	if strings.HasSuffix(s, "\\") {
		s = s[:len(s)-1] + "."
	}
	return s
}

const hexDigits = "0123456789ABCDEF"

func writeHexValues(bw *bufio.Writer, b []byte) {
	for i, c := range b {
		if i > 0 {
			bw.WriteString(", ")
		}
		bw.Write([]byte{'0', 'x', hexDigits[c>>4], hexDigits[c&0x0F]})
	}
}

// WriteLoaderLiteral writes the loader image of rec as an annotated literal.
func WriteLoaderLiteral(w io.Writer, name string, rec *Record, opts ...LiteralOption) error {
	if err := validateRecord(rec); err != nil {
		return err
	}
	opts = append([]LiteralOption{WithRegions(LoaderHeaderSize)}, opts...)
	return WriteLiteral(w, name, rec.LoaderImage(), opts...)
}

// Identifier derives a C identifier from the base name of path, without
// its extension. Characters that cannot appear in an identifier become '_'.
func Identifier(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "data"
	}
	var sb strings.Builder
	for i, r := range base {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			sb.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

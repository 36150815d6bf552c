package mzf

type readConfig struct {
	limits      Limits
	compression Compression
	detect      bool
}

// ReadOption configures DecodeReader.
type ReadOption func(*readConfig)

// WithReadLimits sets the read and decompression limits.
func WithReadLimits(l Limits) ReadOption {
	return func(c *readConfig) { c.limits = l }
}

// WithInputCompression forces the compression of the input stream.
// Without it DecodeReader sniffs the magic number, which cannot identify Brotli.
func WithInputCompression(comp Compression) ReadOption {
	return func(c *readConfig) {
		c.compression = comp
		c.detect = false
	}
}

type writeConfig struct {
	compression Compression
}

// WriteOption configures Encode.
type WriteOption func(*writeConfig)

// WithOutputCompression compresses the encoded image with comp.
func WithOutputCompression(comp Compression) WriteOption {
	return func(c *writeConfig) { c.compression = comp }
}

type literalConfig struct {
	headerLen  int
	pragmaOnce bool
	comments   []string
	elemType   string
}

// LiteralOption configures WriteLiteral and WriteLoaderLiteral.
type LiteralOption func(*literalConfig)

// WithRegions splits the literal into an annotated header of headerLen bytes
// followed by the program body.
func WithRegions(headerLen int) LiteralOption {
	return func(c *literalConfig) { c.headerLen = headerLen }
}

// WithPragmaOnce starts the output with a #pragma once line.
func WithPragmaOnce() LiteralOption {
	return func(c *literalConfig) { c.pragmaOnce = true }
}

// WithComment adds a line comment above the declaration.
func WithComment(line string) LiteralOption {
	return func(c *literalConfig) { c.comments = append(c.comments, line) }
}

// WithElementType overrides the C element type, "uint8_t" by default.
func WithElementType(t string) LiteralOption {
	return func(c *literalConfig) { c.elemType = t }
}

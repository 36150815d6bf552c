package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	mzf "github.com/logicossoftware/go-mzfload"
)

const (
	formatBin  = "bin"
	formatC    = "c"
	formatIHex = "ihex"
)

// readInput reads a whole input file, reporting a missing file plainly.
func readInput(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("input file does not exist: %s", path)
		}
		return nil, fmt.Errorf("cannot access input file %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("input path is a directory: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return data, nil
}

// writeOutput replaces path with data. The data goes to a temporary file in
// the same directory first, so a failed run leaves no partial output behind.
func writeOutput(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write data to %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to write data to %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// parseAddress accepts decimal, 0x-prefixed hex and $-prefixed hex.
func parseAddress(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "$"); ok {
		s = "0x" + rest
	}
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: must be 0..0xFFFF", s)
	}
	return uint16(v), nil
}

// resolveAddress picks the flag value, then the config value, then def.
func resolveAddress(cmd *cli.Command, flag, flagValue, cfgValue string, def uint16) (uint16, error) {
	switch {
	case cmd.IsSet(flag):
		return parseAddress(flagValue)
	case cfgValue != "":
		return parseAddress(cfgValue)
	default:
		return def, nil
	}
}

// resolveFormat picks the output format: an explicit flag, then the output
// extension, then the configured default. Standard output defaults to C.
func resolveFormat(cmd *cli.Command, flagValue, cfgValue, out string) (string, error) {
	format := ""
	switch {
	case cmd.IsSet("format"):
		format = flagValue
	case out == "":
		format = formatC
	default:
		switch strings.ToLower(filepath.Ext(out)) {
		case ".h", ".hpp", ".c", ".inc":
			format = formatC
		case ".hex", ".ihx":
			format = formatIHex
		case ".bin", ".rdc", ".img":
			format = formatBin
		default:
			format = cfgValue
		}
	}
	switch strings.ToLower(format) {
	case "", formatBin:
		return formatBin, nil
	case formatC, "h", "array":
		return formatC, nil
	case formatIHex, "hex":
		return formatIHex, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want bin, c or ihex)", format)
	}
}

// resolveCompression picks the output compression: flag, then the
// output extension, then the configured default.
func resolveCompression(cmd *cli.Command, flagValue, cfgValue, out string) (mzf.Compression, error) {
	if cmd.IsSet("compress") {
		return mzf.ParseCompression(flagValue)
	}
	if c := mzf.CompressionFromExt(out); c != mzf.CompNone {
		return c, nil
	}
	return mzf.ParseCompression(cfgValue)
}

// emitOptions describes how a record is rendered.
type emitOptions struct {
	format      string
	name        string
	compression mzf.Compression
	pragmaOnce  bool
	atLoad      bool
	comments    []string
}

// renderRecord renders rec as a loader image in the requested format.
func renderRecord(rec *mzf.Record, o emitOptions) ([]byte, error) {
	var buf bytes.Buffer
	switch o.format {
	case formatBin:
		if err := mzf.Encode(&buf, rec, mzf.WithOutputCompression(o.compression)); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	if o.compression != mzf.CompNone {
		return nil, fmt.Errorf("compression applies to bin output only, not %s", o.format)
	}
	switch o.format {
	case formatC:
		var opts []mzf.LiteralOption
		if o.pragmaOnce {
			opts = append(opts, mzf.WithPragmaOnce())
		}
		for _, c := range o.comments {
			opts = append(opts, mzf.WithComment(c))
		}
		if err := mzf.WriteLoaderLiteral(&buf, o.name, rec, opts...); err != nil {
			return nil, err
		}
	case formatIHex:
		var err error
		if o.atLoad {
			err = mzf.WriteBodyIntelHex(&buf, rec)
		} else {
			err = mzf.WriteIntelHex(&buf, rec.LoaderImage(), 0, 0)
		}
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown output format %q", o.format)
	}
	return buf.Bytes(), nil
}

// outputName returns the identifier for a literal: the flag, else the
// output file's base name, else fallback.
func outputName(flagValue, out, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	if out != "" {
		return mzf.Identifier(out)
	}
	return fallback
}

// deliver writes data to out, or to standard output when out is empty.
func (a *app) deliver(out string, data []byte) error {
	if out == "" {
		_, err := a.stdout.Write(data)
		return err
	}
	return writeOutput(out, data)
}

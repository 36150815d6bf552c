package main

import (
	"bytes"
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	mzf "github.com/logicossoftware/go-mzfload"
	"github.com/logicossoftware/go-mzfload/internal/logger"
)

// sharedOutputFlags are the rendering flags of convert and raw.
type sharedOutputFlags struct {
	format     string
	name       string
	compress   string
	pragmaOnce bool
	atLoad     bool
}

func (f *sharedOutputFlags) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "output format: bin, c or ihex (default from output extension)",
			Destination: &f.format,
		},
		&cli.StringFlag{
			Name:        "name",
			Aliases:     []string{"n"},
			Usage:       "C identifier for c output (default: output base name)",
			Destination: &f.name,
		},
		&cli.StringFlag{
			Name:        "compress",
			Usage:       "compress bin output: none, zip, zstd, lz4, br, gzip",
			Destination: &f.compress,
		},
		&cli.BoolFlag{Name: "pragma-once", Usage: "start c output with #pragma once", Destination: &f.pragmaOnce},
		&cli.BoolFlag{Name: "at-load", Usage: "ihex: place the bare body at its load address", Destination: &f.atLoad},
	}
}

// resolve merges flags, output path and config into emitOptions.
func (f *sharedOutputFlags) resolve(cmd *cli.Command, cfg Config, out, fallbackName string) (emitOptions, error) {
	format, err := resolveFormat(cmd, f.format, cfg.Format, out)
	if err != nil {
		return emitOptions{}, err
	}
	o := emitOptions{
		format:     format,
		name:       outputName(f.name, out, fallbackName),
		pragmaOnce: f.pragmaOnce || (!cmd.IsSet("pragma-once") && cfg.PragmaOnce),
		atLoad:     f.atLoad,
	}
	if format == formatBin {
		if o.compression, err = resolveCompression(cmd, f.compress, cfg.Compression, out); err != nil {
			return emitOptions{}, err
		}
	} else if cmd.IsSet("compress") {
		if o.compression, err = mzf.ParseCompression(f.compress); err != nil {
			return emitOptions{}, err
		}
	}
	return o, nil
}

func (a *app) convertCmd() *cli.Command {
	var f sharedOutputFlags
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert an MZF container into a loader image",
		ArgsUsage: "<input.mzf> [output]",
		Flags:     f.flags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			in, out := cmd.Args().Get(0), cmd.Args().Get(1)
			if in == "" {
				return fmt.Errorf("missing input file; usage: mzfload convert %s", cmd.ArgsUsage)
			}
			o, err := f.resolve(cmd, a.cfg, out, "firmware")
			if err != nil {
				return err
			}

			data, err := readInput(in)
			if err != nil {
				return err
			}
			var readOpts []mzf.ReadOption
			if mzf.CompressionFromExt(in) == mzf.CompBR {
				readOpts = append(readOpts, mzf.WithInputCompression(mzf.CompBR))
			}
			rec, err := mzf.DecodeReader(bytes.NewReader(data), readOpts...)
			if err != nil {
				return fmt.Errorf("decode %s: %w", in, err)
			}
			log.Debug("decoded container",
				"input", in,
				"file_type", rec.FileType.String(),
				"filename", rec.Filename,
				"size", rec.DataSize,
				"load", fmt.Sprintf("0x%04X", rec.LoadAddress),
				"exec", fmt.Sprintf("0x%04X", rec.ExecAddress),
			)

			o.comments = []string{"Filename: " + rec.Filename, "Comment:  " + rec.Comment}
			rendered, err := renderRecord(rec, o)
			if err != nil {
				return err
			}
			if err := a.deliver(out, rendered); err != nil {
				return err
			}
			a.confirm(log, in, out, o, len(rendered))
			return nil
		},
	}
}

// confirm reports a finished conversion. Confirmation text goes to standard
// output only when the result itself was written to a file.
func (a *app) confirm(log logger.Logger, in, out string, o emitOptions, n int) {
	log.Info("conversion complete", "input", in, "output", out, "format", o.format, "bytes", n, "identifier", o.name)
	if out == "" {
		return
	}
	if o.format == formatC {
		_, _ = fmt.Fprintf(a.stdout, "wrote %s (variable name: %s)\n", out, o.name)
		return
	}
	_, _ = fmt.Fprintf(a.stdout, "wrote %s (%d bytes)\n", out, n)
}

package main

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"

	mzf "github.com/logicossoftware/go-mzfload"
	"github.com/logicossoftware/go-mzfload/internal/logger"
)

func (a *app) arrayCmd() *cli.Command {
	var (
		name       string
		format     string
		compact    bool
		pragmaOnce bool
	)
	return &cli.Command{
		Name:      "array",
		Usage:     "Embed a whole MZF container as a C array",
		ArgsUsage: "<input.mzf> [output]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "C identifier (default: output base name, else \"basic\")", Destination: &name},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "output format: c or bin", Destination: &format},
			&cli.BoolFlag{Name: "compact", Usage: "strip zero padding and rewrite the size field", Destination: &compact},
			&cli.BoolFlag{Name: "pragma-once", Usage: "start the output with #pragma once", Destination: &pragmaOnce},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			in, out := cmd.Args().Get(0), cmd.Args().Get(1)
			if in == "" {
				return fmt.Errorf("missing input file; usage: mzfload array %s", cmd.ArgsUsage)
			}
			f, err := resolveFormat(cmd, format, a.cfg.Format, out)
			if err != nil {
				return err
			}
			if f == formatIHex {
				return fmt.Errorf("array supports c and bin output, not %s", f)
			}

			data, err := readInput(in)
			if err != nil {
				return err
			}
			if compact {
				before := len(data)
				if data, err = mzf.Compact(data); err != nil {
					return fmt.Errorf("%s: %w", in, err)
				}
				log.Debug("compacted container", "input", in, "before", before, "after", len(data))
			}

			o := emitOptions{format: f, name: outputName(name, out, "basic")}
			rendered := data
			if f == formatC {
				opts := []mzf.LiteralOption{
					mzf.WithComment("Generated from: " + filepath.Base(in)),
					mzf.WithComment(fmt.Sprintf("Size: %d bytes", len(data))),
				}
				if pragmaOnce || (!cmd.IsSet("pragma-once") && a.cfg.PragmaOnce) {
					opts = append([]mzf.LiteralOption{mzf.WithPragmaOnce()}, opts...)
				}
				var buf bytes.Buffer
				if err := mzf.WriteLiteral(&buf, o.name, data, opts...); err != nil {
					return err
				}
				rendered = buf.Bytes()
			}
			if err := a.deliver(out, rendered); err != nil {
				return err
			}
			a.confirm(log, in, out, o, len(rendered))
			return nil
		},
	}
}

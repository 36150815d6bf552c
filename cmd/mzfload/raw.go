package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	mzf "github.com/logicossoftware/go-mzfload"
	"github.com/logicossoftware/go-mzfload/internal/logger"
)

func (a *app) rawCmd() *cli.Command {
	var (
		f    sharedOutputFlags
		load string
		exec string
	)
	return &cli.Command{
		Name:      "raw",
		Usage:     "Wrap a bare binary program in a loader image",
		ArgsUsage: "<program.bin> [output]",
		Flags: append(f.flags(),
			&cli.StringFlag{Name: "load", Usage: "load address (default 0x1200)", Destination: &load},
			&cli.StringFlag{Name: "exec", Usage: "exec address (default: load address)", Destination: &exec},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			in, out := cmd.Args().Get(0), cmd.Args().Get(1)
			if in == "" {
				return fmt.Errorf("missing input file; usage: mzfload raw %s", cmd.ArgsUsage)
			}
			loadAddr, err := resolveAddress(cmd, "load", load, a.cfg.LoadAddress, mzf.DefaultLoadAddress)
			if err != nil {
				return fmt.Errorf("--load: %w", err)
			}
			execAddr, err := resolveAddress(cmd, "exec", exec, a.cfg.ExecAddress, loadAddr)
			if err != nil {
				return fmt.Errorf("--exec: %w", err)
			}
			o, err := f.resolve(cmd, a.cfg, out, "program")
			if err != nil {
				return err
			}

			body, err := readInput(in)
			if err != nil {
				return err
			}
			rec, err := mzf.FromRaw(body, loadAddr, execAddr)
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			log.Debug("raw program", "input", in, "size", rec.DataSize,
				"load", fmt.Sprintf("0x%04X", loadAddr), "exec", fmt.Sprintf("0x%04X", execAddr))

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
